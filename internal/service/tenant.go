package service

import (
	"fmt"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"

	"github.com/google/uuid"
)

// TenantSignals — сигналы определения тенанта запроса в порядке убывания
// приоритета. uuid.Nil означает отсутствие сигнала.
type TenantSignals struct {
	// ExplicitTenantID — тенант, явно указанный вызывающим (заголовок
	// X-Tenant-ID): позволяет переключить контекст без повторного входа.
	ExplicitTenantID uuid.UUID
	// RouteTenantID — тенант из маршрута адресуемого ресурса.
	RouteTenantID uuid.UUID
}

// ResolveTenant определяет тенант запроса.
//
// Порядок разрешения: явный сигнал > тенант маршрута > дефолт из claims.
// Явные сигналы перекрывают неявные; маршрутный контекст сильнее
// сессионного дефолта, поскольку одна сессия может последовательно работать
// с несколькими тенантами. Если ни один сигнал не задан — ErrTenantUnresolved.
func (s *Service) ResolveTenant(signals TenantSignals, claims *models.Claims) (uuid.UUID, error) {
	const op = "service.tenant.ResolveTenant"

	if signals.ExplicitTenantID != uuid.Nil {
		return signals.ExplicitTenantID, nil
	}

	if signals.RouteTenantID != uuid.Nil {
		return signals.RouteTenantID, nil
	}

	if claims != nil && claims.DefaultTenantID != uuid.Nil {
		return claims.DefaultTenantID, nil
	}

	return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTenantUnresolved)
}
