package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/pkg/log"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/google/uuid"
)

type grantKey struct {
	tenantID uuid.UUID
	role     string
}

// GrantTable — загруженное целиком отображение role→permissions.
// Строится один раз на старте и далее только читается, поэтому безопасна
// для конкурентного доступа без блокировок.
type GrantTable struct {
	grants map[grantKey]models.PermissionSet
}

// NewGrantTable собирает таблицу из строк хранилища.
func NewGrantTable(grants []models.PermissionGrant) *GrantTable {
	table := &GrantTable{
		grants: make(map[grantKey]models.PermissionSet, len(grants)),
	}

	for _, g := range grants {
		table.grants[grantKey{tenantID: g.TenantID, role: g.Role}] = models.NewPermissionSet(g.Permissions...)
	}

	return table
}

// PermissionsFor возвращает набор разрешений роли в тенанте.
// Пер-тенантная строка полностью перекрывает глобальную (tenantID=Nil)
// для той же роли; при отсутствии обеих набор пуст.
func (t *GrantTable) PermissionsFor(tenantID uuid.UUID, role string) models.PermissionSet {
	if t == nil {
		return models.PermissionSet{}
	}

	if set, ok := t.grants[grantKey{tenantID: tenantID, role: role}]; ok {
		return set
	}

	if set, ok := t.grants[grantKey{tenantID: uuid.Nil, role: role}]; ok {
		return set
	}

	return models.PermissionSet{}
}

// LoadGrants загружает таблицу role→permissions из хранилища.
// Вызывается на старте сервиса до приёма трафика.
func (s *Service) LoadGrants(ctx context.Context) error {
	const op = "service.permissions.LoadGrants"

	grants, err := s.storage.ListPermissionGrants(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.grants = NewGrantTable(grants)

	log.From(ctx).Info("permission_grants_loaded",
		slog.Int("rows", len(grants)),
	)

	return nil
}

// SetGrantTable устанавливает таблицу напрямую (используется в тестах).
func (s *Service) SetGrantTable(t *GrantTable) {
	s.grants = t
}

// EffectivePermissions вычисляет действующий набор разрешений principal
// в тенанте по текущему состоянию членств, а не по снапшоту из токена:
// для чувствительных операций авторитетны только строки членств.
// Отсутствующее или неактивное членство даёт пустой набор без ошибки.
func (s *Service) EffectivePermissions(ctx context.Context, principalID, tenantID uuid.UUID) (models.PermissionSet, error) {
	const op = "service.permissions.EffectivePermissions"

	membership, err := s.storage.MembershipByPrincipalAndTenant(ctx, principalID, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.PermissionSet{}, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !membership.Active {
		return models.PermissionSet{}, nil
	}

	return s.grants.PermissionsFor(tenantID, membership.Role), nil
}
