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

// Policy — декларация требований защищённой операции: допустимые роли
// и/или обязательное разрешение. Пустое поле означает, что соответствующая
// проверка не выполняется; доступ к тенанту проверяется всегда.
type Policy struct {
	Roles      []string
	Permission string
}

// Authorize выполняет композицию проверок в фиксированном порядке:
// доступ к тенанту → роль → разрешение. Первая неудавшаяся проверка
// прерывает остальные; все отказы — ErrForbidden без уточнения причины
// наружу (причина остаётся в логах).
//
// Членство читается из хранилища один раз на вызов и переиспользуется
// всеми проверками: для чувствительных операций авторитетно текущее
// состояние членств, а не снапшот ролей в токене.
func (s *Service) Authorize(ctx context.Context, principalID, tenantID uuid.UUID, policy Policy) error {
	const op = "service.guard.Authorize"

	membership, err := s.checkTenantAccess(ctx, principalID, tenantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(policy.Roles) > 0 {
		if err := checkRole(membership, policy.Roles); err != nil {
			log.From(ctx).Warn("authorize_role_denied",
				slog.String("op", op),
				slog.String("principal_id", principalID.String()),
				slog.String("tenant_id", tenantID.String()),
				slog.String("role", membership.Role),
			)
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if policy.Permission != "" {
		perms := s.grants.PermissionsFor(tenantID, membership.Role)
		if !perms.Has(policy.Permission) {
			log.From(ctx).Warn("authorize_permission_denied",
				slog.String("op", op),
				slog.String("principal_id", principalID.String()),
				slog.String("tenant_id", tenantID.String()),
				slog.String("permission", policy.Permission),
			)
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}
	}

	return nil
}

// CheckTenantAccess проверяет наличие активного членства principal в тенанте.
func (s *Service) CheckTenantAccess(ctx context.Context, principalID, tenantID uuid.UUID) error {
	const op = "service.guard.CheckTenantAccess"

	if _, err := s.checkTenantAccess(ctx, principalID, tenantID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CheckRole проверяет доступ к тенанту и вхождение роли в допустимый набор.
func (s *Service) CheckRole(ctx context.Context, principalID, tenantID uuid.UUID, allowed ...string) error {
	const op = "service.guard.CheckRole"

	membership, err := s.checkTenantAccess(ctx, principalID, tenantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := checkRole(membership, allowed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CheckPermission проверяет доступ к тенанту и наличие разрешения
// в эффективном наборе роли.
func (s *Service) CheckPermission(ctx context.Context, principalID, tenantID uuid.UUID, permission string) error {
	const op = "service.guard.CheckPermission"

	membership, err := s.checkTenantAccess(ctx, principalID, tenantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !s.grants.PermissionsFor(tenantID, membership.Role).Has(permission) {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}

// checkTenantAccess — общий шаг всех проверок: активное членство в тенанте.
// Отсутствие членства и неактивное членство неразличимы снаружи.
func (s *Service) checkTenantAccess(ctx context.Context, principalID, tenantID uuid.UUID) (*models.TenantMembership, error) {
	const op = "service.guard.checkTenantAccess"

	membership, err := s.storage.MembershipByPrincipalAndTenant(ctx, principalID, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !membership.Active {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return membership, nil
}

func checkRole(membership *models.TenantMembership, allowed []string) error {
	for _, role := range allowed {
		if membership.Role == role {
			return nil
		}
	}

	return ErrForbidden
}
