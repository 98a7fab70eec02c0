package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ActiveMembershipsByPrincipal возвращает активные членства principal.
func (s *Storage) ActiveMembershipsByPrincipal(ctx context.Context, principalID uuid.UUID) ([]models.TenantMembership, error) {
	const op = "storage.postgres.ActiveMembershipsByPrincipal"

	query := `
        SELECT principal_id, tenant_id, role, active, is_default, created_at, updated_at
        FROM tenant_memberships
        WHERE principal_id = $1 AND active = TRUE
        ORDER BY created_at
    `

	rows, err := s.db.Query(ctx, query, principalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var memberships []models.TenantMembership
	for rows.Next() {
		var m models.TenantMembership
		if err := rows.Scan(
			&m.PrincipalID,
			&m.TenantID,
			&m.Role,
			&m.Active,
			&m.IsDefault,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return memberships, nil
}

// MembershipByPrincipalAndTenant находит членство по паре ключей.
func (s *Storage) MembershipByPrincipalAndTenant(ctx context.Context, principalID, tenantID uuid.UUID) (*models.TenantMembership, error) {
	const op = "storage.postgres.MembershipByPrincipalAndTenant"

	query := `
        SELECT principal_id, tenant_id, role, active, is_default, created_at, updated_at
        FROM tenant_memberships
        WHERE principal_id = $1 AND tenant_id = $2
    `

	var m models.TenantMembership
	err := s.db.QueryRow(ctx, query, principalID, tenantID).Scan(
		&m.PrincipalID,
		&m.TenantID,
		&m.Role,
		&m.Active,
		&m.IsDefault,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}
