package postgres

import (
	"context"
	"fmt"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"

	"github.com/google/uuid"
)

// ListPermissionGrants возвращает все строки отображения ролей в разрешения.
// tenant_id IS NULL в БД соответствует глобальной строке (uuid.Nil в модели).
func (s *Storage) ListPermissionGrants(ctx context.Context) ([]models.PermissionGrant, error) {
	const op = "storage.postgres.ListPermissionGrants"

	query := `
        SELECT tenant_id, role, permissions
        FROM permission_grants
        ORDER BY role, tenant_id NULLS FIRST
    `

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var grants []models.PermissionGrant
	for rows.Next() {
		var (
			g   models.PermissionGrant
			tid *uuid.UUID
		)
		if err := rows.Scan(&tid, &g.Role, &g.Permissions); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if tid != nil {
			g.TenantID = *tid
		}

		grants = append(grants, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return grants, nil
}
