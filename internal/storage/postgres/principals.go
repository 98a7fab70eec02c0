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

// PrincipalByLogin находит principal по нормализованному логину.
func (s *Storage) PrincipalByLogin(ctx context.Context, login string) (*models.Principal, error) {
	const op = "storage.postgres.PrincipalByLogin"

	query := `
        SELECT id, login, secret_hash, active, created_at, updated_at
        FROM principals
        WHERE login = $1
    `

	var p models.Principal
	err := s.db.QueryRow(ctx, query, login).Scan(
		&p.ID,
		&p.Login,
		&p.SecretHash,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

// PrincipalByID находит principal по ID.
func (s *Storage) PrincipalByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	const op = "storage.postgres.PrincipalByID"

	query := `
        SELECT id, login, secret_hash, active, created_at, updated_at
        FROM principals
        WHERE id = $1
    `

	var p models.Principal
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Login,
		&p.SecretHash,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}
