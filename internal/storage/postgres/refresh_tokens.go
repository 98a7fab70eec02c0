package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveRefreshToken сохраняет новый refresh-токен в БД.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage.postgres.SaveRefreshToken"

	query := `
        INSERT INTO refresh_tokens(token_hash, principal_id, created_at, expires_at, status, replaced_by)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := s.db.Exec(ctx, query,
		token.TokenHash,
		token.PrincipalID,
		token.CreatedAt,
		token.ExpiresAt,
		string(token.Status),
		nullIfEmpty(token.ReplacedBy),
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RefreshTokenByHash находит refresh-токен по его хэшу.
func (s *Storage) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	const op = "storage.postgres.RefreshTokenByHash"

	query := `
        SELECT token_hash, principal_id, created_at, expires_at, status, COALESCE(replaced_by, '')
        FROM refresh_tokens
        WHERE token_hash = $1
    `

	var (
		token  models.RefreshToken
		status string
	)
	err := s.db.QueryRow(ctx, query, hash).Scan(
		&token.TokenHash,
		&token.PrincipalID,
		&token.CreatedAt,
		&token.ExpiresAt,
		&status,
		&token.ReplacedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token.Status = models.RefreshTokenStatus(status)

	return &token, nil
}

// RotateRefreshToken атомарно потребляет старый токен и сохраняет замену.
//
// Условный UPDATE по status='active' — единственная точка сериализации
// конкурентных попыток ротации: при двух одновременных вызовах ровно один
// получает затронутую строку, второй — (false, nil).
// Возвращает:
//
//	(true, nil)  — токен был активен и потреблён сейчас, замена сохранена;
//	(false, nil) — токен существует, но уже consumed/revoked;
//	(false, ErrNotFound) — токен не найден.
func (s *Storage) RotateRefreshToken(ctx context.Context, oldHash string, replacement *models.RefreshToken) (bool, error) {
	const op = "storage.postgres.RotateRefreshToken"

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const consume = `
		UPDATE refresh_tokens
		SET status = 'consumed', replaced_by = $2
		WHERE token_hash = $1 AND status = 'active'
		RETURNING principal_id
	`

	var principalID uuid.UUID
	err = tx.QueryRow(ctx, consume, oldHash, replacement.TokenHash).Scan(&principalID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, err)
		}

		const sel = `
			SELECT status
			FROM refresh_tokens
			WHERE token_hash = $1
		`

		var status string
		err = tx.QueryRow(ctx, sel, oldHash).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}

			return false, fmt.Errorf("%s: %w", op, err)
		}

		return false, nil
	}

	const insert = `
        INSERT INTO refresh_tokens(token_hash, principal_id, created_at, expires_at, status, replaced_by)
        VALUES ($1, $2, $3, $4, $5, NULL)
    `

	_, err = tx.Exec(ctx, insert,
		replacement.TokenHash,
		replacement.PrincipalID,
		replacement.CreatedAt,
		replacement.ExpiresAt,
		string(replacement.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// RevokeRefreshTokensByPrincipal отзывает все активные refresh-токены principal.
func (s *Storage) RevokeRefreshTokensByPrincipal(ctx context.Context, principalID uuid.UUID) (int64, error) {
	const op = "storage.postgres.RevokeRefreshTokensByPrincipal"

	query := `
        UPDATE refresh_tokens
        SET status = 'revoked'
        WHERE principal_id = $1 AND status = 'active'
    `

	cmdTag, err := s.db.Exec(ctx, query, principalID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return cmdTag.RowsAffected(), nil
}

// DeleteStaleRefreshTokens удаляет просроченные записи и хвосты цепочек ротаций.
// Чисто хозяйственная операция: корректность single-use не зависит от неё.
func (s *Storage) DeleteStaleRefreshTokens(ctx context.Context, now time.Time) error {
	const op = "storage.postgres.DeleteStaleRefreshTokens"

	query := `
        DELETE FROM refresh_tokens
        WHERE expires_at <= $1
    `

	_, err := s.db.Exec(ctx, query, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
