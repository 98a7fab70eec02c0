package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newRefreshToken — собирает запись refresh-токена для сидирования.
func newRefreshToken(principalID uuid.UUID, hash string, ttl time.Duration) *models.RefreshToken {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.RefreshToken{
		TokenHash:   hash,
		PrincipalID: principalID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		Status:      models.RefreshStatusActive,
	}
}

func TestIntegration_SaveRefreshToken_And_ByHash(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	p := insertPrincipal(t, st, "rt-save@example.com", true)
	tok := newRefreshToken(p.ID, "hash-save-1", time.Hour)

	require.NoError(t, st.SaveRefreshToken(context.Background(), tok))

	got, err := st.RefreshTokenByHash(context.Background(), tok.TokenHash)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.PrincipalID)
	require.Equal(t, models.RefreshStatusActive, got.Status)
	require.Empty(t, got.ReplacedBy)
	require.WithinDuration(t, tok.ExpiresAt, got.ExpiresAt, time.Millisecond)
}

func TestIntegration_SaveRefreshToken_DuplicateHash(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	p := insertPrincipal(t, st, "rt-dup@example.com", true)
	tok := newRefreshToken(p.ID, "hash-dup", time.Hour)

	require.NoError(t, st.SaveRefreshToken(context.Background(), tok))

	err := st.SaveRefreshToken(context.Background(), tok)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_RefreshTokenByHash_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.RefreshTokenByHash(context.Background(), "absent-hash")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_RotateRefreshToken_HappyPath(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	p := insertPrincipal(t, st, "rt-rotate@example.com", true)

	old := newRefreshToken(p.ID, "hash-rotate-old", time.Hour)
	require.NoError(t, st.SaveRefreshToken(ctx, old))

	replacement := newRefreshToken(p.ID, "hash-rotate-new", time.Hour)
	rotated, err := st.RotateRefreshToken(ctx, old.TokenHash, replacement)
	require.NoError(t, err)
	require.True(t, rotated)

	// Старый токен потреблён, указывает на замену.
	gotOld, err := st.RefreshTokenByHash(ctx, old.TokenHash)
	require.NoError(t, err)
	require.Equal(t, models.RefreshStatusConsumed, gotOld.Status)
	require.Equal(t, replacement.TokenHash, gotOld.ReplacedBy)

	// Замена активна.
	gotNew, err := st.RefreshTokenByHash(ctx, replacement.TokenHash)
	require.NoError(t, err)
	require.Equal(t, models.RefreshStatusActive, gotNew.Status)
	require.Equal(t, p.ID, gotNew.PrincipalID)
}

func TestIntegration_RotateRefreshToken_Replay(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	p := insertPrincipal(t, st, "rt-replay@example.com", true)

	old := newRefreshToken(p.ID, "hash-replay-old", time.Hour)
	require.NoError(t, st.SaveRefreshToken(ctx, old))

	first := newRefreshToken(p.ID, "hash-replay-first", time.Hour)
	rotated, err := st.RotateRefreshToken(ctx, old.TokenHash, first)
	require.NoError(t, err)
	require.True(t, rotated)

	// Повторное предъявление уже потреблённого токена: (false, nil),
	// вторая замена не сохраняется.
	second := newRefreshToken(p.ID, "hash-replay-second", time.Hour)
	rotated, err = st.RotateRefreshToken(ctx, old.TokenHash, second)
	require.NoError(t, err)
	require.False(t, rotated)

	_, err = st.RefreshTokenByHash(ctx, second.TokenHash)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_RotateRefreshToken_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	p := insertPrincipal(t, st, "rt-missing@example.com", true)
	replacement := newRefreshToken(p.ID, "hash-missing-new", time.Hour)

	rotated, err := st.RotateRefreshToken(context.Background(), "hash-missing-old", replacement)
	require.False(t, rotated)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Свойство single-use под конкуренцией: при N одновременных попытках
// ротации одного токена ровно одна получает (true, nil).
func TestIntegration_RotateRefreshToken_ConcurrentSingleUse(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	p := insertPrincipal(t, st, "rt-race@example.com", true)

	old := newRefreshToken(p.ID, "hash-race-old", time.Hour)
	require.NoError(t, st.SaveRefreshToken(ctx, old))

	const workers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			replacement := newRefreshToken(p.ID, fmt.Sprintf("hash-race-new-%d", n), time.Hour)
			rotated, err := st.RotateRefreshToken(ctx, old.TokenHash, replacement)
			if err != nil {
				return
			}
			if rotated {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, winners)

	gotOld, err := st.RefreshTokenByHash(ctx, old.TokenHash)
	require.NoError(t, err)
	require.Equal(t, models.RefreshStatusConsumed, gotOld.Status)
	require.NotEmpty(t, gotOld.ReplacedBy)
}

func TestIntegration_RevokeRefreshTokensByPrincipal(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	p := insertPrincipal(t, st, "rt-revoke@example.com", true)
	other := insertPrincipal(t, st, "rt-revoke-other@example.com", true)

	require.NoError(t, st.SaveRefreshToken(ctx, newRefreshToken(p.ID, "hash-revoke-1", time.Hour)))
	require.NoError(t, st.SaveRefreshToken(ctx, newRefreshToken(p.ID, "hash-revoke-2", time.Hour)))
	require.NoError(t, st.SaveRefreshToken(ctx, newRefreshToken(other.ID, "hash-revoke-3", time.Hour)))

	n, err := st.RevokeRefreshTokensByPrincipal(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	got, err := st.RefreshTokenByHash(ctx, "hash-revoke-1")
	require.NoError(t, err)
	require.Equal(t, models.RefreshStatusRevoked, got.Status)

	// Чужие токены не тронуты.
	got, err = st.RefreshTokenByHash(ctx, "hash-revoke-3")
	require.NoError(t, err)
	require.Equal(t, models.RefreshStatusActive, got.Status)

	// Повторный отзыв идемпотентен: активных записей больше нет.
	n, err = st.RevokeRefreshTokensByPrincipal(ctx, p.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestIntegration_DeleteStaleRefreshTokens(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	p := insertPrincipal(t, st, "rt-stale@example.com", true)

	expired := newRefreshToken(p.ID, "hash-stale-expired", -time.Hour)
	alive := newRefreshToken(p.ID, "hash-stale-alive", time.Hour)
	require.NoError(t, st.SaveRefreshToken(ctx, expired))
	require.NoError(t, st.SaveRefreshToken(ctx, alive))

	require.NoError(t, st.DeleteStaleRefreshTokens(ctx, time.Now().UTC()))

	_, err := st.RefreshTokenByHash(ctx, expired.TokenHash)
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.RefreshTokenByHash(ctx, alive.TokenHash)
	require.NoError(t, err)
}
