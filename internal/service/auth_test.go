package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"
	"github.com/LinhNC/LinhGo.ERP-sub000/mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHashSecret(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func activePrincipal(t *testing.T, login, secret string) *models.Principal {
	t.Helper()
	now := time.Now().UTC()
	return &models.Principal{
		ID:         uuid.New(),
		Login:      login,
		SecretHash: mustHashSecret(t, secret),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	ctx := context.Background()
	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	tenantA := uuid.New()
	tenantB := uuid.New()

	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return([]models.TenantMembership{
		{PrincipalID: p.ID, TenantID: tenantA, Role: "admin", Active: true, IsDefault: true},
		{PrincipalID: p.ID, TenantID: tenantB, Role: "viewer", Active: true},
	}, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	// Идентификатор нормализуется: регистр и пробелы не значимы.
	pair, summary, err := svc.Login(ctx, "  User@Example.Com ", secret)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)

	require.Equal(t, p.ID, summary.ID)
	require.Equal(t, tenantA, summary.DefaultTenantID)
	require.Equal(t, "admin", summary.TenantRoles[tenantA])
	require.Equal(t, "viewer", summary.TenantRoles[tenantB])

	// Снапшот ролей попадает в access-токен.
	claims, err := svc.ValidateToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, p.ID, claims.PrincipalID)
	require.Equal(t, tenantA, claims.DefaultTenantID)
	require.Equal(t, summary.TenantRoles, claims.TenantRoles)
}

func TestLogin_UnknownLogin(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().PrincipalByLogin(gomock.Any(), "absent@example.com").
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, _, err := svc.Login(context.Background(), "absent@example.com", "whatever")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongSecret(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	p := activePrincipal(t, "user@example.com", "correct-secret")
	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)

	_, _, err := svc.Login(context.Background(), "user@example.com", "wrong-secret")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Отключённая учётная запись неотличима снаружи от неверного секрета:
// ответ не должен позволять перебор логинов.
func TestLogin_DisabledPrincipal_SameError(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	p.Active = false
	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)

	_, _, err := svc.Login(context.Background(), "user@example.com", secret)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MalformedIdentifierOrEmptySecret(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, _, err := svc.Login(context.Background(), "not-an-email", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "user@example.com", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, _, err := svc.Login(context.Background(), "user@example.com", "secret")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_CustomSecretVerifier(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	// Подменяем алгоритм проверки: hash и secret сравниваются как есть.
	svc.SetSecretVerifier(func(hash, secret string) bool { return hash == secret })

	p := activePrincipal(t, "user@example.com", "unused")
	p.SecretHash = "plain-equal"
	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil)

	_, summary, err := svc.Login(context.Background(), "user@example.com", "plain-equal")
	require.NoError(t, err)
	require.Empty(t, summary.TenantRoles)
	require.Equal(t, uuid.Nil, summary.DefaultTenantID)
}

func TestLogin_RefreshCollisionRetries_ThenSuccess(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	gomock.InOrder(
		st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(fmtWrap(storage.ErrAlreadyExists)),
		st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(nil),
	)

	pair, _, err := svc.Login(context.Background(), "user@example.com", secret)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestLogin_RefreshCollisionExceeded(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	st.EXPECT().PrincipalByLogin(gomock.Any(), "user@example.com").Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	for i := 0; i < 5; i++ {
		st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).Return(fmtWrap(storage.ErrAlreadyExists))
	}

	_, _, err := svc.Login(context.Background(), "user@example.com", secret)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenCollision)
}

// loginPair — вспомогательный сценарий: выполняет вход и возвращает выданную
// пару вместе с записью refresh-токена, сохранённой в "хранилище".
func loginPair(t *testing.T, svc *Service, st *mocks.MockStorage, p *models.Principal, secret string) (*models.TokenPair, *models.RefreshToken) {
	t.Helper()

	var saved *models.RefreshToken
	st.EXPECT().PrincipalByLogin(gomock.Any(), p.Login).Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	st.EXPECT().SaveRefreshToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *models.RefreshToken) error {
			saved = rt
			return nil
		})

	pair, _, err := svc.Login(context.Background(), p.Login, secret)
	require.NoError(t, err)
	require.NotNil(t, saved)
	return pair, saved
}

func TestRefresh_OK_RotatesToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(saved, nil)
	st.EXPECT().PrincipalByID(gomock.Any(), p.ID).Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)

	var replacement *models.RefreshToken
	st.EXPECT().RotateRefreshToken(gomock.Any(), saved.TokenHash, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, repl *models.RefreshToken) (bool, error) {
			replacement = repl
			return true, nil
		})

	next, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)
	require.NotEmpty(t, next.RefreshToken)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// Замена принадлежит тому же principal и записана под новым хэшем.
	require.Equal(t, p.ID, replacement.PrincipalID)
	require.NotEqual(t, saved.TokenHash, replacement.TokenHash)
}

// Истёкший access-токен — штатный вход сценария refresh.
func TestRefresh_WithExpiredAccessToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	// Часы уходят за TTL access-токена, но refresh-токен ещё жив.
	svc.SetClock(func() time.Time { return time.Now().UTC().Add(svc.cfg.AccessTokenTTL + time.Minute) })

	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(saved, nil)
	st.EXPECT().PrincipalByID(gomock.Any(), p.ID).Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	st.EXPECT().RotateRefreshToken(gomock.Any(), saved.TokenHash, gomock.Any()).Return(true, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_UnknownRefreshToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, _ := loginPair(t, svc, st, p, secret)

	st.EXPECT().RefreshTokenByHash(gomock.Any(), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound))

	_, err := svc.Refresh(context.Background(), pair.AccessToken, "unknown-refresh")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

// Повторное предъявление уже потреблённого токена отклоняется по состоянию
// записи — кража и честная гонка неразличимы и обе фатальны.
func TestRefresh_ConsumedToken_Replay(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	consumed := *saved
	consumed.Status = models.RefreshStatusConsumed
	consumed.ReplacedBy = "next-hash"
	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(&consumed, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

// Гонка: между валидацией и ротацией токен потребил кто-то другой.
// Условная транзакция возвращает (false, nil) — ровно один победитель.
func TestRefresh_ConcurrentRotation_LoserFails(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(saved, nil)
	st.EXPECT().PrincipalByID(gomock.Any(), p.ID).Return(p, nil)
	st.EXPECT().ActiveMembershipsByPrincipal(gomock.Any(), p.ID).Return(nil, nil)
	st.EXPECT().RotateRefreshToken(gomock.Any(), saved.TokenHash, gomock.Any()).Return(false, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRefresh_ExpiredRefreshToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	// Часы сервиса переводятся за срок refresh-токена; allowExpired-путь
	// access-токена при этом остаётся проходимым.
	svc.SetClock(func() time.Time { return saved.ExpiresAt.Add(time.Minute) })

	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(saved, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

// Подмена пары: refresh-токен одного principal с access-токеном другого.
func TestRefresh_PairMismatch(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	alice := activePrincipal(t, "alice@example.com", secret)
	mallory := activePrincipal(t, "mallory@example.com", secret)

	alicePair, aliceSaved := loginPair(t, svc, st, alice, secret)
	malloryPair, _ := loginPair(t, svc, st, mallory, secret)

	st.EXPECT().RefreshTokenByHash(gomock.Any(), aliceSaved.TokenHash).Return(aliceSaved, nil)

	_, err := svc.Refresh(context.Background(), malloryPair.AccessToken, alicePair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestRefresh_ForgedAccessToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, _ := loginPair(t, svc, st, p, secret)

	_, err := svc.Refresh(context.Background(), "garbage.access.token", pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Отключение учётной записи делает её refresh-токены бесполезными немедленно.
func TestRefresh_DisabledPrincipal(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	disabled := *p
	disabled.Active = false
	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(saved, nil)
	st.EXPECT().PrincipalByID(gomock.Any(), p.ID).Return(&disabled, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestLogout_RevokesActiveTokens(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	st.EXPECT().RevokeRefreshTokensByPrincipal(gomock.Any(), pid).Return(int64(2), nil)

	require.NoError(t, svc.Logout(context.Background(), pid))
}

func TestLogout_Idempotent_NoActiveTokens(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	st.EXPECT().RevokeRefreshTokensByPrincipal(gomock.Any(), pid).Return(int64(0), nil)

	require.NoError(t, svc.Logout(context.Background(), pid))
}

// После logout предъявление отозванного refresh-токена фатально.
func TestLogout_ThenRefresh_Fails(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	secret := "Abcdef1!"
	p := activePrincipal(t, "user@example.com", secret)
	pair, saved := loginPair(t, svc, st, p, secret)

	st.EXPECT().RevokeRefreshTokensByPrincipal(gomock.Any(), p.ID).Return(int64(1), nil)
	require.NoError(t, svc.Logout(context.Background(), p.ID))

	revoked := *saved
	revoked.Status = models.RefreshStatusRevoked
	st.EXPECT().RefreshTokenByHash(gomock.Any(), saved.TokenHash).Return(&revoked, nil)

	_, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestValidateToken_OK_And_Garbage(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pid := uuid.New()
	at, err := svc.generateAccessToken(ctx, pid, nil, uuid.Nil, time.Now().UTC())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, at)
	require.NoError(t, err)
	require.Equal(t, pid, claims.PrincipalID)

	_, err = svc.ValidateToken(ctx, "not-a-jwt")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}
