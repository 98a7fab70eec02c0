package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/pkg/log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessClaims — полезная нагрузка access-токена.
// Стандартные поля (sub/jti/iat/exp/iss/aud) + снапшот ролей и дефолтный тенант.
type accessClaims struct {
	TenantRoles   map[string]string `json:"rls"`
	DefaultTenant string            `json:"dtn,omitempty"`
	jwt.RegisteredClaims
}

// generateAccessToken генерирует access-токен для principal с данным
// снапшотом ролей. Каждый вызов получает новый jti.
func (s *Service) generateAccessToken(ctx context.Context, principalID uuid.UUID, roles map[uuid.UUID]string, defaultTenantID uuid.UUID, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	rls := make(map[string]string, len(roles))
	for tid, role := range roles {
		rls[tid.String()] = role
	}

	var dtn string
	if defaultTenantID != uuid.Nil {
		dtn = defaultTenantID.String()
	}

	claims := accessClaims{
		TenantRoles:   rls,
		DefaultTenant: dtn,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   principalID.String(),
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings(s.cfg.Audience),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken валидирует access-токен и извлекает Claims.
//
// Проверки в порядке: подпись, срок действия (строго, без допуска на рассинхрон
// часов), issuer/audience. При allowExpired=true просроченный, но корректно
// подписанный токен принимается — это нужно сценарию refresh, где владельца
// пары определяет именно истёкший access-токен.
func (s *Service) validateAccessToken(tokenStr string, allowExpired bool) (*models.Claims, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience...),
	)

	if err != nil {
		expiredOnly := errors.Is(err, jwt.ErrTokenExpired) &&
			!errors.Is(err, jwt.ErrTokenSignatureInvalid) &&
			!errors.Is(err, jwt.ErrTokenInvalidIssuer) &&
			!errors.Is(err, jwt.ErrTokenInvalidAudience)

		if !expiredOnly {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		if !allowExpired {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
	} else if !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return claimsFromAccess(claims)
}

// claimsFromAccess преобразует полезную нагрузку JWT в доменные Claims.
func claimsFromAccess(ac *accessClaims) (*models.Claims, error) {
	const op = "service.token.claimsFromAccess"

	pid, err := uuid.Parse(ac.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	tokenID, err := uuid.Parse(ac.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	defaultTenant := uuid.Nil
	if ac.DefaultTenant != "" {
		defaultTenant, err = uuid.Parse(ac.DefaultTenant)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
	}

	roles := make(map[uuid.UUID]string, len(ac.TenantRoles))
	for raw, role := range ac.TenantRoles {
		tid, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		roles[tid] = role
	}

	claims := &models.Claims{
		TokenID:         tokenID,
		PrincipalID:     pid,
		DefaultTenantID: defaultTenant,
		TenantRoles:     roles,
	}
	if ac.IssuedAt != nil {
		claims.IssuedAt = ac.IssuedAt.Time.UTC()
	}
	if ac.ExpiresAt != nil {
		claims.ExpiresAt = ac.ExpiresAt.Time.UTC()
	}

	return claims, nil
}

// mintRefreshToken создаёт новый refresh-токен без обращения к хранилищу:
// криптослучайный секрет для клиента и запись с его SHA-256 хэшем для БД.
func (s *Service) mintRefreshToken(principalID uuid.UUID) (string, *models.RefreshToken, error) {
	const op = "service.token.mintRefreshToken"

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	plain := base64.RawURLEncoding.EncodeToString(b)

	now := s.now()
	token := &models.RefreshToken{
		TokenHash:   hashRefreshToken(plain),
		PrincipalID: principalID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.cfg.RefreshTokenTTL),
		Status:      models.RefreshStatusActive,
	}

	return plain, token, nil
}

// hashRefreshToken — sha256 → base64url; в БД и кэше живёт только хэш.
func hashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
