package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/cache"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/pkg/log"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/pkg/redact"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/google/uuid"
)

// Login выполняет вход по идентификатору и секрету.
//
// Все отказы аутентификации (неизвестный логин, неверный секрет, отключённая
// учётная запись) возвращаются как единый ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identifier, secret string) (*models.TokenPair, *models.PrincipalSummary, error) {
	const op = "service.auth.Login"

	login, err := normalizeIdentifier(identifier)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(secret) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	principal, err := s.storage.PrincipalByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.verifySecret(principal.SecretHash, secret) {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !principal.Active {
		log.From(ctx).Warn("login_disabled_principal",
			slog.String("op", op),
			slog.String("login", redact.Login(login)),
		)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	summary, err := s.membershipSnapshot(ctx, principal)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, summary)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, summary, nil
}

// Refresh выпускает новую пару токенов по предъявленной паре access+refresh.
//
// Проверки в порядке: подпись/issuer/audience access-токена (срок действия
// не проверяется — истёкший access-токен здесь штатная ситуация), состояние
// refresh-токена в хранилище, совпадение владельцев обоих токенов.
// Потребление refresh-токена и запись замены выполняются одной условной
// транзакцией: из двух конкурентных попыток ротации успешна ровно одна.
func (s *Service) Refresh(ctx context.Context, accessToken, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx)

	claims, err := s.validateAccessToken(accessToken, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Защита от подмены пары: refresh-токен одного пользователя нельзя
	// предъявить с access-токеном другого.
	if record.PrincipalID != claims.PrincipalID {
		lg.Warn("refresh_pair_mismatch",
			slog.String("op", op),
			slog.String("refresh_owner", record.PrincipalID.String()),
			slog.String("access_subject", claims.PrincipalID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
	}

	principal, err := s.storage.PrincipalByID(ctx, record.PrincipalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !principal.Active {
		return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
	}

	summary, err := s.membershipSnapshot(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.rotateTokenPair(ctx, summary, record.TokenHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// Logout отзывает все активные refresh-токены principal.
// Уже выпущенные access-токены продолжают действовать до собственного
// истечения — компромисс, ограничивающий задержку отзыва TTL access-токена.
func (s *Service) Logout(ctx context.Context, principalID uuid.UUID) error {
	const op = "service.auth.Logout"

	revoked, err := s.storage.RevokeRefreshTokensByPrincipal(ctx, principalID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("logout",
		slog.String("op", op),
		slog.String("principal_id", principalID.String()),
		slog.Int64("revoked", revoked),
	)

	return nil
}

// ValidateToken проверяет access-токен и возвращает его Claims.
// Чистая операция: подпись, срок действия (строго), issuer/audience —
// без обращения к хранилищу.
func (s *Service) ValidateToken(ctx context.Context, accessToken string) (*models.Claims, error) {
	const op = "service.auth.ValidateToken"

	claims, err := s.validateAccessToken(accessToken, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return claims, nil
}

// membershipSnapshot собирает сводку активных членств principal для снапшота
// в токене. Инвариант "не больше одного дефолта" обеспечивает БД; при
// отсутствии членств сводка пуста и дефолтный тенант равен uuid.Nil.
func (s *Service) membershipSnapshot(ctx context.Context, principal *models.Principal) (*models.PrincipalSummary, error) {
	const op = "service.auth.membershipSnapshot"

	memberships, err := s.storage.ActiveMembershipsByPrincipal(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.PrincipalSummary{
		ID:          principal.ID,
		Login:       principal.Login,
		TenantRoles: make(map[uuid.UUID]string, len(memberships)),
	}

	for _, m := range memberships {
		summary.TenantRoles[m.TenantID] = m.Role
		if m.IsDefault {
			summary.DefaultTenantID = m.TenantID
		}
	}

	return summary, nil
}

// issueTokenPair выпускает новую пару access+refresh токенов при входе.
func (s *Service) issueTokenPair(ctx context.Context, summary *models.PrincipalSummary) (*models.TokenPair, error) {
	const (
		op          = "service.auth.issueTokenPair"
		maxAttempts = 5
	)

	now := s.now()

	accessToken, err := s.generateAccessToken(ctx, summary.ID, summary.TenantRoles, summary.DefaultTenantID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		plain, token, err := s.mintRefreshToken(summary.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		s.cacheRefreshToken(ctx, token)

		return &models.TokenPair{
			AccessToken:     accessToken,
			RefreshToken:    plain,
			AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
		}, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// rotateTokenPair выпускает новую пару, атомарно потребляя старый refresh-токен.
func (s *Service) rotateTokenPair(ctx context.Context, summary *models.PrincipalSummary, oldHash string) (*models.TokenPair, error) {
	const (
		op          = "service.auth.rotateTokenPair"
		maxAttempts = 5
	)

	lg := log.From(ctx)
	now := s.now()

	accessToken, err := s.generateAccessToken(ctx, summary.ID, summary.TenantRoles, summary.DefaultTenantID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		plain, token, err := s.mintRefreshToken(summary.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		rotated, err := s.storage.RotateRefreshToken(ctx, oldHash, token)
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Коллизия хэша замены — пробуем сгенерировать заново.
				continue
			}

			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if !rotated {
			// Токен перестал быть активным между валидацией и ротацией:
			// конкурентное потребление либо отзыв. Повтор предъявления —
			// основной сигнал кражи refresh-токена.
			lg.Warn("refresh_reuse_detected",
				slog.String("op", op),
				slog.String("principal_id", summary.ID.String()),
			)
			s.markRefreshInactive(ctx, oldHash)
			return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
		}

		s.markRefreshInactive(ctx, oldHash)
		s.cacheRefreshToken(ctx, token)

		return &models.TokenPair{
			AccessToken:     accessToken,
			RefreshToken:    plain,
			AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
		}, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// validateRefreshToken проверяет refresh-токен по кэшу (быстрый отрицательный
// путь) и хранилищу. Возвращает запись токена при успехе.
func (s *Service) validateRefreshToken(ctx context.Context, plain string) (*models.RefreshToken, error) {
	const op = "service.auth.validateRefreshToken"

	lg := log.From(ctx)
	hash := hashRefreshToken(plain)

	if s.rcache != nil {
		entry, found, err := s.rcache.Get(ctx, hash)
		if err != nil {
			// Кэш недоступен — идём в хранилище.
			lg.Warn("refresh_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if found && !entry.Active {
			lg.Warn("refresh_reuse_detected",
				slog.String("op", op),
				slog.String("principal_id", entry.PrincipalID.String()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
		}
	}

	token, err := s.storage.RefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found",
				slog.String("op", op),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if token.Status != models.RefreshStatusActive {
		lg.Warn("refresh_reuse_detected",
			slog.String("op", op),
			slog.String("principal_id", token.PrincipalID.String()),
			slog.String("status", string(token.Status)),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
	}

	if s.now().After(token.ExpiresAt) {
		lg.Warn("refresh_expired",
			slog.String("op", op),
			slog.String("principal_id", token.PrincipalID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalid)
	}

	return token, nil
}

// cacheRefreshToken кладёт свежий токен в кэш; ошибки кэша не фатальны.
func (s *Service) cacheRefreshToken(ctx context.Context, token *models.RefreshToken) {
	if s.rcache == nil {
		return
	}

	entry := &cache.RefreshEntry{
		PrincipalID: token.PrincipalID,
		Active:      token.Status == models.RefreshStatusActive,
		ExpiresAt:   token.ExpiresAt,
	}

	if err := s.rcache.Set(ctx, token.TokenHash, entry, token.ExpiresAt.Sub(s.now())); err != nil {
		log.From(ctx).Warn("refresh_cache_set_failed",
			slog.String("err", err.Error()),
		)
	}
}

// markRefreshInactive отражает потребление/отзыв токена в кэше.
func (s *Service) markRefreshInactive(ctx context.Context, hash string) {
	if s.rcache == nil {
		return
	}

	if err := s.rcache.MarkInactive(ctx, hash); err != nil {
		log.From(ctx).Warn("refresh_cache_mark_failed",
			slog.String("err", err.Error()),
		)
	}
}

// normalizeIdentifier проверяет базовый формат идентификатора входа (e-mail)
// и приводит его к каноническому виду.
func normalizeIdentifier(raw string) (string, error) {
	const op = "service.auth.normalizeIdentifier"

	login := strings.TrimSpace(raw)
	if login == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if _, err := mail.ParseAddress(login); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return strings.ToLower(login), nil
}
