package storage

import (
	"context"
	"errors"
	"time"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound — запись не найдена (principal/членство/токен).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (login/refresh-token hash).
	ErrAlreadyExists = errors.New("already exists")
)

// PrincipalStorage выполняет операции над учётными записями.
type PrincipalStorage interface {
	// PrincipalByLogin находит principal по нормализованному логину.
	PrincipalByLogin(ctx context.Context, login string) (*models.Principal, error)
	// PrincipalByID находит principal по ID.
	PrincipalByID(ctx context.Context, id uuid.UUID) (*models.Principal, error)
}

// MembershipStorage выполняет операции над членствами в тенантах.
type MembershipStorage interface {
	// ActiveMembershipsByPrincipal возвращает активные членства principal.
	ActiveMembershipsByPrincipal(ctx context.Context, principalID uuid.UUID) ([]models.TenantMembership, error)
	// MembershipByPrincipalAndTenant находит членство по паре ключей
	// независимо от признака активности.
	MembershipByPrincipalAndTenant(ctx context.Context, principalID, tenantID uuid.UUID) (*models.TenantMembership, error)
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен в БД.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// RefreshTokenByHash находит refresh-токен по его хэшу.
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	// RotateRefreshToken атомарно переводит токен oldHash из active в consumed,
	// проставляет replaced_by и сохраняет замену в одной транзакции.
	// Возвращает:
	//
	//	(true, nil)  — токен был активен, ротация выполнена;
	//	(false, nil) — токен существует, но уже не активен (повторное предъявление);
	//	(false, ErrNotFound) — токен не найден.
	RotateRefreshToken(ctx context.Context, oldHash string, replacement *models.RefreshToken) (bool, error)
	// RevokeRefreshTokensByPrincipal отзывает все активные refresh-токены
	// principal; возвращает число отозванных записей.
	RevokeRefreshTokensByPrincipal(ctx context.Context, principalID uuid.UUID) (int64, error)
	// DeleteStaleRefreshTokens удаляет просроченные и давно использованные токены.
	DeleteStaleRefreshTokens(ctx context.Context, now time.Time) error
}

// GrantStorage выполняет операции над таблицей role→permissions.
type GrantStorage interface {
	// ListPermissionGrants возвращает все строки отображения ролей в разрешения
	// (глобальные и пер-тенантные); загружается целиком на старте сервиса.
	ListPermissionGrants(ctx context.Context) ([]models.PermissionGrant, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	PrincipalStorage
	MembershipStorage
	RefreshTokenStorage
	GrantStorage
	Close()
}
