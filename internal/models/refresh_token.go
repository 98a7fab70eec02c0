package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStatus — состояние refresh-токена.
//
// Машина состояний: active -> consumed (успешная ротация) | revoked (logout).
// Просроченный токен отдельного состояния не имеет — истечение определяется
// лениво по ExpiresAt при очередном использовании.
type RefreshTokenStatus string

const (
	RefreshStatusActive   RefreshTokenStatus = "active"
	RefreshStatusConsumed RefreshTokenStatus = "consumed"
	RefreshStatusRevoked  RefreshTokenStatus = "revoked"
)

// RefreshToken — персистентные данные refresh-токена.
// В БД хранится только SHA-256 хэш значения; сам секрет знает только клиент.
type RefreshToken struct {
	TokenHash   string
	PrincipalID uuid.UUID
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Status      RefreshTokenStatus
	// ReplacedBy — хэш токена-замены; заполняется при переходе в consumed
	// и связывает цепочку ротаций для аудита.
	ReplacedBy string
}
