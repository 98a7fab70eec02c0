package models

import (
	"time"

	"github.com/google/uuid"
)

// Claims — расшифрованное содержимое access-токена.
//
// Токен самодостаточен: валидация и извлечение Claims не требуют
// обращения к хранилищу. TenantRoles — снапшот ролей на момент выпуска;
// для чувствительных проверок роли перечитываются из членств.
type Claims struct {
	// TokenID — уникальный идентификатор токена (jti).
	TokenID uuid.UUID
	// PrincipalID — владелец токена (sub).
	PrincipalID uuid.UUID
	// DefaultTenantID — тенант по умолчанию; uuid.Nil, если членств нет.
	DefaultTenantID uuid.UUID
	// TenantRoles — роль по каждому тенанту на момент выпуска.
	TenantRoles map[uuid.UUID]string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// RoleIn возвращает роль в указанном тенанте из снапшота токена
// и признак её наличия.
func (c *Claims) RoleIn(tenantID uuid.UUID) (string, bool) {
	role, ok := c.TenantRoles[tenantID]
	return role, ok
}
