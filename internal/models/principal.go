package models

import (
	"time"

	"github.com/google/uuid"
)

// Principal — учётная запись пользователя системы.
//
// Описание:
//   - Login — нормализованный идентификатор входа (e-mail в нижнем регистре);
//   - SecretHash — ссылка на хэш секрета (bcrypt); сам секрет нигде не хранится;
//   - Active — мягкое отключение: запись не удаляется физически,
//     деактивированный principal не проходит аутентификацию.
type Principal struct {
	ID         uuid.UUID
	Login      string
	SecretHash string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PrincipalSummary — краткая сводка о владельце сессии, возвращаемая при входе.
// Роли берутся из снапшота активных членств на момент выпуска токенов.
type PrincipalSummary struct {
	ID              uuid.UUID
	Login           string
	DefaultTenantID uuid.UUID
	// TenantRoles — роль по каждому тенанту, где есть активное членство.
	TenantRoles map[uuid.UUID]string
}
