package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantMembership — связь principal↔tenant с ролью.
//
// Инварианты:
//   - пара (PrincipalID, TenantID) уникальна;
//   - у одного principal не больше одного членства с IsDefault=true
//     (обеспечивается частичным уникальным индексом в БД);
//   - строки членств — единственный авторитетный источник роли в тенанте;
//     снапшот ролей внутри access-токена носит справочный характер.
type TenantMembership struct {
	PrincipalID uuid.UUID
	TenantID    uuid.UUID
	Role        string
	Active      bool
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
