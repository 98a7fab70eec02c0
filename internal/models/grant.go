package models

import "github.com/google/uuid"

// PermissionGrant — отображение имени роли в набор строк-разрешений.
//
// TenantID == uuid.Nil означает глобальную строку по умолчанию; строка
// с конкретным TenantID полностью перекрывает глобальную для той же роли
// (без слияния наборов), поэтому тенант может как расширить, так и сузить
// права роли.
type PermissionGrant struct {
	TenantID    uuid.UUID
	Role        string
	Permissions []string
}

// PermissionSet — набор разрешений с проверкой вхождения.
type PermissionSet map[string]struct{}

// NewPermissionSet собирает набор из списка строк.
func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}

	return set
}

// Has сообщает, содержит ли набор указанное разрешение.
func (s PermissionSet) Has(permission string) bool {
	_, ok := s[permission]
	return ok
}

// List возвращает разрешения в виде среза (порядок не определён).
func (s PermissionSet) List() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}

	return out
}
