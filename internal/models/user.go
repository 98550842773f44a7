// models содержит доменные сущности user-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя; внутренний enum.
type Role int8

const (
	RoleGuest Role = iota
	RoleMember
	RoleModerator
)

// String возвращает каноническую строковую форму роли.
func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleModerator:
		return "moderator"
	default:
		return "guest"
	}
}

// ParseRole — единственная точка разбора строки в Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "guest":
		return RoleGuest, nil
	case "member":
		return RoleMember, nil
	case "moderator":
		return RoleModerator, nil
	default:
		return RoleGuest, fmt.Errorf("unknown role %q: allowed values are guest, member, moderator", s)
	}
}

// User — модель пользователя в системе.
// Роль по умолчанию при регистрации — RoleMember; id неизменяем после создания.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
