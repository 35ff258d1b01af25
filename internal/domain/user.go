package domain

import (
	"fmt"
	"time"
)

// Role роль пользователя в текущей сессии
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

// ParseRole конвертирует строку в Role с валидацией
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate проверяет, что роль известна
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleWorker, RoleAdmin:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
	}
}

// User пользователь сессии. Учетные данные не проверяются.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// Session состояние одной пользовательской сессии
type Session struct {
	ID        string
	User      User
	CreatedAt time.Time
}

// DemoAccount учетная запись для быстрого входа
type DemoAccount struct {
	Label    string
	Email    string
	Password string
	Role     Role
}
