package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// LoginRequest запрос на вход. Учетные данные не проверяются.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=client worker admin"`
}

// SignUpRequest запрос на регистрацию
type SignUpRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=client worker admin"`
}

// Response модели

// UserResponse пользователь сессии
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse ответ на вход/регистрацию
type LoginResponse struct {
	SessionID string       `json:"sessionId"`
	User      UserResponse `json:"user"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DemoAccountResponse учетная запись для быстрого входа
type DemoAccountResponse struct {
	Label    string `json:"type"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// DemoAccountListResponse список демо-аккаунтов
type DemoAccountListResponse struct {
	Accounts []DemoAccountResponse `json:"accounts"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// FromDomainSession конвертирует сессию в ответ на вход
func FromDomainSession(s *domain.Session, message string) *LoginResponse {
	return &LoginResponse{
		SessionID: s.ID,
		User:      FromDomainUser(s.User),
		Message:   message,
		CreatedAt: s.CreatedAt,
	}
}
