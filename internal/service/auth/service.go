package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
)

// DemoAccounts учетные записи для быстрого входа
var DemoAccounts = []domain.DemoAccount{
	{Label: "cliente", Email: "cliente@demo.com", Password: "demo123", Role: domain.RoleClient},
	{Label: "trabajador", Email: "trabajador@demo.com", Password: "demo123", Role: domain.RoleWorker},
	{Label: "administrador", Email: "admin@demo.com", Password: "demo123", Role: domain.RoleAdmin},
}

// Service имитация аутентификации: любые учетные данные принимаются,
// роль выбирает сам пользователь. Каждый вход создает новую сессию.
type Service struct {
	sessions     SessionStore
	notifier     Notifier
	metrics      Metrics
	validator    Validator
	timeProvider TimeProvider
	logger       Logger
	loginDelay   time.Duration
	lastUserID   atomic.Int64
}

// NewService создает новый экземпляр сервиса аутентификации.
// loginDelay имитирует сетевую задержку перед ответом.
func NewService(
	sessions SessionStore,
	notifier Notifier,
	metrics Metrics,
	validator Validator,
	timeProvider TimeProvider,
	logger Logger,
	loginDelay time.Duration,
) *Service {
	return &Service{
		sessions:     sessions,
		notifier:     notifier,
		metrics:      metrics,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
		loginDelay:   loginDelay,
	}
}

// Login создает сессию для роли. Пароль не проверяется.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: email=%s role=%s", req.Email, req.Role)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Login: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.startSession(req.Email, domain.Role(req.Role))
}

// SignUp проверяет совпадение пароля с подтверждением и выполняет вход
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.LoginResponse, error) {
	s.logger.Info("SignUp: email=%s role=%s", req.Email, req.Role)

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if req.Password != req.ConfirmPassword {
		s.logger.Warn("SignUp: password confirmation mismatch for email=%s", req.Email)
		return nil, ErrPasswordMismatch
	}

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("SignUp: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.startSession(req.Email, domain.Role(req.Role))
}

// Logout удаляет сессию вместе с её уведомлениями
func (s *Service) Logout(_ context.Context, session *domain.Session) {
	s.sessions.Delete(session.ID)
	s.notifier.Clear(session.ID)
	s.logger.Info("Logout: session=%s closed", session.ID)
}

// Me пользователь текущей сессии
func (s *Service) Me(_ context.Context, session *domain.Session) models.UserResponse {
	return models.FromDomainUser(session.User)
}

// DemoAccounts список демо-аккаунтов
func (s *Service) DemoAccounts(_ context.Context) *models.DemoAccountListResponse {
	resp := &models.DemoAccountListResponse{
		Accounts: make([]models.DemoAccountResponse, 0, len(DemoAccounts)),
	}
	for _, a := range DemoAccounts {
		resp.Accounts = append(resp.Accounts, models.DemoAccountResponse{
			Label:    a.Label,
			Email:    a.Email,
			Password: a.Password,
			Role:     string(a.Role),
		})
	}
	return resp
}

func (s *Service) startSession(email string, role domain.Role) (*models.LoginResponse, error) {
	name, err := displayName(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	session := &domain.Session{
		ID: uuid.NewString(),
		User: domain.User{
			ID:    s.lastUserID.Add(1),
			Name:  name,
			Email: email,
			Role:  role,
		},
		CreatedAt: s.timeProvider.Now(),
	}
	s.sessions.Save(session)

	message := fmt.Sprintf("Bienvenido %s", name)
	s.notifier.Push(session.ID, domain.NotificationSuccess, message)
	s.metrics.Login(string(role))

	s.logger.Info("Login: session=%s started for %s (%s)", session.ID, name, role)
	return models.FromDomainSession(session, message), nil
}

// wait имитирует сетевую задержку; отмена контекста прерывает ожидание
func (s *Service) wait(ctx context.Context) error {
	if s.loginDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.loginDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}
}

// displayName имя пользователя сессии по роли
func displayName(role domain.Role) (string, error) {
	switch role {
	case domain.RoleClient:
		return "Cliente Ejemplo", nil
	case domain.RoleWorker:
		return "Ana García", nil
	case domain.RoleAdmin:
		return "Administrador", nil
	default:
		return "", role.Validate()
	}
}
