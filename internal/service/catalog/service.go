package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг и мастеров (только чтение)
type Service struct {
	catalogRepo CatalogRepository
	notifier    Notifier
	validator   Validator
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	notifier Notifier,
	validator Validator,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		notifier:    notifier,
		validator:   validator,
		logger:      logger,
	}
}

// ListServices возвращает услуги, опционально только одной категории
func (s *Service) ListServices(ctx context.Context, category *string) (*models.ServiceListResponse, error) {
	filter, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListServices(ctx, filter)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// ListWorkers возвращает мастеров, опционально только одной специализации
func (s *Service) ListWorkers(ctx context.Context, specialty *string) (*models.WorkerListResponse, error) {
	filter, err := parseCategory(specialty)
	if err != nil {
		return nil, err
	}

	workers, err := s.catalogRepo.ListWorkers(ctx, filter)
	if err != nil {
		s.logger.Error("ListWorkers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWorkers - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkerList(workers), nil
}

// WorkersForService мастера, чья специализация совпадает с категорией услуги
func (s *Service) WorkersForService(ctx context.Context, serviceID int64) (*models.WorkerListResponse, error) {
	service, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("WorkersForService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("WorkersForService: repository error: %v", err)
		return nil, fmt.Errorf("%w: WorkersForService - repository error: %v", ErrInternal, err)
	}

	workers, err := s.catalogRepo.ListWorkers(ctx, &service.Category)
	if err != nil {
		s.logger.Error("WorkersForService: repository error: %v", err)
		return nil, fmt.Errorf("%w: WorkersForService - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkerList(workers), nil
}

// AddService проверяет данные новой услуги и уведомляет администратора.
// Каталог не меняется: добавление только имитируется.
func (s *Service) AddService(_ context.Context, session *domain.Session, req *models.AddServiceRequest) (*models.AddResponse, error) {
	if session.User.Role != domain.RoleAdmin {
		s.logger.Warn("AddService: role=%s is not allowed", session.User.Role)
		return nil, ErrAccessDenied
	}

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("AddService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	message := fmt.Sprintf("Servicio \"%s\" agregado exitosamente", req.Name)
	s.notifier.Push(session.ID, domain.NotificationSuccess, message)

	s.logger.Info("AddService: simulated add of service %q (%s)", req.Name, req.Category)
	return &models.AddResponse{Message: message, Persisted: false}, nil
}

// AddWorker проверяет данные нового мастера и уведомляет администратора.
// Каталог не меняется: добавление только имитируется.
func (s *Service) AddWorker(_ context.Context, session *domain.Session, req *models.AddWorkerRequest) (*models.AddResponse, error) {
	if session.User.Role != domain.RoleAdmin {
		s.logger.Warn("AddWorker: role=%s is not allowed", session.User.Role)
		return nil, ErrAccessDenied
	}

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("AddWorker: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	message := fmt.Sprintf("Trabajador \"%s\" agregado exitosamente", req.Name)
	s.notifier.Push(session.ID, domain.NotificationSuccess, message)

	s.logger.Info("AddWorker: simulated add of worker %q (%s)", req.Name, req.Specialty)
	return &models.AddResponse{Message: message, Persisted: false}, nil
}

func parseCategory(raw *string) (*domain.Category, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	category, err := domain.ParseCategory(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &category, nil
}
