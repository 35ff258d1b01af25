package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

const recentBookingsLimit = 10

// Service отчеты и представления для ролей.
// Все значения пересчитываются из реестра на каждый запрос, кеша нет.
type Service struct {
	viewer       BookingViewer
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	location     *time.Location
	topClients   int
	weekDays     int
	logger       Logger
}

// NewService создает новый экземпляр сервиса отчетов.
// location - часовой пояс салона для "сегодня" и "в этом месяце".
func NewService(
	viewer BookingViewer,
	catalogRepo CatalogRepository,
	timeProvider TimeProvider,
	location *time.Location,
	topClients int,
	logger Logger,
) *Service {
	return &Service{
		viewer:       viewer,
		catalogRepo:  catalogRepo,
		timeProvider: timeProvider,
		location:     location,
		topClients:   topClients,
		weekDays:     domain.DefaultWeekAgendaDays,
		logger:       logger,
	}
}

// Dashboard представление для роли сессии.
// selectedDate (YYYY-MM-DD) используется только мастером; nil - сегодня.
func (s *Service) Dashboard(ctx context.Context, session *domain.Session, selectedDate *string) (*models.DashboardResponse, error) {
	s.logger.Info("Dashboard: session=%s role=%s", session.ID, session.User.Role)

	bookings, err := s.viewer.VisibleBookings(ctx, session)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &models.DashboardResponse{Role: string(session.User.Role)}

	switch session.User.Role {
	case domain.RoleClient:
		resp.Client = clientDashboard(bookings, now)
	case domain.RoleWorker:
		day := domain.DateOnly(now)
		if selectedDate != nil && *selectedDate != "" {
			day, err = domain.ParseDate(*selectedDate)
			if err != nil {
				return nil, fmt.Errorf("%w: selected date: %v", ErrInvalidInput, err)
			}
		}
		resp.Worker = s.workerDashboard(bookings, now, day)
	case domain.RoleAdmin:
		admin, err := s.adminDashboard(ctx, bookings, now)
		if err != nil {
			return nil, err
		}
		resp.Admin = admin
	default:
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, session.User.Role.Validate())
	}

	return resp, nil
}

// Summary выручка, бронирования за месяц, ожидающие и завершенные
func (s *Service) Summary(ctx context.Context, session *domain.Session) (*models.SummaryResponse, error) {
	bookings, err := s.adminBookings(ctx, session)
	if err != nil {
		return nil, err
	}
	summary := summarize(bookings, s.now())
	return &summary, nil
}

// ServiceStats статистика по услугам каталога
func (s *Service) ServiceStats(ctx context.Context, session *domain.Session) (*models.ServiceStatsResponse, error) {
	bookings, err := s.adminBookings(ctx, session)
	if err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListServices(ctx, nil)
	if err != nil {
		s.logger.Error("ServiceStats: catalog error: %v", err)
		return nil, fmt.Errorf("%w: ServiceStats - catalog error: %v", ErrInternal, err)
	}
	return &models.ServiceStatsResponse{Services: ServiceStats(services, bookings)}, nil
}

// WorkerStats статистика по мастерам
func (s *Service) WorkerStats(ctx context.Context, session *domain.Session) (*models.WorkerStatsResponse, error) {
	bookings, err := s.adminBookings(ctx, session)
	if err != nil {
		return nil, err
	}

	workers, err := s.catalogRepo.ListWorkers(ctx, nil)
	if err != nil {
		s.logger.Error("WorkerStats: catalog error: %v", err)
		return nil, fmt.Errorf("%w: WorkerStats - catalog error: %v", ErrInternal, err)
	}
	return &models.WorkerStatsResponse{Workers: WorkerStats(workers, bookings)}, nil
}

// FrequentClients top-N клиентов; limit <= 0 - значение из конфигурации
func (s *Service) FrequentClients(ctx context.Context, session *domain.Session, limit int) (*models.FrequentClientsResponse, error) {
	bookings, err := s.adminBookings(ctx, session)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.topClients
	}
	return &models.FrequentClientsResponse{Clients: FrequentClients(bookings, limit)}, nil
}

func (s *Service) adminBookings(ctx context.Context, session *domain.Session) ([]*domain.Booking, error) {
	if session.User.Role != domain.RoleAdmin {
		s.logger.Warn("reports: role=%s is not allowed", session.User.Role)
		return nil, ErrAccessDenied
	}
	return s.viewer.VisibleBookings(ctx, session)
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.location)
}

func clientDashboard(bookings []*domain.Booking, now time.Time) *models.ClientDashboard {
	return &models.ClientDashboard{
		Upcoming:   toResponses(Upcoming(bookings, now)),
		Past:       toResponses(Past(bookings, now)),
		Total:      len(bookings),
		TotalSpent: TotalPrice(bookings),
	}
}

func (s *Service) workerDashboard(bookings []*domain.Booking, now, selected time.Time) *models.WorkerDashboard {
	today := domain.DateOnly(now)

	week := make([]models.DayAgenda, 0, s.weekDays)
	for i := 0; i < s.weekDays; i++ {
		day := today.AddDate(0, 0, i)
		week = append(week, models.DayAgenda{
			Date:     day.Format(domain.DateFormat),
			Bookings: toResponses(AgendaFor(bookings, day)),
		})
	}

	return &models.WorkerDashboard{
		Today:            toResponses(AgendaFor(bookings, today)),
		SelectedDate:     selected.Format(domain.DateFormat),
		SelectedDay:      toResponses(AgendaFor(bookings, selected)),
		Upcoming:         toResponses(Upcoming(bookings, now)),
		Week:             week,
		Earnings:         Revenue(bookings),
		CompletedCount:   len(WithStatus(bookings, domain.StatusCompleted)),
		CancelledCount:   len(WithStatus(bookings, domain.StatusCancelled)),
		AverageTicket:    AverageTicket(bookings),
		ServiceBreakdown: ServiceBreakdown(bookings),
	}
}

func (s *Service) adminDashboard(ctx context.Context, bookings []*domain.Booking, now time.Time) (*models.AdminDashboard, error) {
	services, err := s.catalogRepo.ListServices(ctx, nil)
	if err != nil {
		s.logger.Error("Dashboard: catalog error: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - catalog error: %v", ErrInternal, err)
	}
	workers, err := s.catalogRepo.ListWorkers(ctx, nil)
	if err != nil {
		s.logger.Error("Dashboard: catalog error: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - catalog error: %v", ErrInternal, err)
	}

	return &models.AdminDashboard{
		Summary:         summarize(bookings, now),
		Pending:         toResponses(WithStatus(bookings, domain.StatusPending)),
		Recent:          toResponses(MostRecent(bookings, recentBookingsLimit)),
		ServiceStats:    ServiceStats(services, bookings),
		WorkerStats:     WorkerStats(workers, bookings),
		FrequentClients: FrequentClients(bookings, s.topClients),
	}, nil
}

func summarize(bookings []*domain.Booking, now time.Time) models.SummaryResponse {
	return models.SummaryResponse{
		TotalRevenue:   Revenue(bookings),
		MonthBookings:  len(InMonth(bookings, now)),
		PendingCount:   len(WithStatus(bookings, domain.StatusPending)),
		CompletedCount: len(WithStatus(bookings, domain.StatusCompleted)),
		TotalBookings:  len(bookings),
	}
}

func toResponses(bookings []*domain.Booking) []bookingModels.BookingResponse {
	return bookingModels.FromDomainBookingList(bookings).Bookings
}
