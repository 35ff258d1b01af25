package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fakeViewer struct {
	bookings []*domain.Booking
	err      error
}

func (v *fakeViewer) VisibleBookings(_ context.Context, session *domain.Session) ([]*domain.Booking, error) {
	if v.err != nil {
		return nil, v.err
	}
	out := make([]*domain.Booking, 0)
	for _, b := range v.bookings {
		switch session.User.Role {
		case domain.RoleClient:
			if b.ClientEmail != session.User.Email {
				continue
			}
		case domain.RoleWorker:
			if b.WorkerName != session.User.Name {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeCatalog struct {
	err error
}

func (c *fakeCatalog) ListServices(context.Context, *domain.Category) ([]domain.Service, error) {
	return catalogServices(), c.err
}

func (c *fakeCatalog) ListWorkers(context.Context, *domain.Category) ([]domain.Worker, error) {
	return catalogWorkers(), c.err
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func session(role domain.Role, name, email string) *domain.Session {
	return &domain.Session{ID: "sess-" + string(role), User: domain.User{Name: name, Email: email, Role: role}}
}

var (
	adminSession  = session(domain.RoleAdmin, "Administrador", "admin@demo.com")
	workerSession = session(domain.RoleWorker, "Ana García", "trabajador@demo.com")
	clientSession = session(domain.RoleClient, "Laura", "Laura@email.com")
)

// 2025-10-09 12:00 UTC
var testNow = time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)

func testLedger() []*domain.Booking {
	return []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusCompleted, 25000),
		booking(2, "Camila", "Manicure Clásica", "María López", "2025-10-09", "14:00", domain.StatusCompleted, 20000),
		booking(3, "Sofía", "Manicure Clásica", "María López", "2025-10-10", "14:00", domain.StatusCompleted, 20000),
		booking(4, "Laura", "Corte de Cabello", "Ana García", "2025-10-11", "16:00", domain.StatusPending, 25000),
		booking(5, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "15:00", domain.StatusCancelled, 25000),
		booking(6, "Valentina", "Corte de Cabello", "Ana García", "2025-10-20", "09:00", domain.StatusConfirmed, 25000),
	}
}

func newTestService(viewer *fakeViewer, catalog *fakeCatalog) *Service {
	return NewService(viewer, catalog, fixedTime{now: testNow}, time.UTC, domain.DefaultFrequentClientsTop, nopLogger{})
}

func TestService_Dashboard_Client(t *testing.T) {
	svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{})

	resp, err := svc.Dashboard(context.Background(), clientSession, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Client)
	assert.Nil(t, resp.Worker)
	assert.Nil(t, resp.Admin)
	assert.Equal(t, "client", resp.Role)

	assert.Equal(t, 3, resp.Client.Total)
	assert.Equal(t, int64(75000), resp.Client.TotalSpent)

	require.Len(t, resp.Client.Upcoming, 1)
	assert.Equal(t, int64(4), resp.Client.Upcoming[0].ID)

	require.Len(t, resp.Client.Past, 1)
	assert.Equal(t, int64(1), resp.Client.Past[0].ID)
}

func TestService_Dashboard_Worker(t *testing.T) {
	svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{})

	t.Run("today by default", func(t *testing.T) {
		resp, err := svc.Dashboard(context.Background(), workerSession, nil)
		require.NoError(t, err)
		require.NotNil(t, resp.Worker)

		w := resp.Worker
		assert.Equal(t, "2025-10-09", w.SelectedDate)
		require.Len(t, w.Today, 1)
		assert.Equal(t, int64(1), w.Today[0].ID)
		assert.Equal(t, w.Today, w.SelectedDay)

		require.Len(t, w.Week, domain.DefaultWeekAgendaDays)
		assert.Equal(t, "2025-10-09", w.Week[0].Date)
		assert.Equal(t, "2025-10-15", w.Week[6].Date)
		require.Len(t, w.Week[2].Bookings, 1)
		assert.Equal(t, int64(4), w.Week[2].Bookings[0].ID)

		require.Len(t, w.Upcoming, 2)
		assert.Equal(t, int64(25000), w.Earnings)
		assert.Equal(t, 1, w.CompletedCount)
		assert.Equal(t, 1, w.CancelledCount)
		assert.Equal(t, int64(25000), w.AverageTicket)

		require.Len(t, w.ServiceBreakdown, 1)
		assert.Equal(t, "Corte de Cabello", w.ServiceBreakdown[0].ServiceName)
		assert.Equal(t, 4, w.ServiceBreakdown[0].Count)
	})

	t.Run("selected date", func(t *testing.T) {
		resp, err := svc.Dashboard(context.Background(), workerSession, ptr.Ptr("2025-10-20"))
		require.NoError(t, err)
		assert.Equal(t, "2025-10-20", resp.Worker.SelectedDate)
		require.Len(t, resp.Worker.SelectedDay, 1)
		assert.Equal(t, int64(6), resp.Worker.SelectedDay[0].ID)
	})

	t.Run("invalid selected date", func(t *testing.T) {
		_, err := svc.Dashboard(context.Background(), workerSession, ptr.Ptr("20/10/2025"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Dashboard_Admin(t *testing.T) {
	svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{})

	resp, err := svc.Dashboard(context.Background(), adminSession, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.Admin)

	a := resp.Admin
	assert.Equal(t, int64(65000), a.Summary.TotalRevenue)
	assert.Equal(t, 6, a.Summary.MonthBookings)
	assert.Equal(t, 1, a.Summary.PendingCount)
	assert.Equal(t, 3, a.Summary.CompletedCount)
	assert.Equal(t, 6, a.Summary.TotalBookings)

	require.Len(t, a.Pending, 1)
	assert.Equal(t, int64(4), a.Pending[0].ID)

	require.Len(t, a.Recent, 6)
	assert.Equal(t, int64(6), a.Recent[0].ID)

	require.NotEmpty(t, a.ServiceStats)
	assert.Equal(t, "Corte de Cabello", a.ServiceStats[0].Name)
	assert.Equal(t, 4, a.ServiceStats[0].BookingCount)

	require.NotEmpty(t, a.WorkerStats)
	assert.Equal(t, "María López", a.WorkerStats[0].Name)
	assert.Equal(t, int64(40000), a.WorkerStats[0].Revenue)

	require.NotEmpty(t, a.FrequentClients)
	assert.Equal(t, "Laura", a.FrequentClients[0].ClientName)
	assert.Equal(t, 3, a.FrequentClients[0].BookingCount)
}

func TestService_Dashboard_Errors(t *testing.T) {
	t.Run("viewer error", func(t *testing.T) {
		boom := errors.New("boom")
		svc := newTestService(&fakeViewer{err: boom}, &fakeCatalog{})
		_, err := svc.Dashboard(context.Background(), adminSession, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("catalog error", func(t *testing.T) {
		svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{err: errors.New("db down")})
		_, err := svc.Dashboard(context.Background(), adminSession, nil)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{})
		_, err := svc.Dashboard(context.Background(), session("guest", "x", "x@x.com"), nil)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_AdminReports(t *testing.T) {
	svc := newTestService(&fakeViewer{bookings: testLedger()}, &fakeCatalog{})
	ctx := context.Background()

	t.Run("summary", func(t *testing.T) {
		resp, err := svc.Summary(ctx, adminSession)
		require.NoError(t, err)
		assert.Equal(t, int64(65000), resp.TotalRevenue)
	})

	t.Run("service stats", func(t *testing.T) {
		resp, err := svc.ServiceStats(ctx, adminSession)
		require.NoError(t, err)
		require.Len(t, resp.Services, 3)
		var found bool
		for _, stat := range resp.Services {
			if stat.Name != "Manicure Clásica" {
				continue
			}
			found = true
			assert.Equal(t, 2, stat.BookingCount)
			assert.Equal(t, int64(40000), stat.Revenue)
		}
		assert.True(t, found)
	})

	t.Run("worker stats", func(t *testing.T) {
		resp, err := svc.WorkerStats(ctx, adminSession)
		require.NoError(t, err)
		require.Len(t, resp.Workers, 3)
	})

	t.Run("frequent clients with explicit limit", func(t *testing.T) {
		resp, err := svc.FrequentClients(ctx, adminSession, 2)
		require.NoError(t, err)
		require.Len(t, resp.Clients, 2)
	})

	t.Run("non admin is denied", func(t *testing.T) {
		for _, s := range []*domain.Session{workerSession, clientSession} {
			_, err := svc.Summary(ctx, s)
			assert.ErrorIs(t, err, ErrAccessDenied)
			_, err = svc.ServiceStats(ctx, s)
			assert.ErrorIs(t, err, ErrAccessDenied)
			_, err = svc.WorkerStats(ctx, s)
			assert.ErrorIs(t, err, ErrAccessDenied)
			_, err = svc.FrequentClients(ctx, s, 0)
			assert.ErrorIs(t, err, ErrAccessDenied)
		}
	})
}
