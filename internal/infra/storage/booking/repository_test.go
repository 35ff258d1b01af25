package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func newTestRepository(t *testing.T) (*Repository, *dbmetrics.DB) {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	builder, err := sqlbuilder.New(sqlbuilder.DriverSQLite)
	require.NoError(t, err)

	repo := NewRepository(db, builder)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo, db
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedBookings() []*domain.Booking {
	return []*domain.Booking{
		{ID: 1, ClientName: "Laura Martínez", ClientEmail: "laura@email.com", ServiceName: "Corte de Cabello", WorkerName: "Ana García", Date: date("2025-10-09"), Time: "10:00", Status: domain.StatusConfirmed, DurationMinutes: 30, Price: 25000},
		{ID: 2, ClientName: "Camila Rodriguez", ClientEmail: "camila@email.com", ServiceName: "Manicure Clásica", WorkerName: "María López", Date: date("2025-10-09"), Time: "14:00", Status: domain.StatusConfirmed, DurationMinutes: 45, Price: 20000},
		{ID: 3, ClientName: "Valentina Silva", ClientEmail: "valentina@email.com", ServiceName: "Coloración", WorkerName: "Ana García", Date: date("2025-10-10"), Time: "11:00", Status: domain.StatusPending, DurationMinutes: 90, Price: 45000},
	}
}

func TestRepository_Seed(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	inserted, err := repo.Seed(ctx, seedBookings())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	// Повторный seed не дублирует записи
	inserted, err = repo.Seed(ctx, seedBookings())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Valentina Silva", got.ClientName)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "11:00", got.Time.String())
	assert.True(t, domain.SameDay(date("2025-10-10"), got.Date))
	assert.Equal(t, int64(45000), got.Price)
}

func TestRepository_Seed_RejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.Seed(ctx, seedBookings())
	require.NoError(t, err)

	clash := &domain.Booking{ID: 4, ClientName: "Sara", ClientEmail: "sara@email.com", ServiceName: "Corte de Cabello", WorkerName: "Ana García", Date: date("2025-10-09"), Time: "10:00", Status: domain.StatusPending, DurationMinutes: 30, Price: 25000}

	inserted, err := repo.Seed(ctx, []*domain.Booking{clash})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, inserted)

	_, err = repo.GetByID(ctx, 4)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Seed_CancelledDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	inserted, err := repo.Seed(ctx, []*domain.Booking{
		{ID: 1, ClientName: "Laura Martínez", ClientEmail: "laura@email.com", ServiceName: "Corte de Cabello", WorkerName: "Ana García", Date: date("2025-10-09"), Time: "10:00", Status: domain.StatusCancelled, DurationMinutes: 30, Price: 25000},
		{ID: 2, ClientName: "Sara", ClientEmail: "sara@email.com", ServiceName: "Corte de Cabello", WorkerName: "Ana García", Date: date("2025-10-09"), Time: "10:00", Status: domain.StatusConfirmed, DurationMinutes: 30, Price: 25000},
		// отмененное на занятый слот тоже допустимо
		{ID: 3, ClientName: "Eva", ClientEmail: "eva@email.com", ServiceName: "Corte de Cabello", WorkerName: "Ana García", Date: date("2025-10-09"), Time: "10:00", Status: domain.StatusCancelled, DurationMinutes: 30, Price: 25000},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)
}

func TestRepository_Seed_LookupErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	require.NoError(t, db.Unwrap().Close())

	inserted, err := repo.Seed(ctx, seedBookings())
	assert.ErrorIs(t, err, ErrScanRow)
	assert.NotErrorIs(t, err, ErrExecQuery)
	assert.Equal(t, 0, inserted)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	_, err := repo.Seed(ctx, seedBookings())
	require.NoError(t, err)

	createdAt := time.Date(2025, 10, 8, 12, 0, 0, 0, time.UTC)
	first, err := repo.Create(ctx, &domain.Booking{
		ClientName:      "Cliente Ejemplo",
		ClientEmail:     "cliente@demo.com",
		ServiceName:     "Corte de Cabello",
		WorkerName:      "Ana García",
		Date:            date("2025-10-15"),
		Time:            "10:00",
		Status:          domain.StatusConfirmed,
		DurationMinutes: 30,
		Price:           25000,
		CreatedAt:       createdAt,
	})
	require.NoError(t, err)
	assert.Equal(t, createdAt.UnixMilli(), first.ID)

	// Та же миллисекунда - ID всё равно растет
	second, err := repo.Create(ctx, &domain.Booking{
		ClientName:  "Cliente Ejemplo",
		ClientEmail: "cliente@demo.com",
		ServiceName: "Nail Art",
		WorkerName:  "María López",
		Date:        date("2025-10-15"),
		Time:        "10:00",
		Status:      domain.StatusConfirmed,
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	stored, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
	assert.Equal(t, "Corte de Cabello", stored.ServiceName)
}

func TestRepository_Create_InvalidStatus(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.Create(context.Background(), &domain.Booking{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	_, err := repo.Seed(ctx, seedBookings())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, 1, domain.StatusCancelled))

	tests := []struct {
		name    string
		filter  domain.BookingFilter
		wantIDs []int64
	}{
		{
			name:    "active only by default",
			filter:  domain.BookingFilter{},
			wantIDs: []int64{2, 3},
		},
		{
			name:    "include inactive",
			filter:  domain.BookingFilter{IncludeInactive: true},
			wantIDs: []int64{1, 2, 3},
		},
		{
			name:    "worker",
			filter:  domain.BookingFilter{WorkerName: ptr.Ptr("Ana García"), IncludeInactive: true},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "client email",
			filter:  domain.BookingFilter{ClientEmail: ptr.Ptr("camila@email.com")},
			wantIDs: []int64{2},
		},
		{
			name:    "single date",
			filter:  domain.BookingFilter{StartDate: ptr.Ptr(date("2025-10-10")), EndDate: ptr.Ptr(date("2025-10-10"))},
			wantIDs: []int64{3},
		},
		{
			name:    "status",
			filter:  domain.BookingFilter{Status: ptr.Ptr(domain.StatusCancelled)},
			wantIDs: []int64{1},
		},
		{
			name:    "service",
			filter:  domain.BookingFilter{ServiceName: ptr.Ptr("Coloración")},
			wantIDs: []int64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]int64, 0, len(bookings))
			for _, b := range bookings {
				ids = append(ids, b.ID)
				assert.True(t, tt.filter.Matches(b))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	_, err := repo.Seed(ctx, seedBookings())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, 3, domain.StatusConfirmed))

	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	err = repo.UpdateStatus(ctx, 99, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	err = repo.UpdateStatus(ctx, 3, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepository_CreateRollback(t *testing.T) {
	ctx := context.Background()
	repo, db := newTestRepository(t)
	tm := txmanager.NewTransactionManager(db, sql.LevelDefault)

	errAbort := errors.New("abort")
	err := tm.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, &domain.Booking{
			ClientName: "Cliente Ejemplo",
			WorkerName: "Ana García",
			Date:       date("2025-10-15"),
			Time:       "10:00",
			Status:     domain.StatusConfirmed,
		}); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
