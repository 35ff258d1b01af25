package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func booking(id int64, client, service, worker, date string, t types.TimeString, status domain.BookingStatus, price int64) *domain.Booking {
	d, err := domain.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &domain.Booking{
		ID:              id,
		ClientName:      client,
		ClientEmail:     client + "@email.com",
		ServiceName:     service,
		WorkerName:      worker,
		Date:            d,
		Time:            t,
		Status:          status,
		DurationMinutes: 30,
		Price:           price,
	}
}

func catalogServices() []domain.Service {
	return []domain.Service{
		{ID: 1, Name: "Corte de Cabello", DurationMinutes: 30, Price: 25000, Category: domain.CategoryHair},
		{ID: 4, Name: "Manicure Clásica", DurationMinutes: 45, Price: 20000, Category: domain.CategoryNails},
		{ID: 7, Name: "Facial Básico", DurationMinutes: 60, Price: 35000, Category: domain.CategoryFacial},
	}
}

func catalogWorkers() []domain.Worker {
	return []domain.Worker{
		{ID: 1, Name: "Ana García", Specialty: domain.CategoryHair},
		{ID: 2, Name: "María López", Specialty: domain.CategoryNails},
		{ID: 3, Name: "Carmen Ruiz", Specialty: domain.CategoryFacial},
	}
}

func TestRevenue_OnlyCompleted(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusCompleted, 25000),
		booking(2, "Camila", "Manicure Clásica", "María López", "2025-10-09", "14:00", domain.StatusConfirmed, 20000),
		booking(3, "Valentina", "Coloración", "Ana García", "2025-10-10", "11:00", domain.StatusCancelled, 45000),
	}

	assert.Equal(t, int64(25000), Revenue(bookings))
	assert.Equal(t, int64(90000), TotalPrice(bookings))
	assert.Equal(t, int64(0), Revenue(nil))
}

func TestInMonth(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-01", "10:00", domain.StatusConfirmed, 25000),
		booking(2, "Laura", "Corte de Cabello", "Ana García", "2025-10-31", "10:00", domain.StatusCancelled, 25000),
		booking(3, "Laura", "Corte de Cabello", "Ana García", "2025-11-01", "10:00", domain.StatusConfirmed, 25000),
		booking(4, "Laura", "Corte de Cabello", "Ana García", "2024-10-15", "10:00", domain.StatusConfirmed, 25000),
	}
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	got := InMonth(bookings, now)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestServiceStats(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Camila", "Manicure Clásica", "María López", "2025-10-09", "14:00", domain.StatusCompleted, 20000),
		booking(2, "Sofía", "Manicure Clásica", "María López", "2025-10-10", "14:00", domain.StatusCompleted, 20000),
		booking(3, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusPending, 25000),
	}

	stats := ServiceStats(catalogServices(), bookings)
	require.Len(t, stats, 3)

	assert.Equal(t, "Manicure Clásica", stats[0].Name)
	assert.Equal(t, 2, stats[0].BookingCount)
	assert.Equal(t, int64(40000), stats[0].Revenue)

	assert.Equal(t, "Corte de Cabello", stats[1].Name)
	assert.Equal(t, 1, stats[1].BookingCount)
	assert.Equal(t, int64(0), stats[1].Revenue)

	assert.Equal(t, "Facial Básico", stats[2].Name)
	assert.Equal(t, 0, stats[2].BookingCount)
}

func TestWorkerStats_SortedByRevenue(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusCompleted, 25000),
		booking(2, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "11:00", domain.StatusConfirmed, 25000),
		booking(3, "Carla", "Facial Básico", "Carmen Ruiz", "2025-10-09", "10:00", domain.StatusCompleted, 35000),
	}

	stats := WorkerStats(catalogWorkers(), bookings)
	require.Len(t, stats, 3)

	assert.Equal(t, "Carmen Ruiz", stats[0].Name)
	assert.Equal(t, int64(35000), stats[0].Revenue)
	assert.Equal(t, "Ana García", stats[1].Name)
	assert.Equal(t, 2, stats[1].BookingCount)
	assert.Equal(t, int64(25000), stats[1].Revenue)
	assert.Equal(t, "María López", stats[2].Name)
	assert.Equal(t, 0, stats[2].BookingCount)
}

func TestFrequentClients(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusConfirmed, 25000),
		booking(2, "Camila", "Manicure Clásica", "María López", "2025-10-09", "14:00", domain.StatusConfirmed, 20000),
		booking(3, "Valentina", "Coloración", "Ana García", "2025-10-10", "11:00", domain.StatusCancelled, 45000),
		booking(4, "Camila", "Nail Art", "María López", "2025-10-11", "14:00", domain.StatusPending, 30000),
		booking(5, "Valentina", "Coloración", "Ana García", "2025-10-12", "11:00", domain.StatusPending, 45000),
	}

	t.Run("ties keep first appearance order", func(t *testing.T) {
		got := FrequentClients(bookings, 0)
		require.Len(t, got, 3)
		assert.Equal(t, "Camila", got[0].ClientName)
		assert.Equal(t, 2, got[0].BookingCount)
		assert.Equal(t, "Valentina", got[1].ClientName)
		assert.Equal(t, "Laura", got[2].ClientName)
	})

	t.Run("limit", func(t *testing.T) {
		got := FrequentClients(bookings, 1)
		require.Len(t, got, 1)
		assert.Equal(t, "Camila", got[0].ClientName)
	})
}

func TestUpcomingAndPast(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusConfirmed, 25000),
		booking(2, "Laura", "Corte de Cabello", "Ana García", "2025-10-20", "10:00", domain.StatusConfirmed, 25000),
		booking(3, "Laura", "Corte de Cabello", "Ana García", "2025-10-21", "10:00", domain.StatusCancelled, 25000),
		booking(4, "Laura", "Corte de Cabello", "Ana García", "2025-10-22", "10:00", domain.StatusCompleted, 25000),
	}
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	upcoming := Upcoming(bookings, now)
	require.Len(t, upcoming, 2)
	assert.Equal(t, int64(2), upcoming[0].ID)
	assert.Equal(t, int64(4), upcoming[1].ID)

	past := Past(bookings, now)
	require.Len(t, past, 2)
	assert.Equal(t, int64(1), past[0].ID)
	assert.Equal(t, int64(4), past[1].ID)
}

func TestAgendaFor_SortedByTime(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "15:00", domain.StatusConfirmed, 25000),
		booking(2, "Camila", "Corte de Cabello", "Ana García", "2025-10-09", "09:30", domain.StatusPending, 25000),
		booking(3, "Sofía", "Corte de Cabello", "Ana García", "2025-10-09", "11:00", domain.StatusCancelled, 25000),
		booking(4, "Lucía", "Corte de Cabello", "Ana García", "2025-10-10", "08:00", domain.StatusConfirmed, 25000),
	}
	day, _ := domain.ParseDate("2025-10-09")

	got := AgendaFor(bookings, day)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestAverageTicket(t *testing.T) {
	assert.Equal(t, int64(0), AverageTicket(nil))

	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusCompleted, 25000),
		booking(2, "Laura", "Coloración", "Ana García", "2025-10-10", "10:00", domain.StatusCompleted, 45001),
		booking(3, "Laura", "Coloración", "Ana García", "2025-10-11", "10:00", domain.StatusConfirmed, 45000),
	}
	assert.Equal(t, int64(35001), AverageTicket(bookings))
}

func TestServiceBreakdownAndMostRecent(t *testing.T) {
	bookings := []*domain.Booking{
		booking(1, "Laura", "Corte de Cabello", "Ana García", "2025-10-09", "10:00", domain.StatusConfirmed, 25000),
		booking(2, "Laura", "Coloración", "Ana García", "2025-10-12", "10:00", domain.StatusConfirmed, 45000),
		booking(3, "Laura", "Coloración", "Ana García", "2025-10-11", "10:00", domain.StatusConfirmed, 45000),
	}

	breakdown := ServiceBreakdown(bookings)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Coloración", breakdown[0].ServiceName)
	assert.Equal(t, 2, breakdown[0].Count)

	recent := MostRecent(bookings, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(2), recent[0].ID)
	assert.Equal(t, int64(3), recent[1].ID)
	assert.Equal(t, int64(1), bookings[0].ID, "input must not be reordered")
}
