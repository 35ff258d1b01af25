package reports

import (
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

// Агрегаты - чистые функции над срезом реестра, пересчитываются на каждый запрос.

// Revenue сумма цен завершенных бронирований
func Revenue(bookings []*domain.Booking) int64 {
	var total int64
	for _, b := range bookings {
		if b.IsCompleted() {
			total += b.Price
		}
	}
	return total
}

// InMonth бронирования, чья дата в том же месяце и году, что и now
func InMonth(bookings []*domain.Booking, now time.Time) []*domain.Booking {
	year, month, _ := now.Date()
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		y, m, _ := b.Date.Date()
		if y == year && m == month {
			out = append(out, b)
		}
	}
	return out
}

// WithStatus бронирования с указанным статусом
func WithStatus(bookings []*domain.Booking, status domain.BookingStatus) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// ServiceStats статистика по каждой услуге каталога, по убыванию числа бронирований.
// Услуги без бронирований тоже попадают в результат.
func ServiceStats(services []domain.Service, bookings []*domain.Booking) []models.ServiceStat {
	stats := make([]models.ServiceStat, 0, len(services))
	for _, s := range services {
		stat := models.ServiceStat{
			ServiceID: s.ID,
			Name:      s.Name,
			Category:  string(s.Category),
		}
		for _, b := range bookings {
			if b.ServiceName != s.Name {
				continue
			}
			stat.BookingCount++
			if b.IsCompleted() {
				stat.Revenue += b.Price
			}
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].BookingCount > stats[j].BookingCount
	})
	return stats
}

// WorkerStats статистика по каждому мастеру, по убыванию выручки
func WorkerStats(workers []domain.Worker, bookings []*domain.Booking) []models.WorkerStat {
	stats := make([]models.WorkerStat, 0, len(workers))
	for _, w := range workers {
		stat := models.WorkerStat{
			WorkerID:  w.ID,
			Name:      w.Name,
			Specialty: string(w.Specialty),
		}
		for _, b := range bookings {
			if b.WorkerName != w.Name {
				continue
			}
			stat.BookingCount++
			if b.IsCompleted() {
				stat.Revenue += b.Price
			}
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Revenue > stats[j].Revenue
	})
	return stats
}

// FrequentClients top-N клиентов по числу бронирований.
// При равенстве порядок - по первому появлению в реестре. limit <= 0 - без ограничения.
func FrequentClients(bookings []*domain.Booking, limit int) []models.ClientStat {
	index := make(map[string]int)
	stats := make([]models.ClientStat, 0)
	for _, b := range bookings {
		i, ok := index[b.ClientName]
		if !ok {
			i = len(stats)
			index[b.ClientName] = i
			stats = append(stats, models.ClientStat{ClientName: b.ClientName})
		}
		stats[i].BookingCount++
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].BookingCount > stats[j].BookingCount
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// ServiceBreakdown количество бронирований по названию услуги, по убыванию
func ServiceBreakdown(bookings []*domain.Booking) []models.ServiceCount {
	index := make(map[string]int)
	counts := make([]models.ServiceCount, 0)
	for _, b := range bookings {
		i, ok := index[b.ServiceName]
		if !ok {
			i = len(counts)
			index[b.ServiceName] = i
			counts = append(counts, models.ServiceCount{ServiceName: b.ServiceName})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Upcoming активные бронирования, начинающиеся после now
func Upcoming(bookings []*domain.Booking, now time.Time) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.IsCancelled() {
			continue
		}
		start, err := b.StartsAt(now.Location())
		if err != nil {
			continue
		}
		if start.After(now) {
			out = append(out, b)
		}
	}
	return out
}

// Past бронирования, начавшиеся до now, либо уже завершенные
func Past(bookings []*domain.Booking, now time.Time) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.IsCompleted() {
			out = append(out, b)
			continue
		}
		start, err := b.StartsAt(now.Location())
		if err != nil {
			continue
		}
		if start.Before(now) {
			out = append(out, b)
		}
	}
	return out
}

// AgendaFor активные бронирования на дату, по времени начала
func AgendaFor(bookings []*domain.Booking, day time.Time) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.IsActive() && b.OnDate(day) {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.IsBefore(out[j].Time)
	})
	return out
}

// TotalPrice сумма цен без учета статуса
func TotalPrice(bookings []*domain.Booking) int64 {
	var total int64
	for _, b := range bookings {
		total += b.Price
	}
	return total
}

// AverageTicket средний чек завершенных бронирований, округленный до целого
func AverageTicket(bookings []*domain.Booking) int64 {
	completed := len(WithStatus(bookings, domain.StatusCompleted))
	if completed < 1 {
		completed = 1
	}
	return int64(math.Round(float64(Revenue(bookings)) / float64(completed)))
}

// MostRecent бронирования по убыванию даты, не больше limit
func MostRecent(bookings []*domain.Booking, limit int) []*domain.Booking {
	out := make([]*domain.Booking, len(bookings))
	copy(out, bookings)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
