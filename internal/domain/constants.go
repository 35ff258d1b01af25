package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Default salon configuration values
const (
	DefaultOpenTime            types.TimeString = "08:00"
	DefaultCloseTime           types.TimeString = "20:00"
	DefaultSlotDurationMinutes                  = 30
	DefaultFrequentClientsTop                   = 5
	DefaultWeekAgendaDays                       = 7
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNameLength             = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictMode правило определения занятости слота
type ConflictMode string

const (
	// ConflictExact слот занят только бронированием с тем же (мастер, дата, время)
	ConflictExact ConflictMode = "exact"
	// ConflictOverlap слот занят любым бронированием мастера, пересекающимся по длительности
	ConflictOverlap ConflictMode = "overlap"
)

// Validate проверяет, что режим известен
func (m ConflictMode) Validate() error {
	switch m {
	case ConflictExact, ConflictOverlap:
		return nil
	default:
		return ErrInvalidConflictMode
	}
}
