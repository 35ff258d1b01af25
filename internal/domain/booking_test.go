package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestBookingStatus_AllowedTransitions(t *testing.T) {
	assert.Equal(t, []BookingStatus{StatusConfirmed, StatusCancelled}, StatusPending.AllowedTransitions())
	assert.Equal(t, []BookingStatus{StatusCompleted, StatusCancelled}, StatusConfirmed.AllowedTransitions())
	assert.Empty(t, StatusCompleted.AllowedTransitions())
	assert.Empty(t, StatusCancelled.AllowedTransitions())

	// копия не меняет таблицу переходов
	allowed := StatusPending.AllowedTransitions()
	allowed[0] = StatusCompleted
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
}

func TestBookingStatus_Validate(t *testing.T) {
	for _, s := range AllStatuses {
		assert.NoError(t, s.Validate(), string(s))
	}
	assert.ErrorIs(t, BookingStatus("perdida").Validate(), ErrInvalidStatus)
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("cancelada")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)

	_, err = ParseBookingStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingFilter_Matches(t *testing.T) {
	day := time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)
	b := &Booking{
		ClientEmail: "laura@email.com",
		WorkerName:  "Ana García",
		ServiceName: "Corte de Cabello",
		Date:        day,
		Time:        "10:00",
		Status:      StatusConfirmed,
	}
	cancelled := *b
	cancelled.Status = StatusCancelled

	assert.True(t, BookingFilter{}.Matches(b))
	assert.False(t, BookingFilter{}.Matches(&cancelled))
	assert.True(t, BookingFilter{IncludeInactive: true}.Matches(&cancelled))
	assert.True(t, BookingFilter{Status: ptr.Ptr(StatusCancelled)}.Matches(&cancelled))

	assert.True(t, BookingFilter{WorkerName: ptr.Ptr("Ana García")}.Matches(b))
	assert.False(t, BookingFilter{WorkerName: ptr.Ptr("María López")}.Matches(b))
	assert.False(t, BookingFilter{ClientEmail: ptr.Ptr("other@email.com")}.Matches(b))

	next := day.AddDate(0, 0, 1)
	assert.True(t, BookingFilter{StartDate: &day, EndDate: &day}.Matches(b))
	assert.False(t, BookingFilter{StartDate: &next}.Matches(b))
}

func TestBooking_StartsAt(t *testing.T) {
	b := &Booking{Date: time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC), Time: "14:30"}
	at, err := b.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 9, 14, 30, 0, 0, time.UTC), at)
}
