package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestStore_SaveGetDelete(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)

	session := &domain.Session{
		ID:   "abc",
		User: domain.User{Name: "Administrador", Email: "admin@demo.com", Role: domain.RoleAdmin},
	}
	store.Save(session)

	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.User.Role)
	assert.Equal(t, 1, store.Count())

	store.Delete("abc")
	_, err = store.Get("abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Повторное удаление не паникует
	store.Delete("abc")
}

func TestStore_Expiration(t *testing.T) {
	store := NewStore(10*time.Millisecond, time.Hour)
	store.Save(&domain.Session{ID: "short"})

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get("short")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
