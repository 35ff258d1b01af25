package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	resp  *models.SetStatusResponse
	err   error
	gotID int64
}

func (f *fakeService) Cancel(_ context.Context, _ *domain.Session, id int64) (*models.SetStatusResponse, error) {
	f.gotID = id
	return f.resp, f.err
}

var clientSession = &domain.Session{ID: "s-client", User: domain.User{Name: "Laura Martínez", Email: "laura@email.com", Role: domain.RoleClient}}

func serve(h *Handler, session *domain.Session, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), session))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		session    *domain.Session
		path       string
		resp       *models.SetStatusResponse
		err        error
		wantStatus int
	}{
		{
			name:       "cancelled",
			session:    clientSession,
			path:       "/api/v1/bookings/1/cancel",
			resp:       &models.SetStatusResponse{Result: models.StatusUpdated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown id is not found",
			session:    clientSession,
			path:       "/api/v1/bookings/404/cancel",
			resp:       &models.SetStatusResponse{Result: models.StatusNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "foreign booking",
			session:    clientSession,
			path:       "/api/v1/bookings/2/cancel",
			err:        fmt.Errorf("%w: booking id=2", bookings.ErrAccessDenied),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "already cancelled",
			session:    clientSession,
			path:       "/api/v1/bookings/1/cancel",
			err:        &bookings.TransitionError{From: domain.StatusCancelled, To: domain.StatusCancelled},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "bad id",
			session:    clientSession,
			path:       "/api/v1/bookings/uno/cancel",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no session",
			path:       "/api/v1/bookings/1/cancel",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "repository failure",
			session:    clientSession,
			path:       "/api/v1/bookings/1/cancel",
			err:        fmt.Errorf("%w: db closed", bookings.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{resp: tt.resp, err: tt.err}
			rec := serve(NewHandler(svc, logger.Nop()), tt.session, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_PassesID(t *testing.T) {
	svc := &fakeService{resp: &models.SetStatusResponse{Result: models.StatusUpdated}}

	rec := serve(NewHandler(svc, logger.Nop()), clientSession, "/api/v1/bookings/12/cancel")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.gotID)
	assert.Contains(t, rec.Body.String(), `"result":"updated"`)
}
