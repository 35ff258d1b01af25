package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeService) GetByID(_ context.Context, _ *domain.Session, _ int64) (*models.BookingResponse, error) {
	return f.resp, f.err
}

var workerSession = &domain.Session{ID: "s-worker", User: domain.User{Name: "Ana García", Role: domain.RoleWorker}}

func serve(h *Handler, session *domain.Session, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
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
		resp       *models.BookingResponse
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			session:    workerSession,
			path:       "/api/v1/bookings/1",
			resp:       &models.BookingResponse{ID: 1, WorkerName: "Ana García", Status: "confirmada"},
			wantStatus: http.StatusOK,
			wantBody:   `"worker":"Ana García"`,
		},
		{
			name:       "not found",
			session:    workerSession,
			path:       "/api/v1/bookings/999",
			err:        fmt.Errorf("%w: id=999", bookings.ErrBookingNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "reserva no encontrada",
		},
		{
			name:       "other worker booking",
			session:    workerSession,
			path:       "/api/v1/bookings/2",
			err:        fmt.Errorf("%w: booking id=2", bookings.ErrAccessDenied),
			wantStatus: http.StatusForbidden,
			wantBody:   "acceso denegado",
		},
		{
			name:       "bad id",
			session:    workerSession,
			path:       "/api/v1/bookings/x",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no session",
			path:       "/api/v1/bookings/1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "repository failure",
			session:    workerSession,
			path:       "/api/v1/bookings/1",
			err:        fmt.Errorf("%w: db closed", bookings.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{resp: tt.resp, err: tt.err}
			rec := serve(NewHandler(svc, logger.Nop()), tt.session, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
