package update_booking_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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
	resp   *models.SetStatusResponse
	err    error
	gotID  int64
	gotReq *models.UpdateStatusRequest
}

func (f *fakeService) SetStatus(_ context.Context, _ *domain.Session, id int64, req *models.UpdateStatusRequest) (*models.SetStatusResponse, error) {
	f.gotID = id
	f.gotReq = req
	return f.resp, f.err
}

var adminSession = &domain.Session{ID: "s-admin", User: domain.User{Name: "Admin", Role: domain.RoleAdmin}}

func serve(h *Handler, session *domain.Session, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
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
		body       string
		resp       *models.SetStatusResponse
		err        error
		wantStatus int
	}{
		{
			name:       "updated",
			session:    adminSession,
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"completada"}`,
			resp:       &models.SetStatusResponse{Result: models.StatusUpdated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown id is not found",
			session:    adminSession,
			path:       "/api/v1/bookings/999/status",
			body:       `{"status":"confirmada"}`,
			resp:       &models.SetStatusResponse{Result: models.StatusNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "illegal transition",
			session:    adminSession,
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"pendiente"}`,
			err:        fmt.Errorf("%w: completada -> pendiente", bookings.ErrInvalidTransition),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid status",
			session:    adminSession,
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"perdida"}`,
			err:        fmt.Errorf("%w: status", bookings.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "access denied",
			session:    &domain.Session{ID: "s-client", User: domain.User{Role: domain.RoleClient}},
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"completada"}`,
			err:        bookings.ErrAccessDenied,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "bad id",
			session:    adminSession,
			path:       "/api/v1/bookings/abc/status",
			body:       `{"status":"completada"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			session:    adminSession,
			path:       "/api/v1/bookings/3/status",
			body:       `{"estado":"completada"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no session",
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"completada"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "repository failure",
			session:    adminSession,
			path:       "/api/v1/bookings/3/status",
			body:       `{"status":"completada"}`,
			err:        fmt.Errorf("%w: db closed", bookings.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{resp: tt.resp, err: tt.err}
			rec := serve(NewHandler(svc, logger.Nop()), tt.session, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_TransitionMessage(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "lists allowed statuses",
			err:         &bookings.TransitionError{From: domain.StatusPending, To: domain.StatusCompleted, Allowed: []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCancelled}},
			wantMessage: "transición de estado no permitida; permitidos: confirmada, cancelada",
		},
		{
			name:        "terminal status",
			err:         &bookings.TransitionError{From: domain.StatusCompleted, To: domain.StatusPending},
			wantMessage: "transición de estado no permitida: la reserva ya está en un estado final",
		},
		{
			name:        "plain sentinel",
			err:         bookings.ErrInvalidTransition,
			wantMessage: "transición de estado no permitida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(NewHandler(svc, logger.Nop()), adminSession, "/api/v1/bookings/3/status", `{"status":"completada"}`)

			require.Equal(t, http.StatusConflict, rec.Code)
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestHandle_PassesIDAndStatus(t *testing.T) {
	svc := &fakeService{resp: &models.SetStatusResponse{Result: models.StatusUpdated}}

	rec := serve(NewHandler(svc, logger.Nop()), adminSession, "/api/v1/bookings/7/status", `{"status":"cancelada"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "cancelada", svc.gotReq.Status)
	assert.Contains(t, rec.Body.String(), `"result":"updated"`)
}
