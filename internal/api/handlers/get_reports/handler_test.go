package get_reports

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
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

// fakeService пускает только администратора, как настоящий сервис отчетов
type fakeService struct {
	err      error
	gotLimit int
	calls    int
}

func (f *fakeService) check(session *domain.Session) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if session.User.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: role=%s", reports.ErrAccessDenied, session.User.Role)
	}
	return nil
}

func (f *fakeService) Summary(_ context.Context, session *domain.Session) (*models.SummaryResponse, error) {
	if err := f.check(session); err != nil {
		return nil, err
	}
	return &models.SummaryResponse{TotalRevenue: 70000, PendingCount: 1}, nil
}

func (f *fakeService) ServiceStats(_ context.Context, session *domain.Session) (*models.ServiceStatsResponse, error) {
	if err := f.check(session); err != nil {
		return nil, err
	}
	return &models.ServiceStatsResponse{}, nil
}

func (f *fakeService) WorkerStats(_ context.Context, session *domain.Session) (*models.WorkerStatsResponse, error) {
	if err := f.check(session); err != nil {
		return nil, err
	}
	return &models.WorkerStatsResponse{}, nil
}

func (f *fakeService) FrequentClients(_ context.Context, session *domain.Session, limit int) (*models.FrequentClientsResponse, error) {
	f.gotLimit = limit
	if err := f.check(session); err != nil {
		return nil, err
	}
	return &models.FrequentClientsResponse{}, nil
}

var (
	adminSession  = &domain.Session{ID: "s-admin", User: domain.User{Name: "Admin", Role: domain.RoleAdmin}}
	clientSession = &domain.Session{ID: "s-client", User: domain.User{Name: "Laura Martínez", Role: domain.RoleClient}}
	workerSession = &domain.Session{ID: "s-worker", User: domain.User{Name: "Ana García", Role: domain.RoleWorker}}
)

func serve(h *Handler, session *domain.Session, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reports/summary", h.HandleSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports/services", h.HandleServices).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports/workers", h.HandleWorkers).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports/clients", h.HandleClients).Methods(http.MethodGet)

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
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "summary for admin",
			session:    adminSession,
			path:       "/api/v1/reports/summary",
			wantStatus: http.StatusOK,
			wantBody:   `"totalRevenue":70000`,
		},
		{
			name:       "summary for client",
			session:    clientSession,
			path:       "/api/v1/reports/summary",
			wantStatus: http.StatusForbidden,
			wantBody:   "acceso denegado",
		},
		{
			name:       "services for worker",
			session:    workerSession,
			path:       "/api/v1/reports/services",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "workers for admin",
			session:    adminSession,
			path:       "/api/v1/reports/workers",
			wantStatus: http.StatusOK,
		},
		{
			name:       "clients for client",
			session:    clientSession,
			path:       "/api/v1/reports/clients",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "non numeric limit",
			session:    adminSession,
			path:       "/api/v1/reports/clients?limit=cinco",
			wantStatus: http.StatusBadRequest,
			wantBody:   "límite inválido",
		},
		{
			name:       "negative limit",
			session:    adminSession,
			path:       "/api/v1/reports/clients?limit=-1",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no session",
			path:       "/api/v1/reports/summary",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "repository failure",
			session:    adminSession,
			path:       "/api/v1/reports/workers",
			err:        fmt.Errorf("%w: db closed", reports.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(NewHandler(svc, logger.Nop()), tt.session, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleClients_Limit(t *testing.T) {
	svc := &fakeService{}

	rec := serve(NewHandler(svc, logger.Nop()), adminSession, "/api/v1/reports/clients?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.gotLimit)

	rec = serve(NewHandler(svc, logger.Nop()), adminSession, "/api/v1/reports/clients")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.gotLimit)
}

func TestHandleClients_BadLimitSkipsService(t *testing.T) {
	svc := &fakeService{}

	rec := serve(NewHandler(svc, logger.Nop()), clientSession, "/api/v1/reports/clients?limit=x")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}
