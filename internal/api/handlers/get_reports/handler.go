package get_reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
)

const (
	msgUnauthorized = "sesión no válida o expirada"
	msgForbidden    = "acceso denegado"
	msgInvalidLimit = "límite inválido"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSummary GET /api/v1/reports/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "/reports/summary", func(session *domain.Session) (interface{}, error) {
		return h.service.Summary(r.Context(), session)
	})
}

// HandleServices GET /api/v1/reports/services
func (h *Handler) HandleServices(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "/reports/services", func(session *domain.Session) (interface{}, error) {
		return h.service.ServiceStats(r.Context(), session)
	})
}

// HandleWorkers GET /api/v1/reports/workers
func (h *Handler) HandleWorkers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "/reports/workers", func(session *domain.Session) (interface{}, error) {
		return h.service.WorkerStats(r.Context(), session)
	})
}

// HandleClients GET /api/v1/reports/clients
// Query params: limit (optional, по умолчанию из конфигурации)
func (h *Handler) HandleClients(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /reports/clients - Invalid limit: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	h.serve(w, r, "/reports/clients", func(session *domain.Session) (interface{}, error) {
		return h.service.FrequentClients(r.Context(), session, limit)
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, route string, build func(*domain.Session) (interface{}, error)) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET %s - Missing session", route)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := build(session)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET %s - Access denied: role=%s", route, session.User.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET %s - Failed to build report: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
