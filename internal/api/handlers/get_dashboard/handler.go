package get_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
)

const (
	msgUnauthorized = "sesión no válida o expirada"
	msgForbidden    = "acceso denegado"
	msgInvalidDate  = "fecha inválida, formato esperado AAAA-MM-DD"
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

// Handle GET /api/v1/dashboard
// Query params: date (optional, день агенды мастера)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /dashboard - Missing session")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var selectedDate *string
	if d := r.URL.Query().Get("date"); d != "" {
		selectedDate = &d
	}

	result, err := h.service.Dashboard(r.Context(), session, selectedDate)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /dashboard - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /dashboard - Access denied: role=%s", session.User.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /dashboard - Failed to build dashboard: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
