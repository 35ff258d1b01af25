package list_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const (
	msgUnauthorized = "sesión no válida o expirada"
	msgCleared      = "Notificaciones eliminadas"
)

type Handler struct {
	source NotificationSource
	logger Logger
}

func NewHandler(source NotificationSource, logger Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// Handle GET /api/v1/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing session")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	items := h.source.List(session.ID)
	handlers.RespondJSON(w, http.StatusOK, fromDomain(items))
}

// HandleClear DELETE /api/v1/notifications
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("DELETE /notifications - Missing session")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	h.source.Clear(session.ID)
	h.logger.Info("DELETE /notifications - Cleared: session=%s", session.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgCleared})
}
