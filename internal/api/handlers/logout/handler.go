package logout

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
)

const (
	msgUnauthorized = "sesión no válida o expirada"
	msgLoggedOut    = "Sesión cerrada"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /auth/logout - Missing session")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	h.service.Logout(r.Context(), session)

	h.logger.Info("POST /auth/logout - Session closed: session=%s", session.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgLoggedOut})
}
