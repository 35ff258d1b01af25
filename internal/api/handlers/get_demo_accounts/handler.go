package get_demo_accounts

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
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

// Handle GET /api/v1/demo-accounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.DemoAccounts(r.Context())
	h.logger.Info("GET /demo-accounts - count=%d", len(result.Accounts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
