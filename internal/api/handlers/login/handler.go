package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidCredentials = "correo, contraseña y rol (client, worker, admin) son obligatorios"
	msgCancelled          = "solicitud cancelada"
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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/login - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrCancelled):
			h.logger.Warn("POST /auth/login - Cancelled: email=%s", req.Email)
			handlers.RespondError(w, http.StatusRequestTimeout, msgCancelled)

		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Session started: session=%s, role=%s", result.SessionID, result.User.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
