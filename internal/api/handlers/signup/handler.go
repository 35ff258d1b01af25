package signup

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth"
	"github.com/m04kA/SMC-SalonBooking/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgPasswordMismatch   = "Las contraseñas no coinciden"
	msgInvalidInput       = "datos de registro inválidos"
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

// Handle POST /api/v1/auth/signup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/signup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			h.logger.Warn("POST /auth/signup - Password mismatch: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgPasswordMismatch)

		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/signup - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+validationDetails(err))

		case errors.Is(err, auth.ErrCancelled):
			h.logger.Warn("POST /auth/signup - Cancelled: email=%s", req.Email)
			handlers.RespondError(w, http.StatusRequestTimeout, msgCancelled)

		default:
			h.logger.Error("POST /auth/signup - Failed to sign up: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/signup - Session started: session=%s, role=%s", result.SessionID, result.User.Role)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// validationDetails текст ошибки валидатора без префикса sentinel
func validationDetails(err error) string {
	return strings.TrimPrefix(err.Error(), auth.ErrInvalidInput.Error()+": ")
}
