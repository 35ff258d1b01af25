package list_workers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidSpecialty = "especialidad inválida: Cabello, Uñas o Facial"
	msgInvalidServiceID = "ID de servicio inválido"
	msgServiceNotFound  = "servicio no encontrado"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers
// Query params: specialty (optional), serviceId (optional, мастера для услуги)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		result *models.WorkerListResponse
		err    error
	)

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			h.logger.Warn("GET /workers - Invalid service ID: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		result, err = h.service.WorkersForService(r.Context(), serviceID)
	} else {
		var specialty *string
		if s := query.Get("specialty"); s != "" {
			specialty = &s
		}
		result, err = h.service.ListWorkers(r.Context(), specialty)
	}

	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("GET /workers - Invalid specialty: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSpecialty)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /workers - Service not found: %s", query.Get("serviceId"))
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /workers - Failed to list workers: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers - Workers retrieved: count=%d", len(result.Workers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
