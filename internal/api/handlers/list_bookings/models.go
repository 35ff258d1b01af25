package list_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтры из query параметров; пустые значения игнорируются
func ToServiceRequest(query url.Values) *models.ListBookingsRequest {
	return &models.ListBookingsRequest{
		ClientEmail: optional(query.Get("clientEmail")),
		WorkerName:  optional(query.Get("worker")),
		Date:        optional(query.Get("date")),
		Status:      optional(query.Get("status")),
		ActiveOnly:  query.Get("active") == "true",
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
