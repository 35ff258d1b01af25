package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	WorkerID    int64   `json:"workerId"`
	Date        string  `json:"date"` // "2025-10-09"
	Time        string  `json:"time"` // "10:00"
	ClientName  *string `json:"clientName,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	Service     string `json:"service"`
	Worker      string `json:"worker"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Duration    int    `json:"duration"`
	Price       int64  `json:"price"`
	Message     string `json:"message"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

var (
	errParseDate = errors.New("date must be YYYY-MM-DD")
	errParseTime = errors.New("time must be HH:MM")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}

	return &createBooking.Request{
		ServiceID:   r.ServiceID,
		WorkerID:    r.WorkerID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		ClientName:  resp.ClientName,
		ClientEmail: resp.ClientEmail,
		Service:     resp.ServiceName,
		Worker:      resp.WorkerName,
		Date:        resp.BookingDate.Format(domain.DateFormat),
		Time:        resp.StartTime.String(),
		Status:      resp.Status,
		Duration:    resp.DurationMinutes,
		Price:       resp.Price,
		Message:     resp.Message,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
