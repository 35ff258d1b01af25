package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StatusResult итог изменения статуса
type StatusResult string

const (
	// StatusUpdated статус изменен
	StatusUpdated StatusResult = "updated"
	// StatusNotFound бронирования с таким ID нет, реестр не изменился
	StatusNotFound StatusResult = "not_found"
)

// Request модели

// ListBookingsRequest фильтры списка бронирований. Все поля опциональны.
type ListBookingsRequest struct {
	ClientEmail *string
	WorkerName  *string
	Date        *string // YYYY-MM-DD
	Status      *string
	ActiveOnly  bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		ClientEmail:     r.ClientEmail,
		WorkerName:      r.WorkerName,
		IncludeInactive: !r.ActiveOnly,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, fmt.Errorf("date: %v", err)
		}
		filter.StartDate = &date
		filter.EndDate = &date
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на изменение статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	ServiceName     string    `json:"service"`
	WorkerName      string    `json:"worker"`
	Date            string    `json:"date"` // "2025-10-09"
	Time            string    `json:"time"` // "10:00"
	Status          string    `json:"status"`
	DurationMinutes int       `json:"duration"`
	Price           int64     `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// SetStatusResponse результат изменения статуса
type SetStatusResponse struct {
	Result  StatusResult     `json:"result"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ServiceName:     b.ServiceName,
		WorkerName:      b.WorkerName,
		Date:            b.Date.Format(domain.DateFormat),
		Time:            b.Time.String(),
		Status:          string(b.Status),
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
