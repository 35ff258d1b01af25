package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// AddServiceRequest запрос администратора на добавление услуги
type AddServiceRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	DurationMinutes int    `json:"duration" validate:"required,min=5,max=480"`
	Price           int64  `json:"price" validate:"gte=0"`
	Category        string `json:"category" validate:"required,oneof=Cabello Uñas Facial"`
}

// AddWorkerRequest запрос администратора на добавление мастера
type AddWorkerRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Specialty string `json:"specialty" validate:"required,oneof=Cabello Uñas Facial"`
	Schedule  string `json:"schedule" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Price           int64  `json:"price"`
	Category        string `json:"category"`
}

// WorkerResponse мастер каталога
type WorkerResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Initials  string `json:"initials"`
	Specialty string `json:"specialty"`
	Schedule  string `json:"schedule"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// WorkerListResponse список мастеров
type WorkerListResponse struct {
	Workers []WorkerResponse `json:"workers"`
}

// AddResponse результат добавления в каталог.
// Persisted всегда false: добавление только имитируется.
type AddResponse struct {
	Message   string `json:"message"`
	Persisted bool   `json:"persisted"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        string(s.Category),
	}
}

// FromDomainWorker конвертирует domain модель в DTO
func FromDomainWorker(w domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Initials:  w.Initials(),
		Specialty: string(w.Specialty),
		Schedule:  w.Schedule,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, FromDomainService(s))
	}
	return resp
}

// FromDomainWorkerList конвертирует список мастеров
func FromDomainWorkerList(workers []domain.Worker) *WorkerListResponse {
	resp := &WorkerListResponse{Workers: make([]WorkerResponse, 0, len(workers))}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, FromDomainWorker(w))
	}
	return resp
}
