package models

import (
	bookingModels "github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// ServiceStat количество бронирований и выручка по услуге.
// Count учитывает все бронирования, Revenue - только завершенные.
type ServiceStat struct {
	ServiceID    int64  `json:"serviceId"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	BookingCount int    `json:"bookingCount"`
	Revenue      int64  `json:"revenue"`
}

// WorkerStat количество бронирований и выручка по мастеру
type WorkerStat struct {
	WorkerID     int64  `json:"workerId"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	BookingCount int    `json:"bookingCount"`
	Revenue      int64  `json:"revenue"`
}

// ClientStat частота визитов клиента
type ClientStat struct {
	ClientName   string `json:"clientName"`
	BookingCount int    `json:"bookingCount"`
}

// ServiceCount количество бронирований услуги у мастера
type ServiceCount struct {
	ServiceName string `json:"service"`
	Count       int    `json:"count"`
}

// DayAgenda бронирования мастера на один день
type DayAgenda struct {
	Date     string                          `json:"date"`
	Bookings []bookingModels.BookingResponse `json:"bookings"`
}

// SummaryResponse сводка для администратора
type SummaryResponse struct {
	TotalRevenue   int64 `json:"totalRevenue"`
	MonthBookings  int   `json:"monthBookings"`
	PendingCount   int   `json:"pendingCount"`
	CompletedCount int   `json:"completedCount"`
	TotalBookings  int   `json:"totalBookings"`
}

// ServiceStatsResponse статистика по услугам
type ServiceStatsResponse struct {
	Services []ServiceStat `json:"services"`
}

// WorkerStatsResponse статистика по мастерам
type WorkerStatsResponse struct {
	Workers []WorkerStat `json:"workers"`
}

// FrequentClientsResponse самые частые клиенты
type FrequentClientsResponse struct {
	Clients []ClientStat `json:"clients"`
}

// ClientDashboard представление клиента
type ClientDashboard struct {
	Upcoming   []bookingModels.BookingResponse `json:"upcoming"`
	Past       []bookingModels.BookingResponse `json:"past"`
	Total      int                             `json:"totalBookings"`
	TotalSpent int64                           `json:"totalSpent"`
}

// WorkerDashboard представление мастера
type WorkerDashboard struct {
	Today            []bookingModels.BookingResponse `json:"today"`
	SelectedDate     string                          `json:"selectedDate"`
	SelectedDay      []bookingModels.BookingResponse `json:"selectedDay"`
	Upcoming         []bookingModels.BookingResponse `json:"upcoming"`
	Week             []DayAgenda                     `json:"week"`
	Earnings         int64                           `json:"earnings"`
	CompletedCount   int                             `json:"completedCount"`
	CancelledCount   int                             `json:"cancelledCount"`
	AverageTicket    int64                           `json:"averageTicket"`
	ServiceBreakdown []ServiceCount                  `json:"serviceBreakdown"`
}

// AdminDashboard представление администратора
type AdminDashboard struct {
	Summary         SummaryResponse                 `json:"summary"`
	Pending         []bookingModels.BookingResponse `json:"pending"`
	Recent          []bookingModels.BookingResponse `json:"recent"`
	ServiceStats    []ServiceStat                   `json:"serviceStats"`
	WorkerStats     []WorkerStat                    `json:"workerStats"`
	FrequentClients []ClientStat                    `json:"frequentClients"`
}

// DashboardResponse представление для роли сессии; заполнено ровно одно из полей
type DashboardResponse struct {
	Role   string           `json:"role"`
	Client *ClientDashboard `json:"client,omitempty"`
	Worker *WorkerDashboard `json:"worker,omitempty"`
	Admin  *AdminDashboard  `json:"admin,omitempty"`
}
