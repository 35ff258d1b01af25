package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SALON"

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Database DatabaseConfig `toml:"database"`
	Salon    SalonConfig    `toml:"salon"`
	Auth     AuthConfig     `toml:"auth"`
	Catalog  CatalogConfig  `toml:"catalog" ignored:"true"`
	Seed     SeedConfig     `toml:"seed" ignored:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // seconds
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // seconds
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // seconds
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// DatabaseConfig хранилище реестра бронирований.
// sqlite по умолчанию работает в памяти процесса: данные живут до перезапуска.
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // sqlite | postgres
	Path            string `toml:"path"`   // sqlite: ":memory:"
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // seconds
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	default:
		return d.Path
	}
}

type SalonConfig struct {
	Name                string `toml:"name"`
	OpenTime            string `toml:"open_time" split_words:"true"`
	CloseTime           string `toml:"close_time" split_words:"true"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes" split_words:"true"`
	ConflictMode        string `toml:"conflict_mode" split_words:"true"`
	Timezone            string `toml:"timezone"`
	FrequentClientsTop  int    `toml:"frequent_clients_top" split_words:"true"`
}

type AuthConfig struct {
	LoginDelayMs       int `toml:"login_delay_ms" split_words:"true"`
	SessionTTLMinutes  int `toml:"session_ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
	LoginRatePerMinute int `toml:"login_rate_per_minute" split_words:"true"`
}

type CatalogConfig struct {
	Services []ServiceSeed `toml:"services"`
	Workers  []WorkerSeed  `toml:"workers"`
}

type ServiceSeed struct {
	ID              int64  `toml:"id"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
	Price           int64  `toml:"price"`
	Category        string `toml:"category"`
}

type WorkerSeed struct {
	ID        int64  `toml:"id"`
	Name      string `toml:"name"`
	Specialty string `toml:"specialty"`
	Schedule  string `toml:"schedule"`
}

type SeedConfig struct {
	Bookings []BookingSeed `toml:"bookings"`
}

type BookingSeed struct {
	ID              int64  `toml:"id"`
	ClientName      string `toml:"client_name"`
	ClientEmail     string `toml:"client_email"`
	Service         string `toml:"service"`
	Worker          string `toml:"worker"`
	Date            string `toml:"date"`
	Time            string `toml:"time"`
	Status          string `toml:"status"`
	DurationMinutes int    `toml:"duration_minutes"`
	Price           int64  `toml:"price"`
}

// Load читает TOML файл, применяет переменные окружения SALON_*, значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon_booking"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = ":memory:"
	}
	if c.Salon.OpenTime == "" {
		c.Salon.OpenTime = domain.DefaultOpenTime.String()
	}
	if c.Salon.CloseTime == "" {
		c.Salon.CloseTime = domain.DefaultCloseTime.String()
	}
	if c.Salon.SlotDurationMinutes == 0 {
		c.Salon.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Salon.ConflictMode == "" {
		c.Salon.ConflictMode = string(domain.ConflictExact)
	}
	if c.Salon.Timezone == "" {
		c.Salon.Timezone = "UTC"
	}
	if c.Salon.FrequentClientsTop == 0 {
		c.Salon.FrequentClientsTop = domain.DefaultFrequentClientsTop
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = 240
	}
	if c.Auth.LoginRatePerMinute == 0 {
		c.Auth.LoginRatePerMinute = 30
	}
}

// Validate проверяет конфигурацию целиком, включая каталог и начальные бронирования
func (c *Config) Validate() error {
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if _, err := c.SlotGrid(); err != nil {
		return err
	}

	if err := domain.ConflictMode(c.Salon.ConflictMode).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Auth.LoginDelayMs < 0 {
		return fmt.Errorf("%w: login_delay_ms must be non-negative", ErrInvalidConfig)
	}

	if _, err := c.Services(); err != nil {
		return err
	}
	if _, err := c.Workers(); err != nil {
		return err
	}
	if _, err := c.SeedBookings(); err != nil {
		return err
	}
	return nil
}

// SlotGrid сетка слотов салона
func (c *Config) SlotGrid() (domain.SlotGrid, error) {
	open, err := types.NewTimeStringFromString(c.Salon.OpenTime)
	if err != nil {
		return domain.SlotGrid{}, fmt.Errorf("%w: open_time: %v", ErrInvalidConfig, err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Salon.CloseTime)
	if err != nil {
		return domain.SlotGrid{}, fmt.Errorf("%w: close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeTime) {
		return domain.SlotGrid{}, fmt.Errorf("%w: open_time must be before close_time", ErrInvalidConfig)
	}
	if c.Salon.SlotDurationMinutes <= 0 {
		return domain.SlotGrid{}, fmt.Errorf("%w: slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	return domain.SlotGrid{Open: open, Close: closeTime, StepMinutes: c.Salon.SlotDurationMinutes}, nil
}

// Location часовой пояс салона
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

// LoginDelay имитация сетевой задержки при входе
func (c *Config) LoginDelay() time.Duration {
	return time.Duration(c.Auth.LoginDelayMs) * time.Millisecond
}

// SessionTTL время жизни сессии
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTLMinutes) * time.Minute
}

// Services каталог услуг в доменных моделях
func (c *Config) Services() ([]domain.Service, error) {
	services := make([]domain.Service, 0, len(c.Catalog.Services))
	ids := make(map[int64]struct{})
	names := make(map[string]struct{})

	for _, seed := range c.Catalog.Services {
		s := domain.Service{
			ID:              seed.ID,
			Name:            seed.Name,
			DurationMinutes: seed.DurationMinutes,
			Price:           seed.Price,
			Category:        domain.Category(seed.Category),
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%w: service id=%d: %v", ErrInvalidConfig, seed.ID, err)
		}
		if _, dup := ids[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id=%d", ErrInvalidConfig, s.ID)
		}
		if _, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate service name %q", ErrInvalidConfig, s.Name)
		}
		ids[s.ID] = struct{}{}
		names[s.Name] = struct{}{}
		services = append(services, s)
	}
	return services, nil
}

// Workers мастера в доменных моделях
func (c *Config) Workers() ([]domain.Worker, error) {
	workers := make([]domain.Worker, 0, len(c.Catalog.Workers))
	ids := make(map[int64]struct{})
	names := make(map[string]struct{})

	for _, seed := range c.Catalog.Workers {
		w := domain.Worker{
			ID:        seed.ID,
			Name:      seed.Name,
			Specialty: domain.Category(seed.Specialty),
			Schedule:  seed.Schedule,
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%w: worker id=%d: %v", ErrInvalidConfig, seed.ID, err)
		}
		if _, dup := ids[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate worker id=%d", ErrInvalidConfig, w.ID)
		}
		if _, dup := names[w.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate worker name %q", ErrInvalidConfig, w.Name)
		}
		ids[w.ID] = struct{}{}
		names[w.Name] = struct{}{}
		workers = append(workers, w)
	}
	return workers, nil
}

// SeedBookings начальные бронирования реестра
func (c *Config) SeedBookings() ([]*domain.Booking, error) {
	services, err := c.Services()
	if err != nil {
		return nil, err
	}
	workers, err := c.Workers()
	if err != nil {
		return nil, err
	}
	servicesByName := make(map[string]*domain.Service, len(services))
	for i := range services {
		servicesByName[services[i].Name] = &services[i]
	}
	workersByName := make(map[string]*domain.Worker, len(workers))
	for i := range workers {
		workersByName[workers[i].Name] = &workers[i]
	}

	bookings := make([]*domain.Booking, 0, len(c.Seed.Bookings))
	ids := make(map[int64]struct{})
	// занятые активными бронированиями слоты (мастер, дата, время)
	taken := make(map[string]int64)

	for _, seed := range c.Seed.Bookings {
		date, err := domain.ParseDate(seed.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d: date: %v", ErrInvalidConfig, seed.ID, err)
		}
		startTime, err := types.NewTimeStringFromString(seed.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d: time: %v", ErrInvalidConfig, seed.ID, err)
		}
		status, err := domain.ParseBookingStatus(seed.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d: %v", ErrInvalidConfig, seed.ID, err)
		}
		if seed.ID <= 0 {
			return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidConfig)
		}
		if _, dup := ids[seed.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate booking id=%d", ErrInvalidConfig, seed.ID)
		}
		ids[seed.ID] = struct{}{}

		service, ok := servicesByName[seed.Service]
		if !ok {
			return nil, fmt.Errorf("%w: booking id=%d: unknown service %q", ErrInvalidConfig, seed.ID, seed.Service)
		}
		worker, ok := workersByName[seed.Worker]
		if !ok {
			return nil, fmt.Errorf("%w: booking id=%d: unknown worker %q", ErrInvalidConfig, seed.ID, seed.Worker)
		}
		if !worker.CanPerform(service) {
			return nil, fmt.Errorf("%w: booking id=%d: worker %q cannot perform %q", ErrInvalidConfig, seed.ID, seed.Worker, seed.Service)
		}
		if seed.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: booking id=%d: duration must be positive", ErrInvalidConfig, seed.ID)
		}
		if status != domain.StatusCancelled {
			slot := seed.Worker + "|" + date.Format(domain.DateFormat) + "|" + startTime.String()
			if other, dup := taken[slot]; dup {
				return nil, fmt.Errorf("%w: booking id=%d: slot already taken by booking id=%d", ErrInvalidConfig, seed.ID, other)
			}
			taken[slot] = seed.ID
		}

		bookings = append(bookings, &domain.Booking{
			ID:              seed.ID,
			ClientName:      seed.ClientName,
			ClientEmail:     seed.ClientEmail,
			ServiceName:     seed.Service,
			WorkerName:      seed.Worker,
			Date:            date,
			Time:            startTime,
			Status:          status,
			DurationMinutes: seed.DurationMinutes,
			Price:           seed.Price,
		})
	}
	return bookings, nil
}
