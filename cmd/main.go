package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	addServiceHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/add_service"
	addWorkerHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/add_worker"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_dashboard"
	getDemoAccountsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_demo_accounts"
	getMeHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_me"
	getReportsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_reports"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	listNotificationsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_notifications"
	listServicesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_services"
	listWorkersHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_workers"
	loginHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/logout"
	signupHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/signup"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/notifications"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/sessions"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	authService "github.com/m04kA/SMC-SalonBooking/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/validation"
)

const (
	poolStatsInterval    = 15 * time.Second
	cacheCleanupInterval = 5 * time.Minute
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SALON_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking (%s)...", cfg.Salon.Name)
	log.Info("Configuration loaded from %s", configPath)

	grid, _ := cfg.SlotGrid()
	location, _ := cfg.Location()
	conflictMode := domain.ConflictMode(cfg.Salon.ConflictMode)

	// Метрики пишутся всегда, endpoint публикуется только если включен
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if cfg.Database.Driver == sqlbuilder.DriverSQLite {
		// :memory: живет в рамках одного соединения
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (driver=%s)", cfg.Database.Driver)

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	wrappedDB.CollectPoolStats(metricsCollector, poolStatsInterval, stopMetricsCh)

	builder, err := sqlbuilder.New(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Failed to create query builder: %v", err)
	}

	isolation := sql.LevelDefault
	if cfg.Database.Driver == sqlbuilder.DriverPostgres {
		isolation = sql.LevelSerializable
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, isolation)

	// Репозитории, схема и начальные данные
	bookingRepository := bookingRepo.NewRepository(wrappedDB, builder)
	catalogRepository := catalogRepo.NewRepository(wrappedDB, builder)

	ctx := context.Background()
	if err := catalogRepository.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate catalog: %v", err)
	}
	if err := bookingRepository.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate bookings: %v", err)
	}

	services, _ := cfg.Services()
	workers, _ := cfg.Workers()
	seedBookings, _ := cfg.SeedBookings()
	seeded := 0
	// каталог и бронирования загружаются одной транзакцией
	err = txMgr.Do(ctx, func(ctx context.Context) error {
		if err := catalogRepository.Seed(ctx, services, workers); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		n, err := bookingRepository.Seed(ctx, seedBookings)
		if err != nil {
			return fmt.Errorf("seed bookings: %w", err)
		}
		seeded = n
		return nil
	})
	if err != nil {
		log.Fatal("Failed to seed ledger: %v", err)
	}
	log.Info("Ledger ready: services=%d, workers=%d, bookings=%d", len(services), len(workers), seeded)

	// Сессии и уведомления в памяти процесса
	sessionStore := sessions.NewStore(cfg.SessionTTL(), cacheCleanupInterval)
	notificationSink := notifications.NewSink(cfg.SessionTTL(), cacheCleanupInterval)
	validator := validation.New()
	clock := &createBookingUC.RealTimeProvider{}

	// Инициализируем сервисы
	authSvc := authService.NewService(
		sessionStore,
		notificationSink,
		metricsCollector,
		validator,
		clock,
		log,
		cfg.LoginDelay(),
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		notificationSink,
		metricsCollector,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		notificationSink,
		validator,
		log,
	)
	reportsSvc := reportsService.NewService(
		bookingSvc,
		catalogRepository,
		clock,
		location,
		cfg.Salon.FrequentClientsTop,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		txMgr,
		notificationSink,
		metricsCollector,
		grid,
		conflictMode,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		grid,
		conflictMode,
		location,
		log,
	)
	log.Info("Booking rules: grid=%s-%s step=%dm, conflict_mode=%s, timezone=%s",
		grid.Open, grid.Close, grid.StepMinutes, conflictMode, location)

	// Инициализируем handlers
	login := loginHandler.NewHandler(authSvc, log)
	signup := signupHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)
	getMe := getMeHandler.NewHandler(authSvc, log)
	getDemoAccounts := getDemoAccountsHandler.NewHandler(authSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listWorkers := listWorkersHandler.NewHandler(catalogSvc, log)
	addService := addServiceHandler.NewHandler(catalogSvc, log)
	addWorker := addWorkerHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getDashboard := getDashboardHandler.NewHandler(reportsSvc, log)
	getReports := getReportsHandler.NewHandler(reportsSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSink, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, log)
	api.Handle("/auth/login", loginLimiter.Wrap(http.HandlerFunc(login.Handle))).Methods(http.MethodPost)
	api.Handle("/auth/signup", loginLimiter.Wrap(http.HandlerFunc(signup.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/demo-accounts", getDemoAccounts.Handle).Methods(http.MethodGet)

	// Каталог
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workers", listWorkers.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Session-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessionStore, log))

	// --- Сессия ---
	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", listNotifications.HandleClear).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Панели и отчеты ---
	protected.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/summary", getReports.HandleSummary).Methods(http.MethodGet)
	protected.HandleFunc("/reports/services", getReports.HandleServices).Methods(http.MethodGet)
	protected.HandleFunc("/reports/workers", getReports.HandleWorkers).Methods(http.MethodGet)
	protected.HandleFunc("/reports/clients", getReports.HandleClients).Methods(http.MethodGet)

	// --- Управление каталогом (администратор) ---
	protected.HandleFunc("/catalog/services", addService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/catalog/workers", addWorker.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
