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
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	confirmReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	listMyReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_my_reservations"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	loginHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/login"
	menuHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/menu"
	signupHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/signup"
	tablesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/tables"
	updateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/events"
	"github.com/m04kA/SMC-ReservationService/internal/infra/slotlock"
	menuRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/menu"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-ReservationService/internal/service/auth"
	menuService "github.com/m04kA/SMC-ReservationService/internal/service/menu"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/authtoken"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("RESERVATION_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, logger.WithFormat(cfg.Logs.Format))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	tableRepository := tableRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	menuRepository := menuRepo.NewRepository(sqlx.NewDb(db, "postgres"))

	// Блокировка слота в Redis (опционально, поверх advisory lock в PostgreSQL)
	var slotLocker createReservationUC.SlotLocker = slotlock.NoopLocker{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, slot lock falls back to database: %v", cfg.Redis.Addr, err)
		}
		cancel()

		slotLocker = slotlock.NewRedisLocker(redisClient, slotlock.Config{
			KeyPrefix:  cfg.Redis.LockKeyPrefix,
			TTL:        cfg.Redis.LockTTL(),
			Wait:       cfg.Redis.LockWait(),
			RetryDelay: cfg.Redis.LockRetry(),
		}, log)
		log.Info("Redis slot lock enabled (addr=%s)", cfg.Redis.Addr)
	}

	// Издатель событий жизненного цикла
	publisher, err := events.New(events.Options{
		Driver:         cfg.Events.Driver,
		RabbitURL:      cfg.Events.RabbitURL,
		RabbitExchange: cfg.Events.RabbitExchange,
		KafkaBrokers:   cfg.Events.KafkaBrokers,
		KafkaTopic:     cfg.Events.KafkaTopic,
	})
	if err != nil {
		log.Fatal("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()
	publisher = events.WithTimeout(publisher, cfg.Events.PublishTimeoutDuration())
	log.Info("Event publisher initialized (driver=%s)", cfg.Events.Driver)

	tokens := authtoken.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), cfg.Auth.Issuer)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, txMgr, publisher, log)
	tablesSvc := tablesService.NewService(tableRepository, log)
	menuSvc := menuService.NewService(menuRepository, log)
	authSvc := authService.NewService(userRepository, tokens, cfg.Auth.BcryptCost, log)

	// Инициализируем use cases
	resolver := checkAvailabilityUC.NewResolver(tableRepository, reservationRepository)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(resolver, log)
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		resolver,
		slotLocker,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	signup := signupHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	listMyReservations := listMyReservationsHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationsSvc, log)
	tables := tablesHandler.NewHandler(tablesSvc, log)
	menu := menuHandler.NewHandler(menuSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/auth/signup", signup.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/menu", menu.List).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/my", listMyReservations.Handle).Methods(http.MethodGet)
	// Список всех бронирований, права администратора проверяет сервис
	protected.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{id:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{id:[0-9]+}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/tables", tables.List).Methods(http.MethodGet)
	admin.HandleFunc("/tables", tables.Create).Methods(http.MethodPost)
	admin.HandleFunc("/tables/{id:[0-9]+}", tables.Update).Methods(http.MethodPut)
	admin.HandleFunc("/tables/{id:[0-9]+}", tables.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/menu", menu.Create).Methods(http.MethodPost)
	admin.HandleFunc("/menu/{id:[0-9]+}", menu.Update).Methods(http.MethodPut)
	admin.HandleFunc("/menu/{id:[0-9]+}", menu.Delete).Methods(http.MethodDelete)

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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
