package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_room"
	deleteBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room"
	getRoomScheduleHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room_schedule"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/health"
	listRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_rooms"
	loginHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/logout"
	updateBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_booking"
	updateRoomHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_room"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/redisstore"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	loginAttemptRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/loginattempt"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	sessionRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-RoomBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/ratelimit"
	roomsService "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	getRoomScheduleUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_schedule"
	loginUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/login"
	updateBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/migrations"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func main() {
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
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

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s (zone %s)", configPath, cfg.Booking.Location())

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		applied, err := migrations.Apply(startupCtx, db)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %v", applied)
	}

	// Репозитории работают через обёртку с метриками, если они включены
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	roomRepository := roomRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	sessionRepository := sessionRepo.NewRepository(executor)

	// Хранилище счётчиков неудачных входов
	var attemptStore ratelimit.AttemptStore
	switch cfg.RateLimit.Backend {
	case config.RateLimitBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, login limiter will follow fail_closed=%t: %v",
				cfg.Redis.Addr, cfg.RateLimit.FailClosed, err)
		}
		attemptStore = redisstore.NewLoginAttemptStore(redisClient, cfg.Redis.KeyPrefix, 2*cfg.RateLimit.BlockWindow())
		log.Info("Login attempts are stored in Redis (%s)", cfg.Redis.Addr)
	default:
		attemptStore = loginAttemptRepo.NewRepository(executor)
		log.Info("Login attempts are stored in PostgreSQL")
	}

	// Инициализируем сервисы
	validator := bookingvalidator.NewValidator(cfg.Booking.Location())
	limiter := ratelimit.NewLimiter(attemptStore, ratelimit.Options{
		MaxAttempts: cfg.RateLimit.MaxAttempts,
		Window:      cfg.RateLimit.BlockWindow(),
		FailClosed:  cfg.RateLimit.FailClosed,
	}, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, validator, log)
	roomSvc := roomsService.NewService(roomRepository, log)
	authSvc := authService.NewService(sessionRepository, userRepository, log)

	if cfg.Auth.AdminEmail != "" {
		created, err := authSvc.EnsureAdmin(startupCtx, cfg.Auth.AdminEmail, cfg.Auth.AdminName, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal("Failed to bootstrap admin: %v", err)
		}
		if created {
			log.Info("Bootstrap admin %s created", cfg.Auth.AdminEmail)
		}
	}
	if _, err := authSvc.CleanupExpired(startupCtx); err != nil {
		log.Warn("Failed to clean up expired sessions: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		userRepository,
		validator,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		validator,
		metricsCollector,
		log,
	)
	getRoomScheduleUseCase := getRoomScheduleUC.NewUseCase(
		bookingRepository,
		roomRepository,
		types.TimeString(cfg.Booking.WorkdayStart),
		types.TimeString(cfg.Booking.WorkdayEnd),
		cfg.Booking.Location(),
		log,
	)
	loginUseCase := loginUC.NewUseCase(
		userRepository,
		sessionRepository,
		limiter,
		metricsCollector,
		cfg.Auth.SessionTTL(),
		log,
	)

	// Инициализируем handlers
	login := loginHandler.NewHandler(loginUseCase, log)
	logout := logoutHandler.NewHandler(authSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getRoom := getRoomHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)
	updateRoom := updateRoomHandler.NewHandler(roomSvc, log)
	getRoomSchedule := getRoomScheduleHandler.NewHandler(getRoomScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(db, log)

	trustedProxies, err := cfg.Server.TrustedProxyNets()
	if err != nil {
		log.Fatal("Invalid trusted proxies: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.ClientAddress(cfg.Server.TrustProxyHeaders, trustedProxies))
	public.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	protected.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// --- Комнаты ---
	protected.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rooms/{roomId}", getRoom.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}", updateRoom.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomSchedule.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
