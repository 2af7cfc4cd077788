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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	cancelBookingHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/get_booking"
	getOccupancyHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/get_occupancy"
	getRoomBookingsHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/get_room_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/get_user_bookings"
	roomStreamHandler "github.com/m04kA/SMC-HotelBooking/internal/api/handlers/room_stream"
	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/config"
	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/internal/infra/events/pgnotify"
	bookingRepo "github.com/m04kA/SMC-HotelBooking/internal/infra/storage/booking"
	roomServiceClient "github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
	bookingsService "github.com/m04kA/SMC-HotelBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HotelBooking/internal/service/roomevents"
	checkAvailabilityUC "github.com/m04kA/SMC-HotelBooking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-HotelBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBooking/pkg/logger"
	"github.com/m04kA/SMC-HotelBooking/pkg/metrics"
	"github.com/m04kA/SMC-HotelBooking/pkg/txmanager"
)

// eventNotifier общий интерфейс локального hub и pg_notify
type eventNotifier interface {
	Notify(ctx context.Context, event domain.BookingEvent) error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-HotelBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load hotel timezone %q: %v", cfg.Booking.Timezone, err)
	}
	storeTimeout := time.Duration(cfg.Booking.StoreTimeout) * time.Millisecond

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	stopBackgroundCh := make(chan struct{})

	// Инициализируем метрики (если включены).
	// Интерфейсные переменные остаются nil, а не typed nil, когда метрики выключены.
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		retryObserver    txmanager.RetryObserver
		bookingRecorder  createBookingUC.MetricsRecorder
		cancelRecorder   bookingsService.MetricsRecorder
		streamTracker    roomStreamHandler.StreamTracker
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		retryObserver = metricsCollector
		bookingRecorder = metricsCollector
		cancelRecorder = metricsCollector
		streamTracker = metricsCollector
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

	// Проверяем соединение
	pingCtx, pingCancel := context.WithTimeout(ctx, storeTimeout)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopBackgroundCh)
	txMgr := txmanager.NewTransactionManagerWithOptions(wrappedDB, txmanager.Options{
		MaxRetries:     cfg.Booking.TxMaxRetries,
		InitialBackoff: time.Duration(cfg.Booking.TxInitialBackoff) * time.Millisecond,
		MaxBackoff:     time.Duration(cfg.Booking.TxMaxBackoff) * time.Millisecond,
	}, retryObserver)

	// Инициализируем интеграционных клиентов
	roomClient := roomServiceClient.NewClient(
		cfg.RoomService.URL,
		time.Duration(cfg.RoomService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (RoomService=%s timeout=%ds)",
		cfg.RoomService.URL, cfg.RoomService.Timeout)

	// Репозиторий
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// События номеров: локальный hub, при включенном LISTEN/NOTIFY - через PostgreSQL,
	// чтобы подписчики на всех инстансах получали события
	hub := roomevents.NewHub()
	var notifier eventNotifier = hub

	if cfg.Events.Enabled {
		listener := pgnotify.NewListener(cfg.Database.DSN(), pgnotify.ListenerConfig{
			Channel:              cfg.Events.Channel,
			MinReconnectInterval: time.Duration(cfg.Events.MinReconnectInterval) * time.Millisecond,
			MaxReconnectInterval: time.Duration(cfg.Events.MaxReconnectInterval) * time.Millisecond,
		}, hub, log)
		if err := listener.Start(ctx); err != nil {
			log.Fatal("Failed to start events listener: %v", err)
		}
		defer func() {
			if err := listener.Close(); err != nil {
				log.Error("Failed to close events listener: %v", err)
			}
		}()

		notifier = pgnotify.NewPublisher(wrappedDB, cfg.Events.Channel)
		log.Info("Room events delivered via LISTEN/NOTIFY on channel %s", cfg.Events.Channel)
	} else {
		log.Info("Room events delivered in-process only")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		roomClient,
		txMgr,
		notifier,
		cancelRecorder,
		bookingsService.Config{Location: location, StoreTimeout: storeTimeout},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomClient,
		txMgr,
		notifier,
		bookingRecorder,
		createBookingUC.Config{
			Location:     location,
			MaxGuests:    cfg.Booking.MaxGuests,
			StoreTimeout: storeTimeout,
		},
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, storeTimeout, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)
	roomStream := roomStreamHandler.NewHandler(hub, streamTracker, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOccupancy := getOccupancyHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности без бронирования
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Подписка на изменения бронирований номера
	api.HandleFunc("/rooms/{roomId}/bookings/stream", roomStream.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования (с ограничением частоты на пользователя)
	create := protected.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewClientRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, stopBackgroundCh)
		create.Use(middleware.RateLimit(limiter))
		log.Info("Rate limit for booking creation: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	create.HandleFunc("/rooms/{roomId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Бронирования номера по группам (экран администратора, только администратор номера)
	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	// Сводка по номерам администратора на день; до /bookings/{bookingId}
	protected.HandleFunc("/bookings/occupancy", getOccupancy.Handle).Methods(http.MethodGet)

	// Бронирование по ID и отмена
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// История бронирований пользователя
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи: сбор статистики пула, очистку limiter, listener
	close(stopBackgroundCh)
	stop()

	log.Info("Server stopped gracefully")
}
