package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ReservationService/internal/admission"
	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	cancelClientBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_client_bookings"
	cancelCompanyBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_company_bookings"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_client_bookings"
	getCompanyBookingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_company_bookings"
	updateBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/directory"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/mailjet"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/smtpmail"
	bookingsService "github.com/m04kA/SMC-ReservationService/internal/service/bookings"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
	cancelBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	sendRemindersUC "github.com/m04kA/SMC-ReservationService/internal/usecase/send_reminders"
	updateBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ReservationService/internal/worker"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const (
	reminderWorkerName = "booking-reminders"
	lockPrefix         = "reservation-service"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Reminders.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Reminders.Timezone, err)
	}

	// Метрики (если включены). Интерфейсы остаются nil, если метрики выключены.
	var (
		metricsCollector    *metrics.Metrics
		admissionMetrics    admission.MetricsRecorder
		notificationMetrics notifications.MetricsRecorder
		reminderMetrics     sendRemindersUC.MetricsRecorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		admissionMetrics = metricsCollector
		notificationMetrics = metricsCollector
		reminderMetrics = metricsCollector
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Metrics.Enabled {
		go metricsCollector.CollectDBStats(db, time.Duration(cfg.Metrics.DBStatsInterval)*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	notificationRepository := notificationRepo.NewRepository(db)
	clientDirectory := directory.NewClientRepository(db)
	companyDirectory := directory.NewCompanyRepository(db)
	serviceDirectory := directory.NewServiceRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Почта
	gateway := newEmailGateway(cfg.Email, log)

	dispatcher := notifications.NewDispatcher(
		notificationRepository,
		clientDirectory,
		companyDirectory,
		gateway,
		notificationMetrics,
		log,
		notifications.Config{AppName: cfg.Email.AppName},
	)

	rule := admission.NewRule(serviceDirectory, bookingRepository, admissionMetrics)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		clientDirectory,
		companyDirectory,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientDirectory,
		companyDirectory,
		serviceDirectory,
		rule,
		dispatcher,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		clientDirectory,
		companyDirectory,
		serviceDirectory,
		rule,
		dispatcher,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, dispatcher, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(serviceDirectory, bookingRepository, log, location)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		bookingRepository,
		dispatcher,
		reminderMetrics,
		log,
		sendRemindersUC.Config{
			WindowDays: cfg.Reminders.WindowDays,
			Location:   location,
		},
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	cancelClientBookings := cancelClientBookingsHandler.NewHandler(bookingSvc, log)
	cancelCompanyBookings := cancelCompanyBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Бронирования клиента ---
	api.HandleFunc("/clients/{dni}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{dni}/bookings", cancelClientBookings.Handle).Methods(http.MethodDelete)

	// --- Бронирования компании ---
	api.HandleFunc("/companies/{cif}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{cif}/bookings", cancelCompanyBookings.Handle).Methods(http.MethodDelete)

	// --- Доступность услуги на дату ---
	api.HandleFunc("/services/{serviceId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Ежедневные напоминания
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var workerWG sync.WaitGroup

	var redisClient *redis.Client
	if cfg.Reminders.Enabled {
		runAt, err := cfg.Reminders.RunAtTime()
		if err != nil {
			log.Fatal("Invalid reminders.run_at %q: %v", cfg.Reminders.RunAt, err)
		}

		var locker worker.Locker
		if cfg.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
			}
			locker = lock.NewRedisLocker(redisClient, lockPrefix, time.Duration(cfg.Redis.LockTTL)*time.Second)
			log.Info("Reminder worker guarded by redis lock (addr=%s)", cfg.Redis.Addr)
		}

		reminders := worker.NewDaily(reminderWorkerName, runAt, location, func(ctx context.Context) error {
			_, err := sendRemindersUseCase.Execute(ctx)
			return err
		}, locker, log.With("worker", reminderWorkerName))

		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			reminders.Run(workerCtx)
		}()
	}

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

	// Останавливаем воркер и ждем текущий запуск
	stopWorker()
	workerWG.Wait()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// newEmailGateway выбирает провайдера почты. nil отключает отправку писем.
func newEmailGateway(cfg config.EmailConfig, log *logger.Logger) notifications.EmailGateway {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		log.Info("Email delivery via SMTP %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
		return smtpmail.NewClient(smtpmail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		}, log)
	case config.EmailProviderMailjet:
		log.Info("Email delivery via Mailjet")
		return mailjet.NewClient(mailjet.Config{
			APIKeyPublic:  cfg.Mailjet.APIKeyPublic,
			APIKeyPrivate: cfg.Mailjet.APIKeyPrivate,
			From:          cfg.From,
			FromName:      cfg.FromName,
		}, log)
	default:
		log.Info("Email delivery disabled")
		return nil
	}
}
