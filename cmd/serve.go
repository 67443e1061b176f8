package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	adminLoginHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/admin_login"
	bookAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/book_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAppointmentMetricsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment_metrics"
	getAvailableAgenciesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_agencies"
	getAvailableHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_hours"
	getBookingWindowHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking_window"
	getCurrentAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_current_appointment"
	listAgenciesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_agencies"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	manageParametersHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/manage_parameters"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/auth"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/intakeservice"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/mailer"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	notificationsService "github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
	parametersService "github.com/m04kA/SMC-AppointmentService/internal/service/parameters"
	bookAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/validation"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(configPath)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(path string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", path)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	st, err := openStorage(cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		return err
	}
	defer st.Close()

	// Сервисы
	catalogSvc := catalogService.NewService(st.agencies, log)
	parametersSvc := parametersService.NewService(st.parameters, st.agencies, log)
	appointmentsSvc := appointmentsService.NewService(st.appointments, st.tx, log)
	availabilitySvc := availabilityService.NewService(st.agencies, st.parameters, st.appointments, log)

	// В памяти каталог пуст до первого запуска, загружаем агентства сразу
	if cfg.Storage.Driver == config.StorageDriverMemory {
		if err := catalogSvc.Seed(context.Background(), st.parameters, catalogService.DefaultSeed); err != nil {
			return fmt.Errorf("failed to seed memory storage: %w", err)
		}
	}

	// Уведомления
	dispatcher, closeDispatcher := newDispatcher(cfg, log)
	defer closeDispatcher()

	// Use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		st.appointments,
		st.parameters,
		st.agencies,
		st.tx,
		dispatcher,
		notificationsService.NewPdfLinks(cfg.Notifications.PdfBaseURL),
		metricsCollector,
		bookAppointmentUC.Settings{
			EnforceWindow:      cfg.Booking.EnforceWindow,
			NaturalRecipient:   cfg.Notifications.NaturalRecipient,
			JuridicalRecipient: cfg.Notifications.JuridicalRecipient,
			DispatchTimeout:    time.Duration(cfg.Notifications.DispatchTimeout) * time.Second,
		},
		log,
	)

	facade := scheduling.NewFacade(
		availabilitySvc,
		bookAppointmentUseCase,
		newCompletenessChecker(cfg, log),
		st.appointments,
		log,
	).WithOutcomeObserver(metricsCollector)

	// Авторизация бэк-офиса
	tokens := auth.NewManager(cfg.Admin.JWTSecret, time.Duration(cfg.Admin.TokenTTL)*time.Minute)
	authenticator := auth.NewAdminAuthenticator(cfg.Admin.Username, cfg.Admin.PasswordHash, tokens)
	validator := validation.New()

	// Инициализируем handlers
	listAgencies := listAgenciesHandler.NewHandler(catalogSvc, log)
	getAvailableAgencies := getAvailableAgenciesHandler.NewHandler(facade, log)
	getAvailableHours := getAvailableHoursHandler.NewHandler(facade, log)
	getBookingWindow := getBookingWindowHandler.NewHandler(facade)
	bookAppointment := bookAppointmentHandler.NewHandler(facade, validator, log)
	getCurrentAppointment := getCurrentAppointmentHandler.NewHandler(facade, log)
	adminLogin := adminLoginHandler.NewHandler(authenticator, validator, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, validator, log)
	getAppointmentMetrics := getAppointmentMetricsHandler.NewHandler(appointmentsSvc, log)
	manageParameters := manageParametersHandler.NewHandler(parametersSvc, validator, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/agencies", listAgencies.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableAgencies.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hours", getAvailableHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-window", getBookingWindow.Handle).Methods(http.MethodGet)
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// REQUESTER ROUTES (требуют X-Requester-ID header)
	// ============================================================

	requester := api.PathPrefix("").Subrouter()
	requester.Use(middleware.Auth)

	requester.HandleFunc("/book", bookAppointment.Handle).Methods(http.MethodPost)
	requester.HandleFunc("/appointments/current", getCurrentAppointment.Handle).Methods(http.MethodGet)

	// ============================================================
	// BACKOFFICE ROUTES (требуют Bearer токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(tokens))

	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/metrics", getAppointmentMetrics.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/parameters", manageParameters.List).Methods(http.MethodGet)
	admin.HandleFunc("/parameters", manageParameters.Create).Methods(http.MethodPost)
	admin.HandleFunc("/parameters/{agencyId}", manageParameters.Update).Methods(http.MethodPut)
	admin.HandleFunc("/parameters/{agencyId}", manageParameters.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
		return err
	}

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

	// Дожидаемся уведомлений по уже созданным записям
	bookAppointmentUseCase.Wait()

	log.Info("Server stopped gracefully")
	return nil
}

// newDispatcher собирает каналы уведомлений. Без SMTP письма пишутся в лог, без kafka событие не публикуется
func newDispatcher(cfg *config.Config, log *logger.Logger) (*notificationsService.Dispatcher, func()) {
	var sender mailer.Sender
	if cfg.SMTP.Host != "" {
		sender = mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
		log.Info("SMTP notifications enabled (host=%s, port=%s)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		sender = mailer.NewLogSender(log)
		log.Warn("SMTP is not configured, emails will be logged only")
	}

	var publisher notificationsService.EventPublisher
	closeFn := func() {}
	if brokers := events.SplitBrokers(cfg.Kafka.Brokers); len(brokers) > 0 {
		p := events.NewPublisher(events.NewWriter(brokers, cfg.Kafka.Topic), log)
		publisher = p
		closeFn = func() {
			if err := p.Close(); err != nil {
				log.Error("Failed to close kafka writer: %v", err)
			}
		}
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", brokers, cfg.Kafka.Topic)
	} else {
		log.Warn("Kafka brokers are not configured, appointment events disabled")
	}

	return notificationsService.NewDispatcher(mailer.New(sender, log), publisher, log), closeFn
}

// newCompletenessChecker клиент сервиса анкет. Без url все анкеты считаются заполненными
func newCompletenessChecker(cfg *config.Config, log *logger.Logger) scheduling.CompletenessChecker {
	if cfg.IntakeService.URL == "" {
		log.Warn("Intake service URL is empty, every application is treated as complete")
		return intakeservice.NewStaticClient()
	}

	log.Info("Intake service client initialized (url=%s, timeout=%ds)", cfg.IntakeService.URL, cfg.IntakeService.Timeout)
	return intakeservice.NewClient(
		cfg.IntakeService.URL,
		time.Duration(cfg.IntakeService.Timeout)*time.Second,
		log,
	)
}
