package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/cancel_appointment"
	chatHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/chat"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/get_appointments"
	getSlotsHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/get_slots"
	healthHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/health"
	integrationWebhookHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/integration_webhook"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/middleware"
	appointmentRepo "github.com/m04kA/SMC-AppointmentDesk/internal/infra/storage/appointment"
	blockedSlotRepo "github.com/m04kA/SMC-AppointmentDesk/internal/infra/storage/blockedslot"
	"github.com/m04kA/SMC-AppointmentDesk/internal/integrations/gemini"
	appointmentsService "github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/intent"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/trackingcode"
	chatUC "github.com/m04kA/SMC-AppointmentDesk/internal/usecase/chat"
	executeActionUC "github.com/m04kA/SMC-AppointmentDesk/internal/usecase/execute_action"
	"github.com/m04kA/SMC-AppointmentDesk/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	a, err := bootstrap(configPath, true)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-AppointmentDesk (timezone=%s)...", a.location)

	// Репозитории и транзакции
	appointmentRepository := appointmentRepo.NewRepository(a.wrapped)
	blockedSlotRepository := blockedSlotRepo.NewRepository(a.wrapped)
	txMgr := txmanager.NewTransactionManager(a.wrapped)

	// Сервисы ядра бронирования
	calculator := slots.NewCalculator(appointmentRepository, blockedSlotRepository)
	allocator := trackingcode.NewAllocator(appointmentRepository, log)

	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		calculator,
		allocator,
		a.notifier(),
		txMgr,
		a.metrics,
		a.location,
		log,
	)

	// Разбор намерений: модель (если настроена) и детерминированный разбор
	var primary intent.Extractor
	if cfg.Gemini.ModelEnabled() {
		client, err := gemini.NewClient(
			context.Background(),
			cfg.Gemini.APIKey,
			cfg.Gemini.Model,
			cfg.Gemini.RequestsPerMinute,
			cfg.Gemini.TimeoutDuration(),
			log,
		)
		if err != nil {
			return fmt.Errorf("initialize gemini client: %w", err)
		}
		a.onClose(func() { _ = client.Close() })

		primary = intent.NewModelExtractor(client, gemini.IsTransient, log)
		log.Info("Gemini intent extraction enabled (model=%s, rpm=%d)", cfg.Gemini.Model, cfg.Gemini.RequestsPerMinute)
	} else {
		log.Warn("Gemini api key is not set, only the deterministic parser is used")
	}

	resolver := intent.NewResolver(primary, intent.NewFallbackParser(), intent.TransientOnly, a.metrics, log)

	store, err := a.conversationStore(context.Background())
	if err != nil {
		return err
	}

	// Use cases
	executor := executeActionUC.NewUseCase(appointmentSvc, a.location, log)
	chatUseCase := chatUC.NewUseCase(store, resolver, executor, a.location, log)

	// Handlers
	chat := chatHandler.NewHandler(chatUseCase, log)
	getSlots := getSlotsHandler.NewHandler(appointmentSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	integrationWebhook := integrationWebhookHandler.NewHandler(appointmentSvc, a.location, log)
	health := healthHandler.NewHandler(a.db, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{trackingCode}", getAppointment.Handle).Methods(http.MethodGet)

	// Код записи сам по себе дает право на перенос и отмену
	api.HandleFunc("/appointments/{trackingCode}", rescheduleAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{trackingCode}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// Почтовая автоматизация: вендор берется из тела запроса
	api.HandleFunc("/integrations/n8n", integrationWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// VENDOR ROUTES (требуют X-Vendor-Email)
	// ============================================================

	vendor := api.PathPrefix("").Subrouter()
	vendor.Use(middleware.Vendor)

	vendor.HandleFunc("/chat", chat.Handle).Methods(http.MethodPost)
	vendor.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
