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

	cancelConsultationHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/cancel_consultation"
	completeConsultationHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/complete_consultation"
	confirmConsultationHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/confirm_consultation"
	createConsultationHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/create_consultation"
	getAvailableSlotsHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/get_available_slots"
	getConsultantConsultationsHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/get_consultant_consultations"
	getConsultationHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/get_consultation"
	getConsultationsByStatusHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/get_consultations_by_status"
	getMyConsultationsHandler "github.com/m04kA/HCP-ConsultationService/internal/api/handlers/get_my_consultations"
	"github.com/m04kA/HCP-ConsultationService/internal/api/middleware"
	"github.com/m04kA/HCP-ConsultationService/internal/config"
	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/HCP-ConsultationService/internal/infra/storage/consultation"
	accountServiceClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	notifyServiceClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/notifyservice"
	profileServiceClient "github.com/m04kA/HCP-ConsultationService/internal/integrations/profileservice"
	consultationsService "github.com/m04kA/HCP-ConsultationService/internal/service/consultations"
	createConsultationUC "github.com/m04kA/HCP-ConsultationService/internal/usecase/create_consultation"
	getAvailableSlotsUC "github.com/m04kA/HCP-ConsultationService/internal/usecase/get_available_slots"
	"github.com/m04kA/HCP-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/HCP-ConsultationService/pkg/logger"
	"github.com/m04kA/HCP-ConsultationService/pkg/metrics"
	"github.com/m04kA/HCP-ConsultationService/pkg/simpletxmanager"
	"github.com/m04kA/HCP-ConsultationService/pkg/txmanager"
	"github.com/m04kA/HCP-ConsultationService/pkg/types"
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

	log.Info("Starting HCP-ConsultationService...")
	log.Info("Configuration loaded from config.toml")

	// Собираем каталог слотов из конфигурации
	catalog, err := buildSlotCatalog(cfg.Slots)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog initialized with %d windows", catalog.Len())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	accountClient := accountServiceClient.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AccountService=%s, ProfileService=%s, NotifyService=%s)",
		cfg.AccountService.URL, cfg.ProfileService.URL, cfg.NotifyService.URL)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var consultationRepository *consultationRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		consultationRepository = consultationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		consultationRepository = consultationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	consultationSvc := consultationsService.NewService(
		consultationRepository,
		accountClient,
		profileClient,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	createConsultationUseCase := createConsultationUC.NewUseCase(
		consultationRepository,
		accountClient,
		catalog,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		consultationRepository,
		accountClient,
		catalog,
		log,
	)

	// Инициализируем handlers
	createConsultation := createConsultationHandler.NewHandler(createConsultationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getConsultation := getConsultationHandler.NewHandler(consultationSvc, log)
	confirmConsultation := confirmConsultationHandler.NewHandler(consultationSvc, log)
	cancelConsultation := cancelConsultationHandler.NewHandler(consultationSvc, log)
	completeConsultation := completeConsultationHandler.NewHandler(consultationSvc, log)
	getMyConsultations := getMyConsultationsHandler.NewHandler(consultationSvc, log)
	getConsultantConsultations := getConsultantConsultationsHandler.NewHandler(consultationSvc, log)
	getConsultationsByStatus := getConsultationsByStatusHandler.NewHandler(consultationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проекция доступности слотов консультанта на дату
	api.HandleFunc("/consultants/{consultantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Консультации ---
	// Запись на консультацию
	protected.HandleFunc("/consultations", createConsultation.Handle).Methods(http.MethodPost)

	// Список консультаций по статусу (для staff/admin)
	protected.HandleFunc("/consultations", getConsultationsByStatus.Handle).Methods(http.MethodGet)

	// Получение консультации по ID
	protected.HandleFunc("/consultations/{consultationId}", getConsultation.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/consultations/{consultationId}/confirm", confirmConsultation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/consultations/{consultationId}/cancel", cancelConsultation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/consultations/{consultationId}/complete", completeConsultation.Handle).Methods(http.MethodPatch)

	// --- Личные списки ---
	// Консультации вызывающего (как клиента или консультанта)
	protected.HandleFunc("/users/me/consultations", getMyConsultations.Handle).Methods(http.MethodGet)

	// Назначения консультанта
	protected.HandleFunc("/consultants/me/consultations", getConsultantConsultations.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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

// buildSlotCatalog собирает каталог слотов из конфигурации.
// Пустая секция [[slots]] означает каталог по умолчанию.
func buildSlotCatalog(windows []config.SlotWindowConfig) (*domain.SlotCatalog, error) {
	if len(windows) == 0 {
		return domain.DefaultSlotCatalog(), nil
	}

	catalogWindows := make([]domain.SlotWindow, 0, len(windows))
	for _, w := range windows {
		start, err := types.NewTimeStringFromString(w.Start)
		if err != nil {
			return nil, fmt.Errorf("slot %q: invalid start time %q: %w", w.Label, w.Start, err)
		}
		end, err := types.NewTimeStringFromString(w.End)
		if err != nil {
			return nil, fmt.Errorf("slot %q: invalid end time %q: %w", w.Label, w.End, err)
		}
		catalogWindows = append(catalogWindows, domain.SlotWindow{
			Label: w.Label,
			Start: start,
			End:   end,
		})
	}

	return domain.NewSlotCatalog(catalogWindows)
}
