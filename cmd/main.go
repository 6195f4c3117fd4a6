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

	calculateFeeHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/calculate_fee"
	createTariffSlotHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/create_tariff_slot"
	getRatePlansHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/get_rate_plans"
	getTariffsHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/get_tariffs"
	retireTariffSlotHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/retire_tariff_slot"
	updateTariffSlotHandler "github.com/m04kA/SMC-ParkingFeeService/internal/api/handlers/update_tariff_slot"
	"github.com/m04kA/SMC-ParkingFeeService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingFeeService/internal/config"
	tariffRepo "github.com/m04kA/SMC-ParkingFeeService/internal/infra/storage/tariff"
	tariffsService "github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs"
	calculateFeeUC "github.com/m04kA/SMC-ParkingFeeService/internal/usecase/calculate_fee"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/logger"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingFeeService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона движка: по ней режем сессии на календарные сутки
	engineLocation, err := cfg.Engine.Location()
	if err != nil {
		log.Fatal("Failed to load engine timezone: %v", err)
	}
	log.Info("Engine timezone: %s, currency: %s", engineLocation, cfg.Engine.Currency)

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

	// Инициализируем репозиторий (с метриками или без)
	var tariffRepository *tariffRepo.Repository

	// Интерфейс для transaction manager (используется в сервисе тарифов)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tariffRepository = tariffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tariffRepository = tariffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис администрирования тарифов
	tariffSvc := tariffsService.NewService(
		tariffRepository,
		txMgr,
		log,
	)

	// Инициализируем use case расчёта платы
	calculateFeeUseCase := calculateFeeUC.NewUseCase(
		tariffRepository,
		engineLocation,
		cfg.Engine.Currency,
		log,
	)

	// Инициализируем handlers
	calculateFee := calculateFeeHandler.NewHandler(calculateFeeUseCase, log)
	getRatePlans := getRatePlansHandler.NewHandler(log)
	getTariffs := getTariffsHandler.NewHandler(tariffSvc, log)
	createTariffSlot := createTariffSlotHandler.NewHandler(tariffSvc, log)
	updateTariffSlot := updateTariffSlotHandler.NewHandler(tariffSvc, log)
	retireTariffSlot := retireTariffSlotHandler.NewHandler(tariffSvc, log)

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

	// Расчёт платы за парковочную сессию (вызывается выездными стойками)
	api.HandleFunc("/fees/calculate", calculateFee.Handle).Methods(http.MethodPost)

	// Каталог тарифных планов
	api.HandleFunc("/rate-plans", getRatePlans.Handle).Methods(http.MethodGet)

	// Расписание тарифного плана по дням недели
	api.HandleFunc("/rate-plans/{ratePlan}/tariffs", getTariffs.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Администрирование тарифов ---
	// Создание тарифного слота
	protected.HandleFunc("/tariffs", createTariffSlot.Handle).Methods(http.MethodPost)

	// Обновление тарифного слота
	protected.HandleFunc("/tariffs/{slotId}", updateTariffSlot.Handle).Methods(http.MethodPut)

	// Завершение действия тарифного слота
	protected.HandleFunc("/tariffs/{slotId}/retire", retireTariffSlot.Handle).Methods(http.MethodPatch)

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
