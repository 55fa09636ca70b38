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
	"github.com/redis/go-redis/v9"

	getBookingListHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking_list"
	getCalendarHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_calendar"
	getItemsTableHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_items_table"
	invalidateCacheHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/invalidate_cache"
	saveTimeframeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/save_timeframe"
	validateTimeframeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/validate_timeframe"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	timeframeRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/timeframe"
	userServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	permissionsService "github.com/m04kA/SMC-AvailabilityService/internal/service/permissions"
	getCalendarUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_calendar"
	getItemsTableUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_items_table"
	saveTimeframeUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/save_timeframe"
	validateTimeframeUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс календаря: все расчеты дней идут в локальной зоне
	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load calendar timezone: %v", err)
	}
	time.Local = loc
	log.Info("Calendar timezone: %s", loc)

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка БД: без метрик коллектор nil и запросы не измеряются
	wrappedDB := dbmetrics.Wrap(db, nil)
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем кэш доступности (если включен)
	var availabilityCache *cache.Cache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		var backend cache.Backend
		switch cfg.Cache.Backend {
		case config.CacheBackendRedis:
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
			}
			backend, err = cache.NewRedisBackend(redisClient, cfg.Cache.RedisPrefix, cfg.Cache.RedisTagTTL())
		default:
			backend, err = cache.NewMemoryBackend(cfg.Cache.MaxEntries, nil)
		}
		if err != nil {
			log.Fatal("Failed to initialize cache backend %s: %v", cfg.Cache.Backend, err)
		}
		availabilityCache = cache.New(backend, metricsCollector, log)
		log.Info("Availability cache enabled (backend=%s)", cfg.Cache.Backend)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории
	timeframeRepository := timeframeRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	permissionSvc := permissionsService.NewService()
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilityCache,
		cfg.Cache.BookingListTTLDuration(),
		log,
	)

	// Инициализируем use cases
	validateTimeframeUseCase := validateTimeframeUC.NewUseCase(timeframeRepository, metricsCollector, log)
	saveTimeframeUseCase := saveTimeframeUC.NewUseCase(
		timeframeRepository,
		validateTimeframeUseCase,
		availabilityCache,
		txMgr,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		timeframeRepository,
		catalogRepository,
		permissionSvc,
		availabilityCache,
		log,
	)
	getItemsTableUseCase := getItemsTableUC.NewUseCase(
		catalogRepository,
		timeframeRepository,
		getCalendarUseCase,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, userClient, log)
	getItemsTable := getItemsTableHandler.NewHandler(getItemsTableUseCase, userClient, log)
	validateTimeframe := validateTimeframeHandler.NewHandler(validateTimeframeUseCase, log)
	saveTimeframe := saveTimeframeHandler.NewHandler(saveTimeframeUseCase, userClient, log)
	getBookingList := getBookingListHandler.NewHandler(bookingSvc, userClient, log)
	invalidateCache := invalidateCacheHandler.NewHandler(availabilityCache, userClient, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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
	// PUBLIC ROUTES (X-User-ID опционален)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Календарь доступности предметов и локаций
	public.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Таблица доступности опубликованных предметов
	public.HandleFunc("/items-table", getItemsTable.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Таймфреймы ---
	// Проверка пересечений без сохранения
	protected.HandleFunc("/timeframes/validate", validateTimeframe.Handle).Methods(http.MethodPost)

	// Создание и обновление таймфрейма
	protected.HandleFunc("/timeframes", saveTimeframe.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/timeframes/{timeframeId:[0-9]+}", saveTimeframe.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	// Список бронирований пользователя (все - для администратора)
	protected.HandleFunc("/bookings", getBookingList.Handle).Methods(http.MethodGet)

	// --- Кэш ---
	// Инвалидация по тегам для внешних сервисов
	protected.HandleFunc("/cache/invalidate", invalidateCache.Handle).Methods(http.MethodPost)

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

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
