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

	cancelRequestHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/cancel_session_request"
	createChildHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/create_child"
	createRequestHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/create_session_request"
	deleteChildHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/delete_child"
	getParentChildrenHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/get_parent_children"
	getParentRequestsHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/get_parent_requests"
	getRequestHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/get_session_request"
	getSitterInboxHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/get_sitter_inbox"
	previewScheduleHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/preview_schedule"
	respondRequestHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/respond_session_request"
	updateChildHandler "github.com/ovchr/BSM-SessionService/internal/api/handlers/update_child"
	"github.com/ovchr/BSM-SessionService/internal/api/middleware"
	"github.com/ovchr/BSM-SessionService/internal/config"
	"github.com/ovchr/BSM-SessionService/internal/events"
	"github.com/ovchr/BSM-SessionService/internal/infra/idempotency"
	childRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/child"
	requestRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/sessionrequest"
	geoServiceClient "github.com/ovchr/BSM-SessionService/internal/integrations/geoservice"
	userServiceClient "github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
	childrenService "github.com/ovchr/BSM-SessionService/internal/service/children"
	requestsService "github.com/ovchr/BSM-SessionService/internal/service/requests"
	createRequestUC "github.com/ovchr/BSM-SessionService/internal/usecase/create_session_request"
	previewScheduleUC "github.com/ovchr/BSM-SessionService/internal/usecase/preview_schedule"
	"github.com/ovchr/BSM-SessionService/pkg/dbmetrics"
	"github.com/ovchr/BSM-SessionService/pkg/inflight"
	"github.com/ovchr/BSM-SessionService/pkg/logger"
	"github.com/ovchr/BSM-SessionService/pkg/metrics"
	"github.com/ovchr/BSM-SessionService/pkg/simpletxmanager"
	"github.com/ovchr/BSM-SessionService/pkg/txmanager"
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

	log.Info("Starting BSM-SessionService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopCh := make(chan struct{})

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
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	geoClient := geoServiceClient.NewClient(
		cfg.GeoService.URL,
		time.Duration(cfg.GeoService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, GeoService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.GeoService.URL, cfg.GeoService.Timeout)

	// Хранилище ключей идемпотентности (опционально, через redis)
	var idempotencyStore createRequestUC.IdempotencyStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is not reachable, idempotency store degraded: %v", err)
		}

		idempotencyStore = idempotency.NewStore(
			redisClient,
			time.Duration(cfg.Redis.IdempotencyTTL)*time.Second,
			log,
		)
		log.Info("Idempotency store enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdempotencyTTL)
	} else {
		log.Info("Redis disabled, submissions are guarded in-process only")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		requestRepository *requestRepo.Repository
		childRepository   *childRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")

		requestRepository = requestRepo.NewRepository(wrappedDB)
		childRepository = childRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		requestRepository = requestRepo.NewRepository(db)
		childRepository = childRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Шина доменных событий с логирующими подписчиками
	bus := events.NewBus()
	unsubscribeCreated := bus.Subscribe(events.EventRequestCreated, func(e events.Event) {
		log.Info("event %s: request_id=%d, parent_id=%d", e.Type, e.RequestID, e.ParentID)
	})
	unsubscribeStatus := bus.Subscribe(events.EventRequestStatusChanged, func(e events.Event) {
		log.Info("event %s: request_id=%d, status=%s", e.Type, e.RequestID, e.Status)
	})
	unsubscribeChildren := bus.Subscribe(events.EventChildrenUpdated, func(e events.Event) {
		log.Info("event %s: parent_id=%d, child_id=%d", e.Type, e.ParentID, e.ChildID)
	})

	// Внутрипроцессная защёлка от повторной отправки
	submissionGuard := inflight.New()

	// Инициализируем сервисы
	requestsSvc := requestsService.NewService(requestRepository, userClient, bus, log)
	childrenSvc := childrenService.NewService(childRepository, bus, log)

	// Инициализируем use cases
	createRequestUseCase := createRequestUC.NewUseCase(
		requestRepository,
		childRepository,
		userClient,
		geoClient,
		txMgr,
		submissionGuard,
		idempotencyStore,
		bus,
		log,
	)
	previewScheduleUseCase := previewScheduleUC.NewUseCase(log)

	// Инициализируем handlers
	createRequest := createRequestHandler.NewHandler(createRequestUseCase, log)
	previewSchedule := previewScheduleHandler.NewHandler(previewScheduleUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	cancelRequest := cancelRequestHandler.NewHandler(requestsSvc, log)
	respondRequest := respondRequestHandler.NewHandler(requestsSvc, log)
	getParentRequests := getParentRequestsHandler.NewHandler(requestsSvc, log)
	getSitterInbox := getSitterInboxHandler.NewHandler(requestsSvc, log)
	createChild := createChildHandler.NewHandler(childrenSvc, log)
	getParentChildren := getParentChildrenHandler.NewHandler(childrenSvc, log)
	updateChild := updateChildHandler.NewHandler(childrenSvc, log)
	deleteChild := deleteChildHandler.NewHandler(childrenSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Rate limiting (если включено)
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, stopCh)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все маршруты требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Запросы на сессии ---
	// Создание запроса на сессию
	protected.HandleFunc("/session-requests", createRequest.Handle).Methods(http.MethodPost)

	// Предпросмотр расписания без отправки
	protected.HandleFunc("/session-requests/preview", previewSchedule.Handle).Methods(http.MethodPost)

	// Получение запроса по ID
	protected.HandleFunc("/session-requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Отмена запроса
	protected.HandleFunc("/session-requests/{requestId}/cancel", cancelRequest.Handle).Methods(http.MethodPatch)

	// Ответ ситтера на запрос
	protected.HandleFunc("/session-requests/{requestId}/respond", respondRequest.Handle).Methods(http.MethodPatch)

	// История запросов родителя
	protected.HandleFunc("/parents/{parentId}/session-requests", getParentRequests.Handle).Methods(http.MethodGet)

	// Входящие запросы ситтера
	protected.HandleFunc("/sitters/{sitterId}/inbox", getSitterInbox.Handle).Methods(http.MethodGet)

	// --- Детские записи ---
	// Создание детской записи
	protected.HandleFunc("/children", createChild.Handle).Methods(http.MethodPost)

	// Детские записи родителя
	protected.HandleFunc("/parents/{parentId}/children", getParentChildren.Handle).Methods(http.MethodGet)

	// Обновление детской записи
	protected.HandleFunc("/children/{childId}", updateChild.Handle).Methods(http.MethodPut)

	// Удаление детской записи
	protected.HandleFunc("/children/{childId}", deleteChild.Handle).Methods(http.MethodDelete)

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

	// Останавливаем фоновые горутины (метрики пула, очистка rate limiter)
	close(stopCh)

	// Отписываем логирующих подписчиков шины событий
	unsubscribeCreated()
	unsubscribeStatus()
	unsubscribeChildren()

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
