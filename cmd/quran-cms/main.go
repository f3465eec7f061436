// Точка входа Quran CMS — backend управления контентом.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// создаёт репозитории, сервисный слой и API handlers, запускает
// мониторинг зависимостей (topologymetrics), HTTP-сервер с session
// middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/alfurqan/quran-cms/internal/api/handlers"
	"github.com/alfurqan/quran-cms/internal/api/middleware"
	"github.com/alfurqan/quran-cms/internal/config"
	"github.com/alfurqan/quran-cms/internal/database"
	"github.com/alfurqan/quran-cms/internal/repository"
	"github.com/alfurqan/quran-cms/internal/server"
	"github.com/alfurqan/quran-cms/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Quran CMS запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	if os.Getenv("QC_DEPHEALTH_GROUP") == "" {
		logger.Warn("QC_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL будет идти через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Repositories
	suraRepo := repository.NewSuraRepository(pool)
	translationRepo := repository.NewTranslationRepository(pool)
	interpretationRepo := repository.NewInterpretationRepository(pool)
	pageRepo := repository.NewPageRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// 6. Services
	auditRecorder := service.NewAuditRecorder(auditRepo, logger)
	suraCache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)

	authSvc := service.NewAuthService(
		userRepo,
		cfg.CreatorCodes, cfg.VerifierCodes,
		cfg.JWTSecret, cfg.SessionTTL,
		logger,
	)
	suraSvc := service.NewSuraService(suraRepo, auditRecorder, suraCache, logger)
	translationSvc := service.NewTranslationService(translationRepo, auditRecorder, logger)
	interpretationSvc := service.NewInterpretationService(interpretationRepo, auditRecorder, logger)
	pageSvc := service.NewPageService(pageRepo, auditRecorder, logger)
	auditSvc := service.NewAuditService(auditRepo, logger)

	// 7. Readiness checker (PostgreSQL)
	pgChecker := database.NewReadinessChecker(pool)
	healthHandler := handlers.NewHealthHandler(pgChecker)

	// 8. API handler
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		authSvc,
		suraSvc,
		translationSvc,
		interpretationSvc,
		pageSvc,
		auditSvc,
		cfg.CookieSecure,
		logger,
	)

	// 9. Session middleware
	sessionAuth := middleware.NewSessionAuth(cfg.JWTSecret, logger)

	// 10. topologymetrics — мониторинг зависимостей (PostgreSQL)
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"quran-cms",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 11. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, sessionAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 12. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Quran CMS остановлен")
}
