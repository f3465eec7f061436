// Пакет server — HTTP-сервер с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alfurqan/quran-cms/internal/api/handlers"
	"github.com/alfurqan/quran-cms/internal/api/middleware"
	"github.com/alfurqan/quran-cms/internal/config"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
)

// Server — HTTP-сервер Quran CMS.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// Чтение контента публичное; мутации, верификация и журнал аудита
// проходят через sessionAuth (может быть nil для тестирования без auth).
func New(cfg *config.Config, logger *slog.Logger, handler *handlers.APIHandler, sessionAuth *middleware.SessionAuth) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	requireSession := func(next http.Handler) http.Handler { return next }
	requireVerifier := requireSession
	if sessionAuth != nil {
		requireSession = sessionAuth.Middleware()
		// Сервисный слой проверяет роль сам; middleware отсекает
		// не-верификаторов до разбора тела запроса.
		requireVerifier = middleware.RequireRole(rbac.RoleVerifier)
	}

	// Health и metrics проверяются Kubernetes напрямую, без API Gateway.
	router.Get("/health/live", handler.HealthLive)
	router.Get("/health/ready", handler.HealthReady)
	router.Get("/metrics", handler.GetMetrics)

	router.Route("/api", func(r chi.Router) {
		// Аутентификация
		r.Post("/auth/login", handler.Login)
		r.Post("/auth/logout", handler.Logout)
		r.With(requireSession).Get("/auth/me", handler.Me)

		// Суры
		r.Route("/suras", func(r chi.Router) {
			r.Get("/", handler.ListSuras)
			r.Get("/{id}", handler.GetSura)
			r.With(requireSession).Post("/", handler.CreateSura)
			r.With(requireSession).Put("/{id}", handler.UpdateSura)
			r.With(requireSession).Delete("/{id}", handler.DeleteSura)
			r.With(requireSession, requireVerifier).Post("/{id}/verify", handler.VerifySura)
		})

		// Переводы аятов
		r.Route("/translations", func(r chi.Router) {
			r.Get("/", handler.ListTranslations)
			r.Get("/{id}", handler.GetTranslation)
			r.With(requireSession).Post("/", handler.CreateTranslation)
			r.With(requireSession).Put("/{id}", handler.UpdateTranslation)
			r.With(requireSession).Delete("/{id}", handler.DeleteTranslation)
			r.With(requireSession, requireVerifier).Post("/{id}/verify", handler.VerifyTranslation)
		})

		// Толкования аятов
		r.Route("/interpretations", func(r chi.Router) {
			r.Get("/", handler.ListInterpretations)
			r.Get("/{id}", handler.GetInterpretation)
			r.With(requireSession).Post("/", handler.CreateInterpretation)
			r.With(requireSession).Put("/{id}", handler.UpdateInterpretation)
			r.With(requireSession).Delete("/{id}", handler.DeleteInterpretation)
			r.With(requireSession, requireVerifier).Post("/{id}/verify", handler.VerifyInterpretation)
		})

		// Страницы-синглтоны (AboutUs, Author, ContactUs, Help)
		r.Route("/pages/{kind}", func(r chi.Router) {
			r.Get("/", handler.ListPages)
			r.Get("/{id}", handler.GetPage)
			r.With(requireSession).Post("/", handler.CreatePage)
			r.With(requireSession).Put("/{id}", handler.UpdatePage)
			r.With(requireSession).Delete("/{id}", handler.DeletePage)
			r.With(requireSession, requireVerifier).Post("/{id}/verify", handler.VerifyPage)
		})

		// Журнал аудита
		r.With(requireSession).Get("/audit", handler.ListAudit)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
