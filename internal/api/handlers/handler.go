// handler.go — основной обработчик REST API.
// Объединяет все доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/api/middleware"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/service"
)

// APIHandler — основной обработчик REST API.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	health          *HealthHandler
	auth            *service.AuthService
	suras           *service.SuraService
	translations    *service.TranslationService
	interpretations *service.InterpretationService
	pages           *service.PageService
	audit           *service.AuditService
	cookieSecure    bool
	logger          *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	auth *service.AuthService,
	suras *service.SuraService,
	translations *service.TranslationService,
	interpretations *service.InterpretationService,
	pages *service.PageService,
	audit *service.AuditService,
	cookieSecure bool,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:          health,
		auth:            auth,
		suras:           suras,
		translations:    translations,
		interpretations: interpretations,
		pages:           pages,
		audit:           audit,
		cookieSecure:    cookieSecure,
		logger:          logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Границы пагинации.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination читает query-параметры page и limit.
// page от 1, limit по умолчанию 20, максимум 100.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			limit = n
			if limit > maxPageLimit {
				limit = maxPageLimit
			}
		}
	}
	return page, limit
}

// paginationInfo — блок пагинации в ответах списков.
type paginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// listResponse — единая форма ответа списков: {items, pagination}.
type listResponse struct {
	Items      any            `json:"items"`
	Pagination paginationInfo `json:"pagination"`
}

// newListResponse строит ответ списка. nil-срез нормализуется:
// в JSON должен уйти пустой массив, а не null.
func newListResponse[T any](items []T, page, limit, total int) listResponse {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return listResponse{
		Items: items,
		Pagination: paginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// sessionFromRequest возвращает сессию актора или пишет 401.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (rbac.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		apierrors.Unauthorized(w, "Отсутствует сессия в контексте")
	}
	return session, ok
}

// optionalBool читает опциональный булев query-параметр.
func optionalBool(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// optionalString читает опциональный строковый query-параметр.
func optionalString(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// optionalInt читает опциональный целочисленный query-параметр.
func optionalInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// writeServiceError транслирует ошибку сервисного слоя в HTTP-ответ.
// Неожиданные ошибки логируются с деталями, наружу уходит общая формулировка.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error, logMsg string, logAttrs ...any) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrInvalidLoginCode):
		apierrors.Unauthorized(w, "Неверный login code")
	case errors.Is(err, service.ErrForbidden):
		apierrors.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "Запись не найдена")
	case errors.Is(err, service.ErrAlreadyVerified):
		apierrors.Conflict(w, err.Error())
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, err.Error())
	default:
		h.logger.Error(logMsg, append(logAttrs, "error", err)...)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
	}
}
