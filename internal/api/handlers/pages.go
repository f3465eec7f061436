// pages.go — обработчики /api/pages/{kind} endpoints.
// Четыре вида страниц-синглтонов (AboutUs, Author, ContactUs, Help)
// обслуживаются одним набором обработчиков: вид — сегмент пути.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/service"
)

// resolvePageKind приводит сегмент пути к каноническому виду страницы.
// Сравнение без учёта регистра: /api/pages/aboutUs и /api/pages/aboutus
// равнозначны. Неизвестный вид пишет 404 и возвращает ok=false.
func resolvePageKind(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "kind")
	for _, kind := range service.PageKinds() {
		if strings.EqualFold(raw, kind) {
			return kind, true
		}
	}
	apierrors.NotFound(w, "Неизвестный вид страницы: "+raw)
	return "", false
}

// ListPages — GET /api/pages/{kind}.
// Фильтр: isVerified. Help сортируется по полю order, остальные — новые первыми.
func (h *APIHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	page, limit := parsePagination(r)

	pages, total, err := h.pages.List(r.Context(), kind, optionalBool(r, "isVerified"), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка страниц", "kind", kind)
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(pages, page, limit, total))
}

// CreatePage — POST /api/pages/{kind}.
// Тело — поля полезной нагрузки вида; валидируются против схемы вида.
func (h *APIHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	created, err := h.pages.Create(r.Context(), session, kind, data)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания страницы", "kind", kind)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetPage — GET /api/pages/{kind}/{id}.
// Идентификатор другого вида — 404: id не пересекают границы видов.
func (h *APIHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	found, err := h.pages.Get(r.Context(), kind, id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения страницы", "kind", kind, "page_id", id)
		return
	}

	writeJSON(w, http.StatusOK, found)
}

// UpdatePage — PUT /api/pages/{kind}/{id}.
// Переданные поля заменяют одноимённые, остальные сохраняются.
func (h *APIHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	updated, err := h.pages.Update(r.Context(), session, kind, id, data)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка обновления страницы", "kind", kind, "page_id", id)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeletePage — DELETE /api/pages/{kind}/{id}.
func (h *APIHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.pages.Delete(r.Context(), session, kind, id); err != nil {
		h.writeServiceError(w, err, "Ошибка удаления страницы", "kind", kind, "page_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyPage — POST /api/pages/{kind}/{id}/verify.
// Доступ: verifier. Повторная верификация — 409.
func (h *APIHandler) VerifyPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := resolvePageKind(w, r)
	if !ok {
		return
	}

	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	verified, err := h.pages.Verify(r.Context(), session, kind, id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка верификации страницы", "kind", kind, "page_id", id)
		return
	}

	writeJSON(w, http.StatusOK, verified)
}
