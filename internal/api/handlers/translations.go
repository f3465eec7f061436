// translations.go — обработчики /api/translations endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/repository"
	"github.com/alfurqan/quran-cms/internal/service"
)

// translationRequest — тело запроса создания/обновления перевода.
// nil-поле при обновлении означает "не менять".
type translationRequest struct {
	SuraNumber      *int    `json:"suraNumber"`
	AyaRangeStart   *int    `json:"ayaRangeStart"`
	AyaRangeEnd     *int    `json:"ayaRangeEnd"`
	Language        *string `json:"language"`
	TranslationText *string `json:"translationText"`
}

func (req translationRequest) input() service.TranslationInput {
	return service.TranslationInput{
		SuraNumber:      req.SuraNumber,
		AyaRangeStart:   req.AyaRangeStart,
		AyaRangeEnd:     req.AyaRangeEnd,
		Language:        req.Language,
		TranslationText: req.TranslationText,
	}
}

// ayaFilterFromQuery читает общие фильтры переводов и толкований:
// suraNumber, language, isVerified.
func ayaFilterFromQuery(r *http.Request) repository.AyaFilter {
	return repository.AyaFilter{
		SuraNumber: optionalInt(r, "suraNumber"),
		Language:   optionalString(r, "language"),
		IsVerified: optionalBool(r, "isVerified"),
	}
}

// ListTranslations — GET /api/translations.
// Фильтры: suraNumber, language, isVerified.
// Порядок: по номеру суры, затем по началу диапазона аятов.
func (h *APIHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	translations, total, err := h.translations.List(r.Context(), ayaFilterFromQuery(r), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка переводов")
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(translations, page, limit, total))
}

// CreateTranslation — POST /api/translations.
func (h *APIHandler) CreateTranslation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req translationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	tr, err := h.translations.Create(r.Context(), session, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания перевода")
		return
	}

	writeJSON(w, http.StatusCreated, tr)
}

// GetTranslation — GET /api/translations/{id}.
func (h *APIHandler) GetTranslation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tr, err := h.translations.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения перевода", "translation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, tr)
}

// UpdateTranslation — PUT /api/translations/{id}.
func (h *APIHandler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req translationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	tr, err := h.translations.Update(r.Context(), session, id, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка обновления перевода", "translation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, tr)
}

// DeleteTranslation — DELETE /api/translations/{id}.
func (h *APIHandler) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.translations.Delete(r.Context(), session, id); err != nil {
		h.writeServiceError(w, err, "Ошибка удаления перевода", "translation_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyTranslation — POST /api/translations/{id}/verify.
// Доступ: verifier. Повторная верификация — 409.
func (h *APIHandler) VerifyTranslation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	tr, err := h.translations.Verify(r.Context(), session, id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка верификации перевода", "translation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, tr)
}
