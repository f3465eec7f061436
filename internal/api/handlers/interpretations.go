// interpretations.go — обработчики /api/interpretations endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/service"
)

// interpretationRequest — тело запроса создания/обновления толкования.
// nil-поле при обновлении означает "не менять".
type interpretationRequest struct {
	SuraNumber           *int    `json:"suraNumber"`
	AyaRangeStart        *int    `json:"ayaRangeStart"`
	AyaRangeEnd          *int    `json:"ayaRangeEnd"`
	InterpretationNumber *int    `json:"interpretationNumber"`
	Language             *string `json:"language"`
	TranslationText      *string `json:"translationText"`
}

func (req interpretationRequest) input() service.InterpretationInput {
	return service.InterpretationInput{
		SuraNumber:           req.SuraNumber,
		AyaRangeStart:        req.AyaRangeStart,
		AyaRangeEnd:          req.AyaRangeEnd,
		InterpretationNumber: req.InterpretationNumber,
		Language:             req.Language,
		TranslationText:      req.TranslationText,
	}
}

// ListInterpretations — GET /api/interpretations.
// Фильтры и порядок — как у переводов.
func (h *APIHandler) ListInterpretations(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	interpretations, total, err := h.interpretations.List(r.Context(), ayaFilterFromQuery(r), limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка толкований")
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(interpretations, page, limit, total))
}

// CreateInterpretation — POST /api/interpretations.
func (h *APIHandler) CreateInterpretation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req interpretationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	interp, err := h.interpretations.Create(r.Context(), session, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания толкования")
		return
	}

	writeJSON(w, http.StatusCreated, interp)
}

// GetInterpretation — GET /api/interpretations/{id}.
func (h *APIHandler) GetInterpretation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	interp, err := h.interpretations.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения толкования", "interpretation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, interp)
}

// UpdateInterpretation — PUT /api/interpretations/{id}.
func (h *APIHandler) UpdateInterpretation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req interpretationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	interp, err := h.interpretations.Update(r.Context(), session, id, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка обновления толкования", "interpretation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, interp)
}

// DeleteInterpretation — DELETE /api/interpretations/{id}.
func (h *APIHandler) DeleteInterpretation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.interpretations.Delete(r.Context(), session, id); err != nil {
		h.writeServiceError(w, err, "Ошибка удаления толкования", "interpretation_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyInterpretation — POST /api/interpretations/{id}/verify.
// Доступ: verifier. Повторная верификация — 409.
func (h *APIHandler) VerifyInterpretation(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	interp, err := h.interpretations.Verify(r.Context(), session, id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка верификации толкования", "interpretation_id", id)
		return
	}

	writeJSON(w, http.StatusOK, interp)
}
