// suras.go — обработчики /api/suras endpoints.
// Чтение публичное, мутации и верификация требуют сессию.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/repository"
	"github.com/alfurqan/quran-cms/internal/service"
)

// suraRequest — тело запроса создания/обновления суры.
// nil-поле при обновлении означает "не менять".
type suraRequest struct {
	SuraNumber  *int    `json:"suraNumber"`
	Name        *string `json:"name"`
	ArabicName  *string `json:"arabicName"`
	Description *string `json:"description"`
	AyathCount  *int    `json:"ayathCount"`
	Place       *string `json:"place"`
}

// input конвертирует тело запроса во входные данные сервиса.
func (req suraRequest) input() service.SuraInput {
	return service.SuraInput{
		SuraNumber:  req.SuraNumber,
		Name:        req.Name,
		ArabicName:  req.ArabicName,
		Description: req.Description,
		AyathCount:  req.AyathCount,
		Place:       req.Place,
	}
}

// ListSuras — GET /api/suras.
// Фильтры: search (подстрока по name/arabicName/description), isVerified.
// Порядок: сначала неверифицированные, затем по номеру суры.
func (h *APIHandler) ListSuras(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	filter := repository.SuraFilter{
		Search:     optionalString(r, "search"),
		IsVerified: optionalBool(r, "isVerified"),
	}

	suras, total, err := h.suras.List(r.Context(), filter, limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения списка сур")
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(suras, page, limit, total))
}

// CreateSura — POST /api/suras.
// Доступ: creator или verifier.
func (h *APIHandler) CreateSura(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req suraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	sura, err := h.suras.Create(r.Context(), session, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка создания суры")
		return
	}

	writeJSON(w, http.StatusCreated, sura)
}

// GetSura — GET /api/suras/{id}.
func (h *APIHandler) GetSura(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sura, err := h.suras.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения суры", "sura_id", id)
		return
	}

	writeJSON(w, http.StatusOK, sura)
}

// UpdateSura — PUT /api/suras/{id}.
// Обновляются только переданные поля. Конверт авторства и статус
// верификации через этот endpoint не меняются.
func (h *APIHandler) UpdateSura(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req suraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	sura, err := h.suras.Update(r.Context(), session, id, req.input())
	if err != nil {
		h.writeServiceError(w, err, "Ошибка обновления суры", "sura_id", id)
		return
	}

	writeJSON(w, http.StatusOK, sura)
}

// DeleteSura — DELETE /api/suras/{id}.
func (h *APIHandler) DeleteSura(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.suras.Delete(r.Context(), session, id); err != nil {
		h.writeServiceError(w, err, "Ошибка удаления суры", "sura_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifySura — POST /api/suras/{id}/verify.
// Доступ: verifier. Повторная верификация — 409.
func (h *APIHandler) VerifySura(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	sura, err := h.suras.Verify(r.Context(), session, id)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка верификации суры", "sura_id", id)
		return
	}

	writeJSON(w, http.StatusOK, sura)
}
