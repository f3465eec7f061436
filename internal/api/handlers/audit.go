// audit.go — обработчик /api/audit endpoint.
// Журнал аудита доступен только аутентифицированным акторам.
package handlers

import (
	"net/http"

	"github.com/alfurqan/quran-cms/internal/repository"
)

// ListAudit — GET /api/audit.
// Фильтры: contentType, contentId, action, performedBy (подстрока).
// Порядок: новые записи первыми.
func (h *APIHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionFromRequest(w, r); !ok {
		return
	}

	page, limit := parsePagination(r)

	filter := repository.AuditFilter{
		ContentType: optionalString(r, "contentType"),
		ContentID:   optionalString(r, "contentId"),
		Action:      optionalString(r, "action"),
		PerformedBy: optionalString(r, "performedBy"),
	}

	entries, total, err := h.audit.List(r.Context(), filter, limit, (page-1)*limit)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка получения журнала аудита")
		return
	}

	writeJSON(w, http.StatusOK, newListResponse(entries, page, limit, total))
}
