// auth.go — обработчики /api/auth endpoints.
// Вход по login code, выход, текущая сессия.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/api/middleware"
)

// loginRequest — тело запроса входа.
type loginRequest struct {
	LoginCode string `json:"loginCode"`
}

// loginResponse — тело ответа успешного входа.
type loginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// sessionResponse — текущая сессия актора.
type sessionResponse struct {
	LoginCode string `json:"loginCode"`
	Role      string `json:"role"`
}

// Login — POST /api/auth/login.
// Обменивает login code на session token. Токен уходит и в теле ответа,
// и в HttpOnly cookie. Неизвестный код — 401 без уточнения причины.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.LoginCode == "" {
		apierrors.ValidationError(w, "Поле loginCode обязательно")
		return
	}

	result, err := h.auth.Login(r.Context(), req.LoginCode)
	if err != nil {
		h.writeServiceError(w, err, "Ошибка входа")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		Role:      result.Session.Role,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout — POST /api/auth/logout.
// Сбрасывает cookie сессии. Сам токен остаётся валидным до истечения:
// серверного реестра сессий нет.
func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me — GET /api/auth/me.
// Возвращает текущую сессию из токена.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		LoginCode: session.LoginCode,
		Role:      session.Role,
	})
}
