package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alfurqan/quran-cms/internal/api/middleware"
	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/repository"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/service"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo — in-memory реализация repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id, loginCode, role string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	u, ok := r.users[loginCode]
	if !ok {
		u = &model.User{ID: id, LoginCode: loginCode, IsActive: true, CreatedAt: now}
		r.users[loginCode] = u
	}
	u.Role = role
	u.LastLogin = &now
	u.LoginCount++
	u.UpdatedAt = now
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByLoginCode(_ context.Context, loginCode string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[loginCode]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// newTestHandler создаёт APIHandler с сервисом аутентификации для тестов.
func newTestHandler() *APIHandler {
	auth := service.NewAuthService(newFakeUserRepo(),
		[]string{"c-alpha"}, []string{"v-gamma"},
		"0123456789abcdef0123456789abcdef", time.Hour, testLogger())
	return NewAPIHandler(nil, auth, nil, nil, nil, nil, nil, false, testLogger())
}

// --- Тесты пагинации ---

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"limit capped", "limit=500", 1, 100},
		{"page below minimum", "page=0", 1, 20},
		{"negative limit", "limit=-5", 1, 20},
		{"not a number", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/suras?"+tt.query, nil)
			page, limit := parsePagination(r)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("parsePagination() = (%d, %d), хотели (%d, %d)",
					page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := newListResponse([]string{"a", "b"}, 2, 20, 45)

	if resp.Pagination.Page != 2 {
		t.Errorf("Page = %d, хотели 2", resp.Pagination.Page)
	}
	if resp.Pagination.Total != 45 {
		t.Errorf("Total = %d, хотели 45", resp.Pagination.Total)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("TotalPages = %d, хотели 3", resp.Pagination.TotalPages)
	}

	empty := newListResponse([]string{}, 1, 20, 0)
	if empty.Pagination.TotalPages != 0 {
		t.Errorf("TotalPages = %d, хотели 0", empty.Pagination.TotalPages)
	}
}

func TestNewListResponse_NilItems(t *testing.T) {
	// Репозитории строят результат через append и на пустой выборке
	// возвращают nil-срез; наружу всё равно должен уйти пустой массив.
	var suras []*model.Sura
	resp := newListResponse(suras, 1, 20, 0)

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() ошибка: %v", err)
	}
	if !strings.Contains(string(b), `"items":[]`) {
		t.Errorf("ответ пустого списка: %s, хотели \"items\":[]", b)
	}
}

// --- Тесты аутентификации через HTTP ---

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	h := newTestHandler()

	body := strings.NewReader(`{"loginCode":"c-alpha"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d, тело: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if resp.Token == "" {
		t.Error("ожидался непустой token")
	}
	if resp.Role != rbac.RoleCreator {
		t.Errorf("Role = %q, хотели creator", resp.Role)
	}

	var authCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			authCookie = c
		}
	}
	if authCookie == nil {
		t.Fatal("cookie auth-token не установлена")
	}
	if !authCookie.HttpOnly {
		t.Error("cookie должна быть HttpOnly")
	}
	if authCookie.Value != resp.Token {
		t.Error("cookie и тело ответа содержат разные токены")
	}
}

func TestLogin_UnknownCode(t *testing.T) {
	h := newTestHandler()

	body := strings.NewReader(`{"loginCode":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}
}

func TestLogin_EmptyCode(t *testing.T) {
	h := newTestHandler()

	body := strings.NewReader(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("ожидался статус 400, получен %d", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("ожидался статус 204, получен %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.AuthCookieName {
		t.Fatal("ожидалась одна cookie auth-token")
	}
	if cookies[0].MaxAge >= 0 {
		t.Error("cookie должна быть сброшена (MaxAge < 0)")
	}
}

func TestMe_ReturnsSession(t *testing.T) {
	h := newTestHandler()

	session := rbac.Session{LoginCode: "v-gamma", Role: rbac.RoleVerifier}
	ctx := context.WithValue(context.Background(), middleware.ContextKeySession, session)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался статус 200, получен %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if resp.LoginCode != "v-gamma" || resp.Role != rbac.RoleVerifier {
		t.Errorf("сессия = %+v, хотели v-gamma/verifier", resp)
	}
}

func TestMe_NoSession(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ожидался статус 401, получен %d", rec.Code)
	}
}
