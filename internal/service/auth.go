// auth.go — аутентификация по login code.
//
// Пароли и внешний IdP не используются: код доступа сопоставляется
// с настроенными наборами кодов, роль определяется набором. Успешный
// вход фиксируется в таблице users и выпускает session token (HS256).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// AuthService — сервис аутентификации.
type AuthService struct {
	userRepo      repository.UserRepository
	creatorCodes  []string
	verifierCodes []string
	jwtSecret     []byte
	sessionTTL    time.Duration
	logger        *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	userRepo repository.UserRepository,
	creatorCodes, verifierCodes []string,
	jwtSecret string,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		creatorCodes:  creatorCodes,
		verifierCodes: verifierCodes,
		jwtSecret:     []byte(jwtSecret),
		sessionTTL:    sessionTTL,
		logger:        logger.With(slog.String("component", "auth_service")),
	}
}

// LoginResult — результат успешного входа.
type LoginResult struct {
	// Token — подписанный session token.
	Token string
	// ExpiresAt — момент истечения токена.
	ExpiresAt time.Time
	// User — состояние пользователя после фиксации входа.
	User *model.User
	// Session — сессия для немедленного использования.
	Session rbac.Session
}

// Login выполняет вход по login code.
// Неизвестный код — ErrInvalidLoginCode, без уточнения причины:
// ответ не должен раскрывать, какие коды существуют.
func (s *AuthService) Login(ctx context.Context, code string) (*LoginResult, error) {
	role, ok := rbac.RoleForLoginCode(code, s.creatorCodes, s.verifierCodes)
	if !ok {
		s.logger.Warn("Попытка входа с неизвестным login code")
		return nil, ErrInvalidLoginCode
	}

	// Код из конфигурации может быть отозван деактивацией пользователя.
	existing, err := s.userRepo.GetByLoginCode(ctx, code)
	switch {
	case err == nil && !existing.IsActive:
		s.logger.Warn("Попытка входа с деактивированным login code")
		return nil, ErrInvalidLoginCode
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	user, err := s.userRepo.RecordLogin(ctx, uuid.New().String(), code, role)
	if err != nil {
		return nil, fmt.Errorf("фиксация входа: %w", err)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.sessionTTL)

	claims := jwt.MapClaims{
		"loginCode": code,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("подпись session token: %w", err)
	}

	s.logger.Info("Вход выполнен",
		slog.String("role", role),
		slog.Int("login_count", user.LoginCount),
	)

	return &LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
		Session:   rbac.Session{LoginCode: code, Role: role},
	}, nil
}
