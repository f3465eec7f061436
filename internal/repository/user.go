package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// UserRepository — интерфейс доступа к таблице users.
// Пользователи создаются лениво при первом успешном входе.
type UserRepository interface {
	// RecordLogin фиксирует вход: создаёт пользователя при первом входе
	// или увеличивает login_count и обновляет last_login.
	// Возвращает актуальное состояние пользователя.
	RecordLogin(ctx context.Context, id, loginCode, role string) (*model.User, error)
	// GetByLoginCode возвращает пользователя по login code.
	GetByLoginCode(ctx context.Context, loginCode string) (*model.User, error)
}

// userRepo — реализация UserRepository.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, login_code, role, last_login, login_count, is_active, created_at, updated_at`

func (r *userRepo) RecordLogin(ctx context.Context, id, loginCode, role string) (*model.User, error) {
	// Upsert: конфликт по login_code означает повторный вход.
	query := fmt.Sprintf(`
		INSERT INTO users (id, login_code, role, last_login, login_count)
		VALUES ($1, $2, $3, now(), 1)
		ON CONFLICT (login_code) DO UPDATE
		SET role = EXCLUDED.role,
			last_login = now(),
			login_count = users.login_count + 1,
			updated_at = now()
		RETURNING %s`, userColumns)

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, id, loginCode, role).Scan(
		&u.ID, &u.LoginCode, &u.Role, &u.LastLogin,
		&u.LoginCount, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка фиксации входа: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetByLoginCode(ctx context.Context, loginCode string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE login_code = $1`, userColumns)

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, loginCode).Scan(
		&u.ID, &u.LoginCode, &u.Role, &u.LastLogin,
		&u.LoginCount, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}
