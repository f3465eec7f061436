package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// AyaFilter — параметры фильтрации переводов и толкований.
type AyaFilter struct {
	// SuraNumber — фильтр по номеру суры.
	SuraNumber *int
	// Language — фильтр по языку.
	Language *string
	// IsVerified — фильтр по статусу верификации.
	IsVerified *bool
}

// TranslationRepository — интерфейс CRUD для таблицы translations.
type TranslationRepository interface {
	// Create создаёт новый перевод.
	Create(ctx context.Context, tr *model.Translation) error
	// GetByID возвращает перевод по UUID.
	GetByID(ctx context.Context, id string) (*model.Translation, error)
	// List возвращает список переводов с фильтрацией и пагинацией.
	// Сортировка: по номеру суры, затем по началу диапазона аятов.
	List(ctx context.Context, f AyaFilter, limit, offset int) ([]*model.Translation, error)
	// Update обновляет перевод целиком.
	Update(ctx context.Context, tr *model.Translation) error
	// Delete удаляет перевод.
	Delete(ctx context.Context, id string) error
	// Count возвращает количество переводов с фильтрацией.
	Count(ctx context.Context, f AyaFilter) (int, error)
}

// translationRepo — реализация TranslationRepository.
type translationRepo struct {
	db DBTX
}

// NewTranslationRepository создаёт репозиторий переводов.
func NewTranslationRepository(db DBTX) TranslationRepository {
	return &translationRepo{db: db}
}

const translationColumns = `id, sura_number, aya_range_start, aya_range_end, language, translation_text,
		created_by, created_by_role, is_verified, verified_by, verified_at,
		created_at, updated_at`

func (r *translationRepo) Create(ctx context.Context, tr *model.Translation) error {
	query := `
		INSERT INTO translations (id, sura_number, aya_range_start, aya_range_end,
			language, translation_text, created_by, created_by_role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		tr.ID, tr.SuraNumber, tr.AyaRangeStart, tr.AyaRangeEnd,
		tr.Language, tr.TranslationText, tr.CreatedBy, tr.CreatedByRole, tr.IsVerified,
	).Scan(&tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания перевода: %w", err)
	}
	return nil
}

func (r *translationRepo) GetByID(ctx context.Context, id string) (*model.Translation, error) {
	query := fmt.Sprintf(`SELECT %s FROM translations WHERE id = $1`, translationColumns)

	tr := &model.Translation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tr.ID, &tr.SuraNumber, &tr.AyaRangeStart, &tr.AyaRangeEnd,
		&tr.Language, &tr.TranslationText, &tr.CreatedBy, &tr.CreatedByRole,
		&tr.IsVerified, &tr.VerifiedBy, &tr.VerifiedAt, &tr.CreatedAt, &tr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения перевода: %w", err)
	}
	return tr, nil
}

// buildAyaWhere строит WHERE-условия фильтра переводов/толкований.
func buildAyaWhere(f AyaFilter) (string, []any) {
	var conditions []string
	var args []any
	argNum := 1

	if f.SuraNumber != nil {
		conditions = append(conditions, fmt.Sprintf("sura_number = $%d", argNum))
		args = append(args, *f.SuraNumber)
		argNum++
	}
	if f.Language != nil && *f.Language != "" {
		conditions = append(conditions, fmt.Sprintf("language = $%d", argNum))
		args = append(args, *f.Language)
		argNum++
	}
	if f.IsVerified != nil {
		conditions = append(conditions, fmt.Sprintf("is_verified = $%d", argNum))
		args = append(args, *f.IsVerified)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *translationRepo) List(ctx context.Context, f AyaFilter, limit, offset int) ([]*model.Translation, error) {
	where, args := buildAyaWhere(f)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM translations
		%s
		ORDER BY sura_number ASC, aya_range_start ASC
		LIMIT $%d OFFSET $%d`, translationColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка переводов: %w", err)
	}
	defer rows.Close()

	var result []*model.Translation
	for rows.Next() {
		tr := &model.Translation{}
		if err := rows.Scan(
			&tr.ID, &tr.SuraNumber, &tr.AyaRangeStart, &tr.AyaRangeEnd,
			&tr.Language, &tr.TranslationText, &tr.CreatedBy, &tr.CreatedByRole,
			&tr.IsVerified, &tr.VerifiedBy, &tr.VerifiedAt, &tr.CreatedAt, &tr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования перевода: %w", err)
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}

func (r *translationRepo) Update(ctx context.Context, tr *model.Translation) error {
	query := `
		UPDATE translations
		SET sura_number = $2, aya_range_start = $3, aya_range_end = $4,
			language = $5, translation_text = $6, is_verified = $7,
			verified_by = $8, verified_at = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		tr.ID, tr.SuraNumber, tr.AyaRangeStart, tr.AyaRangeEnd,
		tr.Language, tr.TranslationText, tr.IsVerified, tr.VerifiedBy, tr.VerifiedAt,
	).Scan(&tr.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления перевода: %w", err)
	}
	return nil
}

func (r *translationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM translations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления перевода: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *translationRepo) Count(ctx context.Context, f AyaFilter) (int, error) {
	where, args := buildAyaWhere(f)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM translations %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта переводов: %w", err)
	}
	return count, nil
}
