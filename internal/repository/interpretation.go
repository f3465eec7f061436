package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// InterpretationRepository — интерфейс CRUD для таблицы interpretations.
type InterpretationRepository interface {
	// Create создаёт новое толкование.
	Create(ctx context.Context, in *model.Interpretation) error
	// GetByID возвращает толкование по UUID.
	GetByID(ctx context.Context, id string) (*model.Interpretation, error)
	// List возвращает список толкований с фильтрацией и пагинацией.
	// Сортировка: по номеру суры, затем по началу диапазона аятов.
	List(ctx context.Context, f AyaFilter, limit, offset int) ([]*model.Interpretation, error)
	// Update обновляет толкование целиком.
	Update(ctx context.Context, in *model.Interpretation) error
	// Delete удаляет толкование.
	Delete(ctx context.Context, id string) error
	// Count возвращает количество толкований с фильтрацией.
	Count(ctx context.Context, f AyaFilter) (int, error)
}

// interpretationRepo — реализация InterpretationRepository.
type interpretationRepo struct {
	db DBTX
}

// NewInterpretationRepository создаёт репозиторий толкований.
func NewInterpretationRepository(db DBTX) InterpretationRepository {
	return &interpretationRepo{db: db}
}

const interpretationColumns = `id, sura_number, aya_range_start, aya_range_end,
		interpretation_number, language, translation_text,
		created_by, created_by_role, is_verified, verified_by, verified_at,
		created_at, updated_at`

func (r *interpretationRepo) Create(ctx context.Context, in *model.Interpretation) error {
	query := `
		INSERT INTO interpretations (id, sura_number, aya_range_start, aya_range_end,
			interpretation_number, language, translation_text,
			created_by, created_by_role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		in.ID, in.SuraNumber, in.AyaRangeStart, in.AyaRangeEnd,
		in.InterpretationNumber, in.Language, in.TranslationText,
		in.CreatedBy, in.CreatedByRole, in.IsVerified,
	).Scan(&in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания толкования: %w", err)
	}
	return nil
}

func (r *interpretationRepo) GetByID(ctx context.Context, id string) (*model.Interpretation, error) {
	query := fmt.Sprintf(`SELECT %s FROM interpretations WHERE id = $1`, interpretationColumns)

	in := &model.Interpretation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&in.ID, &in.SuraNumber, &in.AyaRangeStart, &in.AyaRangeEnd,
		&in.InterpretationNumber, &in.Language, &in.TranslationText,
		&in.CreatedBy, &in.CreatedByRole, &in.IsVerified,
		&in.VerifiedBy, &in.VerifiedAt, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения толкования: %w", err)
	}
	return in, nil
}

func (r *interpretationRepo) List(ctx context.Context, f AyaFilter, limit, offset int) ([]*model.Interpretation, error) {
	where, args := buildAyaWhere(f)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM interpretations
		%s
		ORDER BY sura_number ASC, aya_range_start ASC
		LIMIT $%d OFFSET $%d`, interpretationColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка толкований: %w", err)
	}
	defer rows.Close()

	var result []*model.Interpretation
	for rows.Next() {
		in := &model.Interpretation{}
		if err := rows.Scan(
			&in.ID, &in.SuraNumber, &in.AyaRangeStart, &in.AyaRangeEnd,
			&in.InterpretationNumber, &in.Language, &in.TranslationText,
			&in.CreatedBy, &in.CreatedByRole, &in.IsVerified,
			&in.VerifiedBy, &in.VerifiedAt, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования толкования: %w", err)
		}
		result = append(result, in)
	}
	return result, rows.Err()
}

func (r *interpretationRepo) Update(ctx context.Context, in *model.Interpretation) error {
	query := `
		UPDATE interpretations
		SET sura_number = $2, aya_range_start = $3, aya_range_end = $4,
			interpretation_number = $5, language = $6, translation_text = $7,
			is_verified = $8, verified_by = $9, verified_at = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		in.ID, in.SuraNumber, in.AyaRangeStart, in.AyaRangeEnd,
		in.InterpretationNumber, in.Language, in.TranslationText,
		in.IsVerified, in.VerifiedBy, in.VerifiedAt,
	).Scan(&in.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления толкования: %w", err)
	}
	return nil
}

func (r *interpretationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interpretations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления толкования: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interpretationRepo) Count(ctx context.Context, f AyaFilter) (int, error) {
	where, args := buildAyaWhere(f)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM interpretations %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта толкований: %w", err)
	}
	return count, nil
}
