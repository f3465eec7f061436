package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// SuraFilter — параметры фильтрации списка сур.
type SuraFilter struct {
	// Search — подстрока для поиска по name, arabic_name, description (без учёта регистра).
	Search *string
	// IsVerified — фильтр по статусу верификации.
	IsVerified *bool
}

// SuraRepository — интерфейс CRUD для таблицы suras.
type SuraRepository interface {
	// Create создаёт новую суру.
	Create(ctx context.Context, s *model.Sura) error
	// GetByID возвращает суру по UUID.
	GetByID(ctx context.Context, id string) (*model.Sura, error)
	// GetByNumber возвращает суру по порядковому номеру.
	GetByNumber(ctx context.Context, number int) (*model.Sura, error)
	// List возвращает список сур с фильтрацией и пагинацией.
	// Сортировка: неверифицированные первыми, затем по номеру суры.
	List(ctx context.Context, f SuraFilter, limit, offset int) ([]*model.Sura, error)
	// Update обновляет суру целиком.
	Update(ctx context.Context, s *model.Sura) error
	// Delete удаляет суру.
	Delete(ctx context.Context, id string) error
	// Count возвращает количество сур с фильтрацией.
	Count(ctx context.Context, f SuraFilter) (int, error)
}

// suraRepo — реализация SuraRepository.
type suraRepo struct {
	db DBTX
}

// NewSuraRepository создаёт репозиторий сур.
func NewSuraRepository(db DBTX) SuraRepository {
	return &suraRepo{db: db}
}

// suraColumns — общий список колонок для SELECT.
const suraColumns = `id, sura_number, name, arabic_name, description, ayath_count, place,
		created_by, created_by_role, is_verified, verified_by, verified_at,
		created_at, updated_at`

func (r *suraRepo) Create(ctx context.Context, s *model.Sura) error {
	query := `
		INSERT INTO suras (id, sura_number, name, arabic_name, description,
			ayath_count, place, created_by, created_by_role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		s.ID, s.SuraNumber, s.Name, s.ArabicName, s.Description,
		s.AyathCount, s.Place, s.CreatedBy, s.CreatedByRole, s.IsVerified,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: сура с номером %d уже существует", ErrConflict, s.SuraNumber)
		}
		return fmt.Errorf("ошибка создания суры: %w", err)
	}
	return nil
}

func (r *suraRepo) GetByID(ctx context.Context, id string) (*model.Sura, error) {
	query := fmt.Sprintf(`SELECT %s FROM suras WHERE id = $1`, suraColumns)

	s := &model.Sura{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SuraNumber, &s.Name, &s.ArabicName, &s.Description,
		&s.AyathCount, &s.Place, &s.CreatedBy, &s.CreatedByRole,
		&s.IsVerified, &s.VerifiedBy, &s.VerifiedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения суры: %w", err)
	}
	return s, nil
}

func (r *suraRepo) GetByNumber(ctx context.Context, number int) (*model.Sura, error) {
	query := fmt.Sprintf(`SELECT %s FROM suras WHERE sura_number = $1`, suraColumns)

	s := &model.Sura{}
	err := r.db.QueryRow(ctx, query, number).Scan(
		&s.ID, &s.SuraNumber, &s.Name, &s.ArabicName, &s.Description,
		&s.AyathCount, &s.Place, &s.CreatedBy, &s.CreatedByRole,
		&s.IsVerified, &s.VerifiedBy, &s.VerifiedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения суры по номеру: %w", err)
	}
	return s, nil
}

// buildSuraWhere строит WHERE-условия фильтра сур.
func buildSuraWhere(f SuraFilter) (string, []any) {
	var conditions []string
	var args []any
	argNum := 1

	if f.Search != nil && *f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR arabic_name ILIKE $%d OR description ILIKE $%d)",
			argNum, argNum, argNum))
		args = append(args, "%"+*f.Search+"%")
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

func (r *suraRepo) List(ctx context.Context, f SuraFilter, limit, offset int) ([]*model.Sura, error) {
	where, args := buildSuraWhere(f)
	argNum := len(args) + 1

	// Неверифицированный контент первым — очередь на проверку.
	query := fmt.Sprintf(`
		SELECT %s
		FROM suras
		%s
		ORDER BY is_verified ASC, sura_number ASC
		LIMIT $%d OFFSET $%d`, suraColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сур: %w", err)
	}
	defer rows.Close()

	var result []*model.Sura
	for rows.Next() {
		s := &model.Sura{}
		if err := rows.Scan(
			&s.ID, &s.SuraNumber, &s.Name, &s.ArabicName, &s.Description,
			&s.AyathCount, &s.Place, &s.CreatedBy, &s.CreatedByRole,
			&s.IsVerified, &s.VerifiedBy, &s.VerifiedAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования суры: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *suraRepo) Update(ctx context.Context, s *model.Sura) error {
	query := `
		UPDATE suras
		SET sura_number = $2, name = $3, arabic_name = $4, description = $5,
			ayath_count = $6, place = $7, is_verified = $8, verified_by = $9,
			verified_at = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		s.ID, s.SuraNumber, s.Name, s.ArabicName, s.Description,
		s.AyathCount, s.Place, s.IsVerified, s.VerifiedBy, s.VerifiedAt,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: сура с номером %d уже существует", ErrConflict, s.SuraNumber)
		}
		return fmt.Errorf("ошибка обновления суры: %w", err)
	}
	return nil
}

func (r *suraRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления суры: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *suraRepo) Count(ctx context.Context, f SuraFilter) (int, error) {
	where, args := buildSuraWhere(f)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM suras %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта сур: %w", err)
	}
	return count, nil
}
