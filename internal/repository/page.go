package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// PageRepository — интерфейс CRUD для таблицы content_pages.
// Хранит страницы-синглтоны (AboutUs, Author, ContactUs, Help):
// полезная нагрузка каждого kind лежит в JSONB.
type PageRepository interface {
	// Create создаёт новую страницу.
	Create(ctx context.Context, p *model.Page) error
	// GetByID возвращает страницу по UUID.
	GetByID(ctx context.Context, id string) (*model.Page, error)
	// ListByKind возвращает страницы указанного kind.
	// Help сортируется по полю order полезной нагрузки, остальные — новые первыми.
	ListByKind(ctx context.Context, kind string, isVerified *bool, limit, offset int) ([]*model.Page, error)
	// Update обновляет страницу целиком.
	Update(ctx context.Context, p *model.Page) error
	// Delete удаляет страницу.
	Delete(ctx context.Context, id string) error
	// CountByKind возвращает количество страниц указанного kind.
	CountByKind(ctx context.Context, kind string, isVerified *bool) (int, error)
}

// pageRepo — реализация PageRepository.
type pageRepo struct {
	db DBTX
}

// NewPageRepository создаёт репозиторий страниц.
func NewPageRepository(db DBTX) PageRepository {
	return &pageRepo{db: db}
}

const pageColumns = `id, kind, data, created_by, created_by_role,
		is_verified, verified_by, verified_at, created_at, updated_at`

func (r *pageRepo) Create(ctx context.Context, p *model.Page) error {
	query := `
		INSERT INTO content_pages (id, kind, data, created_by, created_by_role, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Kind, p.Data, p.CreatedBy, p.CreatedByRole, p.IsVerified,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания страницы %s: %w", p.Kind, err)
	}
	return nil
}

func (r *pageRepo) GetByID(ctx context.Context, id string) (*model.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_pages WHERE id = $1`, pageColumns)

	p := &model.Page{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Kind, &p.Data, &p.CreatedBy, &p.CreatedByRole,
		&p.IsVerified, &p.VerifiedBy, &p.VerifiedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения страницы: %w", err)
	}
	return p, nil
}

func (r *pageRepo) ListByKind(ctx context.Context, kind string, isVerified *bool, limit, offset int) ([]*model.Page, error) {
	orderBy := `created_at DESC`
	if kind == model.ContentTypeHelp {
		orderBy = `(data->>'order')::int ASC NULLS LAST, created_at DESC`
	}

	where, args := buildPageWhere(kind, isVerified)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM content_pages
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, pageColumns, where, orderBy, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка страниц %s: %w", kind, err)
	}
	defer rows.Close()

	var result []*model.Page
	for rows.Next() {
		p := &model.Page{}
		if err := rows.Scan(
			&p.ID, &p.Kind, &p.Data, &p.CreatedBy, &p.CreatedByRole,
			&p.IsVerified, &p.VerifiedBy, &p.VerifiedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования страницы: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *pageRepo) Update(ctx context.Context, p *model.Page) error {
	query := `
		UPDATE content_pages
		SET data = $2, is_verified = $3, verified_by = $4, verified_at = $5,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.Data, p.IsVerified, p.VerifiedBy, p.VerifiedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления страницы: %w", err)
	}
	return nil
}

func (r *pageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления страницы: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pageRepo) CountByKind(ctx context.Context, kind string, isVerified *bool) (int, error) {
	where, args := buildPageWhere(kind, isVerified)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM content_pages %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта страниц %s: %w", kind, err)
	}
	return count, nil
}

// buildPageWhere строит WHERE по kind и опциональному статусу верификации.
func buildPageWhere(kind string, isVerified *bool) (string, []any) {
	where := `WHERE kind = $1`
	args := []any{kind}
	if isVerified != nil {
		args = append(args, *isVerified)
		where += fmt.Sprintf(` AND is_verified = $%d`, len(args))
	}
	return where, args
}
