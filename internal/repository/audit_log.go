package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// AuditFilter — параметры фильтрации журнала аудита.
type AuditFilter struct {
	// ContentType — фильтр по типу контента.
	ContentType *string
	// ContentID — фильтр по идентификатору записи контента.
	ContentID *string
	// Action — фильтр по действию (create, update, delete, verify).
	Action *string
	// PerformedBy — подстрочный поиск по актору (без учёта регистра).
	PerformedBy *string
}

// AuditLogRepository — интерфейс доступа к журналу аудита.
// Журнал append-only: записи никогда не обновляются и не удаляются.
type AuditLogRepository interface {
	// Insert добавляет запись в журнал.
	Insert(ctx context.Context, e *model.AuditEntry) error
	// List возвращает записи журнала с фильтрацией, новые первыми.
	List(ctx context.Context, f AuditFilter, limit, offset int) ([]*model.AuditEntry, error)
	// Count возвращает количество записей с фильтрацией.
	Count(ctx context.Context, f AuditFilter) (int, error)
}

// auditLogRepo — реализация AuditLogRepository.
// Запросы строятся через squirrel: фильтров много и они комбинируются.
type auditLogRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

// NewAuditLogRepository создаёт репозиторий журнала аудита.
func NewAuditLogRepository(db DBTX) AuditLogRepository {
	return &auditLogRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *auditLogRepo) Insert(ctx context.Context, e *model.AuditEntry) error {
	query, args, err := r.sb.
		Insert("audit_log").
		Columns("id", "content_type", "content_id", "action",
			"performed_by", "role", "details", "previous_data", "new_data").
		Values(e.ID, e.ContentType, e.ContentID, e.Action,
			e.PerformedBy, e.Role, e.Details, e.PreviousData, e.NewData).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса аудита: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&e.CreatedAt); err != nil {
		return fmt.Errorf("ошибка записи в журнал аудита: %w", err)
	}
	return nil
}

// applyAuditFilter добавляет WHERE-условия фильтра к builder-у.
func applyAuditFilter(b sq.SelectBuilder, f AuditFilter) sq.SelectBuilder {
	if f.ContentType != nil && *f.ContentType != "" {
		b = b.Where(sq.Eq{"content_type": *f.ContentType})
	}
	if f.ContentID != nil && *f.ContentID != "" {
		b = b.Where(sq.Eq{"content_id": *f.ContentID})
	}
	if f.Action != nil && *f.Action != "" {
		b = b.Where(sq.Eq{"action": *f.Action})
	}
	if f.PerformedBy != nil && *f.PerformedBy != "" {
		b = b.Where(sq.ILike{"performed_by": "%" + *f.PerformedBy + "%"})
	}
	return b
}

func (r *auditLogRepo) List(ctx context.Context, f AuditFilter, limit, offset int) ([]*model.AuditEntry, error) {
	b := r.sb.
		Select("id", "content_type", "content_id", "action",
			"performed_by", "role", "details", "previous_data", "new_data", "created_at").
		From("audit_log").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	b = applyAuditFilter(b, f)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса аудита: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала аудита: %w", err)
	}
	defer rows.Close()

	var result []*model.AuditEntry
	for rows.Next() {
		e := &model.AuditEntry{}
		if err := rows.Scan(
			&e.ID, &e.ContentType, &e.ContentID, &e.Action,
			&e.PerformedBy, &e.Role, &e.Details, &e.PreviousData, &e.NewData, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи аудита: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *auditLogRepo) Count(ctx context.Context, f AuditFilter) (int, error) {
	b := r.sb.Select("COUNT(*)").From("audit_log")
	b = applyAuditFilter(b, f)

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса аудита: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей аудита: %w", err)
	}
	return count, nil
}
