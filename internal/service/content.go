// content.go — общий жизненный цикл контента.
//
// Все виды контента проходят один и тот же путь: проверка политики,
// мутация хранилища, запись в журнал аудита. workflow инкапсулирует
// этот путь один раз; типизированные сервисы добавляют валидацию
// и выборки своего вида.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// contentStore — минимальный контракт хранилища, одинаковый у всех
// типизированных репозиториев.
type contentStore[T model.Content] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
}

// workflow — оркестратор жизненного цикла одного вида контента.
type workflow[T model.Content] struct {
	kind   string
	store  contentStore[T]
	audit  *AuditRecorder
	logger *slog.Logger
}

// newWorkflow создаёт оркестратор для вида контента kind.
func newWorkflow[T model.Content](kind string, store contentStore[T], audit *AuditRecorder, logger *slog.Logger) *workflow[T] {
	return &workflow[T]{
		kind:   kind,
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

// create сохраняет новый контент от имени актора.
// Конверт метаданных заполняется здесь: идентификатор, авторство,
// стартовый статус "не верифицировано".
func (w *workflow[T]) create(ctx context.Context, actor rbac.Session, item T) (T, error) {
	var zero T
	if !rbac.CanPerform(actor.Role, rbac.ActionCreate) {
		return zero, ErrForbidden
	}

	meta := item.Meta()
	meta.ID = uuid.New().String()
	meta.CreatedBy = actor.LoginCode
	meta.CreatedByRole = actor.Role
	meta.IsVerified = false
	meta.VerifiedBy = nil
	meta.VerifiedAt = nil

	if err := w.store.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return zero, fmt.Errorf("%w: %s", ErrConflict, err)
		}
		return zero, fmt.Errorf("создание %s: %w", w.kind, err)
	}

	w.logger.Info("Контент создан",
		slog.String("content_type", w.kind),
		slog.String("content_id", meta.ID),
		slog.String("performed_by", actor.LoginCode),
	)
	w.audit.Record(ctx, w.kind, meta.ID, model.AuditActionCreate, actor, nil, nil, snapshot(item))

	return item, nil
}

// update применяет apply к текущему состоянию контента.
// Конверт метаданных защищён: авторство и статус верификации
// восстанавливаются из предыдущего состояния, что бы apply ни менял.
func (w *workflow[T]) update(ctx context.Context, actor rbac.Session, id string, apply func(T) error) (T, error) {
	var zero T
	if !rbac.CanPerform(actor.Role, rbac.ActionUpdate) {
		return zero, ErrForbidden
	}

	current, err := w.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("получение %s для обновления: %w", w.kind, err)
	}

	prevSnapshot := snapshot(current)
	preMeta := *current.Meta()

	if err := apply(current); err != nil {
		return zero, err
	}
	*current.Meta() = preMeta

	if err := w.store.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return zero, fmt.Errorf("%w: %s", ErrConflict, err)
		}
		return zero, fmt.Errorf("обновление %s: %w", w.kind, err)
	}

	w.logger.Info("Контент обновлён",
		slog.String("content_type", w.kind),
		slog.String("content_id", id),
		slog.String("performed_by", actor.LoginCode),
	)
	w.audit.Record(ctx, w.kind, id, model.AuditActionUpdate, actor, nil, prevSnapshot, snapshot(current))

	return current, nil
}

// delete удаляет контент. Последнее состояние уходит в журнал аудита.
func (w *workflow[T]) delete(ctx context.Context, actor rbac.Session, id string) error {
	if !rbac.CanPerform(actor.Role, rbac.ActionDelete) {
		return ErrForbidden
	}

	current, err := w.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("получение %s для удаления: %w", w.kind, err)
	}

	if err := w.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление %s: %w", w.kind, err)
	}

	w.logger.Info("Контент удалён",
		slog.String("content_type", w.kind),
		slog.String("content_id", id),
		slog.String("performed_by", actor.LoginCode),
	)
	w.audit.Record(ctx, w.kind, id, model.AuditActionDelete, actor, nil, snapshot(current), nil)

	return nil
}

// verify переводит контент в состояние "верифицировано".
// Повторная верификация отклоняется: ErrAlreadyVerified.
func (w *workflow[T]) verify(ctx context.Context, actor rbac.Session, id string) (T, error) {
	var zero T
	if !rbac.CanPerform(actor.Role, rbac.ActionVerify) {
		return zero, ErrForbidden
	}

	current, err := w.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("получение %s для верификации: %w", w.kind, err)
	}

	meta := current.Meta()
	if meta.IsVerified {
		return zero, ErrAlreadyVerified
	}

	prevSnapshot := snapshot(current)
	now := time.Now().UTC()
	meta.IsVerified = true
	meta.VerifiedBy = &actor.LoginCode
	meta.VerifiedAt = &now

	if err := w.store.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("верификация %s: %w", w.kind, err)
	}

	w.logger.Info("Контент верифицирован",
		slog.String("content_type", w.kind),
		slog.String("content_id", id),
		slog.String("performed_by", actor.LoginCode),
	)
	w.audit.Record(ctx, w.kind, id, model.AuditActionVerify, actor, nil, prevSnapshot, snapshot(current))

	return current, nil
}

// get возвращает контент по идентификатору.
func (w *workflow[T]) get(ctx context.Context, id string) (T, error) {
	var zero T
	item, err := w.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("получение %s: %w", w.kind, err)
	}
	return item, nil
}
