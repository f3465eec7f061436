// audit.go — журнал аудита: запись и чтение.
//
// Запись выполняется best-effort: отказ журнала никогда не ломает
// основную операцию. Ошибки записи логируются и не возвращаются наверх.
// Сама запись при этом синхронная — события одного контента попадают
// в журнал в порядке операций. Чтение отдаёт записи строго по времени,
// новые первыми.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// AuditRecorder — запись событий в журнал аудита.
type AuditRecorder struct {
	repo   repository.AuditLogRepository
	logger *slog.Logger
}

// NewAuditRecorder создаёт рекордер журнала аудита.
func NewAuditRecorder(repo repository.AuditLogRepository, logger *slog.Logger) *AuditRecorder {
	return &AuditRecorder{
		repo:   repo,
		logger: logger.With(slog.String("component", "audit")),
	}
}

// Record фиксирует событие в журнале. Запись синхронная, чтобы события
// одного контента сохраняли порядок операций (create раньше verify),
// и переживает отмену контекста запроса: мутация уже закоммичена.
// Ошибка записи логируется и поглощается.
func (a *AuditRecorder) Record(
	ctx context.Context,
	contentType, contentID, action string,
	actor rbac.Session,
	details *string,
	previousData, newData json.RawMessage,
) {
	entry := &model.AuditEntry{
		ID:           uuid.New().String(),
		ContentType:  contentType,
		ContentID:    contentID,
		Action:       action,
		PerformedBy:  actor.LoginCode,
		Role:         actor.Role,
		Details:      details,
		PreviousData: previousData,
		NewData:      newData,
	}

	if err := a.repo.Insert(context.WithoutCancel(ctx), entry); err != nil {
		a.logger.Warn("Не удалось записать событие в журнал аудита",
			slog.String("content_type", contentType),
			slog.String("content_id", contentID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

// snapshot сериализует состояние контента для журнала.
// Ошибка сериализации даёт nil-снимок: журнал важнее полноты снимка.
func snapshot(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// AuditService — чтение журнала аудита.
type AuditService struct {
	repo   repository.AuditLogRepository
	logger *slog.Logger
}

// NewAuditService создаёт сервис чтения журнала аудита.
func NewAuditService(repo repository.AuditLogRepository, logger *slog.Logger) *AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger.With(slog.String("component", "audit_service")),
	}
}

// List возвращает записи журнала с фильтрацией и пагинацией, новые первыми.
func (s *AuditService) List(ctx context.Context, f repository.AuditFilter, limit, offset int) ([]*model.AuditEntry, int, error) {
	entries, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение журнала аудита: %w", err)
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт записей аудита: %w", err)
	}

	return entries, total, nil
}
