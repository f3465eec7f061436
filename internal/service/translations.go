// translations.go — сервис управления переводами аятов.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// TranslationInput — входные данные создания/обновления перевода.
// nil-поле при обновлении означает "не менять".
type TranslationInput struct {
	SuraNumber      *int
	AyaRangeStart   *int
	AyaRangeEnd     *int
	Language        *string
	TranslationText *string
}

// TranslationService — сервис управления переводами.
type TranslationService struct {
	wf     *workflow[*model.Translation]
	repo   repository.TranslationRepository
	logger *slog.Logger
}

// NewTranslationService создаёт сервис переводов.
func NewTranslationService(repo repository.TranslationRepository, audit *AuditRecorder, logger *slog.Logger) *TranslationService {
	l := logger.With(slog.String("component", "translation_service"))
	return &TranslationService{
		wf:     newWorkflow[*model.Translation](model.ContentTypeTranslation, repo, audit, l),
		repo:   repo,
		logger: l,
	}
}

// validateAyaRange проверяет согласованность диапазона аятов.
func validateAyaRange(start, end int) error {
	if start < 1 {
		return fmt.Errorf("%w: поле ayaRangeStart должно быть положительным", ErrValidation)
	}
	if end < start {
		return fmt.Errorf("%w: поле ayaRangeEnd не может быть меньше ayaRangeStart", ErrValidation)
	}
	return nil
}

// Create создаёт новый перевод от имени актора.
// Язык по умолчанию — model.DefaultLanguage.
func (s *TranslationService) Create(ctx context.Context, actor rbac.Session, in TranslationInput) (*model.Translation, error) {
	if in.SuraNumber == nil {
		return nil, fmt.Errorf("%w: поле suraNumber обязательно", ErrValidation)
	}
	if err := validateSuraNumber(*in.SuraNumber); err != nil {
		return nil, err
	}
	if in.AyaRangeStart == nil || in.AyaRangeEnd == nil {
		return nil, fmt.Errorf("%w: поля ayaRangeStart и ayaRangeEnd обязательны", ErrValidation)
	}
	if err := validateAyaRange(*in.AyaRangeStart, *in.AyaRangeEnd); err != nil {
		return nil, err
	}
	if in.TranslationText == nil || *in.TranslationText == "" {
		return nil, fmt.Errorf("%w: поле translationText обязательно", ErrValidation)
	}

	language := model.DefaultLanguage
	if in.Language != nil && *in.Language != "" {
		language = *in.Language
	}

	tr := &model.Translation{
		SuraNumber:      *in.SuraNumber,
		AyaRangeStart:   *in.AyaRangeStart,
		AyaRangeEnd:     *in.AyaRangeEnd,
		Language:        language,
		TranslationText: *in.TranslationText,
	}

	return s.wf.create(ctx, actor, tr)
}

// Get возвращает перевод по ID.
func (s *TranslationService) Get(ctx context.Context, id string) (*model.Translation, error) {
	return s.wf.get(ctx, id)
}

// List возвращает список переводов с фильтрацией и пагинацией.
func (s *TranslationService) List(ctx context.Context, f repository.AyaFilter, limit, offset int) ([]*model.Translation, int, error) {
	translations, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка переводов: %w", err)
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт переводов: %w", err)
	}

	return translations, total, nil
}

// Update обновляет изменяемые поля перевода.
func (s *TranslationService) Update(ctx context.Context, actor rbac.Session, id string, in TranslationInput) (*model.Translation, error) {
	if in.SuraNumber != nil {
		if err := validateSuraNumber(*in.SuraNumber); err != nil {
			return nil, err
		}
	}
	if in.TranslationText != nil && *in.TranslationText == "" {
		return nil, fmt.Errorf("%w: поле translationText не может быть пустым", ErrValidation)
	}

	return s.wf.update(ctx, actor, id, func(tr *model.Translation) error {
		if in.SuraNumber != nil {
			tr.SuraNumber = *in.SuraNumber
		}
		if in.AyaRangeStart != nil {
			tr.AyaRangeStart = *in.AyaRangeStart
		}
		if in.AyaRangeEnd != nil {
			tr.AyaRangeEnd = *in.AyaRangeEnd
		}
		if in.Language != nil && *in.Language != "" {
			tr.Language = *in.Language
		}
		if in.TranslationText != nil {
			tr.TranslationText = *in.TranslationText
		}
		// Диапазон проверяется после применения: границы могли
		// прийти по отдельности.
		return validateAyaRange(tr.AyaRangeStart, tr.AyaRangeEnd)
	})
}

// Delete удаляет перевод.
func (s *TranslationService) Delete(ctx context.Context, actor rbac.Session, id string) error {
	return s.wf.delete(ctx, actor, id)
}

// Verify переводит перевод в состояние "верифицировано".
func (s *TranslationService) Verify(ctx context.Context, actor rbac.Session, id string) (*model.Translation, error) {
	return s.wf.verify(ctx, actor, id)
}
