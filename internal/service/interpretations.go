// interpretations.go — сервис управления толкованиями аятов.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// InterpretationInput — входные данные создания/обновления толкования.
// nil-поле при обновлении означает "не менять".
type InterpretationInput struct {
	SuraNumber           *int
	AyaRangeStart        *int
	AyaRangeEnd          *int
	InterpretationNumber *int
	Language             *string
	TranslationText      *string
}

// InterpretationService — сервис управления толкованиями.
type InterpretationService struct {
	wf     *workflow[*model.Interpretation]
	repo   repository.InterpretationRepository
	logger *slog.Logger
}

// NewInterpretationService создаёт сервис толкований.
func NewInterpretationService(repo repository.InterpretationRepository, audit *AuditRecorder, logger *slog.Logger) *InterpretationService {
	l := logger.With(slog.String("component", "interpretation_service"))
	return &InterpretationService{
		wf:     newWorkflow[*model.Interpretation](model.ContentTypeInterpretation, repo, audit, l),
		repo:   repo,
		logger: l,
	}
}

// Create создаёт новое толкование от имени актора.
func (s *InterpretationService) Create(ctx context.Context, actor rbac.Session, in InterpretationInput) (*model.Interpretation, error) {
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
	if in.InterpretationNumber == nil {
		return nil, fmt.Errorf("%w: поле interpretationNumber обязательно", ErrValidation)
	}
	if *in.InterpretationNumber < 1 {
		return nil, fmt.Errorf("%w: поле interpretationNumber должно быть положительным", ErrValidation)
	}
	if in.TranslationText == nil || *in.TranslationText == "" {
		return nil, fmt.Errorf("%w: поле translationText обязательно", ErrValidation)
	}

	language := model.DefaultLanguage
	if in.Language != nil && *in.Language != "" {
		language = *in.Language
	}

	interp := &model.Interpretation{
		Translation: model.Translation{
			SuraNumber:      *in.SuraNumber,
			AyaRangeStart:   *in.AyaRangeStart,
			AyaRangeEnd:     *in.AyaRangeEnd,
			Language:        language,
			TranslationText: *in.TranslationText,
		},
		InterpretationNumber: *in.InterpretationNumber,
	}

	return s.wf.create(ctx, actor, interp)
}

// Get возвращает толкование по ID.
func (s *InterpretationService) Get(ctx context.Context, id string) (*model.Interpretation, error) {
	return s.wf.get(ctx, id)
}

// List возвращает список толкований с фильтрацией и пагинацией.
func (s *InterpretationService) List(ctx context.Context, f repository.AyaFilter, limit, offset int) ([]*model.Interpretation, int, error) {
	interpretations, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка толкований: %w", err)
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт толкований: %w", err)
	}

	return interpretations, total, nil
}

// Update обновляет изменяемые поля толкования.
func (s *InterpretationService) Update(ctx context.Context, actor rbac.Session, id string, in InterpretationInput) (*model.Interpretation, error) {
	if in.SuraNumber != nil {
		if err := validateSuraNumber(*in.SuraNumber); err != nil {
			return nil, err
		}
	}
	if in.InterpretationNumber != nil && *in.InterpretationNumber < 1 {
		return nil, fmt.Errorf("%w: поле interpretationNumber должно быть положительным", ErrValidation)
	}
	if in.TranslationText != nil && *in.TranslationText == "" {
		return nil, fmt.Errorf("%w: поле translationText не может быть пустым", ErrValidation)
	}

	return s.wf.update(ctx, actor, id, func(interp *model.Interpretation) error {
		if in.SuraNumber != nil {
			interp.SuraNumber = *in.SuraNumber
		}
		if in.AyaRangeStart != nil {
			interp.AyaRangeStart = *in.AyaRangeStart
		}
		if in.AyaRangeEnd != nil {
			interp.AyaRangeEnd = *in.AyaRangeEnd
		}
		if in.InterpretationNumber != nil {
			interp.InterpretationNumber = *in.InterpretationNumber
		}
		if in.Language != nil && *in.Language != "" {
			interp.Language = *in.Language
		}
		if in.TranslationText != nil {
			interp.TranslationText = *in.TranslationText
		}
		return validateAyaRange(interp.AyaRangeStart, interp.AyaRangeEnd)
	})
}

// Delete удаляет толкование.
func (s *InterpretationService) Delete(ctx context.Context, actor rbac.Session, id string) error {
	return s.wf.delete(ctx, actor, id)
}

// Verify переводит толкование в состояние "верифицировано".
func (s *InterpretationService) Verify(ctx context.Context, actor rbac.Session, id string) (*model.Interpretation, error) {
	return s.wf.verify(ctx, actor, id)
}
