// suras.go — сервис управления сурами.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// SuraInput — входные данные создания/обновления суры.
// nil-поле при обновлении означает "не менять".
type SuraInput struct {
	SuraNumber  *int
	Name        *string
	ArabicName  *string
	Description *string
	AyathCount  *int
	Place       *string
}

// SuraService — сервис управления сурами.
type SuraService struct {
	wf     *workflow[*model.Sura]
	repo   repository.SuraRepository
	cache  *CacheService
	logger *slog.Logger
}

// NewSuraService создаёт сервис сур.
// cache может быть nil — тогда чтения идут напрямую в БД.
func NewSuraService(repo repository.SuraRepository, audit *AuditRecorder, cache *CacheService, logger *slog.Logger) *SuraService {
	l := logger.With(slog.String("component", "sura_service"))
	return &SuraService{
		wf:     newWorkflow[*model.Sura](model.ContentTypeSura, repo, audit, l),
		repo:   repo,
		cache:  cache,
		logger: l,
	}
}

// validateSuraNumber проверяет допустимость номера суры.
func validateSuraNumber(n int) error {
	if n < model.SuraNumberMin || n > model.SuraNumberMax {
		return fmt.Errorf("%w: поле suraNumber должно быть в диапазоне %d-%d",
			ErrValidation, model.SuraNumberMin, model.SuraNumberMax)
	}
	return nil
}

// validatePlace проверяет место ниспослания.
func validatePlace(place string) error {
	if place != model.PlaceMecca && place != model.PlaceMedina {
		return fmt.Errorf("%w: поле place должно быть %q или %q",
			ErrValidation, model.PlaceMecca, model.PlaceMedina)
	}
	return nil
}

// ensureNumberFree проверяет, что номер суры не занят другой сурой.
// Гонку двух одновременных вставок закрывает уникальный индекс;
// здесь проверка даёт понятную ошибку до обращения к мутации.
func (s *SuraService) ensureNumberFree(ctx context.Context, number int, excludeID string) error {
	existing, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("проверка номера суры: %w", err)
	}
	if existing.ID == excludeID {
		return nil
	}
	return fmt.Errorf("%w: сура с номером %d уже существует", ErrConflict, number)
}

// Create создаёт новую суру от имени актора.
func (s *SuraService) Create(ctx context.Context, actor rbac.Session, in SuraInput) (*model.Sura, error) {
	if in.SuraNumber == nil {
		return nil, fmt.Errorf("%w: поле suraNumber обязательно", ErrValidation)
	}
	if err := validateSuraNumber(*in.SuraNumber); err != nil {
		return nil, err
	}
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("%w: поле name обязательно", ErrValidation)
	}
	if in.AyathCount == nil {
		return nil, fmt.Errorf("%w: поле ayathCount обязательно", ErrValidation)
	}
	if *in.AyathCount < 1 {
		return nil, fmt.Errorf("%w: поле ayathCount должно быть положительным", ErrValidation)
	}
	if in.Place == nil {
		return nil, fmt.Errorf("%w: поле place обязательно", ErrValidation)
	}
	if err := validatePlace(*in.Place); err != nil {
		return nil, err
	}

	if err := s.ensureNumberFree(ctx, *in.SuraNumber, ""); err != nil {
		return nil, err
	}

	sura := &model.Sura{
		SuraNumber:  *in.SuraNumber,
		Name:        *in.Name,
		ArabicName:  in.ArabicName,
		Description: in.Description,
		AyathCount:  *in.AyathCount,
		Place:       *in.Place,
	}

	created, err := s.wf.create(ctx, actor, sura)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(created.ID, created)
	}
	return created, nil
}

// Get возвращает суру по ID, через кэш.
func (s *SuraService) Get(ctx context.Context, id string) (*model.Sura, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(id); ok {
			return cached, nil
		}
	}

	sura, err := s.wf.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(id, sura)
	}
	return sura, nil
}

// List возвращает список сур с фильтрацией и пагинацией.
// Неверифицированные первыми, затем по номеру суры.
func (s *SuraService) List(ctx context.Context, f repository.SuraFilter, limit, offset int) ([]*model.Sura, int, error) {
	suras, err := s.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка сур: %w", err)
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт сур: %w", err)
	}

	return suras, total, nil
}

// Update обновляет изменяемые поля суры. Авторство и статус
// верификации не затрагиваются.
func (s *SuraService) Update(ctx context.Context, actor rbac.Session, id string, in SuraInput) (*model.Sura, error) {
	if in.SuraNumber != nil {
		if err := validateSuraNumber(*in.SuraNumber); err != nil {
			return nil, err
		}
	}
	if in.Name != nil && *in.Name == "" {
		return nil, fmt.Errorf("%w: поле name не может быть пустым", ErrValidation)
	}
	if in.AyathCount != nil && *in.AyathCount < 1 {
		return nil, fmt.Errorf("%w: поле ayathCount должно быть положительным", ErrValidation)
	}
	if in.Place != nil {
		if err := validatePlace(*in.Place); err != nil {
			return nil, err
		}
	}
	if in.SuraNumber != nil {
		if err := s.ensureNumberFree(ctx, *in.SuraNumber, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.wf.update(ctx, actor, id, func(sura *model.Sura) error {
		if in.SuraNumber != nil {
			sura.SuraNumber = *in.SuraNumber
		}
		if in.Name != nil {
			sura.Name = *in.Name
		}
		if in.ArabicName != nil {
			sura.ArabicName = in.ArabicName
		}
		if in.Description != nil {
			sura.Description = in.Description
		}
		if in.AyathCount != nil {
			sura.AyathCount = *in.AyathCount
		}
		if in.Place != nil {
			sura.Place = *in.Place
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(id, updated)
	}
	return updated, nil
}

// Delete удаляет суру.
func (s *SuraService) Delete(ctx context.Context, actor rbac.Session, id string) error {
	if err := s.wf.delete(ctx, actor, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(id)
	}
	return nil
}

// Verify переводит суру в состояние "верифицировано".
func (s *SuraService) Verify(ctx context.Context, actor rbac.Session, id string) (*model.Sura, error) {
	verified, err := s.wf.verify(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(id, verified)
	}
	return verified, nil
}
