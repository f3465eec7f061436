// pages.go — сервис страниц-синглтонов (AboutUs, Author, ContactUs, Help).
//
// Все четыре вида обслуживаются одним сервисом: различие между ними —
// только набор допустимых полей полезной нагрузки. Наборы описаны
// данными в pageSchemas, сам жизненный цикл общий.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/alfurqan/quran-cms/internal/domain/model"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
	"github.com/alfurqan/quran-cms/internal/repository"
)

// pageSchema — набор полей полезной нагрузки одного вида страницы.
type pageSchema struct {
	// required — поля, обязательные при создании.
	required []string
	// optional — необязательные поля.
	optional []string
}

// pageSchemas — допустимые поля по видам страниц.
var pageSchemas = map[string]pageSchema{
	model.ContentTypeAboutUs: {
		required: []string{"title", "description"},
	},
	model.ContentTypeAuthor: {
		required: []string{"htmlContent"},
	},
	model.ContentTypeContactUs: {
		optional: []string{"mobile", "whatsapp", "email", "address", "remarks"},
	},
	model.ContentTypeHelp: {
		required: []string{"title", "description"},
		optional: []string{"icon", "order"},
	},
}

// PageKinds возвращает отсортированный список поддерживаемых видов страниц.
func PageKinds() []string {
	kinds := make([]string, 0, len(pageSchemas))
	for k := range pageSchemas {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// IsPageKind сообщает, поддерживается ли вид страницы.
func IsPageKind(kind string) bool {
	_, ok := pageSchemas[kind]
	return ok
}

// PageService — сервис страниц-синглтонов.
type PageService struct {
	wfByKind map[string]*workflow[*model.Page]
	repo     repository.PageRepository
	logger   *slog.Logger
}

// NewPageService создаёт сервис страниц: по оркестратору на каждый вид.
func NewPageService(repo repository.PageRepository, audit *AuditRecorder, logger *slog.Logger) *PageService {
	l := logger.With(slog.String("component", "page_service"))
	wfs := make(map[string]*workflow[*model.Page], len(pageSchemas))
	for kind := range pageSchemas {
		wfs[kind] = newWorkflow[*model.Page](kind, repo, audit, l)
	}
	return &PageService{
		wfByKind: wfs,
		repo:     repo,
		logger:   l,
	}
}

// workflowFor возвращает оркестратор для вида kind.
func (s *PageService) workflowFor(kind string) *workflow[*model.Page] {
	return s.wfByKind[kind]
}

// validatePageData проверяет полезную нагрузку страницы против схемы вида.
// strict=true требует наличия всех обязательных полей (создание);
// strict=false проверяет только допустимость имён (обновление).
func validatePageData(kind string, data map[string]any, strict bool) error {
	schema, ok := pageSchemas[kind]
	if !ok {
		return fmt.Errorf("%w: неизвестный вид страницы %q", ErrValidation, kind)
	}

	allowed := make(map[string]bool, len(schema.required)+len(schema.optional))
	for _, f := range schema.required {
		allowed[f] = true
	}
	for _, f := range schema.optional {
		allowed[f] = true
	}

	var unknown []string
	for field := range data {
		if !allowed[field] {
			unknown = append(unknown, field)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: недопустимые поля для %s: %s",
			ErrValidation, kind, strings.Join(unknown, ", "))
	}

	if strict {
		for _, field := range schema.required {
			v, present := data[field]
			if !present {
				return fmt.Errorf("%w: поле %s обязательно", ErrValidation, field)
			}
			if str, isStr := v.(string); isStr && str == "" {
				return fmt.Errorf("%w: поле %s не может быть пустым", ErrValidation, field)
			}
		}
	}

	return nil
}

// Create создаёт новую страницу вида kind.
func (s *PageService) Create(ctx context.Context, actor rbac.Session, kind string, data map[string]any) (*model.Page, error) {
	if err := validatePageData(kind, data, true); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}

	page := &model.Page{
		Kind: kind,
		Data: data,
	}
	return s.workflowFor(kind).create(ctx, actor, page)
}

// Get возвращает страницу вида kind по ID.
// Несовпадение вида трактуется как "не найдено": идентификаторы
// не должны утекать между видами.
func (s *PageService) Get(ctx context.Context, kind, id string) (*model.Page, error) {
	wf := s.workflowFor(kind)
	if wf == nil {
		return nil, fmt.Errorf("%w: неизвестный вид страницы %q", ErrValidation, kind)
	}
	page, err := wf.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if page.Kind != kind {
		return nil, ErrNotFound
	}
	return page, nil
}

// List возвращает страницы вида kind с пагинацией.
// isVerified — опциональный фильтр по статусу верификации.
func (s *PageService) List(ctx context.Context, kind string, isVerified *bool, limit, offset int) ([]*model.Page, int, error) {
	if !IsPageKind(kind) {
		return nil, 0, fmt.Errorf("%w: неизвестный вид страницы %q", ErrValidation, kind)
	}

	pages, err := s.repo.ListByKind(ctx, kind, isVerified, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка страниц %s: %w", kind, err)
	}

	total, err := s.repo.CountByKind(ctx, kind, isVerified)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт страниц %s: %w", kind, err)
	}

	return pages, total, nil
}

// Update обновляет полезную нагрузку страницы. Переданные поля
// заменяют одноимённые, остальные сохраняются.
func (s *PageService) Update(ctx context.Context, actor rbac.Session, kind, id string, data map[string]any) (*model.Page, error) {
	if err := validatePageData(kind, data, false); err != nil {
		return nil, err
	}

	return s.workflowFor(kind).update(ctx, actor, id, func(page *model.Page) error {
		if page.Kind != kind {
			return ErrNotFound
		}
		if page.Data == nil {
			page.Data = map[string]any{}
		}
		for field, value := range data {
			page.Data[field] = value
		}
		return nil
	})
}

// Delete удаляет страницу вида kind.
func (s *PageService) Delete(ctx context.Context, actor rbac.Session, kind, id string) error {
	if _, err := s.Get(ctx, kind, id); err != nil {
		return err
	}
	return s.workflowFor(kind).delete(ctx, actor, id)
}

// Verify переводит страницу в состояние "верифицировано".
func (s *PageService) Verify(ctx context.Context, actor rbac.Session, kind, id string) (*model.Page, error) {
	if _, err := s.Get(ctx, kind, id); err != nil {
		return nil, err
	}
	return s.workflowFor(kind).verify(ctx, actor, id)
}
