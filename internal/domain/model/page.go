package model

import "encoding/json"

// Page — singleton-страница сайта (AboutUs, Author, ContactUs, Help).
// Все четыре вида разделяют таблицу content_pages: вид задаётся полем Kind,
// специфичные для вида поля хранятся как JSONB-документ Data.
// Набор обязательных и допустимых полей per-kind описан в сервисном слое
// как данные, а не код.
type Page struct {
	Authorship
	// Kind — вид страницы (AboutUs, Author, ContactUs, Help)
	Kind string `json:"-"`
	// Data — поля страницы (title, description, htmlContent, ...)
	Data map[string]any `json:"-"`
}

// ContentType возвращает имя вида контента.
func (p *Page) ContentType() string { return p.Kind }

// MarshalJSON сериализует страницу в плоский объект: поля Data
// на верхнем уровне рядом с конвертом авторства. Так выглядят и ответы
// API, и снапшоты в журнале аудита.
func (p *Page) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Data)+8)
	for k, v := range p.Data {
		out[k] = v
	}

	out["id"] = p.ID
	out["createdBy"] = p.CreatedBy
	out["createdByRole"] = p.CreatedByRole
	out["isVerified"] = p.IsVerified
	if p.VerifiedBy != nil {
		out["verifiedBy"] = *p.VerifiedBy
	}
	if p.VerifiedAt != nil {
		out["verifiedAt"] = *p.VerifiedAt
	}
	out["createdAt"] = p.CreatedAt
	out["updatedAt"] = p.UpdatedAt

	return json.Marshal(out)
}
