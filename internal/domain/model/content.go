// Пакет model — доменные модели Quran CMS.
// Семь видов контента (Sura, Translation, Interpretation и четыре
// singleton-страницы) разделяют общий конверт авторства и верификации.
package model

import "time"

// Имена видов контента. Используются в журнале аудита и в таблице content_pages.
const (
	ContentTypeSura           = "Sura"
	ContentTypeTranslation    = "Translation"
	ContentTypeInterpretation = "Interpretation"
	ContentTypeAboutUs        = "AboutUs"
	ContentTypeAuthor         = "Author"
	ContentTypeContactUs      = "ContactUs"
	ContentTypeHelp           = "Help"
)

// Authorship — общие поля авторства и верификации контента.
// Встраивается во все модели контента.
type Authorship struct {
	// ID — UUID записи, назначается при создании, неизменяемый
	ID string `json:"id"`
	// CreatedBy — login code автора, устанавливается один раз
	CreatedBy string `json:"createdBy"`
	// CreatedByRole — роль автора на момент создания (creator, verifier)
	CreatedByRole string `json:"createdByRole"`
	// IsVerified — флаг верификации, по умолчанию false
	IsVerified bool `json:"isVerified"`
	// VerifiedBy — login code верификатора (nil пока не верифицировано)
	VerifiedBy *string `json:"verifiedBy,omitempty"`
	// VerifiedAt — время верификации (nil пока не верифицировано)
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	// CreatedAt — время создания записи
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta возвращает указатель на конверт авторства.
// Через встраивание даёт всем моделям реализацию интерфейса Content.
func (a *Authorship) Meta() *Authorship { return a }

// Content — общий интерфейс всех видов контента.
// Реализуется через встраивание Authorship плюс метод ContentType.
type Content interface {
	// Meta возвращает конверт авторства и верификации.
	Meta() *Authorship
	// ContentType возвращает имя вида контента для журнала аудита.
	ContentType() string
}
