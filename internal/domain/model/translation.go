package model

// Translation — перевод диапазона аятов суры.
// Хранится в таблице translations.
type Translation struct {
	Authorship
	// SuraNumber — номер суры (1–114)
	SuraNumber int `json:"suraNumber"`
	// AyaRangeStart — первый аят диапазона (>= 1)
	AyaRangeStart int `json:"ayaRangeStart"`
	// AyaRangeEnd — последний аят диапазона (>= AyaRangeStart)
	AyaRangeEnd int `json:"ayaRangeEnd"`
	// Language — язык перевода
	Language string `json:"language"`
	// TranslationText — текст перевода
	TranslationText string `json:"translationText"`
}

// ContentType возвращает имя вида контента.
func (t *Translation) ContentType() string { return ContentTypeTranslation }

// DefaultLanguage — язык по умолчанию для переводов и толкований.
const DefaultLanguage = "Malayalam"
