package model

// Sura — глава (сура) священного текста.
// Хранится в таблице suras. Номер суры уникален в диапазоне 1–114.
type Sura struct {
	Authorship
	// SuraNumber — номер суры (1–114), уникальный
	SuraNumber int `json:"suraNumber"`
	// Name — название суры
	Name string `json:"name"`
	// ArabicName — арабское название (опционально)
	ArabicName *string `json:"arabicName,omitempty"`
	// Description — описание (опционально)
	Description *string `json:"description,omitempty"`
	// AyathCount — количество аятов (>= 1)
	AyathCount int `json:"ayathCount"`
	// Place — место ниспослания (Mecca, Medina)
	Place string `json:"place"`
}

// ContentType возвращает имя вида контента.
func (s *Sura) ContentType() string { return ContentTypeSura }

// Допустимые значения Place.
const (
	PlaceMecca  = "Mecca"
	PlaceMedina = "Medina"
)

// Границы номера суры.
const (
	SuraNumberMin = 1
	SuraNumberMax = 114
)
