package model

// Interpretation — толкование (тафсир) диапазона аятов суры.
// Совпадает с переводом по набору полей плюс порядковый номер толкования.
// Хранится в таблице interpretations.
type Interpretation struct {
	Translation
	// InterpretationNumber — порядковый номер толкования (>= 1)
	InterpretationNumber int `json:"interpretationNumber"`
}

// ContentType возвращает имя вида контента.
func (i *Interpretation) ContentType() string { return ContentTypeInterpretation }
