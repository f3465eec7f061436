package model

import "time"

// User — учётная запись login code для статистики входов.
// Создаётся при первом успешном входе, далее обновляются
// LastLogin и LoginCount. Сами коды доступа задаются конфигурацией —
// таблица users их не определяет.
type User struct {
	// ID — UUID записи
	ID string `json:"id"`
	// LoginCode — код доступа, уникальный
	LoginCode string `json:"loginCode"`
	// Role — роль, определённая конфигурацией (creator, verifier)
	Role string `json:"role"`
	// LastLogin — время последнего входа
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	// LoginCount — количество входов
	LoginCount int `json:"loginCount"`
	// IsActive — активна ли учётная запись
	IsActive bool `json:"isActive"`
	// CreatedAt — время создания записи
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time `json:"updatedAt"`
}
