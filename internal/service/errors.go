// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrForbidden — действие запрещено для роли актора.
	ErrForbidden = errors.New("действие запрещено для текущей роли")
	// ErrAlreadyVerified — контент уже верифицирован.
	ErrAlreadyVerified = errors.New("контент уже верифицирован")
	// ErrInvalidLoginCode — неизвестный login code.
	ErrInvalidLoginCode = errors.New("неизвестный login code")
)
