package model

import (
	"encoding/json"
	"time"
)

// Действия над контентом, фиксируемые в журнале аудита.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionVerify = "verify"
)

// AuditEntry — неизменяемая запись журнала аудита.
// Создаётся ровно один раз на каждую мутацию контента и никогда
// не изменяется и не удаляется — в том числе для уже удалённого контента.
type AuditEntry struct {
	// ID — UUID записи
	ID string `json:"id"`
	// ContentType — вид контента (Sura, Translation, ...)
	ContentType string `json:"contentType"`
	// ContentID — id затронутого контента
	ContentID string `json:"contentId"`
	// Action — действие (create, update, delete, verify)
	Action string `json:"action"`
	// PerformedBy — login code актора из активной сессии
	PerformedBy string `json:"performedBy"`
	// Role — роль актора на момент действия
	Role string `json:"role"`
	// Details — произвольный комментарий (опционально)
	Details *string `json:"details,omitempty"`
	// PreviousData — полный снапшот до действия (nil для create)
	PreviousData json.RawMessage `json:"previousData,omitempty"`
	// NewData — полный снапшот после действия (nil для delete)
	NewData json.RawMessage `json:"newData,omitempty"`
	// CreatedAt — время записи, неизменяемое
	CreatedAt time.Time `json:"createdAt"`
}
