package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           int             `json:"id" db:"id"`
	ResourceID   int             `json:"resource_id" db:"resource_id"`
	ResourceType string          `json:"resource_type" db:"resource_type"`
	Action       string          `json:"action" db:"action"`
	Data         interface{}     `json:"data" db:"-"`
	DataRaw      json.RawMessage `json:"-" db:"data"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

func (l *AuditLog) LoadFromDB() {
	if len(l.DataRaw) == 0 {
		return
	}
	var data interface{}
	if err := json.Unmarshal(l.DataRaw, &data); err == nil {
		l.Data = data
	}
}

func (o *Order) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "order",
	}
}

func (r *OrderProcessingRecord) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.OrderID,
		ResourceType: "order",
	}
}

func (e *IngredientEdge) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   e.ItemToCreateID,
		ResourceType: "item",
	}
}
