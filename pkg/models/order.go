package models

import "time"

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type ProcessingStatus string

const (
	ProcessingPicked     ProcessingStatus = "picked"
	ProcessingInProgress ProcessingStatus = "in_progress"
	ProcessingCompleted  ProcessingStatus = "completed"
)

// processingTransitions is the whole legal transition table; anything not
// listed here is rejected.
var processingTransitions = map[ProcessingStatus]ProcessingStatus{
	ProcessingPicked:     ProcessingInProgress,
	ProcessingInProgress: ProcessingCompleted,
}

// CanTransition reports whether a processing record may move from one
// status to another.
func (s ProcessingStatus) CanTransition(next ProcessingStatus) bool {
	return processingTransitions[s] == next
}

// Terminal reports whether the status ends the record's life. A record in
// a terminal status no longer blocks other staff from picking the order.
func (s ProcessingStatus) Terminal() bool {
	return s == ProcessingCompleted
}

func (s ProcessingStatus) Valid() bool {
	switch s {
	case ProcessingPicked, ProcessingInProgress, ProcessingCompleted:
		return true
	}
	return false
}

type Order struct {
	ID         int             `json:"id" db:"id"`
	Reference  string          `json:"reference" db:"reference"`
	UserID     int             `json:"user_id" db:"user_id"`
	Status     OrderStatus     `json:"status" db:"status"`
	TotalPrice float64         `json:"total_price" db:"total_price"`
	Note       string          `json:"note" db:"note"`
	OrderTime  time.Time       `json:"order_time" db:"order_time"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
	Lines      []OrderLineItem `json:"lines,omitempty" db:"-"`
}

type OrderLineItem struct {
	OrderID         int     `json:"order_id" db:"order_id"`
	ItemID          int     `json:"item_id" db:"item_id"`
	Quantity        float64 `json:"quantity" db:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase" db:"price_at_purchase"`
}

type OrderProcessingRecord struct {
	ID          int              `json:"id" db:"id"`
	OrderID     int              `json:"order_id" db:"order_id"`
	StaffID     int              `json:"staff_id" db:"staff_id"`
	Status      ProcessingStatus `json:"status" db:"status"`
	PickedAt    time.Time        `json:"picked_at" db:"picked_at"`
	CompletedAt *time.Time       `json:"completed_at" db:"completed_at"`
}

type CartLine struct {
	ItemID   int     `json:"item_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserID        int           `json:"user_id"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=card cash"`
	Note          string        `json:"note"`
	Lines         []CartLine    `json:"lines"`
}

type AdvanceRequest struct {
	Status ProcessingStatus `json:"status" binding:"required"`
}

type PickRequest struct {
	StaffID int `json:"staff_id"`
}
