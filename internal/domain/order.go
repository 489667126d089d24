package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusReturned   OrderStatus = "returned"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusReady, OrderStatusReturned:
		return true
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusReady, OrderStatusReturned},
	OrderStatusReady:      {OrderStatusReturned},
}

// CanTransition reports whether an administrator may move an order from s to next.
// Staying in the same status is always allowed so the admin note can be edited.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber   string          `gorm:"size:40;uniqueIndex;not null" json:"order_number"`
	CustomerName  string          `gorm:"size:140;not null" json:"customer_name"`
	CustomerPhone string          `gorm:"size:50;not null" json:"customer_phone"`
	Province      string          `gorm:"size:80;index" json:"province"`
	Address       string          `gorm:"size:255" json:"address"`
	Note          string          `gorm:"type:text" json:"note,omitempty"`
	Items         []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:varchar(20);index;not null" json:"status"`
	AdminNote     string          `gorm:"type:text" json:"admin_note,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemsTotal is the sum of the frozen line totals.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// OrderItem is frozen at checkout and never recomputed from live catalog data.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index" json:"-"`
	Position  int             `gorm:"not null;default:0" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	Name      string          `gorm:"size:180" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(14,2)" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2)" json:"total"`
}

// OrderUpdate carries the only mutable order fields. Nil means unchanged.
type OrderUpdate struct {
	Status    *OrderStatus
	AdminNote *string
}

type OrderFilter struct {
	Status *OrderStatus
	From   time.Time
	To     time.Time
}
