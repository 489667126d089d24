package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ParseDiscountType accepts the empty string as "none".
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(strings.ToLower(strings.TrimSpace(s))) {
	case "", DiscountNone:
		return DiscountNone, nil
	case DiscountPercentage:
		return DiscountPercentage, nil
	case DiscountFixed:
		return DiscountFixed, nil
	}
	return "", errors.New("invalid discount type")
}

type Product struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string            `gorm:"size:180;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Specifications map[string]string `gorm:"type:jsonb;serializer:json" json:"specifications"`
	ShippingInfo   string            `gorm:"type:text" json:"shipping_info"`
	Price          int64             `gorm:"not null;default:0" json:"price"`
	DiscountType   DiscountType      `gorm:"type:varchar(12);default:'none'" json:"discount_type"`
	DiscountValue  decimal.Decimal   `gorm:"type:decimal(12,2);default:0" json:"discount_value"`
	Images         []string          `gorm:"type:jsonb;serializer:json" json:"images"`
	CategoryID     *uuid.UUID        `gorm:"type:uuid;index" json:"category_id"`
	Stock          int               `gorm:"not null;default:0" json:"stock"`
	Available      bool              `gorm:"not null;index" json:"available"`
	IsFeatured     bool              `gorm:"default:false;index" json:"is_featured"`
	IsNew          bool              `gorm:"default:false;index" json:"is_new"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FirstImage is the image reference snapshotted into the cart.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether qty units can be sold right now.
func (p *Product) InStock(qty int) bool {
	return p.Available && p.Stock > 0 && qty <= p.Stock
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	var errs ValidationErrors
	if p.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price must not be negative"})
	}
	if p.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "stock must not be negative"})
	}
	dt, err := ParseDiscountType(string(p.DiscountType))
	if err != nil {
		errs = append(errs, FieldError{Field: "discount_type", Message: "discount type must be none, percentage or fixed"})
	} else {
		p.DiscountType = dt
	}
	if p.DiscountValue.IsNegative() {
		errs = append(errs, FieldError{Field: "discount_value", Message: "discount value must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProductFilter struct {
	CategoryID *uuid.UUID
	Featured   bool
	IsNew      bool
	// LowStock, when > 0, keeps only products with stock below it.
	LowStock int
}
