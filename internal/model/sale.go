package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale totals are stored as submitted by the checkout; they are not derived
// from the detail lines.
type Sale struct {
	BaseModel
	DateAdded     time.Time       `gorm:"not null;index" json:"date_added"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer      *Customer       `json:"customer,omitempty"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"sub_total"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"grand_total"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	TaxPercentage float64         `gorm:"not null;default:0" json:"tax_percentage"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount_paid"`
	AmountChange  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amount_change"`
	Details       []SaleDetail    `json:"details,omitempty"`
}

// TotalQuantity sums the loaded detail lines.
func (s *Sale) TotalQuantity() int {
	total := 0
	for _, d := range s.Details {
		total += d.Quantity
	}
	return total
}

type SaleDetail struct {
	BaseModel
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item        *Item           `json:"item,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	TotalDetail decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_detail"`
}
