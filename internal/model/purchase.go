package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "P"
	DeliverySuccessful DeliveryStatus = "S"
)

func (s DeliveryStatus) Label() string {
	if s == DeliverySuccessful {
		return "Successful"
	}
	return "Pending"
}

// Purchase is a vendor stock-in event. Its quantity is counted into the
// referenced item's stock for as long as the purchase exists.
type Purchase struct {
	BaseModel
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item           *Item           `json:"item,omitempty"`
	VendorID       *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	Vendor         *Vendor         `json:"vendor,omitempty"`
	Description    string          `gorm:"type:text" json:"description"`
	OrderDate      time.Time       `gorm:"not null;index" json:"order_date"`
	DeliveryDate   *time.Time      `json:"delivery_date,omitempty"`
	Quantity       int             `gorm:"not null;default:0" json:"quantity"`
	DeliveryStatus DeliveryStatus  `gorm:"type:varchar(1);not null;default:'P'" json:"delivery_status"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_value"`
}

// ComputeTotal recomputes TotalValue from Price and Quantity.
func (p *Purchase) ComputeTotal() {
	p.TotalValue = p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
