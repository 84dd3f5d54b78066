package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required,max=100"`
}

type Vendor struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number"`
	Address     string `gorm:"type:text" json:"address"`
}

// Item is a stocked product. Quantity is the authoritative on-hand count and
// is only ever changed through the inventory ledger or a locked item update.
type Item struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Description  string          `gorm:"type:text" json:"description"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category     *Category       `json:"category,omitempty" validate:"-"`
	VendorID     *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id,omitempty"`
	Vendor       *Vendor         `json:"vendor,omitempty" validate:"-"`
	Image        string          `gorm:"type:varchar(255)" json:"image,omitempty"`
	ExpiringDate *time.Time      `json:"expiring_date,omitempty"`
}
