package model

import (
	"time"

	"github.com/google/uuid"
)

type Delivery struct {
	BaseModel
	ItemID       *uuid.UUID `gorm:"type:uuid;index" json:"item_id,omitempty"`
	Item         *Item      `json:"item,omitempty" validate:"-"`
	CustomerName string     `gorm:"type:varchar(255)" json:"customer_name"`
	PhoneNumber  string     `gorm:"type:varchar(30)" json:"phone_number"`
	Location     string     `gorm:"type:varchar(255)" json:"location"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	IsDelivered  bool       `gorm:"not null;default:false" json:"is_delivered"`
}

func (d *Delivery) StatusLabel() string {
	if d.IsDelivered {
		return "Delivered"
	}
	return "Pending"
}
