package model

import (
	"time"

	"github.com/google/uuid"
)

// Address book entry. Orders copy the fields at creation time instead of
// referencing a row here, so later edits never touch placed orders.
type ShippingAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Street     string    `gorm:"type:varchar(255);not null" json:"street"`
	City       string    `gorm:"type:varchar(100);not null" json:"city"`
	State      string    `gorm:"type:varchar(100);not null" json:"state"`
	Country    string    `gorm:"type:varchar(100);not null" json:"country"`
	PostalCode string    `gorm:"type:varchar(20);not null" json:"postal_code"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
