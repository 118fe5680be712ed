package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking links a customer to exactly one availability slot. The unique index
// on AvailabilityID is what prevents double-booking: concurrent requests race
// on the insert, and the storage layer lets exactly one of them win. A slot is
// free whenever no booking row references it.
type Booking struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"` // nil for anonymous bookings
	ServiceID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"service"`
	AvailabilityID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"time"`
	Location       string     `json:"location"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email"`

	Service      Service      `gorm:"foreignKey:ServiceID" json:"-"`
	Availability Availability `gorm:"foreignKey:AvailabilityID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
