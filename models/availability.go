package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is one bookable time slot of a service. Dates and times are
// naive local strings ("2006-01-02" / "15:04:05") so they order lexically.
// The composite unique index is the slot identity: a service never holds two
// slots with the same date, start and end.
type Availability struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_service_slot,priority:1" json:"service_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_service_slot,priority:2" json:"date"`
	StartTime string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_service_slot,priority:3" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_service_slot,priority:4" json:"end_time"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
