package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedService is the bookmark edge between a user and a service.
type SavedService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_service,priority:1" json:"user_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_service,priority:2" json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SavedService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
