package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Tag         string    `gorm:"type:varchar(50);index" json:"tag"` // "Haircuts", "Nails", etc.
	ImageURL    string    `json:"image"`                             // primary image, blob-store URL

	User           User           `gorm:"foreignKey:UserID" json:"-"`
	Availabilities []Availability `gorm:"foreignKey:ServiceID" json:"-"`
	Images         []ServiceImage `gorm:"foreignKey:ServiceID" json:"-"`
	Bookings       []Booking      `gorm:"foreignKey:ServiceID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type ServiceImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *ServiceImage) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
