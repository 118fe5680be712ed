// services/catalog_service.go
package services

import (
	"encoding/json"
	"errors"
	"strings"

	"servio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService struct {
	db    *gorm.DB
	slots *SlotService
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, slots: NewSlotService(db)}
}

type CreateServiceInput struct {
	Name         string
	Description  string
	Price        float64
	Tag          string
	Availability json.RawMessage // either wire shape; invalid entries dropped
}

type UpdateServiceInput struct {
	Name        *string
	Description *string
	Price       *float64
	Tag         *string

	// ReplaceSlots distinguishes "availability key present" from "omitted":
	// slots are only touched when the request carried the key.
	ReplaceSlots bool
	Availability json.RawMessage
}

func (s *CatalogService) Create(ownerID uuid.UUID, in CreateServiceInput) (*models.Service, error) {
	service := models.Service{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Tag:         in.Tag,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&service).Error; err != nil {
			return err
		}
		if slots := NormalizeSlotPayload(in.Availability); len(slots) > 0 {
			return s.slots.ReplaceSlots(tx, service.ID, slots)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *CatalogService) Update(actorID uuid.UUID, serviceID uuid.UUID, in UpdateServiceInput) (*models.Service, error) {
	var service models.Service

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}
		if service.UserID != actorID {
			return PermissionError{"Only the owner can edit this service"}
		}

		if in.Name != nil {
			service.Name = *in.Name
		}
		if in.Description != nil {
			service.Description = *in.Description
		}
		if in.Price != nil {
			service.Price = *in.Price
		}
		if in.Tag != nil {
			service.Tag = *in.Tag
		}
		if err := tx.Save(&service).Error; err != nil {
			return err
		}

		if in.ReplaceSlots {
			return s.slots.ReplaceSlots(tx, service.ID, NormalizeSlotPayload(in.Availability))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete removes a service and everything hanging off it: slots, bookings,
// images and bookmarks.
func (s *CatalogService) Delete(actorID uuid.UUID, serviceID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}
		if service.UserID != actorID {
			return PermissionError{"Only the owner can delete this service"}
		}

		for _, m := range []interface{}{
			&models.Booking{},
			&models.Availability{},
			&models.ServiceImage{},
			&models.SavedService{},
		} {
			if err := tx.Delete(m, "service_id = ?", serviceID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Service{}, "id = ?", serviceID).Error
	})
}

func (s *CatalogService) Get(serviceID uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := s.db.Preload("User").Preload("Images").First(&service, "id = ?", serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{"Service not found"}
		}
		return nil, err
	}
	return &service, nil
}

// Search filters by exact tag and case-insensitive name substring, newest
// first.
func (s *CatalogService) Search(tag, name string) ([]models.Service, error) {
	q := s.db.Preload("User").Preload("Images")
	if tag != "" {
		q = q.Where("tag = ?", tag)
	}
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var results []models.Service
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByOwner returns a provider's own services, newest first.
func (s *CatalogService) ListByOwner(ownerID uuid.UUID) ([]models.Service, error) {
	var results []models.Service
	err := s.db.Preload("User").Preload("Images").
		Where("user_id = ?", ownerID).Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AddImage attaches an uploaded image URL to a service. When primary is set
// the URL also becomes the service's primary image.
func (s *CatalogService) AddImage(actorID uuid.UUID, serviceID uuid.UUID, url string, primary bool) (*models.ServiceImage, error) {
	var image models.ServiceImage

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}
		if service.UserID != actorID {
			return PermissionError{"Only the owner can manage images of this service"}
		}

		image = models.ServiceImage{ServiceID: serviceID, URL: url}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
		if primary {
			return tx.Model(&service).Update("image_url", url).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// RemoveImage detaches an image and returns its URL so the caller can drop the
// blob.
func (s *CatalogService) RemoveImage(actorID uuid.UUID, serviceID uuid.UUID, imageID uuid.UUID) (string, error) {
	var url string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}
		if service.UserID != actorID {
			return PermissionError{"Only the owner can manage images of this service"}
		}

		var image models.ServiceImage
		if err := tx.First(&image, "id = ? AND service_id = ?", imageID, serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Image not found"}
			}
			return err
		}
		url = image.URL

		if err := tx.Delete(&models.ServiceImage{}, "id = ?", imageID).Error; err != nil {
			return err
		}
		if service.ImageURL == url {
			return tx.Model(&service).Update("image_url", "").Error
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
