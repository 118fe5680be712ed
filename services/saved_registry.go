// services/saved_registry.go
package services

import (
	"errors"

	"servio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedServiceRegistry is the bookmark relation between users and services.
type SavedServiceRegistry struct {
	db *gorm.DB
}

func NewSavedServiceRegistry(db *gorm.DB) *SavedServiceRegistry {
	return &SavedServiceRegistry{db: db}
}

// Toggle flips the saved state and returns the new one (true = now saved).
func (r *SavedServiceRegistry) Toggle(userID uuid.UUID, serviceID uuid.UUID) (bool, error) {
	saved := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}

		result := tx.Where("user_id = ? AND service_id = ?", userID, serviceID).
			Delete(&models.SavedService{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil // was saved, now removed
		}

		err := tx.Create(&models.SavedService{UserID: userID, ServiceID: serviceID}).Error
		if err != nil {
			if isUniqueViolation(err) {
				// concurrent toggle already saved it
				saved = true
				return nil
			}
			return err
		}
		saved = true
		return nil
	})
	return saved, err
}

func (r *SavedServiceRegistry) IsSaved(userID uuid.UUID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedService{}).
		Where("user_id = ? AND service_id = ?", userID, serviceID).Count(&count).Error
	return count > 0, err
}

// SavedIDs returns the set of service IDs the user has saved, for stamping
// isSaved onto list views in one query.
func (r *SavedServiceRegistry) SavedIDs(userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.SavedService{}).
		Where("user_id = ?", userID).Pluck("service_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ListSaved returns the user's saved services, most recently saved first.
func (r *SavedServiceRegistry) ListSaved(userID uuid.UUID) ([]models.Service, error) {
	var results []models.Service
	err := r.db.Preload("User").Preload("Images").
		Joins("JOIN saved_services ON saved_services.service_id = services.id").
		Where("saved_services.user_id = ?", userID).
		Order("saved_services.created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
