// services/notification_service.go
package services

import (
	"errors"
	"log"

	"servio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify records a notification for a user. Fire and forget: a failure is
// logged and swallowed so it can never abort the operation that triggered it.
func (s *NotificationService) Notify(recipient uuid.UUID, message string) {
	n := models.Notification{UserID: recipient, Message: message}
	if err := s.db.Create(&n).Error; err != nil {
		log.Printf("Failed to record notification for user %s: %v", recipient, err)
	}
}

func (s *NotificationService) List(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(userID uuid.UUID, notificationID uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	err := s.db.First(&n, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{"Notification not found"}
		}
		return nil, err
	}

	if !n.Read {
		n.Read = true
		if err := s.db.Model(&n).Update("read", true).Error; err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func (s *NotificationService) Delete(userID uuid.UUID, notificationID uuid.UUID) error {
	result := s.db.Delete(&models.Notification{}, "id = ? AND user_id = ?", notificationID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFoundError{"Notification not found"}
	}
	return nil
}
