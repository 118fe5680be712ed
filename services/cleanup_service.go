// services/cleanup_service.go
package services

import (
	"log"
	"time"

	"servio-backend/models"
	"servio-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CleanupService purges availability slots that lie in the past and were never
// booked. Booked past slots stay; bookings reference them for history.
type CleanupService struct {
	db *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{db: db}
}

func (s *CleanupService) StartScheduler() {
	c := cron.New()

	// Run every day at 3:30 AM
	c.AddFunc("30 3 * * *", func() {
		if n, err := s.PurgeExpiredSlots(time.Now()); err != nil {
			log.Printf("Slot cleanup failed: %v", err)
		} else if n > 0 {
			log.Printf("Slot cleanup removed %d expired slots", n)
		}
	})

	c.Start()
	log.Println("Slot cleanup scheduler started")
}

func (s *CleanupService) PurgeExpiredSlots(asOf time.Time) (int64, error) {
	today := utils.DateString(asOf)
	clock := utils.ClockString(asOf)

	result := s.db.
		Where("date < ? OR (date = ? AND end_time <= ?)", today, today, clock).
		Where("id NOT IN (?)", s.db.Model(&models.Booking{}).Select("availability_id")).
		Delete(&models.Availability{})
	return result.RowsAffected, result.Error
}
