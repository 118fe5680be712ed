// services/booking_service.go
package services

import (
	"errors"
	"fmt"

	"servio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		db:            db,
		notifications: NewNotificationService(db),
	}
}

type CreateBookingInput struct {
	ServiceID      uuid.UUID
	AvailabilityID uuid.UUID
	Location       string
	CustomerName   string
	CustomerEmail  string
}

// Create books a slot for a customer. customerID is nil for anonymous
// bookings. The unique index on bookings.availability_id arbitrates concurrent
// attempts on the same slot: exactly one insert commits, the rest come back as
// ConflictError.
func (s *BookingService) Create(customerID *uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var slot models.Availability
		if err := tx.First(&slot, "id = ?", in.AvailabilityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Availability slot not found"}
			}
			return err
		}

		if slot.ServiceID != in.ServiceID {
			return ValidationError{"This availability slot does not belong to the specified service"}
		}

		var service models.Service
		if err := tx.Preload("User").Preload("Images").First(&service, "id = ?", in.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Service not found"}
			}
			return err
		}

		booking = models.Booking{
			UserID:         customerID,
			ServiceID:      in.ServiceID,
			AvailabilityID: slot.ID,
			Location:       in.Location,
			CustomerName:   in.CustomerName,
			CustomerEmail:  in.CustomerEmail,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ConflictError{"This availability slot is already booked"}
			}
			return err
		}

		booking.Service = service
		booking.Availability = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: a failed notification never unwinds the booking.
	name := booking.CustomerName
	if name == "" {
		name = "A customer"
	}
	s.notifications.Notify(booking.Service.UserID,
		fmt.Sprintf("%s booked \"%s\" on %s", name, booking.Service.Name, booking.Availability.Date))

	return &booking, nil
}

// Cancel deletes a booking. Both the customer and the provider may cancel;
// the slot becomes free again simply because no booking references it.
func (s *BookingService) Cancel(actorID uuid.UUID, bookingID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Service").First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError{"Booking not found"}
			}
			return err
		}

		isCustomer := booking.UserID != nil && *booking.UserID == actorID
		if !isCustomer && booking.Service.UserID != actorID {
			return PermissionError{"Only the customer or the service provider can cancel this booking"}
		}

		return tx.Delete(&models.Booking{}, "id = ?", bookingID).Error
	})
}

// List returns the actor's bookings. role is "client" (bookings they made),
// "provider" (bookings on their services) or "either"; an empty role defaults
// to "either" because cancellation flows look a booking up without knowing
// which side the actor plays.
func (s *BookingService) List(actorID uuid.UUID, role string) ([]models.Booking, error) {
	q := s.db.Preload("Service").Preload("Service.User").Preload("Service.Images").
		Preload("Availability")

	ownServices := s.db.Model(&models.Service{}).Select("id").Where("user_id = ?", actorID)

	switch role {
	case "client":
		q = q.Where("user_id = ?", actorID)
	case "provider":
		q = q.Where("service_id IN (?)", ownServices)
	case "", "either":
		q = q.Where("user_id = ? OR service_id IN (?)", actorID, ownServices)
	default:
		return nil, ValidationError{"role must be one of: client, provider, either"}
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
