// controllers/booking.go
package controllers

import (
	"net/http"

	"servio-backend/config"
	"servio-backend/services"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBookingInput defines the expected JSON structure for booking a slot
type CreateBookingInput struct {
	Service       uuid.UUID `json:"service" binding:"required"`
	Time          uuid.UUID `json:"time" binding:"required"` // availability slot id
	Location      string    `json:"location"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required,email"`
}

// CreateBooking books a free slot. Anonymous callers may book; authenticated
// ones get the booking attached to their account.
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customerID *uuid.UUID
	if id, ok := utils.CurrentUserID(c); ok {
		customerID = &id
	}

	engine := services.NewBookingService(config.DB)
	booking, err := engine.Create(customerID, services.CreateBookingInput{
		ServiceID:      input.Service,
		AvailabilityID: input.Time,
		Location:       input.Location,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingView(*booking))
}

// GetBookings lists the current user's bookings. ?role=client returns the ones
// they made, ?role=provider the ones on their services; the default "either"
// is the union.
func GetBookings(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	engine := services.NewBookingService(config.DB)
	bookings, err := engine.List(userID, c.DefaultQuery("role", "either"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, bookingView(b))
	}
	c.JSON(http.StatusOK, views)
}

// CancelBooking deletes a booking, freeing its slot
func CancelBooking(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	engine := services.NewBookingService(config.DB)
	if err := engine.Cancel(userID, bookingUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking canceled"})
}
