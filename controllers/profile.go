// controllers/profile.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"servio-backend/config"
	"servio-backend/models"
	"servio-backend/services"
	"servio-backend/storage"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// GetMyProfile returns the current user with their listed services and
// client-side bookings
func GetMyProfile(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	catalog := services.NewCatalogService(config.DB)
	owned, err := catalog.ListByOwner(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slotSvc := services.NewSlotService(config.DB)
	now := time.Now()
	serviceViews := make([]gin.H, 0, len(owned))
	for _, svc := range owned {
		slots, _ := slotSvc.ListFreeSlots(svc.ID, now, true)
		serviceViews = append(serviceViews, fullServiceView(svc, slots, false))
	}

	engine := services.NewBookingService(config.DB)
	bookings, err := engine.List(userID, "client")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	bookingViews := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		bookingViews = append(bookingViews, bookingView(b))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"location":        user.Location,
		"profile_picture": user.ProfilePicture,
		"services":        serviceViews,
		"bookings":        bookingViews,
	})
}

// UpdateMyProfile applies partial profile changes (email is immutable)
func UpdateMyProfile(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// UploadProfilePicture stores a new profile picture through the blob store
func UploadProfilePicture(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read image")
		return
	}
	defer file.Close()

	url, err := storage.Default().Put(fileHeader.Filename, file)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store image")
		return
	}

	previous := user.ProfilePicture
	if err := config.DB.Model(&user).Update("profile_picture", url).Error; err != nil {
		storage.Default().Delete(url)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if previous != "" {
		if err := storage.Default().Delete(previous); err != nil {
			log.Printf("Failed to delete old profile picture %s: %v", previous, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"profile_picture": url})
}
