// controllers/service.go
package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"servio-backend/config"
	"servio-backend/models"
	"servio-backend/services"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateServiceInput defines the expected JSON structure for creating a service.
// The availability payload is accepted under any of its three historical keys.
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Tag         string  `json:"tag"`

	Availability     json.RawMessage `json:"availability"`
	Availabilities   json.RawMessage `json:"availabilities"`
	AvailabilityList json.RawMessage `json:"availability_list"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Tag         *string  `json:"tag"`

	Availability     json.RawMessage `json:"availability"`
	Availabilities   json.RawMessage `json:"availabilities"`
	AvailabilityList json.RawMessage `json:"availability_list"`
}

// firstSlotPayload picks the first usable availability payload among the
// aliased keys.
func firstSlotPayload(candidates ...json.RawMessage) json.RawMessage {
	for _, raw := range candidates {
		if len(raw) > 0 && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

// CreateService creates a new service owned by the current user
func CreateService(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	catalog := services.NewCatalogService(config.DB)
	service, err := catalog.Create(userID, services.CreateServiceInput{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Tag:          input.Tag,
		Availability: firstSlotPayload(input.Availability, input.Availabilities, input.AvailabilityList),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if full, err := catalog.Get(service.ID); err == nil {
		service = full
	}
	c.JSON(http.StatusCreated, serviceDetail(c, *service, userID, true))
}

// GetServices lists services, filtered by ?tag= (exact) and ?q= (name
// substring, case-insensitive), newest first. ?view=simple trims the
// projection; the default is the full one.
func GetServices(c *gin.Context) {
	catalog := services.NewCatalogService(config.DB)
	results, err := catalog.Search(c.Query("tag"), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if c.Query("view") == "simple" {
		views := make([]gin.H, 0, len(results))
		for _, svc := range results {
			views = append(views, simpleServiceView(svc))
		}
		c.JSON(http.StatusOK, views)
		return
	}

	userID, authed := utils.CurrentUserID(c)

	// saved-state is always false for anonymous callers
	saved := map[uuid.UUID]bool{}
	if authed {
		registry := services.NewSavedServiceRegistry(config.DB)
		if saved, err = registry.SavedIDs(userID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	slotSvc := services.NewSlotService(config.DB)
	includeBooked := boolParam(c.Query("include_booked"))
	now := time.Now()

	views := make([]gin.H, 0, len(results))
	for _, svc := range results {
		slots, err := slotSvc.ListFreeSlots(svc.ID, now, includeBooked)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		views = append(views, fullServiceView(svc, slots, saved[svc.ID]))
	}
	c.JSON(http.StatusOK, views)
}

// GetService returns the full view of one service
func GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	catalog := services.NewCatalogService(config.DB)
	service, err := catalog.Get(serviceUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userID, authed := utils.CurrentUserID(c)
	c.JSON(http.StatusOK, serviceDetail(c, *service, userID, authed))
}

// serviceDetail assembles the full view of a single service for the given
// actor (authed=false renders isSaved as false).
func serviceDetail(c *gin.Context, svc models.Service, userID uuid.UUID, authed bool) gin.H {
	slotSvc := services.NewSlotService(config.DB)
	slots, err := slotSvc.ListFreeSlots(svc.ID, time.Now(), boolParam(c.Query("include_booked")))
	if err != nil {
		slots = nil
	}

	isSaved := false
	if authed {
		registry := services.NewSavedServiceRegistry(config.DB)
		if s, err := registry.IsSaved(userID, svc.ID); err == nil {
			isSaved = s
		}
	}
	return fullServiceView(svc, slots, isSaved)
}

// UpdateService applies partial field changes; slots are replaced only when
// the request body carried an availability key.
func UpdateService(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	replaceSlots := input.Availability != nil ||
		input.Availabilities != nil ||
		input.AvailabilityList != nil

	catalog := services.NewCatalogService(config.DB)
	service, err := catalog.Update(userID, serviceUUID, services.UpdateServiceInput{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Tag:          input.Tag,
		ReplaceSlots: replaceSlots,
		Availability: firstSlotPayload(input.Availability, input.Availabilities, input.AvailabilityList),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if full, err := catalog.Get(service.ID); err == nil {
		service = full
	}
	c.JSON(http.StatusOK, serviceDetail(c, *service, userID, true))
}

// DeleteService deletes a service with all its slots and bookings
func DeleteService(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	catalog := services.NewCatalogService(config.DB)
	if err := catalog.Delete(userID, serviceUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// ToggleSaved flips the bookmark state of a service for the current user
func ToggleSaved(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	registry := services.NewSavedServiceRegistry(config.DB)
	saved, err := registry.Toggle(userID, serviceUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isSaved": saved})
}

// GetSavedServices lists the services the current user bookmarked
func GetSavedServices(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	registry := services.NewSavedServiceRegistry(config.DB)
	results, err := registry.ListSaved(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slotSvc := services.NewSlotService(config.DB)
	now := time.Now()
	views := make([]gin.H, 0, len(results))
	for _, svc := range results {
		slots, _ := slotSvc.ListFreeSlots(svc.ID, now, false)
		views = append(views, fullServiceView(svc, slots, true))
	}
	c.JSON(http.StatusOK, views)
}
