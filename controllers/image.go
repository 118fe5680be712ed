// controllers/image.go
package controllers

import (
	"log"
	"net/http"

	"servio-backend/config"
	"servio-backend/services"
	"servio-backend/storage"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadServiceImage stores an image for a service through the blob store.
// A "primary" form field marks it as the service's primary image.
func UploadServiceImage(c *gin.Context) {
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

	catalog := services.NewCatalogService(config.DB)
	image, err := catalog.AddImage(userID, serviceUUID, url, boolParam(c.PostForm("primary")))
	if err != nil {
		// the record didn't make it, don't leak the blob
		storage.Default().Delete(url)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// DeleteServiceImage detaches an image and drops the blob
func DeleteServiceImage(c *gin.Context) {
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
	imageUUID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid image ID format")
		return
	}

	catalog := services.NewCatalogService(config.DB)
	url, err := catalog.RemoveImage(userID, serviceUUID, imageUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := storage.Default().Delete(url); err != nil {
		log.Printf("Failed to delete blob %s: %v", url, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
