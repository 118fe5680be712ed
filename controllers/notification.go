// controllers/notification.go
package controllers

import (
	"net/http"

	"servio-backend/config"
	"servio-backend/services"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetNotifications lists the current user's notifications, newest first
func GetNotifications(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	sink := services.NewNotificationService(config.DB)
	notifications, err := sink.List(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flips the read flag of one notification
func MarkNotificationRead(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	notifUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	sink := services.NewNotificationService(config.DB)
	notification, err := sink.MarkRead(userID, notifUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// DeleteNotification removes one of the current user's notifications
func DeleteNotification(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	notifUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	sink := services.NewNotificationService(config.DB)
	if err := sink.Delete(userID, notifUUID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
