// controllers/common.go
package controllers

import (
	"errors"
	"net/http"

	"servio-backend/services"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the core error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var validation services.ValidationError
	var permission services.PermissionError
	var notFound services.NotFoundError
	var conflict services.ConflictError

	switch {
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, validation.Msg)
	case errors.As(err, &permission):
		utils.RespondWithError(c, http.StatusForbidden, permission.Msg)
	case errors.As(err, &notFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound.Msg)
	case errors.As(err, &conflict):
		utils.RespondWithError(c, http.StatusConflict, conflict.Msg)
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

func boolParam(v string) bool {
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}
