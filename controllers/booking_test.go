package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"servio-backend/config"
	"servio-backend/models"
	"servio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB points the package-global handle at a fresh in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Service{}, &models.ServiceImage{},
		&models.Availability{}, &models.Booking{}, &models.SavedService{},
		&models.Notification{},
	))
	config.DB = db
}

// authAs injects an authenticated actor the way the JWT middleware would.
func authAs(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", id.String())
		c.Next()
	}
}

func bookingTestRouter(actor *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	identify := utils.OptionalAuthMiddleware()
	authed := utils.AuthMiddleware()
	if actor != nil {
		identify = authAs(*actor)
		authed = authAs(*actor)
	}

	r.POST("/api/bookings", identify, CreateBooking)
	r.GET("/api/bookings", authed, GetBookings)
	r.DELETE("/api/bookings/:id", authed, CancelBooking)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedServiceWithSlot(t *testing.T) (models.User, models.Service, models.Availability) {
	t.Helper()
	owner := models.User{Email: "owner@example.com", Password: "secret123", Name: "Owner"}
	require.NoError(t, config.DB.Create(&owner).Error)
	service := models.Service{UserID: owner.ID, Name: "Haircut", Price: 30, Tag: "Haircuts"}
	require.NoError(t, config.DB.Create(&service).Error)
	slot := models.Availability{ServiceID: service.ID, Date: "2025-01-01", StartTime: "10:00:00", EndTime: "11:00:00"}
	require.NoError(t, config.DB.Create(&slot).Error)
	return owner, service, slot
}

func TestCreateBookingEndpoint(t *testing.T) {
	setupTestDB(t)
	_, service, slot := seedServiceWithSlot(t)
	r := bookingTestRouter(nil)

	body := gin.H{
		"service":        service.ID,
		"time":           slot.ID,
		"location":       "Friar Hall",
		"customer_name":  "Mya",
		"customer_email": "mya@example.com",
	}

	w := postJSON(t, r, "/api/bookings", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"service_name":"Haircut"`)

	// double-booking the same slot conflicts
	w = postJSON(t, r, "/api/bookings", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown slot
	body["time"] = uuid.New()
	w = postJSON(t, r, "/api/bookings", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// missing customer fields fail validation
	w = postJSON(t, r, "/api/bookings", gin.H{"service": service.ID, "time": slot.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpointCrossService(t *testing.T) {
	setupTestDB(t)
	owner, _, slot := seedServiceWithSlot(t)
	other := models.Service{UserID: owner.ID, Name: "Nails", Price: 20, Tag: "Nails"}
	require.NoError(t, config.DB.Create(&other).Error)
	r := bookingTestRouter(nil)

	w := postJSON(t, r, "/api/bookings", gin.H{
		"service":        other.ID, // slot belongs to the haircut service
		"time":           slot.ID,
		"customer_name":  "Mya",
		"customer_email": "mya@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingEndpointsRequireAuth(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	r := bookingTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAndCancelBookingEndpoints(t *testing.T) {
	setupTestDB(t)
	_, service, slot := seedServiceWithSlot(t)
	customer := models.User{Email: "customer@example.com", Password: "secret123", Name: "Customer"}
	require.NoError(t, config.DB.Create(&customer).Error)

	r := bookingTestRouter(&customer.ID)

	w := postJSON(t, r, "/api/bookings", gin.H{
		"service":        service.ID,
		"time":           slot.ID,
		"customer_name":  "Mya",
		"customer_email": "mya@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, role := range []string{"", "client", "either"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings?role="+role, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), created.ID.String(), "role %q", role)
	}

	// not the provider
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings?role=provider", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), created.ID.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/bookings/%s", created.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
