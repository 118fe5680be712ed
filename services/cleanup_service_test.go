package services

import (
	"testing"
	"time"

	"servio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredSlots(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	service := createTestService(t, db, owner, "Haircut")

	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	createTestSlot(t, db, service.ID, "2025-06-10", "10:00:00", "11:00:00") // expired
	createTestSlot(t, db, service.ID, "2025-06-15", "09:00:00", "10:00:00") // expired today
	future := createTestSlot(t, db, service.ID, "2025-06-20", "10:00:00", "11:00:00")
	pastBooked := createTestSlot(t, db, service.ID, "2025-06-01", "10:00:00", "11:00:00")
	require.NoError(t, db.Create(&models.Booking{
		ServiceID: service.ID, AvailabilityID: pastBooked.ID,
		CustomerName: "Mya", CustomerEmail: "mya@example.com",
	}).Error)

	n, err := NewCleanupService(db).PurgeExpiredSlots(asOf)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var remaining []models.Availability
	require.NoError(t, db.Order("date").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	// booked history stays, future slots stay
	assert.Equal(t, pastBooked.ID, remaining[0].ID)
	assert.Equal(t, future.ID, remaining[1].ID)
}
