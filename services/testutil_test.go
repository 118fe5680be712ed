package services

import (
	"testing"

	"servio-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database. cache=shared lets the
// connection pool see the same database, which the concurrency tests need;
// the random name keeps tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.ServiceImage{},
		&models.Availability{},
		&models.Booking{},
		&models.SavedService{},
		&models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:    email,
		Password: "secret123",
		Name:     "Test " + email,
		Location: "Main Hall",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestService(t *testing.T, db *gorm.DB, owner models.User, name string) models.Service {
	t.Helper()
	service := models.Service{
		UserID: owner.ID,
		Name:   name,
		Price:  25.00,
		Tag:    "Haircuts",
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

func createTestSlot(t *testing.T, db *gorm.DB, serviceID uuid.UUID, date, start, end string) models.Availability {
	t.Helper()
	slot := models.Availability{
		ServiceID: serviceID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}
