package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSaved(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	fan := createTestUser(t, db, "fan@example.com")
	service := createTestService(t, db, owner, "Haircut")
	registry := NewSavedServiceRegistry(db)

	saved, err := registry.Toggle(fan.ID, service.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	isSaved, err := registry.IsSaved(fan.ID, service.ID)
	require.NoError(t, err)
	assert.True(t, isSaved)

	saved, err = registry.Toggle(fan.ID, service.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = registry.Toggle(fan.ID, service.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = registry.Toggle(fan.ID, uuid.New())
	assert.ErrorAs(t, err, &NotFoundError{})
}

func TestSavedIDsAndList(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	fan := createTestUser(t, db, "fan@example.com")
	hair := createTestService(t, db, owner, "Haircut")
	nails := createTestService(t, db, owner, "Nail Art")
	registry := NewSavedServiceRegistry(db)

	_, err := registry.Toggle(fan.ID, hair.ID)
	require.NoError(t, err)

	ids, err := registry.SavedIDs(fan.ID)
	require.NoError(t, err)
	assert.True(t, ids[hair.ID])
	assert.False(t, ids[nails.ID])

	list, err := registry.ListSaved(fan.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hair.ID, list[0].ID)
}
