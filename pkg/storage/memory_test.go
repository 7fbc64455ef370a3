package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakvale/wedding-backend/pkg/models"
)

func TestMemoryStorageSaveAndGet(t *testing.T) {
	store := NewMemoryStorage()

	rsvp := models.RSVP{
		ID:        "r1",
		Name:      "Joana Alves",
		Email:     "Joana@Example.com",
		Attending: true,
		Guests:    []string{"Rui Alves"},
		Locale:    "pt",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.SaveRSVP(rsvp))

	got, ok, err := store.GetRSVP("joana@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, []string{"Rui Alves"}, got.Guests)

	_, ok, err = store.GetRSVP("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorageReplacesByEmail(t *testing.T) {
	store := NewMemoryStorage()

	first := models.RSVP{ID: "r1", Email: "guest@example.com", Attending: true, CreatedAt: time.Now()}
	second := models.RSVP{ID: "r2", Email: "GUEST@example.com", Attending: false, CreatedAt: time.Now()}
	require.NoError(t, store.SaveRSVP(first))
	require.NoError(t, store.SaveRSVP(second))

	list, err := store.ListRSVPs()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r2", list[0].ID)
	assert.False(t, list[0].Attending)
}

func TestMemoryStorageListOrdersByCreation(t *testing.T) {
	store := NewMemoryStorage()
	base := time.Unix(1_700_000_000, 0)

	require.NoError(t, store.SaveRSVP(models.RSVP{ID: "late", Email: "b@example.com", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.SaveRSVP(models.RSVP{ID: "early", Email: "a@example.com", CreatedAt: base}))

	list, err := store.ListRSVPs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}
