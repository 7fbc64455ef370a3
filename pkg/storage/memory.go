package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/oakvale/wedding-backend/pkg/models"
)

// MemoryStorage keeps RSVPs in process memory. Used by tests and by
// deployments that have not configured a database yet.
type MemoryStorage struct {
	mu    sync.RWMutex
	byKey map[string]models.RSVP
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byKey: make(map[string]models.RSVP)}
}

func (m *MemoryStorage) SaveRSVP(rsvp models.RSVP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey[emailKey(rsvp.Email)] = rsvp
	return nil
}

func (m *MemoryStorage) GetRSVP(email string) (models.RSVP, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rsvp, ok := m.byKey[emailKey(email)]
	return rsvp, ok, nil
}

func (m *MemoryStorage) ListRSVPs() ([]models.RSVP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.RSVP, 0, len(m.byKey))
	for _, rsvp := range m.byKey {
		out = append(out, rsvp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
