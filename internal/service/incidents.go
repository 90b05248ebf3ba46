package service

import (
	"sync"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/pkg/geo"
)

// reportedIDBase offsets user-minted incident ids above the seeded range.
const reportedIDBase = 100

// IncidentStore owns the live incident collection. Incidents are replaced
// wholesale by the refresh cycle or appended by reports; entries are never
// partially mutated. A single writer at a time, last write wins.
type IncidentStore struct {
	mu    sync.RWMutex
	items []domain.Incident
}

// NewIncidentStore creates a store seeded with the catalog incidents.
func NewIncidentStore(seed []domain.Incident) *IncidentStore {
	return &IncidentStore{items: append([]domain.Incident(nil), seed...)}
}

// Snapshot returns a copy of the current incidents.
func (s *IncidentStore) Snapshot() []domain.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Incident(nil), s.items...)
}

// Replace swaps in a refreshed collection. Entries absent from the new
// collection are dropped.
func (s *IncidentStore) Replace(incidents []domain.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.Incident(nil), incidents...)
}

// Report appends a freshly minted incident at the given position and returns
// it. Ids continue upward from the reported base so they never collide with
// seeded ids.
func (s *IncidentStore) Report(name string, coord geo.Coordinate, kind domain.IncidentKind) domain.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()

	incident := domain.Incident{
		ID:         reportedIDBase + len(s.items),
		Name:       name,
		Coordinate: coord,
		Kind:       kind,
		Status:     "Active",
	}
	s.items = append(s.items, incident)
	return incident
}

// ByIDs returns the incidents matching the given ids, preserving id order.
// Unknown ids are skipped.
func (s *IncidentStore) ByIDs(ids []int) []domain.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[int]domain.Incident, len(s.items))
	for _, i := range s.items {
		byID[i.ID] = i
	}

	var out []domain.Incident
	for _, id := range ids {
		if incident, ok := byID[id]; ok {
			out = append(out, incident)
		}
	}
	return out
}
