package service

import (
	"math/rand"
	"sync"

	"github.com/sadaksathi/backend/internal/domain"
)

// Simulated refresh thresholds: r < 0.20 heavy, r < 0.50 moderate, else
// clear. Kept stable so tests can seed the generator.
const (
	heavyThreshold    = 0.20
	moderateThreshold = 0.50
)

// TrafficState holds the current congestion level per road. Last write wins;
// no history is retained. Unknown road names are accepted without checking
// the catalog, and absent roads read as clear.
type TrafficState struct {
	mu     sync.RWMutex
	levels map[string]domain.TrafficLevel
}

// NewTrafficState creates traffic state seeded with initial levels.
func NewTrafficState(initial map[string]domain.TrafficLevel) *TrafficState {
	levels := make(map[string]domain.TrafficLevel, len(initial))
	for road, level := range initial {
		levels[road] = level
	}
	return &TrafficState{levels: levels}
}

// SetLevel overwrites the level for a road.
func (s *TrafficState) SetLevel(roadName string, level domain.TrafficLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[roadName] = level
}

// LevelOf returns the current level for a road. Roads with no entry default
// to clear so that absence never blocks severity or styling decisions.
func (s *TrafficState) LevelOf(roadName string) domain.TrafficLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if level, ok := s.levels[roadName]; ok {
		return level
	}
	return domain.TrafficClear
}

// RefreshRandom redraws the level of every given road from the simulated
// distribution.
func (s *TrafficState) RefreshRandom(roadNames []string, rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, road := range roadNames {
		r := rng.Float64()
		switch {
		case r < heavyThreshold:
			s.levels[road] = domain.TrafficHeavy
		case r < moderateThreshold:
			s.levels[road] = domain.TrafficModerate
		default:
			s.levels[road] = domain.TrafficClear
		}
	}
}

// AggregateSeverity reduces the levels of the given roads to one overall
// classification: heavy if any road is heavy, else moderate if any is
// moderate, else clear. Share text and UI color coding both rely on this
// exact precedence.
func (s *TrafficState) AggregateSeverity(roadNames []string) domain.TrafficLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overall := domain.TrafficClear
	for _, road := range roadNames {
		level, ok := s.levels[road]
		if !ok {
			continue
		}
		if level.Severity() > overall.Severity() {
			overall = level
		}
		if overall == domain.TrafficHeavy {
			break
		}
	}
	return overall
}

// HasHeavy reports whether any road currently reads heavy. Drives the alert
// indicator.
func (s *TrafficState) HasHeavy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, level := range s.levels {
		if level == domain.TrafficHeavy {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of all current levels.
func (s *TrafficState) Snapshot() map[string]domain.TrafficLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.TrafficLevel, len(s.levels))
	for road, level := range s.levels {
		out[road] = level
	}
	return out
}
