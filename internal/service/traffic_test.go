package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/sadaksathi/backend/internal/domain"
)

func TestLevelOfDefaultsToClear(t *testing.T) {
	state := NewTrafficState(nil)
	if level := state.LevelOf("Ring Road"); level != domain.TrafficClear {
		t.Errorf("LevelOf(unknown) = %q, want clear", level)
	}
}

func TestSetLevelAcceptsUnknownRoads(t *testing.T) {
	// No referential check against the road catalog, by contract.
	state := NewTrafficState(nil)
	state.SetLevel("Road Nobody Catalogued", domain.TrafficHeavy)
	if level := state.LevelOf("Road Nobody Catalogued"); level != domain.TrafficHeavy {
		t.Errorf("LevelOf = %q, want heavy", level)
	}
}

func TestSetLevelOverwrites(t *testing.T) {
	state := NewTrafficState(map[string]domain.TrafficLevel{"A": domain.TrafficHeavy})
	state.SetLevel("A", domain.TrafficClear)
	if level := state.LevelOf("A"); level != domain.TrafficClear {
		t.Errorf("LevelOf = %q, want clear after overwrite", level)
	}
}

func TestAggregateSeverity(t *testing.T) {
	state := NewTrafficState(map[string]domain.TrafficLevel{
		"Araniko Highway":      domain.TrafficHeavy,
		"Prithvi Highway":      domain.TrafficModerate,
		"Local Road":           domain.TrafficClear,
		"Congested Inner Road": domain.TrafficClear,
	})

	tests := []struct {
		name  string
		roads []string
		want  domain.TrafficLevel
	}{
		{"any heavy wins", []string{"Local Road", "Prithvi Highway", "Araniko Highway"}, domain.TrafficHeavy},
		{"moderate without heavy", []string{"Local Road", "Prithvi Highway"}, domain.TrafficModerate},
		{"all clear", []string{"Local Road", "Congested Inner Road"}, domain.TrafficClear},
		{"empty set", nil, domain.TrafficClear},
		{"unknown roads read clear", []string{"Ring Road", "Local Road"}, domain.TrafficClear},
		{"single heavy among many clear", []string{"Local Road", "Congested Inner Road", "Araniko Highway"}, domain.TrafficHeavy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := state.AggregateSeverity(tt.roads); got != tt.want {
				t.Errorf("AggregateSeverity(%v) = %q, want %q", tt.roads, got, tt.want)
			}
		})
	}
}

func TestRefreshRandomDistribution(t *testing.T) {
	// 20% heavy / 30% moderate / 50% clear within statistical tolerance.
	const n = 2000
	roads := make([]string, n)
	for i := range roads {
		roads[i] = fmt.Sprintf("road-%d", i)
	}

	state := NewTrafficState(nil)
	state.RefreshRandom(roads, rand.New(rand.NewSource(42)))

	counts := map[domain.TrafficLevel]int{}
	for _, road := range roads {
		counts[state.LevelOf(road)]++
	}

	if heavy := counts[domain.TrafficHeavy]; heavy < 300 || heavy > 500 {
		t.Errorf("heavy count = %d, want roughly 400 of %d", heavy, n)
	}
	if moderate := counts[domain.TrafficModerate]; moderate < 480 || moderate > 720 {
		t.Errorf("moderate count = %d, want roughly 600 of %d", moderate, n)
	}
	if clear := counts[domain.TrafficClear]; clear < 850 || clear > 1150 {
		t.Errorf("clear count = %d, want roughly 1000 of %d", clear, n)
	}
}

func TestRefreshRandomDeterministicWithSeed(t *testing.T) {
	roads := []string{"A", "B", "C", "D"}

	first := NewTrafficState(nil)
	first.RefreshRandom(roads, rand.New(rand.NewSource(7)))
	second := NewTrafficState(nil)
	second.RefreshRandom(roads, rand.New(rand.NewSource(7)))

	for _, road := range roads {
		if first.LevelOf(road) != second.LevelOf(road) {
			t.Errorf("road %s: same seed produced different levels", road)
		}
	}
}

func TestHasHeavy(t *testing.T) {
	state := NewTrafficState(map[string]domain.TrafficLevel{"A": domain.TrafficModerate})
	if state.HasHeavy() {
		t.Error("HasHeavy = true with no heavy roads")
	}
	state.SetLevel("B", domain.TrafficHeavy)
	if !state.HasHeavy() {
		t.Error("HasHeavy = false with a heavy road")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	state := NewTrafficState(map[string]domain.TrafficLevel{"A": domain.TrafficClear})
	snap := state.Snapshot()
	snap["A"] = domain.TrafficHeavy
	if state.LevelOf("A") != domain.TrafficClear {
		t.Error("mutating a snapshot changed the state")
	}
}
