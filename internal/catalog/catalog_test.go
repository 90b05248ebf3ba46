package catalog

import (
	"testing"

	"github.com/sadaksathi/backend/internal/domain"
)

func TestLoadEmbeddedSeed(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(c.Roads) != 4 {
		t.Errorf("roads = %d, want 4", len(c.Roads))
	}
	if len(c.Places) != 9 {
		t.Errorf("places = %d, want 9", len(c.Places))
	}
	if len(c.Incidents) != 2 {
		t.Errorf("incidents = %d, want 2", len(c.Incidents))
	}

	if c.Routing.HighwayRoad != "Prithvi Highway" {
		t.Errorf("highway road = %q", c.Routing.HighwayRoad)
	}
	if c.Routing.ScenicRoad != "Local Road" {
		t.Errorf("scenic road = %q", c.Routing.ScenicRoad)
	}

	if level := c.InitialTraffic["Araniko Highway"]; level != domain.TrafficHeavy {
		t.Errorf("Araniko Highway initial traffic = %q, want heavy", level)
	}
	if level := c.InitialTraffic["Local Road"]; level != domain.TrafficClear {
		t.Errorf("Local Road initial traffic = %q, want clear", level)
	}
}

func TestLoadGeometryOrder(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	var prithvi *domain.RoadSegment
	for i := range c.Roads {
		if c.Roads[i].Name == "Prithvi Highway" {
			prithvi = &c.Roads[i]
		}
	}
	if prithvi == nil {
		t.Fatal("Prithvi Highway missing from seed")
	}
	if len(prithvi.Geometry) != 3 {
		t.Fatalf("Prithvi Highway geometry = %d points, want 3", len(prithvi.Geometry))
	}

	mid := prithvi.Geometry[1]
	if mid.Lat != 27.65 || mid.Lng != 84.8 {
		t.Errorf("Prithvi Highway midpoint = %+v, want {27.65 84.8}", mid)
	}
}

func TestBuildRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		fc   fileCatalog
	}{
		{
			"duplicate road",
			fileCatalog{Roads: []fileRoad{
				{Name: "A", Condition: "good", Geometry: [][]float64{{0, 0}, {1, 1}}},
				{Name: "A", Condition: "good", Geometry: [][]float64{{0, 0}, {1, 1}}},
			}},
		},
		{
			"single point geometry",
			fileCatalog{Roads: []fileRoad{
				{Name: "A", Condition: "good", Geometry: [][]float64{{0, 0}}},
			}},
		},
		{
			"unknown condition",
			fileCatalog{Roads: []fileRoad{
				{Name: "A", Condition: "terrible", Geometry: [][]float64{{0, 0}, {1, 1}}},
			}},
		},
		{
			"duplicate place case-insensitive",
			fileCatalog{Places: []filePlace{
				{ID: 1, Name: "Patan Hospital"},
				{ID: 2, Name: "patan hospital"},
			}},
		},
		{
			"unknown traffic level",
			fileCatalog{Traffic: []fileTraffic{{Road: "A", Level: "gridlock"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := build(tt.fc); err == nil {
				t.Error("build accepted invalid catalog")
			}
		})
	}
}

func TestRoadNames(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	names := c.RoadNames()
	if len(names) != 4 || names[0] != "Araniko Highway" {
		t.Errorf("RoadNames = %v", names)
	}
}
