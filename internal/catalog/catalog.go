// Package catalog loads the static seed data: road segments, named places,
// initial incidents and initial traffic levels. The catalog is immutable for
// the duration of a session.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sadaksathi/backend/internal/domain"
	"github.com/sadaksathi/backend/pkg/geo"
)

//go:embed seed.toml
var defaultSeed string

// Routing names the roads the mock router snaps through per strategy.
type Routing struct {
	HighwayRoad string `toml:"highway_road"`
	ScenicRoad  string `toml:"scenic_road"`
}

// Catalog is the loaded seed data.
type Catalog struct {
	Routing        Routing
	Roads          []domain.RoadSegment
	Places         []domain.NamedPlace
	Incidents      []domain.Incident
	InitialTraffic map[string]domain.TrafficLevel
}

type fileRoad struct {
	Name      string      `toml:"name"`
	Condition string      `toml:"condition"`
	Geometry  [][]float64 `toml:"geometry"`
}

type filePlace struct {
	ID       int     `toml:"id"`
	Name     string  `toml:"name"`
	Lat      float64 `toml:"lat"`
	Lng      float64 `toml:"lng"`
	Type     string  `toml:"type"`
	Status   string  `toml:"status"`
	Category string  `toml:"category"`
}

type fileIncident struct {
	ID     int     `toml:"id"`
	Name   string  `toml:"name"`
	Lat    float64 `toml:"lat"`
	Lng    float64 `toml:"lng"`
	Kind   string  `toml:"kind"`
	Status string  `toml:"status"`
}

type fileTraffic struct {
	Road  string `toml:"road"`
	Level string `toml:"level"`
}

type fileCatalog struct {
	Routing   Routing        `toml:"routing"`
	Roads     []fileRoad     `toml:"roads"`
	Places    []filePlace    `toml:"places"`
	Incidents []fileIncident `toml:"incidents"`
	Traffic   []fileTraffic  `toml:"traffic"`
}

// Load reads a catalog TOML file. An empty path loads the embedded Kathmandu
// demo catalog.
func Load(path string) (*Catalog, error) {
	var fc fileCatalog
	if path == "" {
		if _, err := toml.Decode(defaultSeed, &fc); err != nil {
			return nil, fmt.Errorf("catalog: failed to decode embedded seed: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("catalog: failed to decode %s: %w", path, err)
		}
	}
	return build(fc)
}

func build(fc fileCatalog) (*Catalog, error) {
	c := &Catalog{
		Routing:        fc.Routing,
		InitialTraffic: make(map[string]domain.TrafficLevel, len(fc.Traffic)),
	}

	seenRoads := make(map[string]bool, len(fc.Roads))
	for _, r := range fc.Roads {
		if seenRoads[r.Name] {
			return nil, fmt.Errorf("catalog: duplicate road name %q", r.Name)
		}
		seenRoads[r.Name] = true

		if len(r.Geometry) < 2 {
			return nil, fmt.Errorf("catalog: road %q needs at least 2 geometry points", r.Name)
		}
		cond := domain.RoadCondition(r.Condition)
		if !cond.IsValid() {
			return nil, fmt.Errorf("catalog: road %q has unknown condition %q", r.Name, r.Condition)
		}

		geom := make([]geo.Coordinate, 0, len(r.Geometry))
		for _, pair := range r.Geometry {
			if len(pair) != 2 {
				return nil, fmt.Errorf("catalog: road %q has a malformed geometry pair", r.Name)
			}
			geom = append(geom, geo.Coordinate{Lat: pair[0], Lng: pair[1]})
		}

		c.Roads = append(c.Roads, domain.RoadSegment{
			Name:      r.Name,
			Condition: cond,
			Geometry:  geom,
		})
	}

	seenPlaces := make(map[string]bool, len(fc.Places))
	for _, p := range fc.Places {
		key := strings.ToLower(p.Name)
		if seenPlaces[key] {
			return nil, fmt.Errorf("catalog: duplicate place name %q", p.Name)
		}
		seenPlaces[key] = true

		c.Places = append(c.Places, domain.NamedPlace{
			ID:         p.ID,
			Name:       p.Name,
			Coordinate: geo.Coordinate{Lat: p.Lat, Lng: p.Lng},
			Type:       p.Type,
			Status:     p.Status,
			Category:   p.Category,
		})
	}

	for _, i := range fc.Incidents {
		c.Incidents = append(c.Incidents, domain.Incident{
			ID:         i.ID,
			Name:       i.Name,
			Coordinate: geo.Coordinate{Lat: i.Lat, Lng: i.Lng},
			Kind:       domain.NormalizeIncidentKind(i.Kind),
			Status:     i.Status,
		})
	}

	for _, t := range fc.Traffic {
		level := domain.TrafficLevel(t.Level)
		if !level.IsValid() {
			return nil, fmt.Errorf("catalog: road %q has unknown traffic level %q", t.Road, t.Level)
		}
		c.InitialTraffic[t.Road] = level
	}

	return c, nil
}

// RoadNames returns the catalog road names in file order.
func (c *Catalog) RoadNames() []string {
	names := make([]string, len(c.Roads))
	for i, r := range c.Roads {
		names[i] = r.Name
	}
	return names
}
