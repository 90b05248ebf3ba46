package domain

import "github.com/sadaksathi/backend/pkg/geo"

// RoadSegment is a static road from the department-of-roads catalog. Name is
// the join key against live traffic readings.
type RoadSegment struct {
	Name      string           `json:"name"`
	Condition RoadCondition    `json:"condition"`
	Geometry  []geo.Coordinate `json:"geometry"`
}
