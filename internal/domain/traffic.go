package domain

// TrafficLevel is the live congestion reading for a road. It is independent
// of the road's physical condition.
type TrafficLevel string

const (
	TrafficClear    TrafficLevel = "clear"
	TrafficModerate TrafficLevel = "moderate"
	TrafficHeavy    TrafficLevel = "heavy"
)

// IsValid checks if the traffic level is a known value.
func (l TrafficLevel) IsValid() bool {
	switch l {
	case TrafficClear, TrafficModerate, TrafficHeavy:
		return true
	default:
		return false
	}
}

// Severity ranks levels for worst-case-wins aggregation.
func (l TrafficLevel) Severity() int {
	switch l {
	case TrafficHeavy:
		return 2
	case TrafficModerate:
		return 1
	default:
		return 0
	}
}

// RoadCondition is the static physical state of a road segment. It never
// changes during a session, unlike TrafficLevel.
type RoadCondition string

const (
	ConditionGood RoadCondition = "good"
	ConditionFair RoadCondition = "fair"
	ConditionPoor RoadCondition = "poor"
)

// IsValid checks if the road condition is a known value.
func (c RoadCondition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}
