// Package assistant bridges free-text user input to typed tool actions. The
// NLU itself is an external capability; this package decodes its tool calls
// once at the boundary so the route core only ever sees typed requests.
package assistant

import (
	"encoding/json"
	"fmt"
)

// ActionKind tags the action variant.
type ActionKind string

const (
	ActionAddIncident     ActionKind = "add_incident"
	ActionStartNavigation ActionKind = "start_navigation"
	ActionFindNearbyPOIs  ActionKind = "find_nearby_pois"
)

// Action is the tagged union of tool calls the assistant can make. Which
// fields are meaningful depends on Kind; Validate enforces the per-kind
// required fields.
type Action struct {
	Kind            ActionKind `json:"kind"`
	IncidentName    string     `json:"incident_name,omitempty"`
	IncidentType    string     `json:"incident_type,omitempty"`
	DestinationName string     `json:"destination_name,omitempty"`
	Category        string     `json:"category,omitempty"`
}

// Validate checks the kind and its required fields.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionAddIncident:
		if a.IncidentName == "" {
			return fmt.Errorf("assistant: add_incident requires incident_name")
		}
	case ActionStartNavigation:
		if a.DestinationName == "" {
			return fmt.Errorf("assistant: start_navigation requires destination_name")
		}
	case ActionFindNearbyPOIs:
		if a.Category == "" {
			return fmt.Errorf("assistant: find_nearby_pois requires category")
		}
	default:
		return fmt.Errorf("assistant: unknown action kind %q", a.Kind)
	}
	return nil
}

// DecodeAction parses and validates a raw tool-call payload.
func DecodeAction(data []byte) (Action, error) {
	var action Action
	if err := json.Unmarshal(data, &action); err != nil {
		return Action{}, fmt.Errorf("assistant: failed to decode action: %w", err)
	}
	if err := action.Validate(); err != nil {
		return Action{}, err
	}
	return action, nil
}
