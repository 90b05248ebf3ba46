package assistant

import (
	"testing"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Action
		wantErr bool
	}{
		{
			"add incident",
			`{"kind": "add_incident", "incident_name": "Accident near Thapathali", "incident_type": "other"}`,
			Action{Kind: ActionAddIncident, IncidentName: "Accident near Thapathali", IncidentType: "other"},
			false,
		},
		{
			"start navigation",
			`{"kind": "start_navigation", "destination_name": "Patan Hospital"}`,
			Action{Kind: ActionStartNavigation, DestinationName: "Patan Hospital"},
			false,
		},
		{
			"find nearby",
			`{"kind": "find_nearby_pois", "category": "atm"}`,
			Action{Kind: ActionFindNearbyPOIs, Category: "atm"},
			false,
		},
		{
			"unknown kind",
			`{"kind": "teleport"}`,
			Action{},
			true,
		},
		{
			"add incident missing name",
			`{"kind": "add_incident", "incident_type": "traffic"}`,
			Action{},
			true,
		},
		{
			"navigation missing destination",
			`{"kind": "start_navigation"}`,
			Action{},
			true,
		},
		{
			"nearby missing category",
			`{"kind": "find_nearby_pois"}`,
			Action{},
			true,
		},
		{
			"not json",
			`kind=add_incident`,
			Action{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeAction error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DecodeAction = %+v, want %+v", got, tt.want)
			}
		})
	}
}
