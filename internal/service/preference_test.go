package service

import (
	"reflect"
	"testing"

	"github.com/sadaksathi/backend/internal/domain"
)

func exclusive(p domain.RoutePreferences) bool {
	return !(p.PreferHighways && p.PreferScenic)
}

func TestSetterMutualExclusivity(t *testing.T) {
	// Every transition in an arbitrary setter sequence must leave at most one
	// of the exclusive flags raised.
	type step struct {
		apply func(domain.RoutePreferences) domain.RoutePreferences
		name  string
	}
	steps := []step{
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetPreferHighways(p, true) }, "highways on"},
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetPreferScenic(p, true) }, "scenic on"},
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetAvoidTolls(p, true) }, "tolls on"},
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetPreferHighways(p, true) }, "highways on again"},
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetPreferHighways(p, false) }, "highways off"},
		{func(p domain.RoutePreferences) domain.RoutePreferences { return SetPreferScenic(p, true) }, "scenic back on"},
	}

	var prefs domain.RoutePreferences
	for _, s := range steps {
		prefs = s.apply(prefs)
		if !exclusive(prefs) {
			t.Fatalf("after %q both exclusive flags are set: %+v", s.name, prefs)
		}
	}

	if !prefs.PreferScenic || prefs.PreferHighways {
		t.Errorf("final prefs = %+v, want scenic only", prefs)
	}
	if !prefs.AvoidTolls {
		t.Error("AvoidTolls was cleared by unrelated setters")
	}
}

func TestSetPreferHighwaysClearsScenic(t *testing.T) {
	prefs := SetPreferScenic(domain.RoutePreferences{}, true)
	prefs = SetPreferHighways(prefs, true)
	if prefs.PreferScenic {
		t.Error("PreferScenic still set after enabling highways")
	}
	if !prefs.PreferHighways {
		t.Error("PreferHighways not set")
	}
}

func TestSetPreferHighwaysFalseKeepsScenic(t *testing.T) {
	prefs := SetPreferScenic(domain.RoutePreferences{}, true)
	prefs = SetPreferHighways(prefs, false)
	if !prefs.PreferScenic {
		t.Error("disabling highways should not touch scenic")
	}
}

func TestSetAvoidTollsIndependent(t *testing.T) {
	prefs := SetPreferHighways(domain.RoutePreferences{}, true)
	prefs = SetAvoidTolls(prefs, true)
	if !prefs.PreferHighways || !prefs.AvoidTolls {
		t.Errorf("prefs = %+v, want highways and tolls both set", prefs)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		prefs domain.RoutePreferences
		want  domain.ResolvedPreference
	}{
		{
			"default is fastest",
			domain.RoutePreferences{},
			domain.ResolvedPreference{Strategy: domain.StrategyFastest},
		},
		{
			"highways",
			domain.RoutePreferences{PreferHighways: true},
			domain.ResolvedPreference{Strategy: domain.StrategyHighways},
		},
		{
			"scenic",
			domain.RoutePreferences{PreferScenic: true},
			domain.ResolvedPreference{Strategy: domain.StrategyScenic},
		},
		{
			"tolls ride along with any strategy",
			domain.RoutePreferences{PreferScenic: true, AvoidTolls: true},
			domain.ResolvedPreference{Strategy: domain.StrategyScenic, TollNote: true},
		},
		{
			"tolls alone keep fastest",
			domain.RoutePreferences{AvoidTolls: true},
			domain.ResolvedPreference{Strategy: domain.StrategyFastest, TollNote: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.prefs); got != tt.want {
				t.Errorf("Resolve(%+v) = %+v, want %+v", tt.prefs, got, tt.want)
			}
		})
	}
}

func TestNormalizePreferencesRepairsConflict(t *testing.T) {
	prefs := NormalizePreferences(domain.RoutePreferences{PreferHighways: true, PreferScenic: true})
	if prefs.PreferScenic {
		t.Error("normalization kept both exclusive flags; highways should win")
	}
	if !prefs.PreferHighways {
		t.Error("normalization dropped highways")
	}
}

func TestMessageKeys(t *testing.T) {
	tests := []struct {
		name     string
		resolved domain.ResolvedPreference
		want     []string
	}{
		{"fastest", domain.ResolvedPreference{Strategy: domain.StrategyFastest}, []string{MsgRouteFastest}},
		{"highways", domain.ResolvedPreference{Strategy: domain.StrategyHighways}, []string{MsgRouteHighways}},
		{"scenic with tolls", domain.ResolvedPreference{Strategy: domain.StrategyScenic, TollNote: true}, []string{MsgRouteScenic, MsgRouteAvoidTolls}},
		{"highways with tolls", domain.ResolvedPreference{Strategy: domain.StrategyHighways, TollNote: true}, []string{MsgRouteHighways, MsgRouteAvoidTolls}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageKeys(tt.resolved); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MessageKeys(%+v) = %v, want %v", tt.resolved, got, tt.want)
			}
		})
	}
}
