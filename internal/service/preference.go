package service

import "github.com/sadaksathi/backend/internal/domain"

// Preference message keys handed to the UI collaborator for translation.
const (
	MsgRouteFastest    = "route_pref_fastest"
	MsgRouteHighways   = "route_pref_highways"
	MsgRouteScenic     = "route_pref_scenic"
	MsgRouteAvoidTolls = "route_pref_avoid_tolls"
)

// SetPreferHighways returns preferences with the highway flag set. Enabling
// it clears the scenic flag so the two can never be active together.
func SetPreferHighways(prefs domain.RoutePreferences, value bool) domain.RoutePreferences {
	prefs.PreferHighways = value
	if value {
		prefs.PreferScenic = false
	}
	return prefs
}

// SetPreferScenic returns preferences with the scenic flag set, clearing the
// highway flag when enabled.
func SetPreferScenic(prefs domain.RoutePreferences, value bool) domain.RoutePreferences {
	prefs.PreferScenic = value
	if value {
		prefs.PreferHighways = false
	}
	return prefs
}

// SetAvoidTolls returns preferences with the toll flag set. Independent of
// the other two.
func SetAvoidTolls(prefs domain.RoutePreferences, value bool) domain.RoutePreferences {
	prefs.AvoidTolls = value
	return prefs
}

// NormalizePreferences repairs a flag set that arrived with both exclusive
// flags raised, e.g. from a hand-built request. Highways wins, matching the
// order Resolve checks them in.
func NormalizePreferences(prefs domain.RoutePreferences) domain.RoutePreferences {
	if prefs.PreferHighways && prefs.PreferScenic {
		prefs.PreferScenic = false
	}
	return prefs
}

// Resolve converts the flag set into the single effective strategy plus the
// toll modifier.
func Resolve(prefs domain.RoutePreferences) domain.ResolvedPreference {
	resolved := domain.ResolvedPreference{
		Strategy: domain.StrategyFastest,
		TollNote: prefs.AvoidTolls,
	}
	switch {
	case prefs.PreferHighways:
		resolved.Strategy = domain.StrategyHighways
	case prefs.PreferScenic:
		resolved.Strategy = domain.StrategyScenic
	}
	return resolved
}

// MessageKeys returns the translation keys describing a resolved preference:
// the strategy key, optionally suffixed with the toll note.
func MessageKeys(resolved domain.ResolvedPreference) []string {
	var key string
	switch resolved.Strategy {
	case domain.StrategyHighways:
		key = MsgRouteHighways
	case domain.StrategyScenic:
		key = MsgRouteScenic
	default:
		key = MsgRouteFastest
	}

	keys := []string{key}
	if resolved.TollNote {
		keys = append(keys, MsgRouteAvoidTolls)
	}
	return keys
}
