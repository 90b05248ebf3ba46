package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sadaksathi/backend/internal/domain"
)

// Bridge talks to the hosted assistant service that turns free text into
// tool calls. When the service is unreachable it falls back to a keyword
// interpreter so voice commands keep working offline.
type Bridge struct {
	serviceURL string
	httpClient *http.Client
}

// NewBridge creates an assistant bridge. An empty URL runs in offline mode.
func NewBridge(serviceURL string) *Bridge {
	return &Bridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Context is the situational payload sent alongside the user message.
type Context struct {
	ActiveRoute *domain.Route                  `json:"active_route,omitempty"`
	Preferences domain.RoutePreferences        `json:"preferences"`
	Traffic     map[string]domain.TrafficLevel `json:"traffic"`
}

// Interpretation is what the assistant service returns: a reply to show the
// user, and optionally one tool call to execute.
type Interpretation struct {
	Reply  string  `json:"reply"`
	Action *Action `json:"action,omitempty"`
}

type interpretRequest struct {
	Message string  `json:"message"`
	Context Context `json:"context"`
}

// Interpret sends the user message to the assistant service. Network and
// server failures degrade to the offline keyword interpreter rather than
// erroring out.
func (b *Bridge) Interpret(ctx context.Context, message string, sctx Context) (Interpretation, error) {
	if b.serviceURL == "" {
		return b.interpretOffline(message), nil
	}

	body, err := json.Marshal(interpretRequest{Message: message, Context: sctx})
	if err != nil {
		return Interpretation{}, fmt.Errorf("assistant: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/interpret", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Interpretation{}, fmt.Errorf("assistant: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return b.interpretOffline(message), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return b.interpretOffline(message), nil
	}

	var raw struct {
		Reply  string          `json:"reply"`
		Action json.RawMessage `json:"action"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Interpretation{}, fmt.Errorf("assistant: failed to decode response: %w", err)
	}

	interp := Interpretation{Reply: raw.Reply}
	if len(raw.Action) > 0 && string(raw.Action) != "null" {
		action, err := DecodeAction(raw.Action)
		if err != nil {
			return Interpretation{}, err
		}
		interp.Action = &action
	}
	return interp, nil
}

// interpretOffline is a minimal keyword fallback covering the three tools.
func (b *Bridge) interpretOffline(message string) Interpretation {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "report"), strings.Contains(lower, "accident"), strings.Contains(lower, "jam"):
		kind := "other"
		if strings.Contains(lower, "jam") || strings.Contains(lower, "traffic") {
			kind = "traffic"
		} else if strings.Contains(lower, "closure") || strings.Contains(lower, "closed") {
			kind = "closure"
		}
		return Interpretation{
			Reply: "Reporting that at your current location.",
			Action: &Action{
				Kind:         ActionAddIncident,
				IncidentName: strings.TrimSpace(message),
				IncidentType: kind,
			},
		}

	case strings.HasPrefix(lower, "navigate to "), strings.HasPrefix(lower, "take me to "):
		dest := message[strings.LastIndex(lower, " to ")+4:]
		return Interpretation{
			Reply: fmt.Sprintf("Starting navigation to %s.", strings.TrimSpace(dest)),
			Action: &Action{
				Kind:            ActionStartNavigation,
				DestinationName: strings.TrimSpace(dest),
			},
		}

	case strings.Contains(lower, "nearby") || strings.Contains(lower, "near me"):
		for _, category := range []string{"hospital", "atm", "restaurant", "coffee shop", "shopping", "landmark"} {
			if strings.Contains(lower, category) {
				return Interpretation{
					Reply:  fmt.Sprintf("Looking for %ss near you.", category),
					Action: &Action{Kind: ActionFindNearbyPOIs, Category: category},
				}
			}
		}
	}

	return Interpretation{Reply: "Sorry, I'm having trouble connecting right now."}
}
