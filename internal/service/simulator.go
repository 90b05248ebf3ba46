package service

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// Simulator is the periodic refresh collaborator: on every tick it replaces
// the traffic levels wholesale, preferring the live feed and falling back to
// the random simulation when the feed is absent or failing. Single writer;
// readers see last-write-wins snapshots.
type Simulator struct {
	traffic   *TrafficState
	feed      *TrafficFeed
	roadNames []string
	interval  time.Duration
	rng       *rand.Rand
}

// NewSimulator creates a simulator over the given catalog roads.
func NewSimulator(traffic *TrafficState, feed *TrafficFeed, roadNames []string, interval time.Duration, rng *rand.Rand) *Simulator {
	return &Simulator{
		traffic:   traffic,
		feed:      feed,
		roadNames: roadNames,
		interval:  interval,
		rng:       rng,
	}
}

// Run refreshes traffic on a fixed interval until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Simulator) refresh(ctx context.Context) {
	if s.feed != nil && s.feed.Enabled() {
		levels, err := s.feed.Fetch(ctx)
		if err == nil {
			for road, level := range levels {
				s.traffic.SetLevel(road, level)
			}
			return
		}
		log.Printf("Traffic feed unavailable, simulating: %v", err)
	}

	s.traffic.RefreshRandom(s.roadNames, s.rng)
	if s.traffic.HasHeavy() {
		log.Println("Traffic refresh: heavy congestion present")
	}
}
