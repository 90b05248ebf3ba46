package postgres

import (
	"context"

	"github.com/sadaksathi/backend/internal/domain"
)

// MockRepository implements domain.HistoryRepository for testing/demo mode
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveIncidentReport is a no-op in mock mode
func (r *MockRepository) SaveIncidentReport(ctx context.Context, report domain.IncidentReport) error {
	return nil
}

// SaveRouteLog is a no-op in mock mode
func (r *MockRepository) SaveRouteLog(ctx context.Context, entry domain.RouteLog) error {
	return nil
}

// RecentIncidentReports returns no history in mock mode
func (r *MockRepository) RecentIncidentReports(ctx context.Context, limit int) ([]domain.IncidentReport, error) {
	return nil, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
