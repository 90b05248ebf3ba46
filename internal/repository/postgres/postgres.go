package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sadaksathi/backend/internal/domain"
)

// PostgresRepository implements domain.HistoryRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveIncidentReport persists a reported incident to PostgreSQL
func (r *PostgresRepository) SaveIncidentReport(ctx context.Context, report domain.IncidentReport) error {
	query := `
		INSERT INTO incident_reports (
			incident_id, name, lat, lng, kind, status, reported_by, reported_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		report.Incident.ID, report.Incident.Name,
		report.Incident.Coordinate.Lat, report.Incident.Coordinate.Lng,
		string(report.Incident.Kind), report.Incident.Status,
		report.ReportedBy.String(), report.ReportedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save incident report: %w", err)
	}

	return nil
}

// SaveRouteLog persists a served route request to PostgreSQL
func (r *PostgresRepository) SaveRouteLog(ctx context.Context, entry domain.RouteLog) error {
	query := `
		INSERT INTO route_logs (
			origin_name, destination_name, strategy, overall_traffic,
			incident_count, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.OriginName, entry.DestinationName, string(entry.Strategy),
		string(entry.OverallTraffic), entry.IncidentCount, entry.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save route log: %w", err)
	}

	return nil
}

// RecentIncidentReports retrieves the latest reports from PostgreSQL
func (r *PostgresRepository) RecentIncidentReports(ctx context.Context, limit int) ([]domain.IncidentReport, error) {
	query := `
		SELECT incident_id, name, lat, lng, kind, status, reported_by, reported_at
		FROM incident_reports
		ORDER BY reported_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query incident reports: %w", err)
	}
	defer rows.Close()

	var results []domain.IncidentReport
	for rows.Next() {
		var report domain.IncidentReport
		var kind string
		err := rows.Scan(
			&report.Incident.ID, &report.Incident.Name,
			&report.Incident.Coordinate.Lat, &report.Incident.Coordinate.Lng,
			&kind, &report.Incident.Status,
			&report.ReportedBy, &report.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan incident report row: %w", err)
		}
		report.Incident.Kind = domain.IncidentKind(kind)
		results = append(results, report)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
