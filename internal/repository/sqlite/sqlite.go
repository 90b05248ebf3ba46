// Package sqlite is the local-mode history store, used when no PostgreSQL
// connection is configured.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sadaksathi/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS incident_reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	incident_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	lat REAL NOT NULL,
	lng REAL NOT NULL,
	kind TEXT NOT NULL,
	status TEXT NOT NULL,
	reported_by TEXT NOT NULL,
	reported_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS route_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	origin_name TEXT NOT NULL,
	destination_name TEXT NOT NULL,
	strategy TEXT NOT NULL,
	overall_traffic TEXT NOT NULL,
	incident_count INTEGER NOT NULL,
	requested_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_incident_reports_reported_at
	ON incident_reports(reported_at);
`

// SQLiteRepository implements domain.HistoryRepository on a local file.
type SQLiteRepository struct {
	db *sql.DB
}

// Open opens (or creates) the database file and ensures the schema.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ensure schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveIncidentReport persists a reported incident.
func (r *SQLiteRepository) SaveIncidentReport(ctx context.Context, report domain.IncidentReport) error {
	query := `
		INSERT INTO incident_reports (
			incident_id, name, lat, lng, kind, status, reported_by, reported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.Incident.ID, report.Incident.Name,
		report.Incident.Coordinate.Lat, report.Incident.Coordinate.Lng,
		string(report.Incident.Kind), report.Incident.Status,
		report.ReportedBy.String(), report.ReportedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save incident report: %w", err)
	}

	return nil
}

// SaveRouteLog persists a served route request.
func (r *SQLiteRepository) SaveRouteLog(ctx context.Context, entry domain.RouteLog) error {
	query := `
		INSERT INTO route_logs (
			origin_name, destination_name, strategy, overall_traffic,
			incident_count, requested_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.OriginName, entry.DestinationName, string(entry.Strategy),
		string(entry.OverallTraffic), entry.IncidentCount,
		entry.RequestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save route log: %w", err)
	}

	return nil
}

// RecentIncidentReports retrieves the latest reports, newest first.
func (r *SQLiteRepository) RecentIncidentReports(ctx context.Context, limit int) ([]domain.IncidentReport, error) {
	query := `
		SELECT incident_id, name, lat, lng, kind, status, reported_by, reported_at
		FROM incident_reports
		ORDER BY reported_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to query incident reports: %w", err)
	}
	defer rows.Close()

	var results []domain.IncidentReport
	for rows.Next() {
		var report domain.IncidentReport
		var kind, reportedBy, reportedAt string
		err := rows.Scan(
			&report.Incident.ID, &report.Incident.Name,
			&report.Incident.Coordinate.Lat, &report.Incident.Coordinate.Lng,
			&kind, &report.Incident.Status, &reportedBy, &reportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan incident report row: %w", err)
		}
		report.Incident.Kind = domain.IncidentKind(kind)
		if id, err := uuid.Parse(reportedBy); err == nil {
			report.ReportedBy = id
		}
		if at, err := time.Parse(time.RFC3339, reportedAt); err == nil {
			report.ReportedAt = at
		}
		results = append(results, report)
	}

	return results, rows.Err()
}

// Health checks database connectivity.
func (r *SQLiteRepository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}
