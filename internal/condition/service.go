package condition

import (
	"context"

	"github.com/Lucky-TB/zephyrun-exp1/internal/db"
	"github.com/Lucky-TB/zephyrun-exp1/internal/query"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// ForRoute returns the condition reports on a route, newest first.
func (s *Service) ForRoute(ctx context.Context, routeID string) ([]Condition, error) {
	req := query.TrailConditions(routeID)
	rows, err := s.db.Query(ctx, req.SQL, req.Args...)
	if err != nil {
		return nil, query.Wrap("route conditions", err)
	}
	defer rows.Close()

	var out []Condition
	for rows.Next() {
		var c Condition
		if err := rows.Scan(&c.ID, &c.RouteID, &c.ReportedBy, &c.Type, &c.Description, &c.Severity,
			&c.Resolved, &c.ResolvedAt, &c.CreatedAt, &c.Reporter.Username, &c.Reporter.AvatarURL); err != nil {
			return nil, query.Wrap("route conditions", err)
		}
		out = append(out, c)
	}
	return out, query.Wrap("route conditions", rows.Err())
}

// Report files a new condition against a route.
func (s *Service) Report(ctx context.Context, input Condition) (Condition, error) {
	input.ID = uuid.NewString()
	input.Resolved = false
	row := s.db.QueryRow(ctx, `
		INSERT INTO trail_conditions (id, route_id, reported_by, condition_type, description, severity)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.RouteID, input.ReportedBy, input.Type, input.Description, input.Severity)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Condition{}, query.Wrap("report condition", err)
	}
	return input, nil
}

// Resolve marks a report as cleared. A second resolve keeps the original timestamp.
func (s *Service) Resolve(ctx context.Context, id string) (Condition, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE trail_conditions
		SET resolved = TRUE, resolved_at = COALESCE(resolved_at, now())
		WHERE id = $1
		RETURNING id, route_id, reported_by, condition_type, description, severity, resolved, resolved_at, created_at
	`, id)
	var c Condition
	if err := row.Scan(&c.ID, &c.RouteID, &c.ReportedBy, &c.Type, &c.Description, &c.Severity,
		&c.Resolved, &c.ResolvedAt, &c.CreatedAt); err != nil {
		return Condition{}, query.Wrap("resolve condition", err)
	}
	return c, nil
}
