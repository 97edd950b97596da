package run

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

// History returns the user's runs, most recent first.
func (s *Service) History(ctx context.Context, userID string, f query.RunFilter) ([]Run, error) {
	req := query.UserRuns(userID, f)
	rows, err := s.db.Query(ctx, req.SQL, req.Args...)
	if err != nil {
		return nil, query.Wrap("run history", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.UserID, &r.RouteID, &r.Distance, &r.Duration, &r.ElevationGain,
			&r.ElevationLoss, &r.AvgPace, &r.Notes, &r.CreatedAt, &r.RouteName); err != nil {
			return nil, query.Wrap("run history", err)
		}
		runs = append(runs, r)
	}
	return runs, query.Wrap("run history", rows.Err())
}

// Log submits the run and reflects server-assigned fields back.
func (s *Service) Log(ctx context.Context, input Run) (Run, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO user_runs (id, user_id, route_id, distance, duration, elevation_gain, elevation_loss, avg_pace, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.UserID, input.RouteID, input.Distance, input.Duration, input.ElevationGain,
		input.ElevationLoss, input.AvgPace, input.Notes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Run{}, query.Wrap("log run", err)
	}
	return input, nil
}
