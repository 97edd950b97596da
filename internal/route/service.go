package route

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

// List runs the built listing request. Every call issues a fresh request;
// nothing is cached.
func (s *Service) List(ctx context.Context, f query.RouteFilter) ([]Route, error) {
	req := query.Routes(f)
	rows, err := s.db.Query(ctx, req.SQL, req.Args...)
	if err != nil {
		return nil, query.Wrap("list routes", err)
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Distance, &r.Elevation, &r.Terrain,
			&r.Difficulty, &r.CreatedBy, &r.IsPublic, &r.CreatedAt, &r.Owner.Username, &r.Owner.AvatarURL); err != nil {
			return nil, query.Wrap("list routes", err)
		}
		routes = append(routes, r)
	}
	return routes, query.Wrap("list routes", rows.Err())
}

// Get composes the detail form: the route with its owner joined, plus its
// ratings as a second request.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	req := query.RouteByID(id)
	var d Detail
	row := s.db.QueryRow(ctx, req.SQL, req.Args...)
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Distance, &d.Elevation, &d.Terrain,
		&d.Difficulty, &d.CreatedBy, &d.IsPublic, &d.CreatedAt, &d.Owner.Username, &d.Owner.AvatarURL); err != nil {
		return Detail{}, query.Wrap("get route", err)
	}

	ratingsReq := query.RouteRatings(id)
	rows, err := s.db.Query(ctx, ratingsReq.SQL, ratingsReq.Args...)
	if err != nil {
		return Detail{}, query.Wrap("get route ratings", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.ID, &r.RouteID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return Detail{}, query.Wrap("get route ratings", err)
		}
		d.Ratings = append(d.Ratings, r)
	}
	return d, query.Wrap("get route ratings", rows.Err())
}

// Create submits the route and reflects server-assigned fields back.
func (s *Service) Create(ctx context.Context, input Route) (Route, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, description, distance, elevation, terrain, difficulty, created_by, is_public)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.Distance, input.Elevation, input.Terrain,
		input.Difficulty, input.CreatedBy, input.IsPublic)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Route{}, query.Wrap("create route", err)
	}
	return input, nil
}

// Rate records a rating, replacing the user's previous one for the route.
func (s *Service) Rate(ctx context.Context, input Rating) (Rating, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO route_ratings (id, route_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (route_id, user_id) DO UPDATE
		SET rating=EXCLUDED.rating, comment=EXCLUDED.comment
		RETURNING created_at
	`, input.ID, input.RouteID, input.UserID, input.Rating, input.Comment)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Rating{}, query.Wrap("rate route", err)
	}
	return input, nil
}
