package challenge

import (
	"context"
	"time"

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

// List fetches challenges, optionally restricted to those active (or
// inactive) right now. The reference instant is taken once, here.
func (s *Service) List(ctx context.Context, active *bool, limit, offset *int) ([]Challenge, error) {
	req := query.Challenges(query.ChallengeFilter{
		Active: active,
		Now:    time.Now(),
		Limit:  limit,
		Offset: offset,
	})
	rows, err := s.db.Query(ctx, req.SQL, req.Args...)
	if err != nil {
		return nil, query.Wrap("list challenges", err)
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var ch Challenge
		if err := rows.Scan(&ch.ID, &ch.Title, &ch.Description, &ch.StartDate, &ch.EndDate,
			&ch.CreatedBy, &ch.CreatedAt, &ch.Creator.Username, &ch.Creator.AvatarURL); err != nil {
			return nil, query.Wrap("list challenges", err)
		}
		challenges = append(challenges, ch)
	}
	return challenges, query.Wrap("list challenges", rows.Err())
}

// Join enrolls a user. A duplicate join surfaces the backend's error
// verbatim.
func (s *Service) Join(ctx context.Context, challengeID, userID string) (Participant, error) {
	p := Participant{ID: uuid.NewString(), ChallengeID: challengeID, UserID: userID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO challenge_participants (id, challenge_id, user_id)
		VALUES ($1,$2,$3)
		RETURNING joined_at
	`, p.ID, p.ChallengeID, p.UserID)
	if err := row.Scan(&p.JoinedAt); err != nil {
		return Participant{}, query.Wrap("join challenge", err)
	}
	return p, nil
}
