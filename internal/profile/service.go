package profile

import (
	"context"

	"github.com/Lucky-TB/zephyrun-exp1/internal/db"
	"github.com/Lucky-TB/zephyrun-exp1/internal/query"
)

const profileColumns = `id, email, username,
	COALESCE(avatar_url, '') AS avatar_url,
	COALESCE(bio, '') AS bio,
	COALESCE(preferred_terrain, '{}') AS preferred_terrain,
	COALESCE(experience_level, '') AS experience_level,
	created_at, updated_at`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Username, &p.AvatarURL, &p.Bio,
		&p.PreferredTerrain, &p.ExperienceLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, query.Wrap("get profile", err)
	}
	return p, nil
}

// Update patches the profile with the provided fields and returns the full record.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (Profile, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if input.Username != nil {
		current.Username = *input.Username
	}
	if input.AvatarURL != nil {
		current.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		current.Bio = *input.Bio
	}
	if input.PreferredTerrain != nil {
		current.PreferredTerrain = input.PreferredTerrain
	}
	if input.ExperienceLevel != nil {
		current.ExperienceLevel = *input.ExperienceLevel
	}

	row := s.db.QueryRow(ctx, `
		UPDATE profiles
		SET username = $2, avatar_url = $3, bio = $4, preferred_terrain = $5,
		    experience_level = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, id, current.Username, current.AvatarURL, current.Bio, current.PreferredTerrain, current.ExperienceLevel)
	if err := row.Scan(&current.UpdatedAt); err != nil {
		return Profile{}, query.Wrap("update profile", err)
	}
	return current, nil
}
