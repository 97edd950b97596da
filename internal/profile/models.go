package profile

import "time"

// Profile is a user's public record. The password hash never leaves the store.
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	AvatarURL        string    `json:"avatar_url"`
	Bio              string    `json:"bio"`
	PreferredTerrain []string  `json:"preferred_terrain"`
	ExperienceLevel  string    `json:"experience_level"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateInput carries only the fields a user may change. Nil means keep.
type UpdateInput struct {
	Username         *string  `json:"username"`
	AvatarURL        *string  `json:"avatar_url"`
	Bio              *string  `json:"bio"`
	PreferredTerrain []string `json:"preferred_terrain"`
	ExperienceLevel  *string  `json:"experience_level"`
}
