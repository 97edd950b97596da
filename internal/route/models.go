package route

import "time"

// Owner is the joined slice of the owning profile returned with listings.
type Owner struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type Route struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Distance    float64   `json:"distance"`
	Elevation   float64   `json:"elevation"`
	Terrain     []string  `json:"terrain"`
	Difficulty  int       `json:"difficulty"`
	CreatedBy   string    `json:"created_by"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       Owner     `json:"owner"`
}

type Rating struct {
	ID        string    `json:"id"`
	RouteID   string    `json:"route_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail is the single-route form, which also carries ratings.
type Detail struct {
	Route
	Ratings []Rating `json:"ratings"`
}
