package condition

import "time"

type Reporter struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Condition is a trail hazard or status report tied to a route.
type Condition struct {
	ID          string     `json:"id"`
	RouteID     string     `json:"route_id"`
	ReportedBy  string     `json:"reported_by"`
	Type        string     `json:"condition_type"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Reporter    Reporter   `json:"reporter"`
}
