package run

import "time"

// Run is one logged activity. RouteID is set when the run followed a saved
// route; RouteName is joined at fetch time for display.
type Run struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	RouteID       *string   `json:"route_id,omitempty"`
	Distance      float64   `json:"distance"`
	Duration      float64   `json:"duration"`
	ElevationGain float64   `json:"elevation_gain"`
	ElevationLoss float64   `json:"elevation_loss"`
	AvgPace       float64   `json:"avg_pace"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	RouteName     string    `json:"route_name,omitempty"`
}
