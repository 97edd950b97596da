package query

import "time"

// RunFilter constrains a user's run history by creation date, with the usual
// inclusive independent bounds.
type RunFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     *int
	Offset    *int
}

// UserRuns returns a user's run history, most recent first, with the
// optional route joined.
func UserRuns(userID string, f RunFilter) Request {
	b := &builder{}
	b.write(`SELECT ur.id, ur.user_id, ur.route_id, ur.distance, ur.duration, ur.elevation_gain,
	       ur.elevation_loss, ur.avg_pace, ur.notes, ur.created_at, COALESCE(r.name, '')
	FROM user_runs ur
	LEFT JOIN routes r ON r.id = ur.route_id`)
	b.where("ur.user_id = " + b.arg(userID))
	if f.StartDate != nil {
		b.where("ur.created_at >= " + b.arg(*f.StartDate))
	}
	if f.EndDate != nil {
		b.where("ur.created_at <= " + b.arg(*f.EndDate))
	}
	b.write(" ORDER BY ur.created_at DESC")
	b.paginate(f.Limit, f.Offset)
	return b.request()
}
