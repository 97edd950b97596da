package query

import "time"

// ChallengeFilter selects challenges by their activity window. Now is fixed
// by the caller once per call; the window test never re-evaluates it per row.
type ChallengeFilter struct {
	Active *bool
	Now    time.Time
	Limit  *int
	Offset *int
}

// Challenges lists challenges with the creator profile joined. Active means
// start_date <= now <= end_date; inactive is the complement.
func Challenges(f ChallengeFilter) Request {
	b := &builder{}
	b.write(`SELECT c.id, c.title, c.description, c.start_date, c.end_date, c.created_by, c.created_at,
	       p.username, p.avatar_url
	FROM challenges c
	JOIN profiles p ON p.id = c.created_by`)

	if f.Active != nil {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		if *f.Active {
			b.where("c.start_date <= " + b.arg(now))
			b.where("c.end_date >= " + b.arg(now))
		} else {
			p := b.arg(now)
			b.where("(c.start_date > " + p + " OR c.end_date < " + p + ")")
		}
	}
	b.paginate(f.Limit, f.Offset)
	return b.request()
}
