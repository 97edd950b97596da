package query

// RouteFilter holds the optional constraints for a route listing. Absent
// fields impose no constraint; either end of a range may be set on its own.
type RouteFilter struct {
	Terrain       []string
	MinDistance   *float64
	MaxDistance   *float64
	MinDifficulty *int
	MaxDifficulty *int
	Limit         *int
	Offset        *int
}

const routeColumns = `r.id, r.name, r.description, r.distance, r.elevation, r.terrain, r.difficulty,
	       r.created_by, r.is_public, r.created_at, p.username, p.avatar_url`

// Routes lists routes with the owner profile joined. Listings only ever see
// publicly visible routes; terrain matches records whose terrain set
// contains every requested value.
func Routes(f RouteFilter) Request {
	b := &builder{}
	b.write(`SELECT ` + routeColumns + `
	FROM routes r
	JOIN profiles p ON p.id = r.created_by`)
	b.where("r.is_public = TRUE")

	if len(f.Terrain) > 0 {
		b.where("r.terrain @> " + b.arg(f.Terrain))
	}
	if f.MinDistance != nil {
		b.where("r.distance >= " + b.arg(*f.MinDistance))
	}
	if f.MaxDistance != nil {
		b.where("r.distance <= " + b.arg(*f.MaxDistance))
	}
	if f.MinDifficulty != nil {
		b.where("r.difficulty >= " + b.arg(*f.MinDifficulty))
	}
	if f.MaxDifficulty != nil {
		b.where("r.difficulty <= " + b.arg(*f.MaxDifficulty))
	}
	b.paginate(f.Limit, f.Offset)
	return b.request()
}

// RouteByID looks up one route. An explicit id lookup is assumed authorized,
// so visibility is not constrained.
func RouteByID(id string) Request {
	b := &builder{}
	b.write(`SELECT ` + routeColumns + `
	FROM routes r
	JOIN profiles p ON p.id = r.created_by`)
	b.where("r.id = " + b.arg(id))
	return b.request()
}

// RouteRatings fetches every rating for a route.
func RouteRatings(routeID string) Request {
	b := &builder{}
	b.write(`SELECT id, route_id, user_id, rating, comment, created_at
	FROM route_ratings`)
	b.where("route_id = " + b.arg(routeID))
	return b.request()
}
