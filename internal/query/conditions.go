package query

// TrailConditions fetches condition reports for a route with the reporter
// profile joined, newest first.
func TrailConditions(routeID string) Request {
	b := &builder{}
	b.write(`SELECT tc.id, tc.route_id, tc.reported_by, tc.condition_type, tc.description, tc.severity,
	       tc.resolved, tc.resolved_at, tc.created_at, p.username, p.avatar_url
	FROM trail_conditions tc
	JOIN profiles p ON p.id = tc.reported_by`)
	b.where("tc.route_id = " + b.arg(routeID))
	b.write(" ORDER BY tc.created_at DESC")
	return b.request()
}
