package query

import (
	"strings"
	"testing"
	"time"
)

func TestUserRunsMostRecentFirst(t *testing.T) {
	req := UserRuns("user-1", RunFilter{})
	if !strings.Contains(req.SQL, "ORDER BY ur.created_at DESC") {
		t.Fatalf("run history must be most recent first: %q", req.SQL)
	}
	if req.Args[0] != "user-1" {
		t.Fatalf("unexpected args %v", req.Args)
	}
}

func TestUserRunsDateRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	req := UserRuns("user-1", RunFilter{StartDate: &start, EndDate: &end, Limit: intPtr(10), Offset: intPtr(20)})
	if !strings.Contains(req.SQL, "ur.created_at >= $2") || !strings.Contains(req.SQL, "ur.created_at <= $3") {
		t.Fatalf("inclusive date bounds: %q", req.SQL)
	}
	if req.Args[1] != start || req.Args[2] != end {
		t.Fatalf("unexpected date args %v", req.Args)
	}
	// LIMIT/OFFSET must come after the ORDER BY clause
	if strings.Index(req.SQL, "ORDER BY") > strings.Index(req.SQL, "LIMIT") {
		t.Fatalf("pagination before ordering: %q", req.SQL)
	}
}

func TestTrailConditionsNewestFirst(t *testing.T) {
	req := TrailConditions("route-1")
	if !strings.Contains(req.SQL, "tc.route_id = $1") {
		t.Fatalf("route constraint: %q", req.SQL)
	}
	if !strings.Contains(req.SQL, "ORDER BY tc.created_at DESC") {
		t.Fatalf("conditions must be newest first: %q", req.SQL)
	}
	if req.Args[0] != "route-1" {
		t.Fatalf("unexpected args %v", req.Args)
	}
}
