package profile

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var profileCols = []string{
	"id", "email", "username", "avatar_url", "bio", "preferred_terrain",
	"experience_level", "created_at", "updated_at",
}

func profileRow(now time.Time) []any {
	return []any{"user-1", "alex@example.com", "alex", "", "likes hills",
		[]string{"trail"}, "intermediate", now, now}
}

func TestGetProfile(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, username,[\s\S]*FROM profiles WHERE id = \$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(profileCols).AddRow(profileRow(now)...))

	svc := NewService(mock)
	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alex" || got.ExperienceLevel != "intermediate" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if len(got.PreferredTerrain) != 1 || got.PreferredTerrain[0] != "trail" {
		t.Fatalf("unexpected terrain: %v", got.PreferredTerrain)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	updated := now.Add(time.Minute)
	mock.ExpectQuery(`SELECT id, email, username,`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(profileCols).AddRow(profileRow(now)...))
	mock.ExpectQuery(`UPDATE profiles`).
		WithArgs("user-1", "alex", "", "moving to the coast", []string{"trail"}, "intermediate").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(updated))

	bio := "moving to the coast"
	svc := NewService(mock)
	got, err := svc.Update(context.Background(), "user-1", UpdateInput{Bio: &bio})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Bio != bio {
		t.Fatalf("bio not patched: %+v", got)
	}
	if got.Username != "alex" {
		t.Fatalf("untouched field changed: %+v", got)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("updated_at not refreshed: %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
