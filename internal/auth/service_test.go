package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Lucky-TB/zephyrun-exp1/internal/credstore"
	"github.com/Lucky-TB/zephyrun-exp1/internal/session"

	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface, *session.Listener) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	hub := session.NewHub(nil)
	listener := hub.Subscribe()
	t.Cleanup(func() { hub.Unsubscribe(listener) })

	svc := NewService("test-secret", mock, credstore.NewMemory(), hub)
	return svc, mock, listener
}

func nextEvent(t *testing.T, l *session.Listener) session.Event {
	t.Helper()
	select {
	case evt := <-l.C:
		return evt
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for auth event")
		return session.Event{}
	}
}

func TestSignUpActivatesAndPersists(t *testing.T) {
	svc, mock, listener := newTestService(t)

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(pgxmock.AnyArg(), "runner@example.com", "runner", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	sess, err := svc.SignUp(context.Background(), "runner@example.com", "password123")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if sess.UserID == "" || sess.Email != "runner@example.com" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sess.ExpiresAt.Before(sess.IssuedAt) {
		t.Fatalf("malformed session lifetime %+v", sess)
	}

	evt := nextEvent(t, listener)
	if evt.Kind != session.EventSignedIn || evt.Session.UserID != sess.UserID {
		t.Fatalf("unexpected event %+v", evt)
	}

	// the persisted token restores the same identity
	restored, err := svc.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if restored == nil || restored.UserID != sess.UserID || restored.Email != sess.Email {
		t.Fatalf("restored session mismatch: %+v", restored)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignUpRequiresCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.SignUp(context.Background(), "", "pw"); err == nil {
		t.Fatalf("expected error for empty email")
	}
	if _, err := svc.SignUp(context.Background(), "a@example.com", ""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestSignInWithPassword(t *testing.T) {
	svc, mock, listener := newTestService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT id, email, password_hash FROM profiles`).
		WithArgs("runner@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow("user-1", "runner@example.com", string(hash)))

	sess, err := svc.SignInWithPassword(context.Background(), "runner@example.com", "password123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if sess.UserID != "user-1" {
		t.Fatalf("unexpected session %+v", sess)
	}

	evt := nextEvent(t, listener)
	if evt.Kind != session.EventSignedIn {
		t.Fatalf("unexpected event %+v", evt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, mock, _ := newTestService(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT id, email, password_hash FROM profiles`).
		WithArgs("runner@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow("user-1", "runner@example.com", string(hash)))

	if _, err := svc.SignInWithPassword(context.Background(), "runner@example.com", "nope"); err == nil {
		t.Fatalf("expected invalid credentials")
	}
}

func TestSignOutIsIdempotent(t *testing.T) {
	svc, _, listener := newTestService(t)

	if err := svc.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out with no session: %v", err)
	}
	evt := nextEvent(t, listener)
	if evt.Kind != session.EventSignedOut || evt.Session != nil {
		t.Fatalf("unexpected event %+v", evt)
	}

	sess, err := svc.CurrentSession(context.Background())
	if err != nil || sess != nil {
		t.Fatalf("expected no session after sign out, got %+v %v", sess, err)
	}
}

func TestCurrentSessionDropsBadToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.creds.Set(context.Background(), sessionTokenKey, "not-a-token"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	sess, err := svc.CurrentSession(context.Background())
	if err != nil || sess != nil {
		t.Fatalf("bad token must resolve to no session, got %+v %v", sess, err)
	}
	// and it must have been dropped
	val, _ := svc.creds.Get(context.Background(), sessionTokenKey)
	if val != "" {
		t.Fatalf("stale token not deleted")
	}
}

func TestUsernameFromEmail(t *testing.T) {
	if usernameFromEmail("runner@example.com") != "runner" {
		t.Fatalf("unexpected username")
	}
	if usernameFromEmail("noatsign") != "noatsign" {
		t.Fatalf("expected raw value without @")
	}
}
