package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Lucky-TB/zephyrun-exp1/internal/credstore"
	"github.com/Lucky-TB/zephyrun-exp1/internal/db"
	"github.com/Lucky-TB/zephyrun-exp1/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL      = 24 * time.Hour
	sessionTokenKey = "zephyrun.session-token"
)

// Service is the record store's auth subsystem: password verification and
// registration over the profiles table. The issued token is persisted
// through the credential store and every state change goes out on the hub,
// which is how the session manager learns about it.
type Service struct {
	secret []byte
	db     db.Querier
	creds  credstore.Store
	hub    *session.Hub
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewService(secret string, q db.Querier, creds credstore.Store, hub *session.Hub) *Service {
	return &Service{
		secret: []byte(secret),
		db:     q,
		creds:  creds,
		hub:    hub,
	}
}

// CurrentSession restores the persisted session, if any. A stale or
// tampered token is dropped rather than surfaced, so startup resolves to
// unauthenticated instead of failing.
func (s *Service) CurrentSession(ctx context.Context) (*session.Session, error) {
	token, err := s.creds.Get(ctx, sessionTokenKey)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	sess, err := s.parseToken(token)
	if err != nil {
		_ = s.creds.Delete(ctx, sessionTokenKey)
		return nil, nil
	}
	return sess, nil
}

func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*session.Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, password_hash FROM profiles WHERE email = $1
	`, email)

	var id, storedEmail, hash string
	if err := row.Scan(&id, &storedEmail, &hash); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.activate(ctx, id, storedEmail)
}

// SignUp registers a new profile. There is no confirmation flow here, so the
// session activates immediately; callers relying on the push channel see the
// transition either way.
func (s *Service) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO profiles (id, email, username, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, id, email, usernameFromEmail(email), string(hash))
	var createdAt time.Time
	if err := row.Scan(&createdAt); err != nil {
		return nil, err
	}

	return s.activate(ctx, id, email)
}

// SignOut drops the persisted token and announces the transition. Signing
// out with no session stored is a no-op that still resolves to
// unauthenticated.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.creds.Delete(ctx, sessionTokenKey); err != nil {
		return err
	}
	s.hub.Publish(ctx, session.Event{Kind: session.EventSignedOut})
	return nil
}

func (s *Service) activate(ctx context.Context, userID, email string) (*session.Session, error) {
	sess, token, err := s.issueSession(userID, email)
	if err != nil {
		return nil, err
	}
	if err := s.creds.Set(ctx, sessionTokenKey, token); err != nil {
		return nil, err
	}
	s.hub.Publish(ctx, session.Event{Kind: session.EventSignedIn, Session: sess})
	return sess, nil
}

func (s *Service) issueSession(userID, email string) (*session.Session, string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}

	return &session.Session{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now.Add(sessionTTL),
	}, token, nil
}

func (s *Service) parseToken(token string) (*session.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return &session.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
