package group

import (
	"context"

	"github.com/Lucky-TB/zephyrun-exp1/internal/db"
	"github.com/Lucky-TB/zephyrun-exp1/internal/query"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create opens a new running group with the creator as its first member.
func (s *Service) Create(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO running_groups (id, name, description, created_by, is_public)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.Name, input.Description, input.CreatedBy, input.IsPublic)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Group{}, query.Wrap("create group", err)
	}
	if err := s.Join(ctx, input.ID, input.CreatedBy); err != nil {
		return Group{}, err
	}
	input.MemberCount = 1
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT g.id, g.name, COALESCE(g.description, ''), g.created_by, g.is_public,
		       (SELECT count(*) FROM group_members gm WHERE gm.group_id = g.id),
		       g.created_at
		FROM running_groups g
		WHERE g.id = $1
	`, id)
	var g Group
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.IsPublic,
		&g.MemberCount, &g.CreatedAt); err != nil {
		return Group{}, query.Wrap("get group", err)
	}
	members, err := s.members(ctx, id)
	if err != nil {
		return Group{}, err
	}
	g.Members = members
	return g, nil
}

// ListPublic returns joinable groups, largest first.
func (s *Service) ListPublic(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.name, COALESCE(g.description, ''), g.created_by, g.is_public,
		       (SELECT count(*) FROM group_members gm WHERE gm.group_id = g.id) AS member_count,
		       g.created_at
		FROM running_groups g
		WHERE g.is_public = TRUE
		ORDER BY member_count DESC, g.created_at DESC
	`)
	if err != nil {
		return nil, query.Wrap("list groups", err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.IsPublic,
			&g.MemberCount, &g.CreatedAt); err != nil {
			return nil, query.Wrap("list groups", err)
		}
		groups = append(groups, g)
	}
	return groups, query.Wrap("list groups", rows.Err())
}

// Join is idempotent. Joining a group twice is not an error.
func (s *Service) Join(ctx context.Context, groupID, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, groupID, userID)
	return query.Wrap("join group", err)
}

func (s *Service) members(ctx context.Context, groupID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT gm.user_id, p.username, COALESCE(p.avatar_url, ''), gm.joined_at
		FROM group_members gm
		JOIN profiles p ON p.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at
	`, groupID)
	if err != nil {
		return nil, query.Wrap("group members", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.AvatarURL, &m.JoinedAt); err != nil {
			return nil, query.Wrap("group members", err)
		}
		members = append(members, m)
	}
	return members, query.Wrap("group members", rows.Err())
}
