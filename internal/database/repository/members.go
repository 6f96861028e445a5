package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MemberFilter narrows List and Count. Limit <= 0 means no limit.
type MemberFilter struct {
	Search    string
	SponsorID string
	Limit     int
	Offset    int
}

// MemberRepo handles members.
type MemberRepo struct {
	db *sql.DB
}

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

const memberColumns = "id, sponsor_id, name, email, rank, active, joined_at, profile, created_at, updated_at"

func (r *MemberRepo) Insert(ctx context.Context, m Member) error {
	profile, err := encodeProfile(m.Profile)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO members(id, sponsor_id, name, email, rank, active, joined_at, profile, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, m.ID, m.SponsorID, m.Name, m.Email, m.Rank, m.Active, m.JoinedAt.UTC(), profile)
	if err != nil {
		return fmt.Errorf("insert member %s: %w", m.ID, err)
	}
	return nil
}

func (r *MemberRepo) Get(ctx context.Context, id string) (Member, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM members WHERE id = ?", id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, err
}

// List returns one window of members ordered by join date, then name.
func (r *MemberRepo) List(ctx context.Context, f MemberFilter) ([]Member, error) {
	where, args := f.where()
	query := "SELECT " + memberColumns + " FROM members" + where + " ORDER BY joined_at ASC, name ASC, id ASC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, max(f.Offset, 0))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListAll returns every member. Used to build trees and downlines in memory.
func (r *MemberRepo) ListAll(ctx context.Context) ([]Member, error) {
	return r.List(ctx, MemberFilter{})
}

// Count returns how many members match f, ignoring Limit and Offset.
func (r *MemberRepo) Count(ctx context.Context, f MemberFilter) (int, error) {
	where, args := f.where()
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *MemberRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM members`)
	return err
}

// search text is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f MemberFilter) where() (string, []any) {
	var where []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(s) + "%"
		where = append(where, `(name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR rank LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if f.SponsorID != "" {
		where = append(where, "sponsor_id = ?")
		args = append(args, f.SponsorID)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMember(s scanner) (Member, error) {
	var (
		m       Member
		sponsor sql.NullString
		profile sql.NullString
	)
	if err := s.Scan(&m.ID, &sponsor, &m.Name, &m.Email, &m.Rank, &m.Active, &m.JoinedAt, &profile, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return Member{}, err
	}
	if sponsor.Valid {
		m.SponsorID = &sponsor.String
	}
	if profile.Valid && profile.String != "" {
		if err := json.Unmarshal([]byte(profile.String), &m.Profile); err != nil {
			return Member{}, fmt.Errorf("member %s profile: %w", m.ID, err)
		}
	}
	return m, nil
}

func encodeProfile(p map[string]any) (*string, error) {
	if len(p) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	s := string(b)
	return &s, nil
}
