package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/mlmdash/internal/database"
)

func setupRepoTest(t *testing.T) (*MemberRepo, *InquiryRepo, context.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"), "../migrations")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMemberRepo(db), NewInquiryRepo(db), ctx
}

func strPtr(s string) *string { return &s }

func seedMembers(t *testing.T, ctx context.Context, repo *MemberRepo, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		m := Member{
			ID:       fmt.Sprintf("m-%03d", i),
			Name:     fmt.Sprintf("Member %03d", i),
			Email:    fmt.Sprintf("member%03d@example.com", i),
			Rank:     "Associate",
			Active:   i%3 != 0,
			JoinedAt: base.AddDate(0, 0, i),
		}
		if i > 0 {
			m.SponsorID = strPtr(fmt.Sprintf("m-%03d", (i-1)/2))
		}
		require.NoError(t, repo.Insert(ctx, m))
	}
}

func TestMemberInsertGet(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)

	joined := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, Member{
		ID: "root", Name: "Ada", Email: "ada@example.com", Rank: "Gold", Active: true,
		JoinedAt: joined, Profile: map[string]any{"city": "Lyon", "level": float64(2)},
	}))
	require.NoError(t, repo.Insert(ctx, Member{
		ID: "child", SponsorID: strPtr("root"), Name: "Ben", Email: "ben@example.com", Rank: "Bronze", JoinedAt: joined,
	}))

	got, err := repo.Get(ctx, "root")
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Name)
	require.True(t, got.Active)
	require.Nil(t, got.SponsorID)
	require.True(t, joined.Equal(got.JoinedAt), "joined_at = %v", got.JoinedAt)
	require.Equal(t, map[string]any{"city": "Lyon", "level": float64(2)}, got.Profile)

	child, err := repo.Get(ctx, "child")
	require.NoError(t, err)
	require.NotNil(t, child.SponsorID)
	require.Equal(t, "root", *child.SponsorID)
	require.False(t, child.Active)
	require.Nil(t, child.Profile)
}

func TestMemberGetNotFound(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)

	_, err := repo.Get(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound), "err = %v", err)
}

func TestMemberListAndCountWindow(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)
	seedMembers(t, ctx, repo, 25)

	total, err := repo.Count(ctx, MemberFilter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Equal(t, 25, total)

	page, err := repo.List(ctx, MemberFilter{Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.Len(t, page, 5)
	require.Equal(t, "m-020", page[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)
}

func TestMemberFilterSearchAndSponsor(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)
	seedMembers(t, ctx, repo, 12)

	n, err := repo.Count(ctx, MemberFilter{Search: "member01"})
	require.NoError(t, err)
	require.Equal(t, 2, n) // member010, member011

	kids, err := repo.List(ctx, MemberFilter{SponsorID: "m-000"})
	require.NoError(t, err)
	require.Len(t, kids, 2)
	require.Equal(t, "m-001", kids[0].ID)
	require.Equal(t, "m-002", kids[1].ID)
}

func TestMemberSearchTreatsWildcardsLiterally(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)
	seedMembers(t, ctx, repo, 5)
	require.NoError(t, repo.Insert(ctx, Member{
		ID: "u", Name: "snake_case 100%", Email: "snake@example.com", Rank: "Associate",
		JoinedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}))

	for _, q := range []string{"_", "%", "e_c", "100%"} {
		n, err := repo.Count(ctx, MemberFilter{Search: q})
		require.NoError(t, err)
		require.Equal(t, 1, n, "search %q", q)
	}

	n, err := repo.Count(ctx, MemberFilter{Search: `\`})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestMemberDeleteAll(t *testing.T) {
	t.Parallel()
	repo, _, ctx := setupRepoTest(t)
	seedMembers(t, ctx, repo, 5)

	require.NoError(t, repo.DeleteAll(ctx))
	n, err := repo.Count(ctx, MemberFilter{})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestInquiryInsertListCount(t *testing.T) {
	t.Parallel()
	_, repo, ctx := setupRepoTest(t)

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(ctx, Inquiry{
			ID: fmt.Sprintf("q-%d", i), Name: "Guest", Email: "guest@example.com",
			Subject: fmt.Sprintf("Question %d", i), Body: "How do ranks work?", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	list, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "q-2", list[0].ID)
}
