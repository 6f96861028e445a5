package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss/tree"
	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/logging"
)

// DownlineMember is a descendant of the downline root. Level 1 is a direct recruit.
type DownlineMember struct {
	repository.Member
	Level int
}

// DownlineService loads a member's whole downline into memory for
// client-side filtering and pagination.
type DownlineService struct {
	Members *repository.MemberRepo
	Log     *zap.Logger
}

// Load returns every descendant of rootID, breadth first.
func (s *DownlineService) Load(ctx context.Context, rootID string) (repository.Member, []DownlineMember, error) {
	root, err := s.Members.Get(ctx, rootID)
	if err != nil {
		return repository.Member{}, nil, err
	}
	all, err := s.Members.ListAll(ctx)
	if err != nil {
		return repository.Member{}, nil, fmt.Errorf("list members: %w", err)
	}
	out := Descendants(all, rootID)
	logging.OrNop(s.Log).Debug("downline loaded", zap.String("root", rootID), zap.Int("members", len(out)))
	return root, out, nil
}

// Descendants walks sponsor links from rootID. Members reachable twice (a
// corrupt cycle) are listed once.
func Descendants(all []repository.Member, rootID string) []DownlineMember {
	children := childrenIndex(all)
	seen := map[string]bool{rootID: true}
	var out []DownlineMember
	queue := []DownlineMember{{Member: repository.Member{ID: rootID}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur.ID] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			d := DownlineMember{Member: c, Level: cur.Level + 1}
			out = append(out, d)
			queue = append(queue, d)
		}
	}
	return out
}

// childrenIndex maps sponsor id to recruits ordered by join date, then name.
func childrenIndex(all []repository.Member) map[string][]repository.Member {
	children := make(map[string][]repository.Member)
	for _, m := range all {
		if m.SponsorID == nil {
			continue
		}
		children[*m.SponsorID] = append(children[*m.SponsorID], m)
	}
	for _, kids := range children {
		sort.SliceStable(kids, func(i, j int) bool {
			if !kids[i].JoinedAt.Equal(kids[j].JoinedAt) {
				return kids[i].JoinedAt.Before(kids[j].JoinedAt)
			}
			return kids[i].Name < kids[j].Name
		})
	}
	return children
}

// FilterMembers keeps members matching query: a case-insensitive substring of
// name, email or rank, or a name word within a small edit distance.
func FilterMembers(items []DownlineMember, query string) []DownlineMember {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]DownlineMember, 0, len(items))
	for _, it := range items {
		if matchesMember(it.Member, q) {
			out = append(out, it)
		}
	}
	return out
}

func matchesMember(m repository.Member, q string) bool {
	name := strings.ToLower(m.Name)
	if strings.Contains(name, q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(strings.ToLower(m.Rank), q) {
		return true
	}
	tolerance := fuzzyTolerance(q)
	if tolerance == 0 {
		return false
	}
	if levenshtein.ComputeDistance(q, name) <= tolerance {
		return true
	}
	for _, word := range strings.Fields(name) {
		if levenshtein.ComputeDistance(q, word) <= tolerance {
			return true
		}
	}
	return false
}

// fuzzyTolerance allows one typo per four query runes.
func fuzzyTolerance(q string) int {
	return utf8.RuneCountInString(q) / 4
}

// Tree renders the genealogy under rootID, depth levels deep.
func (s *DownlineService) Tree(ctx context.Context, rootID string, depth int) (*tree.Tree, error) {
	all, err := s.Members.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return GenealogyTree(all, rootID, depth)
}
