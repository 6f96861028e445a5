package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/logging"
)

// DuplicatePair is a likely double registration.
type DuplicatePair struct {
	A, B       repository.Member
	Similarity float64
	Exact      bool
}

// Reconciler flags members that look like the same person signed up twice.
type Reconciler struct {
	Members *repository.MemberRepo
	Log     *zap.Logger
}

// Detect scans all members and returns candidate pairs, most similar first.
func (r *Reconciler) Detect(ctx context.Context) ([]DuplicatePair, error) {
	all, err := r.Members.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	pairs := FindDuplicates(all)
	logging.OrNop(r.Log).Info("duplicate scan finished", zap.Int("members", len(all)), zap.Int("pairs", len(pairs)))
	return pairs, nil
}

// FindDuplicates compares every pair: same email is exact; otherwise names
// must be close and both sign-ups within a week.
func FindDuplicates(all []repository.Member) []DuplicatePair {
	var out []DuplicatePair
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			switch {
			case matchExact(a, b):
				out = append(out, DuplicatePair{A: a, B: b, Similarity: 1, Exact: true})
			case matchFuzzyCandidate(a, b):
				out = append(out, DuplicatePair{A: a, B: b, Similarity: similarity(a, b)})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out
}

func matchExact(a, b repository.Member) bool {
	ea, eb := normalizeEmail(a.Email), normalizeEmail(b.Email)
	return ea != "" && ea == eb
}

func matchFuzzyCandidate(a, b repository.Member) bool {
	if daysApart(a.JoinedAt, b.JoinedAt) > 7 {
		return false
	}
	return similarity(a, b) > 0.8
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

func similarity(a, b repository.Member) float64 {
	na, nb := strings.ToUpper(a.Name), strings.ToUpper(b.Name)
	longest := max(len(na), len(nb))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(na, nb))/float64(longest)
}
