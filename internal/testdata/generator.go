// Package testdata synthesizes a random mock MLM network for demos and tests.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/mlmdash/internal/database/repository"
)

var (
	firstNames = []string{"Ada", "Ben", "Chloe", "Dev", "Elena", "Farid", "Grace", "Hugo", "Imani", "Jonas", "Keiko", "Liam", "Maya", "Nikolai", "Olu", "Priya", "Quinn", "Rosa", "Sami", "Tariq"}
	lastNames  = []string{"Okafor", "Lindqvist", "Moreau", "Patel", "Nakamura", "Garcia", "Kowalski", "Haddad", "Brennan", "Silva", "Novak", "Adeyemi"}
	cities     = []string{"Lyon", "Lagos", "Osaka", "Austin", "Krakow", "Porto", "Pune", "Leeds"}

	// weights follow the usual pyramid: most members never leave Associate
	rankWeights = []struct {
		rank   string
		weight int
	}{
		{"Associate", 50}, {"Bronze", 22}, {"Silver", 14}, {"Gold", 8}, {"Platinum", 4}, {"Diamond", 2},
	}
)

// Generate returns n members forming a single sponsor tree. Each member
// sponsors at most maxChildren recruits. Members are ordered so every
// sponsor precedes its recruits.
func Generate(rng *rand.Rand, n, maxChildren int, start time.Time) []repository.Member {
	if n <= 0 {
		return nil
	}
	maxChildren = max(maxChildren, 1)

	out := make([]repository.Member, 0, n)
	kids := make([]int, 0, n)
	open := []int{} // indexes of members that can still recruit

	for i := 0; i < n; i++ {
		m := randomMember(rng, i)
		m.JoinedAt = start
		if i > 0 {
			slot := rng.Intn(len(open))
			sponsorIdx := open[slot]
			sponsor := out[sponsorIdx]
			m.SponsorID = &sponsor.ID
			m.JoinedAt = sponsor.JoinedAt.Add(time.Duration(1+rng.Intn(30*24)) * time.Hour)
			kids[sponsorIdx]++
			if kids[sponsorIdx] >= maxChildren {
				open = append(open[:slot], open[slot+1:]...)
			}
		}
		out = append(out, m)
		kids = append(kids, 0)
		open = append(open, i)
	}
	return out
}

func randomMember(rng *rand.Rand, i int) repository.Member {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.New()
	}
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	m := repository.Member{
		ID:     id.String(),
		Name:   first + " " + last,
		Email:  fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
		Rank:   pickRank(rng),
		Active: rng.Intn(10) < 8,
	}
	if rng.Intn(3) > 0 {
		m.Profile = map[string]any{
			"city":       cities[rng.Intn(len(cities))],
			"newsletter": rng.Intn(2) == 0,
		}
	}
	return m
}

func pickRank(rng *rand.Rand) string {
	total := 0
	for _, w := range rankWeights {
		total += w.weight
	}
	n := rng.Intn(total)
	for _, w := range rankWeights {
		if n < w.weight {
			return w.rank
		}
		n -= w.weight
	}
	return rankWeights[0].rank
}

// Seed persists members in order.
func Seed(ctx context.Context, repo *repository.MemberRepo, members []repository.Member) error {
	for _, m := range members {
		if err := repo.Insert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
