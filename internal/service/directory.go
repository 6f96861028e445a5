package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/logging"
)

// DefaultPerPage is used when a query leaves PerPage unset.
const DefaultPerPage = 10

// DirectoryQuery selects one server-side page of members. Page is one-based.
type DirectoryQuery struct {
	Page    int
	PerPage int
	Search  string
}

// DirectoryPage is one page of members plus the total matching count.
type DirectoryPage struct {
	Members []repository.Member
	Total   int
	Page    int
	PerPage int
}

// DirectoryService pages through the whole member network.
type DirectoryService struct {
	Members *repository.MemberRepo
	Log     *zap.Logger
}

// Page loads one page. A page past the end is clamped to the last page.
func (s *DirectoryService) Page(ctx context.Context, q DirectoryQuery) (DirectoryPage, error) {
	log := logging.OrNop(s.Log)
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	filter := repository.MemberFilter{Search: q.Search}

	total, err := s.Members.Count(ctx, filter)
	if err != nil {
		return DirectoryPage{}, fmt.Errorf("count members: %w", err)
	}
	page := clampPage(q.Page, total, perPage)

	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	members, err := s.Members.List(ctx, filter)
	if err != nil {
		return DirectoryPage{}, fmt.Errorf("list members: %w", err)
	}

	log.Debug("directory page loaded",
		zap.Int("page", page),
		zap.Int("per_page", perPage),
		zap.Int("total", total),
		zap.String("search", q.Search))
	return DirectoryPage{Members: members, Total: total, Page: page, PerPage: perPage}, nil
}

// clampPage keeps page within [1, last page]; an empty result is page 1.
func clampPage(page, total, perPage int) int {
	last := max((total+perPage-1)/perPage, 1)
	return min(max(page, 1), last)
}
