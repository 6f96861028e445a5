package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/mlmdash/internal/config"
	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/service"
)

func testConfig() config.Config {
	return config.Config{UI: config.UIConfig{
		ItemsPerPage: 10,
		NotAvailable: "N/A",
		Yes:          "Yes",
		No:           "No",
		DateFormat:   "2006-01-02",
	}}
}

func testMembers(n int) []repository.Member {
	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]repository.Member, n)
	for i := range out {
		out[i] = repository.Member{
			ID:       fmt.Sprintf("m-%02d", i+1),
			Name:     fmt.Sprintf("Member %02d", i+1),
			Email:    fmt.Sprintf("member%02d@example.com", i+1),
			Rank:     "Bronze",
			Active:   i%2 == 0,
			JoinedAt: joined.AddDate(0, 0, i),
		}
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a *App, msgs ...tea.Msg) *App {
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(*App)
	}
	return a
}

func newAuthority() *App {
	return New(context.Background(), testConfig(), Services{}, nil, PortalAuthority, "")
}

func TestAuthorityStartsLoading(t *testing.T) {
	a := newAuthority()
	if !a.loading {
		t.Fatalf("loading = false, want true")
	}
	if v := a.View(); !strings.Contains(v, "Loading...") {
		t.Fatalf("view missing loading message:\n%s", v)
	}
}

func TestAuthorityMembersPage(t *testing.T) {
	a := newAuthority()
	a = send(a, membersMsg{seq: a.seq, page: service.DirectoryPage{
		Members: testMembers(10), Total: 25, Page: 1, PerPage: 10,
	}})

	v := a.View()
	for _, want := range []string{"Member 01", "Member 10", "Showing 1 to 10 of 25 items", "N/A"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}

func TestAuthorityNextPageRefetches(t *testing.T) {
	a := newAuthority()
	a = send(a, membersMsg{seq: a.seq, page: service.DirectoryPage{
		Members: testMembers(10), Total: 25, Page: 1, PerPage: 10,
	}})
	before := a.seq

	a = send(a, keyMsg("right"))
	if a.page != 2 {
		t.Fatalf("page = %d, want 2", a.page)
	}
	if !a.loading {
		t.Fatalf("loading = false, want true after page change")
	}
	if a.seq != before+1 {
		t.Fatalf("seq = %d, want %d", a.seq, before+1)
	}
}

func TestStaleResponseDropped(t *testing.T) {
	a := newAuthority()
	stale := a.seq
	a.fetch()

	a = send(a, membersMsg{seq: stale, page: service.DirectoryPage{
		Members: testMembers(3), Total: 3, Page: 1, PerPage: 10,
	}})
	if !a.loading {
		t.Fatalf("stale response cleared loading")
	}
	if len(a.members) != 0 {
		t.Fatalf("members = %d, want 0", len(a.members))
	}
}

func TestErrorAndRetry(t *testing.T) {
	a := newAuthority()
	a = send(a, errMsg{seq: a.seq, err: errors.New("database is locked")})

	v := a.View()
	if !strings.Contains(v, "database is locked") {
		t.Fatalf("view missing error:\n%s", v)
	}
	if !strings.Contains(v, "Retry") {
		t.Fatalf("view missing retry hint:\n%s", v)
	}

	before := a.seq
	a = send(a, keyMsg("r"))
	if a.seq != before+1 || !a.loading || a.err != nil {
		t.Fatalf("retry did not refetch: seq=%d loading=%v err=%v", a.seq, a.loading, a.err)
	}
}

func TestTabSwitchesToInquiries(t *testing.T) {
	a := newAuthority()
	a = send(a, membersMsg{seq: a.seq, page: service.DirectoryPage{Total: 0, Page: 1, PerPage: 10}})
	if v := a.View(); !strings.Contains(v, "No members found.") {
		t.Fatalf("view missing empty message:\n%s", v)
	}

	a = send(a, keyMsg("tab"))
	if a.state != viewInquiries {
		t.Fatalf("state = %s, want %s", a.state, viewInquiries)
	}
	a = send(a, inquiriesMsg{seq: a.seq, page: service.InquiryPage{
		Inquiries: []repository.Inquiry{{
			ID: "q-1", Name: "Ann", Email: "ann@example.com", Subject: "Hello",
			Body: "Is the\nstarter kit\trefundable?", CreatedAt: time.Now(),
		}},
		Total: 1, Page: 1, PerPage: 10,
	}})
	v := a.View()
	if !strings.Contains(v, "Is the starter kit refundable?") {
		t.Fatalf("view missing collapsed body:\n%s", v)
	}
	if strings.Contains(v, "Showing") {
		t.Fatalf("single page should have no footer:\n%s", v)
	}
}

func newCustomer(t *testing.T, n int) *App {
	t.Helper()
	a := New(context.Background(), testConfig(), Services{}, nil, PortalCustomer, "root")
	down := make([]service.DownlineMember, 0, n)
	for i, m := range testMembers(n) {
		down = append(down, service.DownlineMember{Member: m, Level: i%3 + 1})
	}
	return send(a, downlineMsg{
		seq:     a.seq,
		root:    repository.Member{ID: "root", Name: "Rita Root", Rank: "Gold"},
		members: down,
	})
}

func TestCustomerPagesInMemory(t *testing.T) {
	a := newCustomer(t, 15)
	if v := a.View(); !strings.Contains(v, "Showing 1 to 10 of 15 items") {
		t.Fatalf("view missing first page summary:\n%s", v)
	}
	if !strings.Contains(a.View(), "Rita Root") {
		t.Fatalf("header missing root name")
	}

	before := a.seq
	a = send(a, keyMsg("right"))
	if a.page != 2 {
		t.Fatalf("page = %d, want 2", a.page)
	}
	if a.seq != before || a.loading {
		t.Fatalf("client-side paging refetched: seq=%d loading=%v", a.seq, a.loading)
	}
	if v := a.View(); !strings.Contains(v, "Showing 11 to 15 of 15 items") {
		t.Fatalf("view missing second page summary:\n%s", v)
	}
}

func TestCustomerSearchFilters(t *testing.T) {
	a := newCustomer(t, 15)
	a = send(a, keyMsg("right"))
	a = send(a, keyMsg("/"), keyMsg("member03@example"), keyMsg("enter"))

	if a.query != "member03@example" {
		t.Fatalf("query = %q, want %q", a.query, "member03@example")
	}
	if a.page != 1 {
		t.Fatalf("page = %d, want 1 after search", a.page)
	}
	v := a.View()
	if !strings.Contains(v, "Member 03") {
		t.Fatalf("view missing match:\n%s", v)
	}
	if strings.Contains(v, "Member 13") {
		t.Fatalf("view kept filtered-out member:\n%s", v)
	}
}

func TestRowClickRequestsTree(t *testing.T) {
	a := newCustomer(t, 5)
	a = send(a, keyMsg("down"))
	if a.status != "" {
		t.Fatalf("moving the cursor should not start a tree load")
	}

	m, cmd := a.Update(keyMsg("enter"))
	a = m.(*App)
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	if a.status != "Loading genealogy..." {
		t.Fatalf("status = %q", a.status)
	}
	if a.treeFor != "" {
		t.Fatalf("tree request not consumed: %q", a.treeFor)
	}
}

func TestTreeErrorShowsStatus(t *testing.T) {
	a := newCustomer(t, 5)
	a.loadTree("m-02")
	a = send(a, treeMsg{memberID: "m-02", err: repository.ErrNotFound})
	if !strings.Contains(a.status, "not found") {
		t.Fatalf("status = %q", a.status)
	}
	a = send(a, keyMsg("esc"))
	if a.status != "" {
		t.Fatalf("esc did not clear status")
	}
}

func TestStaleTreeReplyDropped(t *testing.T) {
	a := newCustomer(t, 5)
	a.loadTree("m-01")
	a.loadTree("m-02")

	a = send(a, treeMsg{memberID: "m-01", err: repository.ErrNotFound})
	if a.status != "Loading genealogy..." {
		t.Fatalf("status = %q, want the pending load for m-02", a.status)
	}

	a = send(a, treeMsg{memberID: "m-02", err: errors.New("boom")})
	if !strings.Contains(a.status, "boom") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestTreeReplyAfterEscDropped(t *testing.T) {
	a := newCustomer(t, 5)
	a.loadTree("m-03")
	a = send(a, keyMsg("esc"))
	a = send(a, treeMsg{memberID: "m-03", err: repository.ErrNotFound})
	if a.status != "" {
		t.Fatalf("status = %q, want empty after closing", a.status)
	}
}
