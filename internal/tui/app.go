package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/config"
	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/datatable"
	"github.com/jask/mlmdash/internal/logging"
	"github.com/jask/mlmdash/internal/service"
	"github.com/jask/mlmdash/internal/theme"
)

// Portal selects which dashboard the App shows.
type Portal string

const (
	PortalAuthority Portal = "authority"
	PortalCustomer  Portal = "customer"
)

// Services the App loads data through.
type Services struct {
	Directory *service.DirectoryService
	Downline  *service.DownlineService
	Inquiries *service.InquiryService
}

type appState string

const (
	viewMembers   appState = "members"
	viewInquiries appState = "inquiries"
	viewDownline  appState = "downline"
)

const treeDepth = 3

// App ties together the portal views. It owns the dataset and the current
// page; the table only reports requests back through its callbacks.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	log      *zap.Logger
	portal   Portal
	state    appState

	table     datatable.Model
	search    textinput.Model
	help      help.Model
	searching bool
	query     string

	page    int
	loading bool
	err     error
	seq     int

	// requests recorded by table callbacks, acted on after the table's Update
	requestedPage int
	retry         bool
	treeFor       string

	// member whose tree was last requested; other replies are stale
	treeShown string

	// server-side data
	members   []repository.Member
	inquiries []repository.Inquiry
	total     int

	// client-side data
	rootID   string
	root     repository.Member
	downline []service.DownlineMember

	treeView string
	status   string
	width    int
}

// New builds the authority portal, or the customer portal for rootID when
// portal is PortalCustomer.
func New(ctx context.Context, cfg config.Config, services Services, log *zap.Logger, portal Portal, rootID string) *App {
	ti := textinput.New()
	ti.Placeholder = "Search name, email or rank..."
	ti.CharLimit = 64
	ti.Width = 40

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		services: services,
		log:      logging.OrNop(log),
		portal:   portal,
		state:    viewMembers,
		search:   ti,
		help:     help.New(),
		page:     1,
		loading:  true,
		rootID:   rootID,
	}
	if portal == PortalCustomer {
		a.state = viewDownline
	}
	a.table = datatable.New(a.props(), datatable.WithStyles(theme.TableStyles()))
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.table.Init(), a.fetch())
}

func (a *App) perPage() int {
	if a.cfg.UI.ItemsPerPage > 0 {
		return a.cfg.UI.ItemsPerPage
	}
	return service.DefaultPerPage
}

// fetch starts loading the current view's data. Responses carry seq so a
// slow answer to an older request never overwrites a newer one.
func (a *App) fetch() tea.Cmd {
	a.seq++
	seq := a.seq
	a.loading = true
	a.err = nil
	spin := a.sync()

	var load tea.Cmd
	switch a.state {
	case viewInquiries:
		page, perPage := a.page, a.perPage()
		load = func() tea.Msg {
			res, err := a.services.Inquiries.Page(a.ctx, page, perPage)
			if err != nil {
				return errMsg{seq: seq, err: err}
			}
			return inquiriesMsg{seq: seq, page: res}
		}
	case viewDownline:
		rootID := a.rootID
		load = func() tea.Msg {
			root, down, err := a.services.Downline.Load(a.ctx, rootID)
			if err != nil {
				return errMsg{seq: seq, err: err}
			}
			return downlineMsg{seq: seq, root: root, members: down}
		}
	default:
		q := service.DirectoryQuery{Page: a.page, PerPage: a.perPage(), Search: a.query}
		load = func() tea.Msg {
			res, err := a.services.Directory.Page(a.ctx, q)
			if err != nil {
				return errMsg{seq: seq, err: err}
			}
			return membersMsg{seq: seq, page: res}
		}
	}
	return tea.Batch(spin, load)
}

// changePage moves to page. The downline is already in memory, so only
// server-side views go back to the store.
func (a *App) changePage(page int) tea.Cmd {
	a.page = page
	if a.state == viewDownline && a.downline != nil {
		return a.sync()
	}
	return a.fetch()
}

func (a *App) loadTree(memberID string) tea.Cmd {
	a.status = "Loading genealogy..."
	a.treeShown = memberID
	return func() tea.Msg {
		t, err := a.services.Downline.Tree(a.ctx, memberID, treeDepth)
		if err != nil {
			return treeMsg{memberID: memberID, err: err}
		}
		return treeMsg{memberID: memberID, tree: t}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.table.SetSize(m.Width)
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		if a.searching {
			return a.handleSearchKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "/":
			a.searching = true
			a.search.SetValue(a.query)
			return a, a.search.Focus()
		case "tab":
			if a.portal != PortalAuthority {
				return a, nil
			}
			if a.state == viewMembers {
				a.state = viewInquiries
			} else {
				a.state = viewMembers
			}
			a.page = 1
			a.treeView = ""
			return a, a.fetch()
		case "esc":
			a.treeView = ""
			a.treeShown = ""
			a.status = ""
			return a, nil
		case "?":
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		}
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(m)
		return a, tea.Batch(cmd, a.afterTableUpdate())
	case membersMsg:
		if m.seq != a.seq {
			return a, nil
		}
		a.loading = false
		a.members = m.page.Members
		a.total = m.page.Total
		a.page = m.page.Page
		return a, a.sync()
	case inquiriesMsg:
		if m.seq != a.seq {
			return a, nil
		}
		a.loading = false
		a.inquiries = m.page.Inquiries
		a.total = m.page.Total
		a.page = m.page.Page
		return a, a.sync()
	case downlineMsg:
		if m.seq != a.seq {
			return a, nil
		}
		a.loading = false
		a.root = m.root
		a.downline = m.members
		return a, a.sync()
	case errMsg:
		if m.seq != a.seq {
			return a, nil
		}
		a.loading = false
		a.err = m.err
		a.log.Warn("load failed", zap.String("view", string(a.state)), zap.Int("page", a.page), zap.Error(m.err))
		return a, a.sync()
	case treeMsg:
		if m.memberID != a.treeShown {
			return a, nil
		}
		if m.err != nil {
			a.status = "Genealogy unavailable: " + m.err.Error()
			a.log.Warn("tree failed", zap.String("member", m.memberID), zap.Error(m.err))
			return a, nil
		}
		a.status = ""
		a.treeView = m.tree.
			EnumeratorStyle(lipgloss.NewStyle().Foreground(theme.Overlay1)).
			RootStyle(theme.Title).
			String()
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// afterTableUpdate acts on whatever the table's callbacks requested.
func (a *App) afterTableUpdate() tea.Cmd {
	var cmds []tea.Cmd
	if a.requestedPage > 0 {
		page := a.requestedPage
		a.requestedPage = 0
		cmds = append(cmds, a.changePage(page))
	}
	if a.retry {
		a.retry = false
		cmds = append(cmds, a.fetch())
	}
	if a.treeFor != "" {
		id := a.treeFor
		a.treeFor = ""
		cmds = append(cmds, a.loadTree(id))
	}
	return tea.Batch(cmds...)
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "enter":
		a.searching = false
		a.search.Blur()
		a.query = strings.TrimSpace(a.search.Value())
		a.page = 1
		if a.state == viewDownline && a.downline != nil {
			return a, a.sync()
		}
		return a, a.fetch()
	case "esc":
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	return a, cmd
}

// sync pushes fresh props into the table.
func (a *App) sync() tea.Cmd {
	return a.table.SetProps(a.props())
}

func (a *App) props() datatable.Props {
	p := datatable.Props{
		Loading: a.loading,
		Error:   a.err,
		OnRetry: func() { a.retry = true },
		OnPageChange: func(page int) {
			a.requestedPage = page
		},
		Labels: datatable.Labels{
			NotAvailable: a.cfg.UI.NotAvailable,
			Yes:          a.cfg.UI.Yes,
			No:           a.cfg.UI.No,
		},
	}

	switch a.state {
	case viewInquiries:
		p.Columns = inquiryColumns(a.dateFormat())
		p.Data = inquiryRows(a.inquiries)
		p.EmptyMessage = "No inquiries received yet."
		p.ServerSide = true
		p.TotalCount = a.total
		p.ItemsPerPage = a.perPage()
		p.Pagination = &datatable.Pagination{CurrentPage: a.page}
	case viewDownline:
		filtered := service.FilterMembers(a.downline, a.query)
		pageItems, desc := service.Paginate(filtered, a.page, a.perPage())
		a.page = desc.CurrentPage
		p.Columns = downlineColumns(a.dateFormat())
		p.Data = downlineRows(pageItems)
		p.EmptyMessage = "No recruits match."
		p.Pagination = &desc
		p.OnRowClick = a.openTree
		p.Actions = datatable.StaticActions("⏎ tree")
	default:
		p.Columns = memberColumns(a.dateFormat())
		p.Data = memberRows(a.members)
		p.EmptyMessage = "No members found."
		p.ServerSide = true
		p.TotalCount = a.total
		p.ItemsPerPage = a.perPage()
		p.Pagination = &datatable.Pagination{CurrentPage: a.page}
		p.OnRowClick = a.openTree
		p.Actions = func(row datatable.Row, _ int) string {
			if active, _ := row["active"].(bool); !active {
				return theme.Muted.Render("⏎ tree")
			}
			return "⏎ tree"
		}
	}
	return p
}

func (a *App) openTree(row datatable.Row, _ int) {
	if id, ok := row["id"].(string); ok {
		a.treeFor = id
	}
}

func (a *App) dateFormat() string {
	if a.cfg.UI.DateFormat != "" {
		return a.cfg.UI.DateFormat
	}
	return "2006-01-02"
}

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")
	if a.searching {
		b.WriteString(a.search.View())
		b.WriteString("\n\n")
	} else if a.query != "" {
		b.WriteString(theme.Status.Render(fmt.Sprintf("Filter: %q  (/ to change)", a.query)))
		b.WriteString("\n\n")
	}
	b.WriteString(a.table.View())
	if a.treeView != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Panel.Render(titleStyle.Render("Genealogy") + "\n" + a.treeView))
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Status.Render(a.status))
	}
	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.table.KeyMap()))
	b.WriteString(theme.Muted.Render("  / search • esc close • q quit"))
	return b.String()
}

func (a *App) renderHeader() string {
	if a.portal == PortalCustomer {
		title := "My Network"
		if a.root.Name != "" {
			title = fmt.Sprintf("My Network · %s (%s)", a.root.Name, theme.RankBadge(a.root.Rank))
		}
		return theme.Title.Render(title)
	}
	tabs := []struct {
		state appState
		label string
	}{{viewMembers, "Members"}, {viewInquiries, "Inquiries"}}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.state == a.state {
			parts = append(parts, theme.ActiveTab.Render(t.label))
			continue
		}
		parts = append(parts, theme.InactiveTab.Render(t.label))
	}
	return theme.Title.Render("Authority") + "  " + strings.Join(parts, " ")
}

type membersMsg struct {
	seq  int
	page service.DirectoryPage
}

type inquiriesMsg struct {
	seq  int
	page service.InquiryPage
}

type downlineMsg struct {
	seq     int
	root    repository.Member
	members []service.DownlineMember
}

type treeMsg struct {
	memberID string
	tree     *tree.Tree
	err      error
}

type errMsg struct {
	seq int
	err error
}
