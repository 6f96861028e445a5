package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/datatable"
	"github.com/jask/mlmdash/internal/service"
	"github.com/jask/mlmdash/internal/testdata"
	"github.com/jask/mlmdash/internal/tui"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "mlmdash",
		Short:         "Member network dashboard",
		Long:          "Browse a member network: the authority directory, a member's downline and contact inquiries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $MLMDASH_CONFIG or ~/.config/mlmdash/config.toml)")

	open := func() (*runtime, error) { return openRuntime(cfgPath) }
	root.AddCommand(
		newAuthorityCmd(open),
		newCustomerCmd(open),
		newSeedCmd(open),
		newMembersCmd(open),
		newTreeCmd(open),
		newDuplicatesCmd(open),
		newInquireCmd(open),
	)
	return root
}

type opener func() (*runtime, error)

func runPortal(cmd *cobra.Command, open opener, portal tui.Portal, memberID string) error {
	rt, err := open()
	if err != nil {
		return err
	}
	defer rt.Close()

	app := tui.New(cmd.Context(), rt.cfg, tui.Services{
		Directory: rt.directory(),
		Downline:  rt.downline(),
		Inquiries: rt.inquiryService(),
	}, rt.log, portal, memberID)
	rt.log.Info("portal started", zap.String("portal", string(portal)), zap.String("member", memberID))
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newAuthorityCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "authority",
		Short: "Run the authority portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPortal(cmd, open, tui.PortalAuthority, "")
		},
	}
}

func newCustomerCmd(open opener) *cobra.Command {
	var member string
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Run the customer portal for one member's downline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPortal(cmd, open, tui.PortalCustomer, member)
		},
	}
	cmd.Flags().StringVar(&member, "member", "", "member id whose downline to show")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}

func newSeedCmd(open opener) *cobra.Command {
	var (
		count       int
		maxChildren int
		seed        int64
		reset       bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a mock member network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--members must be positive, got %d", count)
			}
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if reset {
				if err := (&service.MaintenanceService{DB: rt.db}).Reset(ctx); err != nil {
					return err
				}
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			start := time.Now().UTC().AddDate(-2, 0, 0).Truncate(time.Second)
			members := testdata.Generate(rng, count, maxChildren, start)
			if err := testdata.Seed(ctx, rt.members, members); err != nil {
				return fmt.Errorf("seed members: %w", err)
			}
			rt.log.Info("seeded", zap.Int("members", len(members)), zap.Int64("seed", seed))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d members (root %s, seed %d)\n", len(members), members[0].ID, seed)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "members", 100, "number of members to generate")
	cmd.Flags().IntVar(&maxChildren, "max-children", 4, "maximum recruits per sponsor")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing members and inquiries first")
	return cmd
}

type memberJSON struct {
	ID        string         `json:"id"`
	SponsorID *string        `json:"sponsor_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Rank      string         `json:"rank"`
	Active    bool           `json:"active"`
	JoinedAt  time.Time      `json:"joined_at"`
	Profile   map[string]any `json:"profile,omitempty"`
}

type memberPageJSON struct {
	Members    []memberJSON         `json:"members"`
	Pagination datatable.Pagination `json:"pagination"`
}

func newMembersCmd(open opener) *cobra.Command {
	var (
		page    int
		perPage int
		search  string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Print one page of the member directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.Close()

			if perPage <= 0 {
				perPage = rt.cfg.UI.ItemsPerPage
			}
			res, err := rt.directory().Page(cmd.Context(), service.DirectoryQuery{Page: page, PerPage: perPage, Search: search})
			if err != nil {
				return err
			}
			if asJSON {
				return writeMembersJSON(cmd.OutOrStdout(), res)
			}
			return writeMembersText(cmd.OutOrStdout(), rt, res)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "one-based page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "rows per page (default ui.items_per_page)")
	cmd.Flags().StringVar(&search, "search", "", "filter by name, email or rank")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeMembersJSON(w io.Writer, res service.DirectoryPage) error {
	out := memberPageJSON{
		Members: make([]memberJSON, 0, len(res.Members)),
		Pagination: datatable.Pagination{
			CurrentPage: res.Page,
			TotalPages:  (res.Total + res.PerPage - 1) / res.PerPage,
			Total:       res.Total,
			PerPage:     res.PerPage,
		},
	}
	for _, m := range res.Members {
		out.Members = append(out.Members, memberJSON{
			ID: m.ID, SponsorID: m.SponsorID, Name: m.Name, Email: m.Email,
			Rank: m.Rank, Active: m.Active, JoinedAt: m.JoinedAt, Profile: m.Profile,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMembersText(w io.Writer, rt *runtime, res service.DirectoryPage) error {
	layout := rt.cfg.UI.DateFormat
	rows := make([]datatable.Row, 0, len(res.Members))
	for _, m := range res.Members {
		rows = append(rows, datatable.Row{
			"id":         m.ID,
			"name":       m.Name,
			"email":      m.Email,
			"rank":       m.Rank,
			"active":     m.Active,
			"joined_at":  m.JoinedAt,
			"sponsor_id": m.SponsorID,
			"profile":    m.Profile,
		})
	}
	view := datatable.Render(datatable.Props{
		Columns: []datatable.Column{
			{Key: "id", Title: "ID"},
			{Key: "name", Title: "Name"},
			{Key: "email", Title: "Email"},
			{Key: "rank", Title: "Rank"},
			{Key: "active", Title: "Active", Align: datatable.AlignCenter},
			{Key: "joined_at", Title: "Joined", Align: datatable.AlignRight, Render: func(v any, _ datatable.Row, _ int) string {
				t, _ := v.(time.Time)
				return t.Format(layout)
			}},
			{Key: "sponsor_id", Title: "Sponsor"},
			{Key: "profile", Title: "Profile"},
		},
		Data:         rows,
		EmptyMessage: "No members found.",
		ServerSide:   true,
		TotalCount:   res.Total,
		ItemsPerPage: res.PerPage,
		Pagination:   &datatable.Pagination{CurrentPage: res.Page},
		Labels: datatable.Labels{
			NotAvailable: rt.cfg.UI.NotAvailable,
			Yes:          rt.cfg.UI.Yes,
			No:           rt.cfg.UI.No,
		},
	})
	return view.WriteText(w)
}

func newTreeCmd(open opener) *cobra.Command {
	var (
		member string
		depth  int
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a member's genealogy tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.Close()

			t, err := rt.downline().Tree(cmd.Context(), member, depth)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&member, "member", "", "root member id")
	cmd.Flags().IntVar(&depth, "depth", 3, "levels to show below the root")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}

func newDuplicatesCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates",
		Short: "List members that look like double registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.Close()

			pairs, err := (&service.Reconciler{Members: rt.members, Log: rt.log}).Detect(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([]datatable.Row, 0, len(pairs))
			for _, p := range pairs {
				rows = append(rows, datatable.Row{
					"id":         p.A.ID + "/" + p.B.ID,
					"a":          memberLine(p.A),
					"b":          memberLine(p.B),
					"similarity": fmt.Sprintf("%.2f", p.Similarity),
					"exact":      p.Exact,
				})
			}
			view := datatable.Render(datatable.Props{
				Columns: []datatable.Column{
					{Key: "a", Title: "Member"},
					{Key: "b", Title: "Possible duplicate"},
					{Key: "similarity", Title: "Similarity", Align: datatable.AlignRight},
					{Key: "exact", Title: "Same email", Align: datatable.AlignCenter},
				},
				Data:         rows,
				EmptyMessage: "No likely duplicates.",
			})
			return view.WriteText(cmd.OutOrStdout())
		},
	}
}

func memberLine(m repository.Member) string {
	return fmt.Sprintf("%s <%s>", m.Name, m.Email)
}

func newInquireCmd(open opener) *cobra.Command {
	var in service.InquiryInput
	cmd := &cobra.Command{
		Use:   "inquire",
		Short: "Submit a contact-form inquiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.Close()

			q, err := rt.inquiryService().Submit(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inquiry %s received\n", q.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&in.Subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&in.Body, "body", "", "message")
	return cmd
}
