package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/datatable"
	"github.com/jask/mlmdash/internal/service"
	"github.com/jask/mlmdash/internal/theme"
)

func rankCell(value any, _ datatable.Row, _ int) string {
	rank, _ := value.(string)
	if rank == "" {
		return theme.Muted.Render("unranked")
	}
	return theme.RankBadge(rank)
}

func dateCell(layout string) datatable.CellRenderer {
	return func(value any, _ datatable.Row, _ int) string {
		t, ok := value.(time.Time)
		if !ok || t.IsZero() {
			return "-"
		}
		return t.Local().Format(layout)
	}
}

func levelCell(value any, _ datatable.Row, _ int) string {
	level, _ := value.(int)
	if level <= 0 {
		return "-"
	}
	return strings.Repeat("·", level-1) + "L" + strconv.Itoa(level)
}

func memberColumns(dateLayout string) []datatable.Column {
	return []datatable.Column{
		{Key: "name", Title: "Name", Width: 22},
		{Key: "email", Title: "Email", Width: 28},
		{Key: "rank", Title: "Rank", Render: rankCell},
		{Key: "active", Title: "Active", Align: datatable.AlignCenter},
		{Key: "joined_at", Title: "Joined", Align: datatable.AlignRight, Render: dateCell(dateLayout)},
		{Key: "sponsor_id", Title: "Sponsor", Width: 10},
		{Key: "profile", Title: "Profile", Width: 30},
	}
}

func memberRow(m repository.Member) datatable.Row {
	return datatable.Row{
		"id":         m.ID,
		"name":       m.Name,
		"email":      m.Email,
		"rank":       m.Rank,
		"active":     m.Active,
		"joined_at":  m.JoinedAt,
		"sponsor_id": m.SponsorID,
		"profile":    m.Profile,
	}
}

func memberRows(members []repository.Member) []datatable.Row {
	rows := make([]datatable.Row, 0, len(members))
	for _, m := range members {
		rows = append(rows, memberRow(m))
	}
	return rows
}

func downlineColumns(dateLayout string) []datatable.Column {
	return []datatable.Column{
		{Key: "level", Title: "Level", Render: levelCell},
		{Key: "name", Title: "Name", Width: 22},
		{Key: "rank", Title: "Rank", Render: rankCell},
		{Key: "active", Title: "Active", Align: datatable.AlignCenter},
		{Key: "joined_at", Title: "Joined", Align: datatable.AlignRight, Render: dateCell(dateLayout)},
		{Key: "email", Title: "Email", Width: 28},
	}
}

func downlineRows(items []service.DownlineMember) []datatable.Row {
	rows := make([]datatable.Row, 0, len(items))
	for _, d := range items {
		row := memberRow(d.Member)
		row["level"] = d.Level
		rows = append(rows, row)
	}
	return rows
}

func inquiryColumns(dateLayout string) []datatable.Column {
	return []datatable.Column{
		{Key: "created_at", Title: "Received", Render: dateCell(dateLayout + " 15:04")},
		{Key: "name", Title: "From", Width: 20},
		{Key: "email", Title: "Email", Width: 28},
		{Key: "subject", Title: "Subject", Width: 24},
		{Key: "body", Title: "Message", Width: 40, Render: func(value any, _ datatable.Row, _ int) string {
			s, _ := value.(string)
			return strings.Join(strings.Fields(s), " ")
		}},
	}
}

func inquiryRows(items []repository.Inquiry) []datatable.Row {
	rows := make([]datatable.Row, 0, len(items))
	for _, q := range items {
		rows = append(rows, datatable.Row{
			"id":         q.ID,
			"name":       q.Name,
			"email":      q.Email,
			"subject":    q.Subject,
			"body":       q.Body,
			"created_at": q.CreatedAt,
		})
	}
	return rows
}
