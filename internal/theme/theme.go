// Package theme is the shared colour system for both portals.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/mlmdash/internal/datatable"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	Rosewater lipgloss.Color = "#f5e0dc"
	Flamingo  lipgloss.Color = "#f2cdcd"
	Pink      lipgloss.Color = "#f5c2e7"
	Mauve     lipgloss.Color = "#cba6f7"
	Red       lipgloss.Color = "#f38ba8"
	Maroon    lipgloss.Color = "#eba0ac"
	Peach     lipgloss.Color = "#fab387"
	Yellow    lipgloss.Color = "#f9e2af"
	Green     lipgloss.Color = "#a6e3a1"
	Teal      lipgloss.Color = "#94e2d5"
	Sky       lipgloss.Color = "#89dceb"
	Sapphire  lipgloss.Color = "#74c7ec"
	Blue      lipgloss.Color = "#89b4fa"
	Lavender  lipgloss.Color = "#b4befe"

	Text     lipgloss.Color = "#cdd6f4"
	Subtext1 lipgloss.Color = "#bac2de"
	Subtext0 lipgloss.Color = "#a6adc8"
	Overlay2 lipgloss.Color = "#9399b2"
	Overlay1 lipgloss.Color = "#7f849c"
	Overlay0 lipgloss.Color = "#6c7086"
	Surface2 lipgloss.Color = "#585b70"
	Surface1 lipgloss.Color = "#45475a"
	Surface0 lipgloss.Color = "#313244"
	Base     lipgloss.Color = "#1e1e2e"
	Mantle   lipgloss.Color = "#181825"
	Crust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	Accent  = Mauve
	Brand   = Mauve
	Focus   = Lavender
	Success = Green
	Error   = Red
	Warning = Yellow
	Info    = Teal
)

// AllPaletteColors returns every Catppuccin Mocha color for testing purposes.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		Rosewater, Flamingo, Pink, Mauve,
		Red, Maroon, Peach, Yellow,
		Green, Teal, Sky, Sapphire,
		Blue, Lavender,
		Text, Subtext1, Subtext0,
		Overlay2, Overlay1, Overlay0,
		Surface2, Surface1, Surface0,
		Base, Mantle, Crust,
	}
}

// Ranks in ascending order. Unknown ranks render in Overlay1.
var Ranks = []string{"Associate", "Bronze", "Silver", "Gold", "Platinum", "Diamond"}

var rankColors = map[string]lipgloss.Color{
	"associate": Overlay2,
	"bronze":    Peach,
	"silver":    Subtext1,
	"gold":      Yellow,
	"platinum":  Sapphire,
	"diamond":   Lavender,
}

// RankColor returns the accent used for a member rank badge.
func RankColor(rank string) lipgloss.Color {
	if c, ok := rankColors[strings.ToLower(strings.TrimSpace(rank))]; ok {
		return c
	}
	return Overlay1
}

// RankBadge renders rank in its accent color.
func RankBadge(rank string) string {
	return lipgloss.NewStyle().Foreground(RankColor(rank)).Bold(true).Render(rank)
}

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	Title  = lipgloss.NewStyle().Foreground(Brand).Bold(true)
	Status = lipgloss.NewStyle().Foreground(Subtext0)
	Muted  = lipgloss.NewStyle().Foreground(Overlay1)

	ActiveTab = lipgloss.NewStyle().
			Foreground(Accent).
			Background(Surface0).
			Bold(true).
			Padding(0, 1)

	InactiveTab = lipgloss.NewStyle().
			Foreground(Overlay1).
			Background(Mantle).
			Padding(0, 1)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)
)

// TableStyles is the themed style set for datatable views.
func TableStyles() datatable.Styles {
	return datatable.Styles{
		Border:     lipgloss.NewStyle().Foreground(Surface2),
		Header:     lipgloss.NewStyle().Foreground(Subtext0).Bold(true).Padding(0, 1),
		Cell:       lipgloss.NewStyle().Foreground(Text).Padding(0, 1),
		Selected:   lipgloss.NewStyle().Foreground(Base).Background(Focus).Bold(true).Padding(0, 1),
		Message:    lipgloss.NewStyle().Foreground(Subtext0).Italic(true),
		Error:      lipgloss.NewStyle().Foreground(Error).Bold(true),
		Hint:       lipgloss.NewStyle().Foreground(Overlay1),
		Summary:    lipgloss.NewStyle().Foreground(Subtext0),
		Page:       lipgloss.NewStyle().Foreground(Overlay2).Padding(0, 1),
		PageActive: lipgloss.NewStyle().Foreground(Base).Background(Accent).Bold(true).Padding(0, 1),
	}
}
