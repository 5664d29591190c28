package tui

import (
	"fmt"
	"strings"

	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/charmbracelet/lipgloss"
)

// Title is shown above every screen
const Title = "2025年度 シフト確認"

// Styles holds the lipgloss styles used by the views
type Styles struct {
	Header   lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
	Day      lipgloss.Style
	Shogi    lipgloss.Style
	Warabi   lipgloss.Style
	Role     lipgloss.Style
	Box      lipgloss.Style
}

// DefaultStyles returns the standard color scheme
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Day:      lipgloss.NewStyle().Bold(true).Underline(true),
		Shogi:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34")),
		Warabi:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178")),
		Role:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// PlainStyles renders without any terminal styling
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, Subtle: s, Selected: s, Day: s, Shogi: s, Warabi: s, Role: s, Box: s}
}

// RenderShift renders one shift line
func RenderShift(sh models.Shift, st Styles) string {
	event := st.Warabi.Render(sh.Event)
	if sh.IsShogi() {
		event = st.Shogi.Render(sh.Event)
	}
	line := fmt.Sprintf("  %s  %s", event, sh.Time)
	if sh.HasRole() {
		line += "  " + st.Role.Render(sh.Role)
	}
	return line
}

// RenderGroups renders a person's shifts under one heading per day
func RenderGroups(person string, groups []models.DayGroup, total int, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Header.Render(person + " さんのシフト"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("総シフト数: %d\n", total))

	if len(groups) == 0 {
		sb.WriteString("\n")
		sb.WriteString(st.Subtle.Render("シフトは見つかりませんでした。"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(st.Day.Render(g.Day))
		sb.WriteString("\n")
		for _, sh := range g.Shifts {
			sb.WriteString(RenderShift(sh, st))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderNotes renders every note block as a bulleted list
func RenderNotes(blocks []models.NoteBlock, st Styles) string {
	var sb strings.Builder
	for i, block := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(st.Header.Render(block.Event + "の注意事項"))
		sb.WriteString("\n")
		for _, note := range block.Notes {
			sb.WriteString("  • " + note + "\n")
		}
	}
	return sb.String()
}
