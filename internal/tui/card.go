package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"conbi/internal/models"
	"conbi/internal/parser"
)

// statusColor maps a task status to its badge color.
func statusColor(status string) string {
	switch status {
	case models.StatusPending:
		return ColorStatusPending
	case models.StatusInProgress:
		return ColorStatusInProgress
	case models.StatusCompleted:
		return ColorStatusCompleted
	default:
		return ColorDisabledText
	}
}

// priorityColor maps a task priority to its badge color.
func priorityColor(priority string) string {
	switch priority {
	case models.PriorityLow:
		return ColorPriorityLow
	case models.PriorityMedium:
		return ColorPriorityMedium
	case models.PriorityHigh:
		return ColorPriorityHigh
	default:
		return ColorDisabledText
	}
}

// renderTaskCard renders one task as a bordered card. It is purely
// presentational: the task comes in, a string goes out, nothing is fetched.
func renderTaskCard(task models.Task, width int, selected bool) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText))

	statusBadge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(statusColor(task.Status))).
		Bold(true).
		Render(strings.ReplaceAll(task.Status, "_", " "))

	priorityBadge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(priorityColor(task.Priority))).
		Bold(true).
		Render("⚑ " + task.Priority)

	// Truncate on runes so a multibyte title can't be cut mid-character.
	title := task.Title
	maxTitle := width - 6
	if runes := []rune(title); maxTitle > 4 && len(runes) > maxTitle {
		title = string(runes[:maxTitle-3]) + "..."
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(statusBadge)
	b.WriteString("  ")
	b.WriteString(priorityBadge)

	if task.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Width(width - 4)
		b.WriteString("\n")
		b.WriteString(descStyle.Render(task.Description))
	}

	if task.DueDate != nil {
		dueStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))
		b.WriteString("\n")
		b.WriteString(dueStyle.Render("Due: " + parser.FormatCardDate(*task.DueDate)))
	}

	borderColor := ColorBorder
	if selected {
		borderColor = ColorAccentMain
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1).
		Width(width)

	return cardStyle.Render(b.String())
}
