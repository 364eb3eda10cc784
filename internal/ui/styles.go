package ui

import (
	"github.com/charmbracelet/lipgloss"

	"tagtodo/internal/task"
)

var (
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	accentColor = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"}

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	titleStyle    = lipgloss.NewStyle()
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(mutedColor)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	chipStyle     = lipgloss.NewStyle().Foreground(accentColor)
	dateChipStyle = lipgloss.NewStyle().Foreground(mutedColor)
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accentColor)
	inactiveTab   = lipgloss.NewStyle().Foreground(mutedColor)
	focusedLabel  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	statusStyle   = lipgloss.NewStyle().Italic(true)

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#86EFAC"}),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FDE68A"}),
		task.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FCA5A5"}),
	}
)
