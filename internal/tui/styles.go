package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paidStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle    = lipgloss.NewStyle().Faint(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Bold(true)

	holdBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)
