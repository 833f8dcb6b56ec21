package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	userLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	botLabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("118"))
	typingStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("246"))
	chipStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Border(lipgloss.HiddenBorder(), false, true)
	focusedChipStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Border(lipgloss.NormalBorder(), false, true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)
