package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/report"
)

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

// RiskColor is the display color for a risk level: red, yellow or green.
func RiskColor(r model.RiskLevel) lipgloss.Color {
	return lipgloss.Color(report.RiskHex(r))
}

// RiskStyle renders text in the risk level's color.
func RiskStyle(r model.RiskLevel) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(RiskColor(r)).Bold(true)
}

// Style definitions.
var (
	// Panes
	editorPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	editorPaneFocusedStyle = editorPaneStyle.
				BorderForeground(colorPurple)

	resultPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	// Tabs
	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorHighlight).
			Bold(true).
			Padding(0, 1)

	// Result content
	probabilityStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	gaugeEmptyStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	bulletStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	// Code view
	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(4).
			Align(lipgloss.Right)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	// Help
	helpHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
