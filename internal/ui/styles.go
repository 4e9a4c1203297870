package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorEasy      = lipgloss.Color("78")  // Green
	colorMedium    = lipgloss.Color("214") // Orange
	colorHard      = lipgloss.Color("196") // Red
)

// SelectedItem style for the currently highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// CategoryBadgeEasy style for easy category badges.
var CategoryBadgeEasy = lipgloss.NewStyle().
	Foreground(colorEasy).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// CategoryBadgeMedium style for medium category badges.
var CategoryBadgeMedium = lipgloss.NewStyle().
	Foreground(colorMedium).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// CategoryBadgeHard style for hard category badges.
var CategoryBadgeHard = lipgloss.NewStyle().
	Foreground(colorHard).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// TagBadge style for tag labels on cards.
var TagBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// SectionHeader style for view titles.
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginBottom(1).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text and empty states.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// FilterBar style for the active filter summary line.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarCount style for the visible/total count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DetailTitle style for the detail view heading.
var DetailTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// DetailBody style for the detail view text.
var DetailBody = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Padding(1, 2)
