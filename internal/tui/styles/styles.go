package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	AccentViolet = lipgloss.Color("#8B5CF6")
	SlateDark    = lipgloss.Color("#1F2937")
	SlateLight   = lipgloss.Color("#374151")
	DimGray      = lipgloss.Color("#6B7280")
	LightGray    = lipgloss.Color("#9CA3AF")
	White        = lipgloss.Color("#F9FAFB")
	Green        = lipgloss.Color("#10B981")
	Red          = lipgloss.Color("#EF4444")
	Yellow       = lipgloss.Color("#F59E0B")
	Blue         = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentViolet)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(AccentViolet)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Blue)
)

// Tab bar styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(AccentViolet).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	NowPlayingStyle = lipgloss.NewStyle().
			Foreground(AccentViolet).
			Bold(true).
			Padding(0, 1)
)

// Progress bar characters
const (
	ProgressFilledChar = "█"
	ProgressEmptyChar  = "░"
)

var (
	ProgressFilledStyle = lipgloss.NewStyle().Foreground(AccentViolet)
	ProgressEmptyStyle  = lipgloss.NewStyle().Foreground(SlateLight)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateDark).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
