package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/inspirehub/internal/store"
)

// Color palette matching the CLI's fatih/color usage
var (
	// ColorGreen for unlocked items and success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorCyan for authors and metadata
	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for warnings and highlights
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorRed for favorites and errors
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}

	// ColorPurple for AI features
	ColorPurple = lipgloss.AdaptiveColor{Light: "#8700D7", Dark: "#AF87FF"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleUnlocked marks premium items the user may view
	StyleUnlocked = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleLocked marks premium items behind an ad
	StyleLocked = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleFavorite is the heart shown on favorited items
	StyleFavorite = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleAuthor is for quote attributions
	StyleAuthor = lipgloss.NewStyle().Foreground(ColorCyan).Italic(true)

	// StyleAI is for AI feature headings
	StyleAI = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)

	// StyleError is for failure messages
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)
)

// ApplyTheme selects the light or dark side of the adaptive palette.
func ApplyTheme(t store.Theme) {
	lipgloss.SetHasDarkBackground(t == store.ThemeDark)
}
