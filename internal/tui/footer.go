package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// highlightDuration is how long a pressed shortcut stays lit.
const highlightDuration = 500 * time.Millisecond

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry is one footer hint. Key matches the model's activeCmd;
// entries with an empty Key never light up.
type ShortcutEntry struct {
	Key   string
	Label string
}

// HighlightCmd clears the footer highlight after a short delay. Set
// activeCmd on the model before returning it:
//
//	m.activeCmd = "f"
//	return m, tui.HighlightCmd()
func HighlightCmd() tea.Cmd {
	return tea.Tick(highlightDuration, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

var (
	footerDim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	footerSep = footerDim.Render(" • ")
)

// RenderFooterBar renders shortcut hints on one line, lighting up the one
// whose Key equals activeCmd. Entries that would overflow width are
// dropped from the end; width <= 0 means no limit.
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string, width int) string {
	const padding = 2

	var b strings.Builder
	used := padding
	for i, sc := range shortcuts {
		var part string
		if activeCmd != "" && sc.Key == activeCmd {
			part = StyleHighlight.Render("[ " + sc.Label + " ]")
		} else {
			part = footerDim.Render(sc.Label)
		}
		if i > 0 {
			part = footerSep + part
		}
		w := lipgloss.Width(part)
		if width > 0 && used+w > width {
			break
		}
		b.WriteString(part)
		used += w
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// RenderToast renders a transient notice, or nothing when msg is empty.
func RenderToast(msg string) string {
	if msg == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorGreen).
		Bold(true).
		Padding(0, 1).
		Render("✓ " + msg)
}
