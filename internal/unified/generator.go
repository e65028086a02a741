package unified

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/tui"
)

func (m Model) updateGenerator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Back()
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case msg.String() == "e", msg.String() == "i":
		m.prompt.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select):
		return m.startGenerate()

	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite()

	case key.Matches(msg, m.keys.Download):
		return m.downloadWallpaper()

	case key.Matches(msg, m.keys.Left):
		m.carousel.Prev()
	case key.Matches(msg, m.keys.Right):
		m.carousel.Next()
	}
	return m, nil
}

// startGenerate runs image generation for the prompt input. Blank prompts
// and overlapping requests are refused without a call.
func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.prompt.Value())
	if prompt == "" {
		m.notice = gateway.MsgEmptyIdea
		return m, nil
	}
	if m.snap.Generator.Generating {
		m.notice = gateway.MsgBusy
		return m, nil
	}
	m.prompt.Blur()
	ctrl := m.ctrl
	return m, m.run(func(ctx context.Context) { ctrl.Generate(ctx, prompt) })
}

func (m Model) viewGenerator() string {
	g := m.snap.Generator
	var b strings.Builder
	b.WriteString(tui.StyleAI.Render("AI Wallpaper Generator"))
	b.WriteString("\n\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")

	switch {
	case g.Generating:
		b.WriteString(m.spinner.View() + " Creating your wallpapers...")
	case g.Err != "":
		b.WriteString(tui.StyleError.Render(g.Err))
		if g.Quota {
			b.WriteString("\n" + tui.StyleHelp.Render("Quota documentation:"))
			for _, l := range g.Links {
				b.WriteString("\n  " + tui.StyleHelp.Render(l))
			}
		}
	case len(g.Images) > 0:
		b.WriteString(m.carousel.View(true))
	default:
		b.WriteString(tui.StyleHelp.Render("Press e to describe an idea, then enter to generate four wallpapers."))
	}
	return b.String()
}
