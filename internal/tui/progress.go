package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// AdPoll reports the ad's progress (0-100) and whether it is still playing.
type AdPoll func() (percent int, playing bool)

// tickMsg is sent periodically to refresh the bar
type tickMsg time.Time

// adProgressModel shows a playing reward ad as a progress bar.
type adProgressModel struct {
	progress  progress.Model
	label     string
	poll      AdPoll
	percent   int
	done      bool
	cancelled bool
}

func (m adProgressModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m adProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}

	case tickMsg:
		pct, playing := m.poll()
		if !playing {
			m.done = true
			return m, tea.Quit
		}
		m.percent = pct
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil
	}

	return m, nil
}

func (m adProgressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf(
		"%s\n%s\n%s\n",
		m.label,
		m.progress.ViewAs(float64(m.percent)/100),
		StyleHelp.Render("esc: close ad (item stays locked)"),
	)
}

// ShowAdProgress displays the playing ad until it finishes or the user
// closes it, in which case closeAd is called and an error is returned.
func ShowAdProgress(label string, poll AdPoll, closeAd func() bool) error {
	m := adProgressModel{
		progress: progress.New(progress.WithDefaultGradient()),
		label:    label,
		poll:     poll,
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(adProgressModel); ok && fm.cancelled {
		closeAd()
		return fmt.Errorf("cancelled by user")
	}
	return nil
}
