package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one list item.
type RenderFunc func(w io.Writer, m list.Model, index int, item list.Item)

// Delegate is a list.ItemDelegate that only customizes rendering.
type Delegate struct {
	height   int
	spacing  int
	renderFn RenderFunc
}

// NewDelegate returns a delegate with one-line items and no spacing.
func NewDelegate(fn RenderFunc) Delegate {
	return Delegate{height: 1, renderFn: fn}
}

// NewDelegateSized returns a delegate with custom item height and spacing.
func NewDelegateSized(fn RenderFunc, height, spacing int) Delegate {
	return Delegate{height: height, spacing: spacing, renderFn: fn}
}

func (d Delegate) Height() int                         { return d.height }
func (d Delegate) Spacing() int                        { return d.spacing }
func (d Delegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, m, index, item)
	}
}
