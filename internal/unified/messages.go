package unified

import (
	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/nav"
)

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target nav.View // the target view
	Arg    string   // category id, search query or generator seed
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// controllerEventMsg carries a controller event into the update loop.
type controllerEventMsg controller.Event

// intentDoneMsg is returned by commands that ran a blocking intent.
type intentDoneMsg struct{}
