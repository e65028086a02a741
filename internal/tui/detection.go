package tui

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/util"
)

// ShouldUseTUI reports whether cmd should open the interactive app. It
// needs a terminal on both stdin and stdout that can draw, and neither
// --no-interactive nor --json.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() || !util.IsStdinTTY() || os.Getenv("TERM") == "dumb" {
		return false
	}
	for _, name := range []string{"no-interactive", "json"} {
		if on, _ := cmd.Flags().GetBool(name); on {
			return false
		}
	}
	return true
}
