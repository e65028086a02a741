package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/store"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(out, ctrl.Snapshot().Theme)
				return nil
			}
			t := store.Theme(args[0])
			if err := ctrl.SetTheme(t); err != nil {
				return err
			}
			ok("Theme set to %s", t)
			return nil
		},
	}
}
