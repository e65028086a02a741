package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/share"
)

func newCopyCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "copy <quote-id>",
		Short: `Copy a quote as "text" - author to the clipboard`,
		Long: `Copy a quote to the system clipboard in shareable form.

The clipboard needs pbcopy (macOS), xclip, xsel or wl-copy (Linux), or
Windows. Use --print to write the text to stdout instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if printOnly {
				q, found := ctrl.Catalog().Quote(id)
				if !found {
					return fmt.Errorf("%w: %s", controller.ErrUnknownItem, id)
				}
				if !lib.Accessible(id) {
					return fmt.Errorf("%s: %w (run: inspirehub unlock %s)", id, controller.ErrLocked, id)
				}
				fmt.Fprintln(out, share.QuoteText(q))
				return nil
			}

			text, err := ctrl.CopyQuote(id)
			if errors.Is(err, controller.ErrLocked) {
				return fmt.Errorf("%s: %w (run: inspirehub unlock %s)", id, err, id)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", controller.NoticeCopyFailed, err)
			}
			fmt.Fprintln(out, text)
			ok(controller.NoticeCopied)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the quote instead of copying it")
	return cmd
}
