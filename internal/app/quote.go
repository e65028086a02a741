package app

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show the AI quote of the day",
		Long: `Show today's AI-generated quote with its web sources. The quote is
fetched once per day and cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl.LoadDailyQuote(cmd.Context())
			d := ctrl.Snapshot().Daily
			if d.Err != "" {
				return errors.New(d.Err)
			}
			if jsonOut {
				return printJSON(d.Quote)
			}

			fmt.Fprintf(out, "\n  %s\n  %s\n", color.New(color.Bold).Sprintf("%q", d.Quote.Text), color.HiBlackString("- "+d.Quote.Author))
			if len(d.Quote.Sources) > 0 {
				fmt.Fprintln(out)
				header("Sources")
				for _, s := range d.Quote.Sources {
					fmt.Fprintf(out, "  • %s %s\n", s.Title, color.HiBlackString(s.URI))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
