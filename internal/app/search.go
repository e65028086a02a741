package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/gateway"
)

type searchOutput struct {
	Query      string          `json:"query"`
	Quotes     []quoteJSON     `json:"quotes"`
	Wallpapers []wallpaperJSON `json:"wallpapers"`
}

func newSearchCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find quotes and wallpapers by meaning with AI",
		Long: `Ask the AI model which catalog quotes and categories match a
natural-language query.

Examples:
  inspirehub search "feeling stuck on a hard problem"
  inspirehub search "missing someone" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New(gateway.MsgEmptyQuery)
			}
			ctrl.SubmitSearch(cmd.Context(), query)
			s := ctrl.Snapshot().Search
			if s.Err != "" {
				return errors.New(s.Err)
			}

			if jsonOut {
				return printJSON(searchOutput{
					Query:      s.Query,
					Quotes:     quotesJSON(s.Quotes),
					Wallpapers: wallpapersJSON(s.Wallpapers),
				})
			}

			if len(s.Quotes) == 0 && len(s.Wallpapers) == 0 {
				fmt.Fprintln(out, "No results found.")
				return nil
			}
			if len(s.Quotes) > 0 {
				header("── Quotes  (%d)", len(s.Quotes))
				for _, q := range s.Quotes {
					printQuote(q)
				}
			}
			if len(s.Wallpapers) > 0 {
				header("── Wallpapers  (%d)", len(s.Wallpapers))
				for _, w := range s.Wallpapers {
					printWallpaper(w)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
