package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type categoryJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Quotes     int    `json:"quotes"`
	Wallpapers int    `json:"wallpapers"`
}

func newCategoriesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List content categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := ctrl.Catalog()
			var rows []categoryJSON
			for _, c := range cat.Categories() {
				rows = append(rows, categoryJSON{
					ID:         c.ID,
					Name:       c.Name,
					Icon:       string(c.Icon),
					Quotes:     len(cat.QuotesIn(c.ID)),
					Wallpapers: len(cat.WallpapersIn(c.ID)),
				})
			}

			if jsonOut {
				return printJSON(rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No categories.")
				return nil
			}
			header("Categories")
			for _, r := range rows {
				fmt.Fprintf(out, "  %-14s %-16s %s\n",
					color.WhiteString(r.ID),
					r.Name,
					color.HiBlackString(fmt.Sprintf("%d quotes, %d wallpapers", r.Quotes, r.Wallpapers)),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
