package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
)

func newBrowseCmd() *cobra.Command {
	var (
		contentType string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "browse <category>",
		Short: "List the quotes or wallpapers of a category",
		Long: `List the quotes or wallpapers in a category. The category may be
given by id or by name.

Examples:
  inspirehub browse motivation
  inspirehub browse Love --type wallpapers
  inspirehub browse science --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := catalog.ContentType(contentType)
			if !ct.Valid() {
				return fmt.Errorf("invalid --type %q (use quotes or wallpapers)", contentType)
			}

			cat := ctrl.Catalog()
			c, found := cat.Category(args[0])
			if !found {
				c, found = catalog.CategoryByName(cat.Categories(), args[0])
			}
			if !found {
				return fmt.Errorf("category %q not found", args[0])
			}
			ctrl.SelectCategory(c.ID, ct)

			if ct == catalog.ContentQuotes {
				qs := cat.QuotesIn(c.ID)
				if jsonOut {
					return printJSON(quotesJSON(qs))
				}
				header("── %s quotes  (%d)", c.Name, len(qs))
				for _, q := range qs {
					printQuote(q)
				}
				return nil
			}

			ws := cat.WallpapersIn(c.ID)
			if jsonOut {
				return printJSON(wallpapersJSON(ws))
			}
			header("── %s wallpapers  (%d)", c.Name, len(ws))
			for _, w := range ws {
				printWallpaper(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "type", string(catalog.ContentQuotes), "Content type: quotes or wallpapers")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
