package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/library"
)

type favoritesOutput struct {
	Quotes     []quoteJSON     `json:"quotes"`
	Wallpapers []wallpaperJSON `json:"wallpapers"`
}

func newFavoritesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorited quotes and wallpapers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl.ShowFavorites()
			qs := lib.FavoriteQuotes()
			ws := lib.FavoriteWallpapers()

			if jsonOut {
				return printJSON(favoritesOutput{Quotes: quotesJSON(qs), Wallpapers: wallpapersJSON(ws)})
			}
			if len(qs) == 0 && len(ws) == 0 {
				fmt.Fprintln(out, "No favorites yet.")
				return nil
			}
			if len(qs) > 0 {
				header("── Quotes  (%d)", len(qs))
				for _, q := range qs {
					printQuote(q)
				}
			}
			if len(ws) > 0 {
				header("── Wallpapers  (%d)", len(ws))
				for _, w := range ws {
					printWallpaper(w)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.AddCommand(newFavoritesToggleCmd())
	return cmd
}

func newFavoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a quote or wallpaper from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, found := ctrl.Catalog().Quote(id); !found {
				if _, found := lib.Wallpaper(id); !found {
					return fmt.Errorf("item %q not found", id)
				}
			}
			favorited, err := ctrl.ToggleFavorite(id)
			if err != nil {
				return fmt.Errorf("saving favorites: %w", err)
			}
			if favorited {
				ok("%s: %s", id, library.NoticeFavorited)
			} else {
				ok("%s: %s", id, library.NoticeUnfavorited)
			}
			return nil
		},
	}
}
