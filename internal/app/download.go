package app

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/controller"
)

type downloadedFile struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func newDownloadCmd() *cobra.Command {
	var (
		outDir  string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "download <wallpaper-id>...",
		Short: "Save wallpapers as inspirehub-wallpaper-<id>.jpg",
		Long: `Download catalog wallpapers into a directory. Premium wallpapers
must be unlocked first.

Without --out the files go to download.dir from the config (~/Downloads).

Examples:
  inspirehub download w1
  inspirehub download w4 w6 --out ~/Pictures`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []downloadedFile
			for _, id := range args {
				path, n, err := ctrl.DownloadWallpaper(cmd.Context(), id, outDir)
				if errors.Is(err, controller.ErrLocked) {
					return fmt.Errorf("%s: %w (run: inspirehub unlock %s)", id, err, id)
				}
				if err != nil {
					return fmt.Errorf("%s: %s: %w", id, controller.NoticeDownloadFailed, err)
				}
				files = append(files, downloadedFile{ID: id, Path: path, Bytes: n})
			}

			if jsonOut {
				return printJSON(files)
			}
			for _, f := range files {
				ok("%s  %s", f.Path, color.HiBlackString(humanize.Bytes(uint64(f.Bytes))))
			}
			ok(controller.NoticeDownloaded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to save into (default: download.dir)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
