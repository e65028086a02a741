package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/tui"
	"github.com/blackwell-systems/inspirehub/internal/util"
)

type generatedFile struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Mime  string `json:"mime"`
	Bytes int    `json:"bytes"`
}

func newGenerateCmd() *cobra.Command {
	var (
		outDir  string
		preview bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate phone wallpapers from an idea with AI",
		Long: `Generate four 9:16 wallpapers from a text idea and write them to
the output directory.

Examples:
  inspirehub generate "a calm sunrise over misty mountains"
  inspirehub generate "neon city in the rain" --out ~/Pictures`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return errors.New(gateway.MsgEmptyIdea)
			}

			if !jsonOut {
				fmt.Fprintf(out, "Generating wallpapers for %s ...\n", color.CyanString("%q", prompt))
			}
			ctrl.Generate(cmd.Context(), prompt)
			g := ctrl.Snapshot().Generator
			if g.Err != "" {
				if g.Quota {
					for _, l := range g.Links {
						warn("See %s", l)
					}
				}
				return errors.New(g.Err)
			}

			var files []generatedFile
			var previews [][]byte
			for _, w := range g.Images {
				mime, data, err := gateway.DecodeDataURL(w.ImageURL)
				if err != nil {
					return fmt.Errorf("image %s: %w", w.ID, err)
				}
				path := filepath.Join(outDir, w.ID+extFor(mime))
				if err := util.WriteFileAtomic(path, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				files = append(files, generatedFile{ID: w.ID, Path: path, Mime: mime, Bytes: len(data)})
				if preview {
					previews = append(previews, data)
				}
			}

			if jsonOut {
				return printJSON(files)
			}
			for _, f := range files {
				ok("%s  %s", f.Path, color.HiBlackString(humanize.Bytes(uint64(f.Bytes))))
			}
			if proto := tui.DetectImageProtocol(); preview && proto != tui.ProtocolNone && util.IsTTY() {
				for _, data := range previews {
					if img := tui.InlineImage(data, proto, 20); img != "" {
						fmt.Fprintln(out, img)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write generated images to")
	cmd.Flags().BoolVar(&preview, "preview", true, "Show the images inline in Kitty, Ghostty, iTerm2 or WezTerm")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func extFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
