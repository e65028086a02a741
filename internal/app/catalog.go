package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export or check catalog files",
		Long: `The catalog of categories, quotes and wallpapers is bundled with the
binary. Point catalog.path in the config at a YAML file to use your own;
start from 'inspirehub catalog export'.`,
	}
	cmd.AddCommand(newCatalogExportCmd(), newCatalogValidateCmd())
	return cmd
}

func newCatalogExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctrl.Catalog().Catalog()
			if outPath == "" {
				data, err := catalog.Marshal(c)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			if err := catalog.Save(outPath, c); err != nil {
				return fmt.Errorf("writing catalog: %w", err)
			}
			ok("Wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, err := catalog.Parse(data)
			if err != nil {
				return err
			}
			ok("%s: %d categories, %d quotes, %d wallpapers", args[0], len(c.Categories), len(c.Quotes), len(c.Wallpapers))
			return nil
		},
	}
}
