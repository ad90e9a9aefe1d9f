package cmd

import (
	"github.com/spf13/cobra"
	"synthlisa.dev/pkg/lisabuild/internal/domain"
)

// catalogCmd represents the catalog command.
var catalogCmd = newCatalogCmd()

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the revision of every tracked source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromViper()
			if err != nil {
				return err
			}

			return workflow.Catalog(cmd.Context(), domain.CatalogArgs{Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
