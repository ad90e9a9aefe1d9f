package cmd

import (
	"github.com/spf13/cobra"
	"synthlisa.dev/pkg/lisabuild/internal/domain"
)

const buildLongDescription = `Run the full orchestration: write the version manifest, regenerate stale
SWIG glue code and store the target list for the compile stage.

The target list is only written when every step succeeds.`

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate glue code and write the target list",
		Long:  buildLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd.Context(), generatorAdapter)
			if err != nil {
				return err
			}

			return workflow.Build(cmd.Context(), domain.BuildArgs{Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
