package cmd

import (
	"github.com/spf13/cobra"
	"synthlisa.dev/pkg/lisabuild/internal/domain"
)

var planDiffFlag bool

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the targets a build would produce",
		Long: `Assemble the target list without running SWIG or writing any file.
Glue code that a build would regenerate is reported as stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd.Context(), generatorAdapter)
			if err != nil {
				return err
			}

			return workflow.Plan(cmd.Context(), domain.PlanArgs{Config: cfg, Diff: planDiffFlag})
		},
	}

	cmd.Flags().BoolVar(&planDiffFlag, diffFlagName, false, "compare with the stored target list")

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
