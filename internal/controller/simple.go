package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayManifest prints the version manifest.
func (s *SimpleUI) DisplayManifest(ctx context.Context, manifest m.VersionManifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("synthLISA %s\n", manifest.Short)

	if manifest.Full != "" {
		s.printf("%s\n", manifest.Full)
	}
}

// DisplayGeneration prints the outcome of a staleness check.
func (s *SimpleUI) DisplayGeneration(ctx context.Context, iface m.Path, status m.GenerationStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%-12s %s\n", status.String(), iface)
}

// DisplaySkip prints a gated-out interface file.
func (s *SimpleUI) DisplaySkip(ctx context.Context, skip m.Skip) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("No GSL, skipping %s\n", describeSkip(skip))
}

// describeSkip renders the interface path followed by the gate's reason.
func describeSkip(skip m.Skip) string {
	if skip.Reason == "" {
		return string(skip.Interface)
	}

	return fmt.Sprintf("%s (%s)", skip.Interface, skip.Reason)
}

// DisplayPlan prints the assembled targets as a table.
func (s *SimpleUI) DisplayPlan(ctx context.Context, plan m.BuildPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(plan))

	for _, skip := range plan.Skips {
		s.printf("skipped %s\n", describeSkip(skip))
	}

	return nil
}

// DisplayDiff prints a unified diff, or a note when there is none.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("target list unchanged\n")
		return
	}

	s.printf("%s", diff)
}

func renderPlanTable(plan m.BuildPlan) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Target", "Sources", "Libraries"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, target := range plan.Targets {
		table.Append([]string{
			target.Name,
			fmt.Sprintf("%d", len(target.Sources)),
			strings.Join(target.Libraries, " "),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Targets %d", len(plan.Targets)),
		fmt.Sprintf("Packages %d", len(plan.Packages)),
		fmt.Sprintf("Skipped %d", len(plan.Skips)),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
