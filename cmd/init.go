package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a lisabuild.yaml for a synthLISA checkout",
		Long: `Check that --root points at a synthLISA source tree, then create a
lisabuild.yaml in the current working directory populated with the current
root, toolchain and GSL settings so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := configFromViper()
			if err != nil {
				return err
			}

			core := cfg.Abs(cfg.Layout.CoreDir)
			info, err := os.Stat(string(core))
			if err != nil || !info.IsDir() {
				return fmt.Errorf("no %s directory under %s (set --%s to the synthLISA checkout)",
					cfg.Layout.CoreDir, cfg.Root, rootFlagName)
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			err = viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
