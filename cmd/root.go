// Package cmd provides the root command and CLI setup for lisabuild.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	"synthlisa.dev/pkg/lisabuild/internal/controller"
	"synthlisa.dev/pkg/lisabuild/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var generatorAdapter adapter.GeneratorAdapter
var planStore adapter.PlanStore
var workflow domain.Workflow
var ui controller.UI

var (
	rootDirFlag       string
	swigBinFlag       string
	gslPrefixFlag     string
	pythonIncludeFlag string
	outputFlag        string
	verboseFlag       bool
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	generatorAdapter = adapter.NewLocalGeneratorAdapter("")
	planStore = adapter.NewPlanStore(fsAdapter)
	workflow = domain.NewWorkflow(
		planStore,
		ui,
		domain.NewModuleDiscoverer(fsAdapter),
		domain.NewCatalogExtractor(fsAdapter),
		domain.NewStaleCodeGenerator(fsAdapter, generatorAdapter),
		domain.NewOptionalDependencyGate(fsAdapter),
		domain.NewExtensionAssembler(),
	)
}

const rootLongDescription = `lisabuild prepares the synthLISA source distribution for compilation.

It records the revision of every source file in lisasim/version.py, runs
SWIG on interface files whose glue code is out of date, and writes the list
of native module targets (sources, include paths, libraries) for the
compile stage. Contributed modules under contrib/ are discovered
automatically; those marked "requires GSL" are built only when a GSL
installation is given with --with-gsl.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lisabuild",
		Short:        "Build orchestrator for synthLISA native extensions",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&rootDirFlag, rootFlagName, defaultRoot, "project root containing lisasim/ and contrib/")
	bindFlagToConfig(flags.Lookup(rootFlagName), rootConfigKey)

	flags.StringVar(&swigBinFlag, withSwigFlagName, defaultSwigBin, "SWIG binary used to generate glue code")
	bindFlagToConfig(flags.Lookup(withSwigFlagName), swigBinConfigKey)

	flags.StringVar(&gslPrefixFlag, withGSLFlagName, defaultGSLPrefix, "GSL installation prefix (enables modules that require GSL)")
	bindFlagToConfig(flags.Lookup(withGSLFlagName), gslPrefixConfigKey)

	flags.StringVar(&pythonIncludeFlag, pythonIncludeFlagName, defaultPythonInclude, "python C header directory (asked from the interpreter when empty)")
	bindFlagToConfig(flags.Lookup(pythonIncludeFlagName), pythonIncludeConfigKey)

	flags.StringVarP(&outputFlag, outputFlagName, "o", defaultTargetsFile, "target list file, relative to the project root")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
