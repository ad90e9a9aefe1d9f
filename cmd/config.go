package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "lisabuild"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	rootFlagName          = "root"
	withSwigFlagName      = "with-swig"
	withGSLFlagName       = "with-gsl"
	pythonIncludeFlagName = "python-include"
	outputFlagName        = "output"
	verboseFlagName       = "verbose"
	diffFlagName          = "diff"

	rootConfigKey          = "root"
	swigBinConfigKey       = "swig.bin"
	gslPrefixConfigKey     = "gsl.prefix"
	pythonIncludeConfigKey = "python.include"
	pythonBinConfigKey     = "python.bin"
	releaseConfigKey       = "release"
	outputConfigKey        = "output"

	defaultRoot          = "."
	defaultSwigBin       = "swig"
	defaultGSLPrefix     = ""
	defaultPythonInclude = ""
	defaultPythonBin     = "python3"
	defaultRelease       = "1.3.1"
	defaultTargetsFile   = "build/targets.yaml"

	envPrefix = "LISABUILD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".lisabuild.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(rootConfigKey, defaultRoot)
	viper.SetDefault(swigBinConfigKey, defaultSwigBin)
	viper.SetDefault(gslPrefixConfigKey, defaultGSLPrefix)
	viper.SetDefault(pythonIncludeConfigKey, defaultPythonInclude)
	viper.SetDefault(pythonBinConfigKey, defaultPythonBin)
	viper.SetDefault(releaseConfigKey, defaultRelease)
	viper.SetDefault(outputConfigKey, defaultTargetsFile)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// configFromViper builds the run configuration from flags, environment and
// the config file. Relative paths are resolved against the working directory
// (root) and the project root (output).
func configFromViper() (m.Config, error) {
	root, err := filepath.Abs(viper.GetString(rootConfigKey))
	if err != nil {
		return m.Config{}, fmt.Errorf("resolve project root: %w", err)
	}

	output := viper.GetString(outputConfigKey)
	if !filepath.IsAbs(output) {
		output = filepath.Join(root, output)
	}

	return m.Config{
		Root:          m.Path(root),
		Layout:        m.DefaultLayout(),
		Generator:     viper.GetString(swigBinConfigKey),
		PythonInclude: viper.GetString(pythonIncludeConfigKey),
		GSL:           m.OptionalLibraryConfig{Prefix: cleanPrefix(viper.GetString(gslPrefixConfigKey))},
		Release:       viper.GetString(releaseConfigKey),
		TargetsFile:   m.Path(output),
	}, nil
}

// cleanPrefix drops trailing slashes from an installation prefix. The root
// directory stays "/" so it still counts as configured.
func cleanPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}

	return filepath.Clean(prefix)
}

// buildConfig is configFromViper with the python include directory filled in,
// asking the interpreter when none is configured.
func buildConfig(ctx context.Context, runner adapter.GeneratorAdapter) (m.Config, error) {
	cfg, err := configFromViper()
	if err != nil {
		return cfg, err
	}

	if cfg.PythonInclude != "" {
		return cfg, nil
	}

	python := viper.GetString(pythonBinConfigKey)

	include, err := adapter.PythonIncludeDir(ctx, runner, python)
	if err != nil {
		slog.Error("Failed to query python include directory", "python", python, "error", err)
		return cfg, fmt.Errorf("query include directory from %s (set --%s): %w", python, pythonIncludeFlagName, err)
	}

	slog.Debug("Resolved python include directory", "dir", include)
	cfg.PythonInclude = include

	return cfg, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
