// Package cmd implements the gitobj CLI commands using Cobra.
// The commands are thin fronts over the repository facade in internal/git:
// they open the repository for the working directory, run one operation,
// and print the result.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/gitobj/internal/config"
	"github.com/jmgilman/gitobj/internal/exec"
	"github.com/jmgilman/gitobj/internal/slogger"
)

// appConfig holds the loaded application configuration.
var appConfig *config.Config

// configLoader is kept for the config subcommand.
var configLoader *config.Loader

// Persistent flag values, applied on top of the loaded config.
var (
	flagConfig    string
	flagVerbosity int
	flagGitBinary string
	flagTimeout   int
)

var rootCmd = &cobra.Command{
	Use:   "gitobj",
	Short: "Inspect and manipulate git repositories",
	Long: `Gitobj is a typed front end for the git command line.

Every subcommand shells out to git, parses its output into branches,
tags, commits and trees, and prints the result. Nothing is cached:
each invocation reflects the repository as git reports it right now.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}

		if flagVerbosity > 0 {
			appConfig.Log.Verbosity = flagVerbosity
		}
		if flagGitBinary != "" {
			appConfig.Git.Binary = flagGitBinary
		}
		if flagTimeout > 0 {
			appConfig.Git.TimeoutSeconds = flagTimeout
		}

		if err := checkDependencies(); err != nil {
			return err
		}

		logger := slogger.New(slogger.Config{
			Verbosity:  appConfig.Log.Verbosity,
			File:       appConfig.Log.File,
			MaxSizeMB:  appConfig.Log.MaxSizeMB,
			MaxBackups: appConfig.Log.MaxBackups,
		})

		ctx := cmd.Context()
		ctx = slogger.WithLogger(ctx, logger)
		ctx = WithConfig(ctx, appConfig)
		ctx = WithLoader(ctx, configLoader)
		cmd.SetContext(ctx)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the config file")
	rootCmd.PersistentFlags().IntVarP(&flagVerbosity, "verbosity", "v", 0, "log verbosity (0-2)")
	rootCmd.PersistentFlags().StringVar(&flagGitBinary, "git-binary", "", "git binary name or path")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "per-command timeout in seconds")
}

func initConfig() error {
	var loader *config.Loader
	if flagConfig != "" {
		loader = config.NewLoaderAt(flagConfig)
	} else {
		var err error
		loader, err = config.NewLoader()
		if err != nil {
			return fmt.Errorf("init config loader: %w", err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appConfig = cfg
	configLoader = loader
	return nil
}

// checkDependencies verifies that the configured git binary is available.
func checkDependencies() error {
	executor := exec.New()
	if _, err := executor.LookPath(appConfig.Git.Binary); err != nil {
		return fmt.Errorf("required binary %q not found in PATH", appConfig.Git.Binary)
	}
	return nil
}

// workingDir resolves the directory commands operate on.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}
