package cmd

import (
	"os"

	"github.com/spf13/cobra"

	errUtils "github.com/oste/expo-cli/errors"
	log "github.com/oste/expo-cli/pkg/logger"
)

var (
	projectDirFlag string
	logLevelFlag   string
)

// RootCmd is the top-level expo-cli command.
var RootCmd = &cobra.Command{
	Use:           "expo-cli",
	Short:         "Tools for Expo projects",
	Long:          `Command-line tools for working with Expo projects, including wiring the expo-updates client into native build artifacts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevelFlag)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&projectDirFlag, "project-dir", "", "Project root directory (defaults to the current directory)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}
	// "Not configured" is an expected negative outcome, already reported by
	// the command itself; only the exit code is propagated.
	if !isReported(err) {
		log.Error(err)
	}
	return errUtils.GetExitCode(err)
}

// projectDir resolves the effective project root.
func projectDir() (string, error) {
	if projectDirFlag != "" {
		return projectDirFlag, nil
	}
	return os.Getwd()
}
