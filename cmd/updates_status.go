package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/config"
	"github.com/oste/expo-cli/pkg/ui/theme"
	"github.com/oste/expo-cli/pkg/updates"
)

// errNotConfigured signals the expected negative outcome of `updates status`.
// It carries exit code 1 but is not printed as an error.
var errNotConfigured = errors.New("project is not configured for expo-updates")

var statusUsernameFlag string

// updatesStatusCmd reports whether expo-updates wiring is already in place.
var updatesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether expo-updates is already configured",
	Long:  `Check whether the native build artifacts are already wired for expo-updates. Exits 0 when configured (or when expo-updates is not installed), 1 otherwise.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}

		exp, err := config.LoadAppConfig(dir)
		if err != nil {
			return err
		}
		pkg, err := config.LoadPackageJSON(dir)
		if err != nil {
			return err
		}

		engine := updates.NewEngine(nil)
		configured, err := engine.IsConfigured(dir, exp, pkg, statusUsernameFlag)
		if err != nil {
			return err
		}

		if configured {
			fmt.Fprintf(cmd.OutOrStdout(), "%s expo-updates is configured\n", theme.Styles.Checkmark)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s expo-updates is not configured\n", theme.Styles.XMark)
		return errUtils.WithExitCode(errNotConfigured, 1)
	},
}

func init() {
	updatesStatusCmd.Flags().StringVar(&statusUsernameFlag, "username", "", "Authenticated account name used in the update URL")
	updatesCmd.AddCommand(updatesStatusCmd)
}

// isReported reports whether the error was already surfaced to the user by
// its command and only the exit code should propagate.
func isReported(err error) bool {
	return errors.Is(err, errNotConfigured)
}
