package cmd

import (
	"github.com/spf13/cobra"
)

// updatesCmd groups the expo-updates wiring commands.
var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Manage expo-updates wiring in native build artifacts",
	Long:  `Wire the expo-updates client into the project's native build artifacts (Xcode project and Expo.plist on iOS, Gradle build script and AndroidManifest on Android) so the runtime can locate its update feed and identify compatible builds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.AddCommand(updatesCmd)
}
