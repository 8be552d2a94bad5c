package cmd

import (
	"github.com/charmbracelet/huh"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	errUtils "github.com/oste/expo-cli/errors"
	"github.com/oste/expo-cli/pkg/config"
	"github.com/oste/expo-cli/pkg/git"
	log "github.com/oste/expo-cli/pkg/logger"
	"github.com/oste/expo-cli/pkg/updates"
)

const configureCommitMessage = "Configure expo-updates"

var (
	usernameFlag       string
	nonInteractiveFlag bool
)

// updatesConfigureCmd wires expo-updates into the native build artifacts.
var updatesConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Wire expo-updates into the native build artifacts",
	Long:  `Idempotently configure the iOS and Android native projects for expo-updates. Safe to re-run: a second invocation on a configured project is a no-op.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		return runConfigure(dir)
	},
}

func init() {
	updatesConfigureCmd.Flags().StringVar(&usernameFlag, "username", "", "Authenticated account name used in the update URL")
	updatesConfigureCmd.Flags().BoolVar(&nonInteractiveFlag, "non-interactive", false, "Fail instead of prompting when the working tree is dirty")
	updatesCmd.AddCommand(updatesConfigureCmd)
}

func runConfigure(dir string) error {
	exp, err := config.LoadAppConfig(dir)
	if err != nil {
		return err
	}
	pkg, err := config.LoadPackageJSON(dir)
	if err != nil {
		return err
	}

	engine := updates.NewEngine(nil)
	result, err := engine.Configure(dir, exp, pkg, usernameFlag)
	if err != nil {
		return err
	}
	if !result.Applied {
		log.Info("expo-updates is not installed in this project, nothing to configure")
		return nil
	}

	if !git.IsRepo(dir) {
		log.Debug("Project is not inside a git repository, skipping staging")
		log.Info("Configured expo-updates")
		return nil
	}

	// Stage brand-new files so they show up as tracked changes for review.
	for _, path := range result.CreatedFiles {
		if err := git.StageFile(dir, path); err != nil {
			log.Warn("Could not stage file", "path", path, "error", err)
		}
	}

	err = git.EnsureCleanWorkingTree(dir)
	switch {
	case err == nil:
		log.Info("Configured expo-updates, working tree is clean")
		return nil
	case errors.Is(err, errUtils.ErrDirtyWorkingTree):
		return reviewAndCommit(dir, err)
	default:
		return err
	}
}

// reviewAndCommit handles the dirty-tree condition: configuration succeeded
// but the repository has uncommitted changes. The user is prompted to commit
// them; declining aborts with a non-zero exit.
func reviewAndCommit(dir string, dirtyErr error) error {
	if nonInteractiveFlag {
		return dirtyErr
	}

	confirm := false
	prompt := huh.NewConfirm().
		Title("The working tree has uncommitted changes. Commit them now?").
		Affirmative("Yes").
		Negative("No").
		Value(&confirm)
	if err := prompt.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errUtils.ErrUserAborted
		}
		return err
	}
	if !confirm {
		return errUtils.ErrUserAborted
	}

	if err := git.CommitAll(dir, configureCommitMessage); err != nil {
		return err
	}
	log.Info("Committed changes", "message", configureCommitMessage)
	return nil
}
