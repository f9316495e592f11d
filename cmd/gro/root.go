package gro

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gro/internal/version"
	"github.com/arthur-debert/gro/pkg/logging"
)

var (
	configPath     string
	dryRun         bool
	verbosity      int
	nonInteractive bool
)

// NewRootCmd builds the gro command tree.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:   "gro",
		Short: MsgRootShort,
		Long: `gro organizes git repositories: all clones live flat in one store
directory, and one or more workspaces project categorized views onto the
store via symlinks, driven by a small YAML config.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, MsgFlagNonInteractive)

	rootCmd.AddCommand(
		newInitCmd(),
		newStatusCmd(),
		newApplyCmd(),
		newSyncCmd(),
		newAdoptCmd(),
		newAddCmd(),
		newVSCodeCmd(),
		newGenconfigCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gro version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
