// Root command for the giantt CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/internal/paths"
	"github.com/mesh-intelligence/giantt/internal/storage"
)

// Version is the giantt CLI version.
const Version = "0.1.0"

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
)

// configDataDir and configBackupKeep hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir    string
	configBackupKeep = storage.DefaultBackupKeep
)

// logger is the CLI-wide diagnostic logger, configured in PersistentPreRunE.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:     "giantt",
	Short:   "Giantt manages items in a task dependency graph",
	Version: Version,
	Long: `Giantt is a command line tool for managing tasks ("items") connected
by typed relations. Items live in plain text files using a compact
notation, are kept in topological order, and can be archived out of
view by occluding them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configBackupKeep = cfg.GetInt(cfgKeyBackupKeep)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: ~/.config/giantt)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.giantt or ~/.giantt)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(occludeCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(addIncludeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(doctorCmd)
}

// resolveDataDir returns the workspace base directory following the
// precedence: --data-dir flag > config.yaml data_dir > GIANTT_DATA_DIR env >
// $(CWD)/.giantt if present > ~/.giantt.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// newStore returns a Store wired to the CLI logger and the configured backup
// retention.
func newStore() *storage.Store {
	s := storage.New(logger)
	s.SetBackupKeep(configBackupKeep)
	return s
}
