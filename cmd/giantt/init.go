// Init command creates the workspace directory structure and seed files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/internal/paths"
	"github.com/mesh-intelligence/giantt/internal/storage"
)

var initDev bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the giantt directory structure and files",
	Long: `Init creates the workspace: an include/ and an occlude/ directory, each
seeded with empty items, logs, and metadata files. Existing files are
left untouched, so init is safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var baseDir string
		switch {
		case flagDataDir != "":
			baseDir = flagDataDir
		case initDev:
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			baseDir = filepath.Join(cwd, paths.DefaultDirName)
		default:
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			baseDir = filepath.Join(home, paths.DefaultDirName)
		}

		created, err := storage.InitWorkspace(baseDir)
		if err != nil {
			exitStorage(err)
		}
		if len(created) == 0 {
			fmt.Printf("Giantt is already initialized at %s. Enjoy!\n", baseDir)
		} else {
			fmt.Printf("Initialized Giantt at %s\n", baseDir)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initDev, "dev", false, "initialize in the current directory instead of the home directory")
}
