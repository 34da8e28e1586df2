// Clean command prunes and renumbers backup files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/internal/storage"
)

var (
	cleanYes  bool
	cleanKeep int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up backup files, keeping only the most recent few",
	Long: `Clean removes old backups of the items and logs files, keeping the
most recent backups of each. Kept backups are renumbered so the oldest
is .1.backup and the newest is .<keep>.backup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace("", "", "", "")
		if err != nil {
			return err
		}
		if _, err := os.Stat(ws.baseDir); err != nil {
			fmt.Println("Giantt is not initialized. Run 'giantt init' or 'giantt init --dev' first,\nor navigate to your local dev directory.")
			return nil
		}

		targets := []string{ws.itemsInclude, ws.itemsOcclude, ws.logsInclude, ws.logsOcclude}

		total := 0
		excess := 0
		for _, target := range targets {
			count, err := countBackups(target)
			if err != nil {
				exitStorage(err)
			}
			total += count
			if count > cleanKeep {
				excess += count - cleanKeep
			}
		}

		if total == 0 {
			fmt.Println("No backup files found.")
			return nil
		}
		fmt.Printf("Found %d backup files across all directories.\n", total)
		fmt.Printf("Will keep up to %d most recent backups of each file.\n", cleanKeep)
		if excess == 0 {
			fmt.Println("No files to delete.")
			return nil
		}
		fmt.Printf("Will delete %d old backup files.\n", excess)

		if !cleanYes && !confirm("Do you want to proceed?") {
			fmt.Println("Aborted. No changes made.")
			return nil
		}

		for _, target := range targets {
			if _, err := storage.RenumberBackups(target, cleanKeep); err != nil {
				exitStorage(err)
			}
		}
		fmt.Println("Backup cleanup completed successfully!")
		return nil
	},
}

// countBackups counts the numbered backups that exist for one file.
func countBackups(path string) (int, error) {
	matches, err := filepath.Glob(path + ".*.backup")
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip confirmation prompt")
	cleanCmd.Flags().IntVarP(&cleanKeep, "keep", "k", storage.DefaultBackupKeep, "number of recent backups to keep")
}
