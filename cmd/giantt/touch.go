// Touch command reloads and rewrites both the item and log files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	touchFile           string
	touchOccludeFile    string
	touchLogFile        string
	touchOccludeLogFile string
)

var touchCmd = &cobra.Command{
	Use:   "touch",
	Short: "Reload and rewrite the items and logs files",
	Long: `Touch loads the items and logs and writes them straight back. This
normalizes formatting, reorders items topologically, and folds entries
from included files into the main files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(touchFile, touchOccludeFile, touchLogFile, touchOccludeLogFile)
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}
		c, err := loadLogEntries(ws)
		if err != nil {
			exitStorage(err)
		}
		if err := saveItems(ws, g); err != nil {
			return reportCycle(err)
		}
		if err := saveLogEntries(ws, c); err != nil {
			exitStorage(err)
		}
		fmt.Println("Touched items and logs files")
		return nil
	},
}

func init() {
	touchCmd.Flags().StringVarP(&touchFile, "file", "f", "", "Giantt items file to use")
	touchCmd.Flags().StringVarP(&touchOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	touchCmd.Flags().StringVarP(&touchLogFile, "log-file", "l", "", "Giantt log file to use")
	touchCmd.Flags().StringVar(&touchOccludeLogFile, "occlude-log-file", "", "Giantt occlude log file to use")
}
