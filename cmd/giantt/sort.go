// Sort command rewrites the item files in topological order.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sortFile        string
	sortOccludeFile string
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort items in topological order and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(sortFile, sortOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}
		if err := saveItems(ws, g); err != nil {
			return reportCycle(err)
		}
		fmt.Println("Successfully sorted and saved items.")
		return nil
	},
}

func init() {
	sortCmd.Flags().StringVarP(&sortFile, "file", "f", "", "Giantt items file to use")
	sortCmd.Flags().StringVarP(&sortOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
}
