// Set-status command changes the status of one item.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var (
	setStatusFile        string
	setStatusOccludeFile string
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status <substring> <status>",
	Short: "Set the status of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		substring, statusArg := args[0], args[1]

		status := types.Status(strings.ToUpper(statusArg))
		if !status.Valid() {
			return fmt.Errorf("invalid status %q (valid: %s)", statusArg, strings.Join(statusNames(), ", "))
		}

		ws, err := resolveWorkspace(setStatusFile, setStatusOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		item, err := g.FindBySubstring(substring)
		if err != nil {
			return err
		}
		item.Status = status

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Set status of item '%s' to %s\n", item.ID, status)
		return nil
	},
}

func init() {
	setStatusCmd.Flags().StringVarP(&setStatusFile, "file", "f", "", "Giantt items file to use")
	setStatusCmd.Flags().StringVarP(&setStatusOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
}
