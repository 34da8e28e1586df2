// Insert command splices a new item between two existing items.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var (
	insertFile        string
	insertOccludeFile string
	insertCharts      string
	insertTags        string
	insertDuration    string
	insertPriority    string
)

var insertCmd = &cobra.Command{
	Use:   "insert <new-id> <before-id> <after-id>",
	Short: "Insert a new item between two existing items",
	Long: `Insert places a new item into an existing dependency chain: the new
item requires after-id, and before-id requires the new item instead of
after-id. The dependency chain stays acyclic or the insert is rejected.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		newID, beforeID, afterID := args[0], args[1], args[2]

		ws, err := resolveWorkspace(insertFile, insertOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		priority := types.Priority(insertPriority)
		if !priority.Valid() {
			return fmt.Errorf("invalid priority %q (valid: %s)", insertPriority, strings.Join(priorityNames(), ", "))
		}
		duration, err := types.ParseDuration(insertDuration)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", insertDuration, err)
		}

		item := types.NewItem(newID, newID)
		item.Priority = priority
		item.Duration = duration
		item.Charts = splitCSV(insertCharts)
		item.Tags = splitCSV(insertTags)

		if err := g.InsertBetween(item, beforeID, afterID); err != nil {
			return reportCycle(err)
		}

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Inserted '%s' between '%s' and '%s'\n", newID, beforeID, afterID)
		return nil
	},
}

func init() {
	insertCmd.Flags().StringVarP(&insertFile, "file", "f", "", "Giantt items file to use")
	insertCmd.Flags().StringVarP(&insertOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	insertCmd.Flags().StringVar(&insertCharts, "charts", "", "comma-separated list of charts")
	insertCmd.Flags().StringVar(&insertTags, "tags", "", "comma-separated list of tags")
	insertCmd.Flags().StringVar(&insertDuration, "duration", "1d", "duration (e.g., 1d, 2w, 3mo2w5d)")
	insertCmd.Flags().StringVar(&insertPriority, "priority", string(types.PriorityNeutral), "priority level")
}
