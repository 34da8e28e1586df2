// Add command creates a new item in the graph.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var (
	addFile        string
	addOccludeFile string
	addDuration    string
	addPriority    string
	addStatus      string
	addCharts      string
	addTags        string
	addRequires    string
	addAnyOf       string
)

var addCmd = &cobra.Command{
	Use:   "add <id> <title>",
	Short: "Add a new item to the Giantt chart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, title := args[0], args[1]

		ws, err := resolveWorkspace(addFile, addOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		// The new ID and title must not collide with existing items, nor
		// shadow them in substring lookups.
		for _, existing := range g.Items() {
			if existing.ID == id {
				return fmt.Errorf("item ID %q already exists\nExisting item: %s - %s",
					id, existing.ID, existing.Title)
			}
			if strings.Contains(strings.ToLower(existing.Title), strings.ToLower(id)) {
				return fmt.Errorf("item ID %q conflicts with title of another item\nConflicting item: %s - %s",
					id, existing.ID, existing.Title)
			}
			if strings.Contains(strings.ToLower(existing.Title), strings.ToLower(title)) {
				return fmt.Errorf("title %q conflicts with title of another item\nConflicting item: %s - %s",
					title, existing.ID, existing.Title)
			}
		}

		status := types.Status(addStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status %q (valid: %s)", addStatus, strings.Join(statusNames(), ", "))
		}
		priority := types.Priority(addPriority)
		if !priority.Valid() {
			return fmt.Errorf("invalid priority %q (valid: %s)", addPriority, strings.Join(priorityNames(), ", "))
		}
		duration, err := types.ParseDuration(addDuration)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", addDuration, err)
		}

		item := types.NewItem(id, title)
		item.Status = status
		item.Priority = priority
		item.Duration = duration
		item.Charts = splitCSV(addCharts)
		item.Tags = splitCSV(addTags)
		g.AddItem(item)

		for _, target := range splitCSV(addRequires) {
			if err := g.AddRelation(id, types.RelationRequires, target); err != nil {
				return reportCycle(err)
			}
		}
		for _, target := range splitCSV(addAnyOf) {
			if err := g.AddRelation(id, types.RelationAnyOf, target); err != nil {
				return reportCycle(err)
			}
		}

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Added item '%s'\n", id)
		return nil
	},
}

// reportCycle adds a hint when a relation change was rejected for forming a
// dependency cycle.
func reportCycle(err error) error {
	var cycleErr *types.CycleError
	if errors.As(err, &cycleErr) {
		fmt.Fprintln(os.Stderr, "The new relations would create a dependency cycle. Please revise them.")
	}
	return err
}

func init() {
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "Giantt items file to use")
	addCmd.Flags().StringVarP(&addOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	addCmd.Flags().StringVar(&addDuration, "duration", "1d", "duration (e.g., 1d, 2w, 3mo)")
	addCmd.Flags().StringVar(&addPriority, "priority", string(types.PriorityNeutral), "priority level")
	addCmd.Flags().StringVar(&addStatus, "status", string(types.StatusNotStarted), "initial status")
	addCmd.Flags().StringVar(&addCharts, "charts", "", "comma-separated list of chart names")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated list of tags")
	addCmd.Flags().StringVar(&addRequires, "requires", "", "comma-separated list of item IDs this item requires")
	addCmd.Flags().StringVar(&addAnyOf, "any-of", "", "comma-separated list of item IDs individually sufficient for this item")
}
