// Remove command deletes an item and cleans up references to it.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var (
	removeFile          string
	removeOccludeFile   string
	removeForce         bool
	removeKeepRelations bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the Giantt chart and clean up relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		ws, err := resolveWorkspace(removeFile, removeOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		item, ok := g.Item(id)
		if !ok {
			return fmt.Errorf("item %q not found: %w", id, types.ErrItemNotFound)
		}

		if !removeForce {
			fmt.Println("\nItem to be removed:")
			fmt.Printf("  ID: %s\n", item.ID)
			fmt.Printf("  Title: %s\n", item.Title)
			fmt.Printf("  Status: %s\n", item.Status)
			fmt.Printf("  Priority: %s\n", item.Priority)
			fmt.Printf("  Duration: %s\n", item.Duration.String())
			fmt.Printf("  Charts: %s\n", orNone(item.Charts))
			fmt.Printf("  Tags: %s\n", orNone(item.Tags))

			counts := relationImpact(g, id)
			if len(counts) > 0 {
				suffix := ":"
				if removeKeepRelations {
					suffix = " (but not removed):"
				}
				fmt.Println("\nRelations that will be affected" + suffix)
				for _, rel := range types.RelationTypes() {
					if counts[rel] > 0 {
						fmt.Printf("  %s: %d references removed\n", rel, counts[rel])
					}
				}
			} else {
				fmt.Println("\nNo relations will be affected.")
			}

			if !confirm("\nConfirm removal?") {
				fmt.Println("Aborted. No changes made.")
				return nil
			}
		}

		g.RemoveItem(id, !removeKeepRelations)

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("\nSuccessfully removed '%s' and cleaned up relations.\n", id)
		return nil
	},
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}

func init() {
	removeCmd.Flags().StringVar(&removeFile, "file", "", "Giantt items file to use")
	removeCmd.Flags().StringVarP(&removeOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "force removal without confirmation")
	removeCmd.Flags().BoolVar(&removeKeepRelations, "keep-relations", false, "keep references to the removed item in other items")
}
