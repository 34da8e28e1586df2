// Modify command changes a property or relation of one item.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var (
	modifyFile        string
	modifyOccludeFile string
	modifyAdd         bool
	modifyRemove      bool
)

var modifyCmd = &cobra.Command{
	Use:   "modify <substring> <property> <value>",
	Short: "Modify any property of a Giantt item",
	Long: `Modify sets a property of the item matching the substring. Plain
properties are title, duration, priority, status, charts, tags, and
constraints. Relation properties (requires, blocks, anyof, sufficient,
supercharges, indicates, together, conflicts) take --add or --remove
with a comma-separated list of target IDs.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		substring, property, value := args[0], args[1], args[2]

		if modifyAdd && modifyRemove {
			return fmt.Errorf("cannot add and remove a relation at the same time")
		}

		ws, err := resolveWorkspace(modifyFile, modifyOccludeFile, "", "")
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

		rel := types.RelationType(strings.ToUpper(property))
		if rel.Valid() {
			if !modifyAdd && !modifyRemove {
				return fmt.Errorf("relation properties need --add or --remove")
			}
			targets := splitCSV(value)
			if len(targets) == 0 {
				return fmt.Errorf("no target IDs given")
			}
			for _, target := range targets {
				if modifyAdd {
					if err := g.AddRelation(item.ID, rel, target); err != nil {
						return reportCycle(err)
					}
				} else {
					g.RemoveRelation(item.ID, rel, target)
				}
			}
		} else {
			if modifyAdd || modifyRemove {
				names := make([]string, len(types.RelationTypes()))
				for i, r := range types.RelationTypes() {
					names[i] = strings.ToLower(string(r))
				}
				return fmt.Errorf("invalid relation type, must be one of: %s", strings.Join(names, ", "))
			}
			if err := setItemProperty(item, property, value); err != nil {
				return err
			}
		}

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Modified %s of item '%s'\n", property, item.ID)
		return nil
	},
}

// setItemProperty applies a plain (non-relation) property change.
func setItemProperty(item *types.Item, property, value string) error {
	switch property {
	case "title":
		item.Title = value
	case "duration":
		duration, err := types.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		item.Duration = duration
	case "priority":
		priority := types.Priority(strings.ToUpper(value))
		if !priority.Valid() {
			return fmt.Errorf("invalid priority, must be one of: %s", strings.Join(priorityNames(), ", "))
		}
		item.Priority = priority
	case "status":
		status := types.Status(strings.ToUpper(value))
		if !status.Valid() {
			return fmt.Errorf("invalid status, must be one of: %s", strings.Join(statusNames(), ", "))
		}
		item.Status = status
	case "charts":
		item.Charts = splitCSV(value)
	case "tags":
		item.Tags = splitCSV(value)
	case "constraints":
		var constraints []types.TimeConstraint
		for _, expr := range strings.Fields(value) {
			c, err := types.ParseTimeConstraint(expr)
			if err != nil {
				return fmt.Errorf("invalid constraint %q: %w", expr, err)
			}
			constraints = append(constraints, c)
		}
		item.Constraints = constraints
	default:
		return fmt.Errorf("unknown property %q, must be one of: title, duration, priority, status, charts, tags, constraints, or a relation type", property)
	}
	return nil
}

func init() {
	modifyCmd.Flags().StringVarP(&modifyFile, "file", "f", "", "Giantt items file to use")
	modifyCmd.Flags().StringVarP(&modifyOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	modifyCmd.Flags().BoolVar(&modifyAdd, "add", false, "add a relation")
	modifyCmd.Flags().BoolVar(&modifyRemove, "remove", false, "remove a relation")
}
