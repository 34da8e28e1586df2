// Occlude commands archive items or log entries out of the main files.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

var occludeCmd = &cobra.Command{
	Use:   "occlude",
	Short: "Occlude items or logs",
}

var (
	occludeItemsFile        string
	occludeItemsOccludeFile string
	occludeItemsTags        []string
	occludeItemsDryRun      bool
)

var occludeItemsCmd = &cobra.Command{
	Use:   "items [identifiers...]",
	Short: "Occlude Giantt items",
	Long: `Occlude items moves items from the include file to the occlude file.
Items can be selected by ID and/or by tag.

Examples:
  giantt occlude items item1 item2
  giantt occlude items -t project1 -t phase1
  giantt occlude items --dry-run -t project1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(occludeItemsFile, occludeItemsOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		included := map[string]bool{}
		for _, item := range g.IncludedItems() {
			included[item.ID] = true
		}

		toOcclude := map[string]bool{}
		for _, id := range args {
			if included[id] {
				toOcclude[id] = true
			} else {
				fmt.Fprintf(os.Stderr, "Warning: Item '%s' not found in included items\n", id)
			}
		}
		for _, tag := range occludeItemsTags {
			for _, item := range g.IncludedItems() {
				if item.HasTag(tag) {
					toOcclude[item.ID] = true
				}
			}
		}

		if len(toOcclude) == 0 {
			fmt.Println("No included items found to occlude")
			return nil
		}

		if occludeItemsDryRun {
			fmt.Println("The following items would be occluded:")
			for _, id := range sortedIDs(toOcclude) {
				item, _ := g.Item(id)
				fmt.Printf("  - %s: %s\n", id, item.Title)
			}
			return nil
		}

		for id := range toOcclude {
			item, _ := g.Item(id)
			item.SetOcclude(true)
		}

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Occluded %d item%s\n", len(toOcclude), plural(len(toOcclude)))
		return nil
	},
}

var (
	occludeLogsFile        string
	occludeLogsOccludeFile string
	occludeLogsTags        []string
	occludeLogsDryRun      bool
)

var occludeLogsCmd = &cobra.Command{
	Use:   "logs [identifiers...]",
	Short: "Occlude log entries",
	Long: `Occlude logs moves log entries from the include file to the occlude
file. Entries can be selected by session ID and/or by tag.

Examples:
  giantt occlude logs session1 session2
  giantt occlude logs -t debug -t test
  giantt occlude logs --dry-run -t debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace("", "", occludeLogsFile, occludeLogsOccludeFile)
		if err != nil {
			return err
		}
		c, err := loadLogEntries(ws)
		if err != nil {
			exitStorage(err)
		}

		sessions := map[string]bool{}
		for _, id := range args {
			sessions[id] = true
		}

		var toOcclude []*types.LogEntry
		for _, entry := range c.Included() {
			if sessions[entry.Session] || entry.HasAnyTag(occludeLogsTags) {
				toOcclude = append(toOcclude, entry)
			}
		}

		if len(toOcclude) == 0 {
			fmt.Println("No include logs found to occlude")
			return nil
		}

		if occludeLogsDryRun {
			fmt.Println("The following logs would be occluded:")
			for _, entry := range toOcclude {
				fmt.Printf("  - %s (%s) %s\n",
					entry.Message,
					strings.Join(entry.SortedTags(), ", "),
					entry.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return nil
		}

		for _, entry := range toOcclude {
			entry.SetOcclude(true)
		}

		if err := saveLogEntries(ws, c); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Occluded %d log%s\n", len(toOcclude), plural(len(toOcclude)))
		return nil
	},
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func init() {
	occludeItemsCmd.Flags().StringVarP(&occludeItemsFile, "file", "f", "", "Giantt items file to use")
	occludeItemsCmd.Flags().StringVarP(&occludeItemsOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	occludeItemsCmd.Flags().StringArrayVarP(&occludeItemsTags, "tag", "t", nil, "occlude items with specific tags")
	occludeItemsCmd.Flags().BoolVar(&occludeItemsDryRun, "dry-run", false, "show what would be occluded without making changes")

	occludeLogsCmd.Flags().StringVarP(&occludeLogsFile, "file", "f", "", "Giantt logs file to use")
	occludeLogsCmd.Flags().StringVarP(&occludeLogsOccludeFile, "occlude-file", "a", "", "Giantt occlude logs file to use")
	occludeLogsCmd.Flags().StringArrayVarP(&occludeLogsTags, "tag", "t", nil, "occlude logs with specific tags")
	occludeLogsCmd.Flags().BoolVar(&occludeLogsDryRun, "dry-run", false, "show what would be occluded without making changes")

	occludeCmd.AddCommand(occludeItemsCmd)
	occludeCmd.AddCommand(occludeLogsCmd)
}
