// Show command displays item, chart, or log details.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/graph"
	"github.com/mesh-intelligence/giantt/pkg/logs"
)

var (
	showFile           string
	showOccludeFile    string
	showLogFile        string
	showOccludeLogFile string
	showChart          bool
	showLog            bool
)

var showCmd = &cobra.Command{
	Use:   "show <substring>",
	Short: "Show details of an item matching the substring",
	Long: `Show looks up one item by exact ID or by case-insensitive title
substring and prints its details. With --chart the substring selects
chart names instead; with --log it selects log sessions and messages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		substring := args[0]

		ws, err := resolveWorkspace(showFile, showOccludeFile, showLogFile, showOccludeLogFile)
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		if !showChart && !showLog {
			item, err := g.FindBySubstring(substring)
			if err != nil {
				return err
			}
			printItemDetails(item)
		}
		if showChart {
			showChartItems(g, substring)
		}
		if showLog {
			c, err := loadLogEntries(ws)
			if err != nil {
				exitStorage(err)
			}
			showLogEntries(c, substring)
		}
		return nil
	},
}

// showChartItems prints every chart whose name contains the substring, with
// the items assigned to it.
func showChartItems(g *graph.Graph, substring string) {
	chartItems := map[string][]string{}
	for _, item := range g.Items() {
		for _, chart := range item.Charts {
			if strings.Contains(strings.ToLower(chart), strings.ToLower(substring)) {
				chartItems[chart] = append(chartItems[chart], fmt.Sprintf("  - %s %s", item.ID, item.Title))
			}
		}
	}
	if len(chartItems) == 0 {
		fmt.Printf("No items found in chart '%s'\n", substring)
		return
	}

	names := make([]string, 0, len(chartItems))
	for name := range chartItems {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("Chart '%s':\n", name)
		for _, line := range chartItems[name] {
			fmt.Println(line)
		}
	}
}

// showLogEntries prints log entries matching the substring as a session tag
// or as message text.
func showLogEntries(c *logs.Collection, substring string) {
	bySession := c.BySession(substring)
	if len(bySession) > 0 {
		fmt.Printf("Logs for session '%s':\n", substring)
		for _, entry := range bySession {
			fmt.Printf("  - %s\n", entry.String())
		}
	} else {
		fmt.Printf("No logs found for session '%s'\n", substring)
	}

	matching := c.BySubstring(substring)
	if len(matching) > 0 {
		fmt.Printf("Logs matching '%s':\n", substring)
		for _, entry := range matching {
			fmt.Printf("  - %s\n", entry.String())
		}
	}
}

func init() {
	showCmd.Flags().StringVarP(&showFile, "file", "f", "", "Giantt items file to use")
	showCmd.Flags().StringVarP(&showOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")
	showCmd.Flags().StringVarP(&showLogFile, "log-file", "l", "", "Giantt log file to use")
	showCmd.Flags().StringVar(&showOccludeLogFile, "occlude-log-file", "", "Giantt occlude log file to use")
	showCmd.Flags().BoolVar(&showChart, "chart", false, "search in chart names")
	showCmd.Flags().BoolVar(&showLog, "log", false, "search in logs and log sessions")
}
