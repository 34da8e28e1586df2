// Shared helpers for giantt CLI commands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mesh-intelligence/giantt/internal/paths"
	"github.com/mesh-intelligence/giantt/pkg/doctor"
	"github.com/mesh-intelligence/giantt/pkg/graph"
	"github.com/mesh-intelligence/giantt/pkg/logs"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

// workspaceFiles holds the resolved paths of the four workspace files.
type workspaceFiles struct {
	baseDir      string
	itemsInclude string
	itemsOcclude string
	logsInclude  string
	logsOcclude  string
}

// resolveWorkspace resolves the workspace file paths, honoring the per-command
// file override flags where set.
func resolveWorkspace(itemsFile, itemsOccludeFile, logsFile, logsOccludeFile string) (workspaceFiles, error) {
	baseDir, err := resolveDataDir()
	if err != nil {
		return workspaceFiles{}, fmt.Errorf("resolve data dir: %w", err)
	}
	ws := workspaceFiles{
		baseDir:      baseDir,
		itemsInclude: paths.WorkspaceFile(baseDir, paths.ItemsFileName, false),
		itemsOcclude: paths.WorkspaceFile(baseDir, paths.ItemsFileName, true),
		logsInclude:  paths.WorkspaceFile(baseDir, paths.LogsFileName, false),
		logsOcclude:  paths.WorkspaceFile(baseDir, paths.LogsFileName, true),
	}
	if itemsFile != "" {
		ws.itemsInclude = itemsFile
	}
	if itemsOccludeFile != "" {
		ws.itemsOcclude = itemsOccludeFile
	}
	if logsFile != "" {
		ws.logsInclude = logsFile
	}
	if logsOccludeFile != "" {
		ws.logsOcclude = logsOccludeFile
	}
	return ws, nil
}

// loadItems loads the item graph from the workspace.
func loadItems(ws workspaceFiles) (*graph.Graph, error) {
	g, err := newStore().LoadGraph(ws.itemsInclude, ws.itemsOcclude)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return g, nil
}

// saveItems saves the graph and prints a warning when the quick health check
// finds dangling references.
func saveItems(ws workspaceFiles, g *graph.Graph) error {
	if err := newStore().SaveGraph(ws.itemsInclude, ws.itemsOcclude, g); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	if n := doctor.New(g).QuickCheck(); n > 0 {
		fmt.Fprintf(os.Stderr, "\n%d or more warnings. Run 'giantt doctor check' for details.\n", n)
	}
	return nil
}

// loadLogEntries loads the log collection from the workspace.
func loadLogEntries(ws workspaceFiles) (*logs.Collection, error) {
	c, err := newStore().LoadLogs(ws.logsInclude, ws.logsOcclude)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	return c, nil
}

// saveLogEntries saves the log collection back to the workspace.
func saveLogEntries(ws workspaceFiles, c *logs.Collection) error {
	if err := newStore().SaveLogs(ws.logsInclude, ws.logsOcclude, c); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}

// splitCSV splits a comma-separated flag value into trimmed non-empty parts.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// confirm prompts on stdout and reads a y/N answer from stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// printItemDetails writes the full detail view of one item.
func printItemDetails(item *types.Item) {
	fmt.Printf("Title: %s\n", item.Title)
	fmt.Printf("ID: %s\n", item.ID)
	fmt.Printf("Status: %s\n", item.Status)
	fmt.Printf("Priority: %s\n", item.Priority)
	fmt.Printf("Duration: %s\n", item.Duration.String())
	fmt.Printf("Charts: %s\n", strings.Join(item.Charts, ", "))
	if len(item.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(item.Tags, ", "))
	} else {
		fmt.Println("Tags: None")
	}
	if len(item.Constraints) > 0 {
		exprs := make([]string, len(item.Constraints))
		for i, c := range item.Constraints {
			exprs[i] = c.String()
		}
		fmt.Printf("Time Constraints: %s\n", strings.Join(exprs, " "))
	} else {
		fmt.Println("Time Constraints: None")
	}
	fmt.Println("Relations:")
	for _, rel := range types.RelationTypes() {
		targets := item.Relations[rel]
		if len(targets) == 0 {
			continue
		}
		fmt.Printf("    - %s: %s\n", rel, strings.Join(targets, ", "))
	}
	if item.UserComment != "" {
		fmt.Printf("Comment: %s\n", item.UserComment)
	}
	if item.AutoComment != "" {
		fmt.Printf("Auto Comment: %s\n", item.AutoComment)
	}
}

// relationImpact counts, per relation type, how many items reference the
// given ID.
func relationImpact(g *graph.Graph, id string) map[types.RelationType]int {
	counts := map[types.RelationType]int{}
	for _, other := range g.Items() {
		if other.ID == id {
			continue
		}
		for rel, targets := range other.Relations {
			for _, t := range targets {
				if t == id {
					counts[rel]++
				}
			}
		}
	}
	return counts
}

// statusNames returns the status names accepted on the command line.
func statusNames() []string {
	names := make([]string, len(types.Statuses()))
	for i, s := range types.Statuses() {
		names[i] = string(s)
	}
	return names
}

// priorityNames returns the priority names accepted on the command line.
func priorityNames() []string {
	names := make([]string, len(types.Priorities()))
	for i, p := range types.Priorities() {
		names[i] = string(p)
	}
	return names
}

// sortedIDs returns the IDs ascending.
func sortedIDs(ids map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// exitStorage prints a storage-level failure and exits with the system error
// code so scripts can distinguish it from bad input.
func exitStorage(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitSysError)
}
