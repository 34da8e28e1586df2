// Includes and add-include commands manage #include directives.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/internal/storage"
)

var (
	includesFile      string
	includesRecursive bool
)

var includesCmd = &cobra.Command{
	Use:   "includes",
	Short: "Show the include structure of a Giantt items file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(includesFile, "", "", "")
		if err != nil {
			return err
		}
		printIncludeTree(storage.IncludeTree(ws.itemsInclude, includesRecursive), 0)
		return nil
	},
}

func printIncludeTree(node *storage.IncludeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case node.Circular:
		fmt.Printf("%s└─ %s (circular include, skipping)\n", indent, node.Path)
	case node.Missing:
		fmt.Printf("%s└─ %s (file not found)\n", indent, node.Path)
	default:
		fmt.Printf("%s└─ %s\n", indent, node.Path)
	}
	for _, child := range node.Children {
		printIncludeTree(child, depth+1)
	}
}

var addIncludeFile string

var addIncludeCmd = &cobra.Command{
	Use:   "add-include <path>",
	Short: "Add an include directive to a Giantt items file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		ws, err := resolveWorkspace(addIncludeFile, "", "", "")
		if err != nil {
			return err
		}
		if _, err := os.Stat(ws.itemsInclude); err != nil {
			return fmt.Errorf("file not found: %s", ws.itemsInclude)
		}
		if err := storage.AddInclude(ws.itemsInclude, target); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Added include directive for %s to %s\n", target, ws.itemsInclude)
		return nil
	},
}

func init() {
	includesCmd.Flags().StringVarP(&includesFile, "file", "f", "", "Giantt items file to use")
	includesCmd.Flags().BoolVarP(&includesRecursive, "recursive", "r", false, "show recursive includes")

	addIncludeCmd.Flags().StringVarP(&addIncludeFile, "file", "f", "", "Giantt items file to use")
}
