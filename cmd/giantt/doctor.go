// Doctor commands check and repair graph health.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giantt/pkg/doctor"
)

var (
	doctorFile        string
	doctorOccludeFile string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the Giantt graph and fix issues",
}

var doctorCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the health of the Giantt graph and report issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(doctorFile, doctorOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		d := doctor.New(g)
		issues := d.FullDiagnosis()
		if len(issues) == 0 {
			fmt.Println("Graph is healthy!")
			return nil
		}

		fmt.Printf("\nFound %d issue%s:\n", len(issues), plural(len(issues)))
		for _, issueType := range doctor.IssueTypes() {
			typed := d.IssuesByType(issueType)
			if len(typed) == 0 {
				continue
			}
			fmt.Printf("\n%s (%d issues):\n", issueType, len(typed))
			for _, issue := range typed {
				fmt.Printf("  - %s: %s\n", issue.ItemID, issue.Message)
				if issue.SuggestedFix != "" {
					fmt.Printf("    Suggested fix: %s\n", issue.SuggestedFix)
				}
			}
		}
		return nil
	},
}

var (
	doctorFixType   string
	doctorFixItem   string
	doctorFixAll    bool
	doctorFixDryRun bool
)

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Fix issues in the Giantt graph",
	Long: `Fix repairs fixable issues found by the doctor.

Examples:
  giantt doctor fix --type dangling_reference
  giantt doctor fix --item item123
  giantt doctor fix --all
  giantt doctor fix --all --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(doctorFile, doctorOccludeFile, "", "")
		if err != nil {
			return err
		}
		g, err := loadItems(ws)
		if err != nil {
			exitStorage(err)
		}

		d := doctor.New(g)
		issues := d.FullDiagnosis()
		if len(issues) == 0 {
			fmt.Println("Graph is healthy! No issues to fix.")
			return nil
		}

		var filter doctor.Filter
		var toFix []doctor.Issue
		switch {
		case doctorFixType != "":
			issueType, err := doctor.IssueTypeFromString(doctorFixType)
			if err != nil {
				names := make([]string, len(doctor.IssueTypes()))
				for i, t := range doctor.IssueTypes() {
					names[i] = string(t)
				}
				return fmt.Errorf("invalid issue type %q, valid types are: %s", doctorFixType, strings.Join(names, ", "))
			}
			filter.Type = issueType
			toFix = d.IssuesByType(issueType)
			if len(toFix) == 0 {
				fmt.Printf("No issues of type '%s' found.\n", doctorFixType)
				return nil
			}
		case doctorFixItem != "":
			filter.ItemID = doctorFixItem
			for _, issue := range issues {
				if issue.ItemID == doctorFixItem {
					toFix = append(toFix, issue)
				}
			}
			if len(toFix) == 0 {
				fmt.Printf("No issues found for item '%s'.\n", doctorFixItem)
				return nil
			}
		case doctorFixAll:
			toFix = issues
		default:
			fmt.Println("Please specify --type, --item, or --all to indicate which issues to fix.")
			return nil
		}

		fmt.Printf("\nFound %d issue(s) that can be fixed:\n", len(toFix))
		for _, issue := range toFix {
			fmt.Printf("  - %s: %s\n", issue.ItemID, issue.Message)
			if issue.SuggestedFix != "" {
				fmt.Printf("    Suggested fix: %s\n", issue.SuggestedFix)
			}
		}

		if doctorFixDryRun {
			fmt.Println("\nDry run - no changes made.")
			return nil
		}
		if !confirm("\nDo you want to fix these issues?") {
			fmt.Println("Aborted. No changes made.")
			return nil
		}

		fixed := d.FixIssues(filter)
		if len(fixed) == 0 {
			fmt.Println("\nNo issues were fixed. Some issues may require manual intervention.")
			return nil
		}

		if err := saveItems(ws, g); err != nil {
			exitStorage(err)
		}
		fmt.Printf("\nSuccessfully fixed %d issue(s):\n", len(fixed))
		for _, issue := range fixed {
			fmt.Printf("  - %s: %s\n", issue.ItemID, issue.Message)
		}
		return nil
	},
}

var doctorListTypesCmd = &cobra.Command{
	Use:   "list-types",
	Short: "List all issue types the doctor can detect",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available issue types:")
		for _, issueType := range doctor.IssueTypes() {
			fmt.Printf("  - %s\n", issueType)
		}
	},
}

func init() {
	doctorCmd.PersistentFlags().StringVarP(&doctorFile, "file", "f", "", "Giantt items file to use")
	doctorCmd.PersistentFlags().StringVarP(&doctorOccludeFile, "occlude-file", "a", "", "Giantt occluded items file to use")

	doctorFixCmd.Flags().StringVarP(&doctorFixType, "type", "t", "", "type of issue to fix (e.g., dangling_reference)")
	doctorFixCmd.Flags().StringVarP(&doctorFixItem, "item", "i", "", "fix issues for a specific item ID")
	doctorFixCmd.Flags().BoolVar(&doctorFixAll, "all", false, "fix all fixable issues")
	doctorFixCmd.Flags().BoolVar(&doctorFixDryRun, "dry-run", false, "show what would be fixed without making changes")

	doctorCmd.AddCommand(doctorCheckCmd)
	doctorCmd.AddCommand(doctorFixCmd)
	doctorCmd.AddCommand(doctorListTypesCmd)
}
