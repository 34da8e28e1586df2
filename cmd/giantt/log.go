// Log command appends an entry to the activity log.
package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	logFile        string
	logOccludeFile string
	logTags        string
)

var logCmd = &cobra.Command{
	Use:   "log <session> <message>",
	Short: "Create a log entry with session tag and message",
	Long: `Log appends a timestamped entry to the activity log. The session
argument groups related entries; pass "-" to generate a fresh session
ID. Additional tags can be attached with --tags.

Example:
  giantt log rim0 --tags planning,ideas "Initial brainstorming session"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, message := args[0], args[1]
		if session == "-" {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate session ID: %w", err)
			}
			session = id.String()
		}

		ws, err := resolveWorkspace("", "", logFile, logOccludeFile)
		if err != nil {
			return err
		}
		c, err := loadLogEntries(ws)
		if err != nil {
			exitStorage(err)
		}

		c.Create(session, message, splitCSV(logTags), false)

		if err := saveLogEntries(ws, c); err != nil {
			exitStorage(err)
		}
		fmt.Printf("Log entry created with session tag '%s'\n", session)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logFile, "file", "f", "", "logs file to use")
	logCmd.Flags().StringVarP(&logOccludeFile, "occlude-file", "a", "", "occluded logs file to use")
	logCmd.Flags().StringVar(&logTags, "tags", "", "additional comma-separated tags")
}
