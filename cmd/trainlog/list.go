// ABOUTME: CLI command for listing trainings with cursor pagination.
// ABOUTME: Prints the next cursor when more pages remain.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listCursor string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List trainings",
	Long: `List trainings, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  DURATION  TYPE  (DESCRIPTION)

  The ID is an 8-character prefix; use the full id from 'trainlog show'
  with edit/delete commands.

PAGINATION:

  Results are paginated. When more pages remain, the next cursor is
  printed; pass it back with --cursor to continue.

EXAMPLES:

  trainlog list                  # First 20 trainings
  trainlog list -n 50            # Bigger page
  trainlog list --cursor <id>    # Continue from a previous page`,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := trainings.ListPaginated(listLimit, listCursor)
		if err != nil {
			return fmt.Errorf("list trainings: %w", err)
		}

		if len(page.Items) == 0 && !page.HasMore {
			fmt.Println("No trainings found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, rec := range page.Items {
			desc := ""
			if rec.Description != "" {
				desc = faint.Sprintf(" (%s)", truncate(rec.Description, 40))
			}
			fmt.Printf("%s %s %4d min  %s%s\n",
				faint.Sprint(rec.ID[:8]),
				rec.Date,
				rec.Duration,
				padRight(string(rec.Type), 10),
				desc)
		}

		if page.HasMore {
			fmt.Println()
			fmt.Printf("More results: trainlog list --cursor %s\n", page.NextCursor)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results per page")
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "continue from a previous page's cursor")
	rootCmd.AddCommand(listCmd)
}
