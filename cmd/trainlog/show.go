// ABOUTME: CLI command for showing one training in full.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a training",
	Long: `Show one training record as JSON, by its full id.

EXAMPLES:

  trainlog show 6f1c2d3e-....`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := trainings.GetByID(args[0])
		if err != nil {
			return fmt.Errorf("get training: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("training not found: %s", args[0])
		}

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
