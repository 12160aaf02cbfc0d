// Invoke command dispatches one capability by name.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeArgs string

var invokeCmd = &cobra.Command{
	Use:   "invoke <capability>",
	Short: "Invoke a capability by name",
	Long: `Invoke dispatches a capability through the registry exactly as the
agent runtime would, including argument validation.

Example:
  journey invoke checkSafeLock
  journey invoke lockSafe --args '{"key": "my secret"}'
  journey invoke addAchievement --args '{"title": "Ran 5k"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringVar(&invokeArgs, "args", "", "capability arguments as a JSON object")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	arguments := map[string]any{}
	if invokeArgs != "" {
		if err := json.Unmarshal([]byte(invokeArgs), &arguments); err != nil {
			return fmt.Errorf("parse --args: %w", err)
		}
	}

	result, err := app.registry.Invoke(cmd.Context(), args[0], arguments)
	if err != nil {
		return err
	}

	if result.Text != "" {
		fmt.Println(result.Text)
	}
	if result.Data != nil {
		output, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(output))
	}
	return nil
}
