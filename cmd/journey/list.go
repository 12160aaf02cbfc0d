// List command prints the capability inventory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered capabilities",
	Long: `List prints every capability registered with the agent runtime,
including declared arguments and validation rules.

Example:
  journey list`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	for _, c := range app.registry.Capabilities() {
		fmt.Printf("%s: %s\n", c.Name, c.Description)
		for _, arg := range c.Args {
			required := "optional"
			if arg.Required {
				required = "required"
			}
			fmt.Printf("  %s (%s, %s) %s\n", arg.Name, arg.Type, required, arg.Description)
			if arg.Rule != "" {
				fmt.Printf("    rule: %s\n", arg.Rule)
			}
		}
	}
	return nil
}
