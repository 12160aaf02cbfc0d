// Describe command prints the flattened field descriptors of a domain record.
package main

import (
	"fmt"

	"github.com/goliatone/go-journey"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <domain>",
	Short: "Describe the fields of a domain record",
	Long: `Describe derives the flattened field paths and types of a domain's
current record, as seen by query expressions and agent prompts.

Example:
  journey describe safe
  journey describe profile`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	record, err := currentRecord(cmd, args[0])
	if err != nil {
		return err
	}
	for _, field := range journey.DescribeFields(record) {
		fmt.Printf("%s\t%s\n", field.Path, field.Type)
	}
	return nil
}
