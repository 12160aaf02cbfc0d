// Query command evaluates a read-only expression against a domain record.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-journey"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <domain> <expression>",
	Short: "Evaluate an expression against a domain record",
	Long: `Query evaluates a read-only expression against the current record of
a domain (safe, profile, or mood). Record fields are bound by their JSON
names; registered helper functions like format_duration are available.

Example:
  journey query safe 'isLocked'
  journey query profile 'len(achievements)'
  journey query mood 'current == "good"'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	record, err := currentRecord(cmd, args[0])
	if err != nil {
		return err
	}

	snapshot := journey.NewSnapshot(record,
		journey.SnapshotWithFunctionRegistry(app.functions))
	response, err := snapshot.Evaluate(args[1])
	if err != nil {
		return err
	}

	output, err := json.Marshal(response.Value)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// currentRecord resolves a domain name to its current persisted record.
func currentRecord(cmd *cobra.Command, domain string) (any, error) {
	ctx := cmd.Context()
	switch domain {
	case "safe":
		return app.safeDomain.Current(ctx), nil
	case "profile":
		return app.profileDomain.Current(ctx), nil
	case "mood":
		return app.moodDomain.Current(ctx), nil
	default:
		return nil, fmt.Errorf("unknown domain %q (valid: safe, profile, mood)", domain)
	}
}
