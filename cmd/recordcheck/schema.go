package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/recordcheck"
	js "github.com/reoring/recordcheck/jsonschema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <strings|colors>",
		Short:     "Print the JSON Schema documents of a record kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := recordcheck.ParseKind(args[0])
			if err != nil {
				return err
			}
			spec, err := recordcheck.SchemaFor(kind)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(struct {
				Envelope *js.Schema `json:"envelope"`
				Records  *js.Schema `json:"records"`
			}{spec.Envelope(), spec.Records()}, "", "  ")
			if err != nil {
				return fmt.Errorf("render schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func kindNames() []string {
	names := make([]string, 0, len(recordcheck.Kinds))
	for _, k := range recordcheck.Kinds {
		names = append(names, k.String())
	}
	return names
}
