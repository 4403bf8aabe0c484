package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recordcheck",
		Short: "recordcheck validates JSON documents of name/value records",
		Long: `recordcheck decodes a JSON array of {"name", "value"} records as one of the
built-in kinds (strings, colors), checks it against the kind's JSON Schema and
field rules, and reports whether the document is valid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().CountP("debug", "d", "Increase log verbosity (repeat for more)")
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")

	rootCmd.AddCommand(newValidateCmd(), newSchemaCmd(), newVersionCmd())
	return rootCmd
}

// run executes the CLI and maps the outcome to a process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := exitCodeForError(err)
	if err != nil && !isReported(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}
