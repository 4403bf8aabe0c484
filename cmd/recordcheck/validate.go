package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/recordcheck"
	"github.com/reoring/recordcheck/i18n"
	"github.com/reoring/recordcheck/internal/config"
	"github.com/reoring/recordcheck/internal/logging"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <strings|colors> [FILE|-]",
		Short: "Validate a JSON document of records",
		Long: `Reads FILE (standard input when FILE is "-" or omitted), validates it as the
given record kind and prints a summary.

Exit codes: 0 valid, 1 invalid, 2 configuration or decode error.`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kindNames(),
		RunE:      runValidate,
	}
	cmd.Flags().Bool("schema-gating", false, "Treat schema violations as failures")
	cmd.Flags().String("duplicate-keys", "", "Duplicate key handling: ignore, warn or error (default error)")
	cmd.Flags().Int64("max-bytes", 0, "Reject documents larger than this many bytes (0 disables)")
	cmd.Flags().String("lang", "", "Message language: en or ja (default en)")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}

// settings merges the config file with flags; flags that were set win.
func settings(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("schema-gating") {
		gating, _ := flags.GetBool("schema-gating")
		cfg.SchemaMode = recordcheck.SchemaAdvisory.String()
		if gating {
			cfg.SchemaMode = recordcheck.SchemaGating.String()
		}
	}
	if flags.Changed("duplicate-keys") {
		cfg.DuplicateKeys, _ = flags.GetString("duplicate-keys")
	}
	if flags.Changed("max-bytes") {
		cfg.MaxBytes, _ = flags.GetInt64("max-bytes")
	}
	if flags.Changed("lang") {
		cfg.Language, _ = flags.GetString("lang")
	}
	return cfg, cfg.Validate()
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	base := slog.LevelWarn
	if cfg.LogLevel != "" {
		// settings already rejected unknown levels
		base, _ = logging.ParseLevel(cfg.LogLevel)
	}
	count, _ := cmd.Flags().GetCount("debug")
	return logging.NewWriter(cmd.ErrOrStderr(), logging.VerbosityLevel(base, count))
}

func readDocument(cmd *cobra.Command, args []string, maxBytes int64) ([]byte, error) {
	if len(args) < 2 || args[1] == "-" {
		return recordcheck.ReadInput(cmd.InOrStdin(), maxBytes)
	}
	f, err := os.Open(args[1])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, config.Errorf("open input", "file %s does not exist", args[1])
		}
		return nil, &config.Error{Op: "open input", Err: err}
	}
	defer f.Close()
	return recordcheck.ReadInput(f, maxBytes)
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if format != "text" && format != "json" {
		return config.Errorf("output", "unknown format %q", format)
	}
	kind, err := recordcheck.ParseKind(args[0])
	if err != nil {
		return &config.Error{Op: "kind", Err: err}
	}
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	opt, err := cfg.Options()
	if err != nil {
		return err
	}
	if cfg.Language != "" {
		i18n.SetLanguage(cfg.Language)
		defer i18n.SetLanguage("en")
	}
	opt.Logger = newLogger(cmd, cfg)

	raw, err := readDocument(cmd, args, opt.MaxBytes)
	if err == nil {
		var res recordcheck.Result
		res, err = recordcheck.Validate(context.Background(), kind, raw, opt)
		if err == nil {
			return writeResult(cmd.OutOrStdout(), format, res)
		}
	}
	if format == "json" {
		if werr := writeJSON(cmd.OutOrStdout(), validateOutput{OK: false, Error: err.Error(), ErrorCode: errorCode(err), Issues: issuesOf(err)}); werr != nil {
			return werr
		}
		return &reportedError{err: err}
	}
	return err
}

type validateOutput struct {
	OK        bool                `json:"ok"`
	Result    *recordcheck.Result `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
	Issues    recordcheck.Issues  `json:"issues,omitempty"`
}

func issuesOf(err error) recordcheck.Issues {
	iss, _ := recordcheck.AsIssues(err)
	return iss
}

func writeResult(w io.Writer, format string, res recordcheck.Result) error {
	var outcomeErr error
	if !res.Valid() {
		outcomeErr = errInvalid
	}
	if format == "json" {
		out := validateOutput{OK: res.Valid(), Result: &res}
		if outcomeErr != nil {
			out.Error = res.Err().Error()
			out.ErrorCode = errorCode(outcomeErr)
		}
		if err := writeJSON(w, out); err != nil {
			return err
		}
		return outcomeErr
	}

	fmt.Fprintf(w, "%s: %s, %d record(s), %d checked\n", res.Outcome, res.Kind, res.Records, res.Checked)
	if res.Violation != nil {
		fmt.Fprintf(w, "  field %s: %s (%s)\n", res.Violation.Path(), res.Violation.Message, res.Violation.Code)
	}
	for _, it := range res.SchemaIssues {
		fmt.Fprintf(w, "  schema %s: %s (%s, %s)\n", it.Path, it.Message, res.SchemaMode, it.Keyword)
	}
	fmt.Fprintf(w, "  digest %s\n", res.Digest)
	return outcomeErr
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
