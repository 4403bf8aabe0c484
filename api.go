package recordcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Result summarizes one validation run.
type Result struct {
	Kind    Kind    `json:"kind"`
	Outcome Outcome `json:"outcome"`
	// Records is the number of decoded records; Checked how many of them the
	// field validator evaluated before stopping.
	Records int `json:"records"`
	Checked int `json:"checked"`
	// Violation is the first field failure, nil when every record passed.
	Violation *FieldViolation `json:"violation,omitempty"`
	// SchemaIssues lists every schema violation regardless of SchemaMode.
	SchemaIssues Issues     `json:"schemaIssues,omitempty"`
	SchemaMode   SchemaMode `json:"schemaMode"`
	// Digest is the sha256 of the canonical (JCS) encoding of the records.
	Digest string `json:"digest"`
}

// Valid reports whether the Outcome is OutcomeValid.
func (r Result) Valid() bool { return r.Outcome == OutcomeValid }

// Err returns the reason for an invalid Outcome, or nil. Schema issues are
// the reason only when they gated the Outcome.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	if r.SchemaMode == SchemaGating && len(r.SchemaIssues) > 0 {
		return &SchemaError{Kind: r.Kind, Issues: r.SchemaIssues}
	}
	if r.Violation != nil {
		return r.Violation
	}
	return ErrInvalid
}

// Run drives one variant through decode, schema check and field check.
//
// A decode failure returns (Result{}, *DecodeError) and nothing else runs.
// An invalid document is not an error: err is nil and Result.Outcome is
// OutcomeInvalid.
func Run[T Record](ctx context.Context, v Variant[T], raw []byte, opts ...ValidateOpt) (Result, error) {
	opt := lastOpt(opts)
	log := opt.Logger.With(slog.String("kind", v.Kind().String()))

	records, err := v.Parse(ctx, raw, opt)
	if err != nil {
		log.LogAttrs(ctx, slog.LevelError, "decode failed", slog.Any("error", err))
		return Result{}, err
	}
	res := Result{Kind: v.Kind(), Records: len(records), SchemaMode: opt.SchemaMode}

	if err := v.SchemaCheck(ctx, raw, opt); err != nil {
		var se *SchemaError
		if !errors.As(err, &se) {
			return Result{}, fmt.Errorf("schema check: %w", err)
		}
		res.SchemaIssues = se.Issues
	}

	res.Checked = len(records)
	if err := v.FieldCheck(ctx, records, opt); err != nil {
		var fv *FieldViolation
		if !errors.As(err, &fv) {
			return Result{}, fmt.Errorf("field check: %w", err)
		}
		res.Violation = fv
		res.Checked = fv.Index + 1
	}

	if res.Digest, err = Digest(records); err != nil {
		return Result{}, err
	}

	gated := opt.SchemaMode == SchemaGating && len(res.SchemaIssues) > 0
	if res.Violation == nil && !gated {
		res.Outcome = OutcomeValid
	}
	log.LogAttrs(ctx, slog.LevelInfo, "validation finished",
		slog.String("outcome", res.Outcome.String()),
		slog.Int("records", res.Records),
		slog.Int("checked", res.Checked),
		slog.Int("schema_issues", len(res.SchemaIssues)),
		slog.String("schema_mode", res.SchemaMode.String()),
	)
	return res, nil
}

// Validate runs the built-in variant selected by kind.
func Validate(ctx context.Context, kind Kind, raw []byte, opts ...ValidateOpt) (Result, error) {
	switch kind {
	case KindStrings:
		return Run(ctx, StringsVariant(), raw, opts...)
	case KindColors:
		return Run(ctx, ColorsVariant(), raw, opts...)
	}
	return Result{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// Is reports whether raw decodes as kind and yields a valid Outcome.
func Is(ctx context.Context, kind Kind, raw []byte, opts ...ValidateOpt) bool {
	res, err := Validate(ctx, kind, raw, opts...)
	return err == nil && res.Valid()
}
