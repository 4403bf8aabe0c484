package recordcheck

import (
	"context"
	"log/slog"
)

// ValidateFields applies policy to each record in order and stops at the
// first failing record. Both fields of that record are checked and every
// failure is logged; the returned violation is the name's when both fail.
// It returns how many records were evaluated and the violation, if any.
// Records after the failing one are never passed to the policy.
func ValidateFields[T Record](ctx context.Context, policy FieldPolicy, records []T, log *slog.Logger) (int, *FieldViolation) {
	if log == nil {
		log = discardLogger
	}
	for i, r := range records {
		name, value := r.Fields()
		var first *FieldViolation
		for _, v := range []*FieldViolation{policy.CheckName(name), policy.CheckValue(value)} {
			if v == nil {
				continue
			}
			v.Index = i
			log.LogAttrs(ctx, slog.LevelWarn, "field check failed",
				slog.String("kind", policy.Kind().String()),
				slog.Int("index", i),
				slog.String("path", v.Path()),
				slog.String("code", v.Code),
				slog.String("detail", v.Message),
			)
			if first == nil {
				first = v
			}
		}
		if first != nil {
			return i + 1, first
		}
	}
	log.LogAttrs(ctx, slog.LevelDebug, "field check passed",
		slog.String("kind", policy.Kind().String()),
		slog.Int("records", len(records)),
	)
	return len(records), nil
}
