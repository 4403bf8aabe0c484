package recordcheck

import (
	"fmt"
	"log/slog"
	"strings"
)

// Kind selects the record variant a document is decoded as.
type Kind int

const (
	KindStrings Kind = iota + 1 // loose name/value strings
	KindColors                  // name plus hex color value
)

// Kinds lists the supported variants in CLI order.
var Kinds = []Kind{KindStrings, KindColors}

func (k Kind) String() string {
	switch k {
	case KindStrings:
		return "strings"
	case KindColors:
		return "colors"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ParseKind maps a selector such as "colors" to its Kind (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strings":
		return KindStrings, nil
	case "colors":
		return KindColors, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Outcome is the pass/fail summary of a whole document.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeValid
)

func (o Outcome) String() string {
	if o == OutcomeValid {
		return "valid"
	}
	return "invalid"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// SchemaMode decides whether schema violations affect the Outcome.
type SchemaMode int

const (
	SchemaAdvisory SchemaMode = iota // logged and reported, Outcome untouched
	SchemaGating                     // any violation makes the Outcome invalid
)

func (m SchemaMode) String() string {
	if m == SchemaGating {
		return "gating"
	}
	return "advisory"
}

func (m SchemaMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ParseSchemaMode accepts "advisory" or "gating"; empty means advisory.
func ParseSchemaMode(s string) (SchemaMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "advisory":
		return SchemaAdvisory, nil
	case "gating":
		return SchemaGating, nil
	}
	return SchemaAdvisory, fmt.Errorf("unknown schema mode %q", s)
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Error Severity = iota
	Warn
	Ignore
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Ignore:
		return "ignore"
	default:
		return "error"
	}
}

// ParseSeverity accepts "ignore", "warn" or "error"; empty means error.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return Error, nil
	case "warn":
		return Warn, nil
	case "ignore":
		return Ignore, nil
	}
	return Error, fmt.Errorf("unknown severity %q", s)
}

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Error (default), Warn or Ignore.
}

// ValidateOpt bundles decode and orchestration options. Functions taking
// ...ValidateOpt use the last one supplied.
type ValidateOpt struct {
	Strictness Strictness
	SchemaMode SchemaMode
	// MaxBytes caps the document size; 0 disables the cap.
	MaxBytes int64
	// MaxDepth caps JSON nesting; 0 disables the cap.
	MaxDepth int
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

func lastOpt(opts []ValidateOpt) ValidateOpt {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Logger == nil {
		opt.Logger = discardLogger
	}
	return opt
}
