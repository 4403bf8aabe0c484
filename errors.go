package recordcheck

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeDuplicateKey = "duplicate_key"
	CodeTooShort     = "too_short"
	CodeTooLong      = "too_long"
	CodePattern      = "pattern"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
	CodeSchema       = "schema"
)

// Sentinels for errors.Is checks across the three failure families.
var (
	ErrDecode      = errors.New("recordcheck: decode failed")
	ErrSchema      = errors.New("recordcheck: schema violation")
	ErrInvalid     = errors.New("recordcheck: field violation")
	ErrUnknownKind = errors.New("recordcheck: unknown record kind")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // JSON Pointer (for example: /2/value).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	// Offset is the byte offset in the input (-1 when unknown).
	Offset int64 `json:"offset"`
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any `json:"params,omitempty"`
	// Keyword records the JSON Schema keyword that produced this issue, if any.
	Keyword string `json:"keyword,omitempty"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// DecodeError reports input that could not be turned into records. It is
// fatal: no Outcome is produced.
type DecodeError struct {
	Kind   Kind
	Issues Issues
}

func (e *DecodeError) Error() string {
	if e.Kind == 0 {
		return "decode: " + e.Issues.Error()
	}
	return fmt.Sprintf("decode %s: %s", e.Kind, e.Issues.Error())
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Issues} }

// SchemaError carries every schema violation found in a document.
type SchemaError struct {
	Kind   Kind
	Issues Issues
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %d violation(s): %s", e.Kind, len(e.Issues), e.Issues.Error())
}

func (e *SchemaError) Unwrap() []error { return []error{ErrSchema, e.Issues} }

// FieldViolation describes the first record that failed its field policy.
type FieldViolation struct {
	Index   int            `json:"index"` // position of the record in the document
	Field   string         `json:"field"` // "name" or "value"
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Path returns the JSON Pointer of the offending field.
func (v *FieldViolation) Path() string {
	return NewRef().Index(v.Index).Field(v.Field).Pointer()
}

// Issue converts the violation to the shared Issue model.
func (v *FieldViolation) Issue() Issue {
	return Issue{Path: v.Path(), Code: v.Code, Message: v.Message, Offset: -1, Params: v.Params}
}

func (v *FieldViolation) Error() string {
	return fmt.Sprintf("record %d: %s", v.Index, v.Message)
}

func (v *FieldViolation) Unwrap() error { return ErrInvalid }

// MarshalJSON adds the JSON Pointer of the field as "path".
func (v *FieldViolation) MarshalJSON() ([]byte, error) {
	type plain FieldViolation
	return json.Marshal(struct {
		*plain
		Path string `json:"path"`
	}{(*plain)(v), v.Path()})
}

func decodeIssue(kind Kind, iss ...Issue) *DecodeError {
	return &DecodeError{Kind: kind, Issues: AppendIssues(nil, iss...)}
}
