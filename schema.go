package recordcheck

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	kjs "github.com/kaptinlin/jsonschema"

	"github.com/reoring/recordcheck/i18n"
	js "github.com/reoring/recordcheck/jsonschema"
)

// MaxTextLength bounds the serialized document, in characters.
const MaxTextLength = 1000

// StringRule constrains one string property of a record.
type StringRule struct {
	MinLength int
	MaxLength int
	Pattern   string
}

func (r StringRule) schema() *js.Schema {
	return &js.Schema{Type: "string", MinLength: js.Int(r.MinLength), MaxLength: js.Int(r.MaxLength), Pattern: r.Pattern}
}

// SchemaSpec is the structural description of one variant. It is a plain
// value; the built-in specs are returned by StringsSchema and ColorsSchema.
type SchemaSpec struct {
	Kind          Kind
	MaxTextLength int
	Name          StringRule
	Value         StringRule
}

// StringsSchema returns the Strings spec: name and value both 1..100 characters.
func StringsSchema() SchemaSpec {
	return SchemaSpec{
		Kind:          KindStrings,
		MaxTextLength: MaxTextLength,
		Name:          StringRule{MinLength: 1, MaxLength: NameMaxLen},
		Value:         StringRule{MinLength: 1, MaxLength: StringsValueMaxLen},
	}
}

// ColorsSchema returns the Colors spec. The value must be exactly seven
// characters and a hex color, so the "#RGB" short form never passes here.
func ColorsSchema() SchemaSpec {
	return SchemaSpec{
		Kind:          KindColors,
		MaxTextLength: MaxTextLength,
		Name:          StringRule{MinLength: 1, MaxLength: NameMaxLen},
		Value:         StringRule{MinLength: ColorValueMaxLen, MaxLength: ColorValueMaxLen, Pattern: ColorPattern},
	}
}

// SchemaFor returns the built-in spec of a kind.
func SchemaFor(k Kind) (SchemaSpec, error) {
	switch k {
	case KindStrings:
		return StringsSchema(), nil
	case KindColors:
		return ColorsSchema(), nil
	}
	return SchemaSpec{}, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// Envelope describes the serialized document as a JSON string instance.
func (s SchemaSpec) Envelope() *js.Schema {
	return &js.Schema{
		Schema:    js.Draft,
		Title:     s.Kind.String() + " document",
		Type:      "string",
		MaxLength: js.Int(s.MaxTextLength),
	}
}

// Records describes the parsed document: an array of objects carrying
// exactly name and value.
func (s SchemaSpec) Records() *js.Schema {
	return &js.Schema{
		Schema: js.Draft,
		Title:  s.Kind.String() + " records",
		Type:   "array",
		Items: &js.Schema{
			Type: "object",
			Properties: map[string]*js.Schema{
				"name":  s.Name.schema(),
				"value": s.Value.schema(),
			},
			Required:      []string{"name", "value"},
			PropertyNames: &js.Schema{Pattern: "^(name|value)$"},
		},
	}
}

// CompiledSchema is a SchemaSpec compiled for validation. It is read-only
// and safe for concurrent use.
type CompiledSchema struct {
	spec     SchemaSpec
	envelope *kjs.Schema
	records  *kjs.Schema
}

// Compile builds both layers of spec.
func Compile(spec SchemaSpec) (*CompiledSchema, error) {
	envelope, err := compileDoc(spec.Envelope())
	if err != nil {
		return nil, fmt.Errorf("compile %s envelope: %w", spec.Kind, err)
	}
	records, err := compileDoc(spec.Records())
	if err != nil {
		return nil, fmt.Errorf("compile %s records: %w", spec.Kind, err)
	}
	return &CompiledSchema{spec: spec, envelope: envelope, records: records}, nil
}

func compileDoc(doc *js.Schema) (*kjs.Schema, error) {
	data, err := doc.Marshal()
	if err != nil {
		return nil, err
	}
	compiler := kjs.NewCompiler()
	compiler.AssertFormat = true
	return compiler.Compile(data)
}

// Spec returns the description the schema was compiled from.
func (c *CompiledSchema) Spec() SchemaSpec { return c.spec }

// Check validates raw against both layers and returns every violation.
// Text that is not JSON yields one parse_error for the records layer.
func (c *CompiledSchema) Check(ctx context.Context, raw []byte, log *slog.Logger) Issues {
	if log == nil {
		log = discardLogger
	}
	var iss Issues
	collectResult(c.envelope.Validate(string(raw)), "", "envelope", &iss)
	if json.Valid(raw) {
		collectResult(c.records.ValidateJSON(raw), "", "records", &iss)
	} else {
		msg := i18n.T(CodeParseError, map[string]string{"detail": "records layer skipped"})
		iss = AppendIssues(iss, IssueAt(NewRef(), CodeParseError, msg, map[string]any{"layer": "records"}))
	}
	for _, it := range iss {
		log.LogAttrs(ctx, slog.LevelError, "schema violation",
			slog.String("kind", c.spec.Kind.String()),
			slog.String("path", it.Path),
			slog.String("keyword", it.Keyword),
			slog.String("detail", it.Message),
		)
	}
	if len(iss) == 0 {
		log.LogAttrs(ctx, slog.LevelDebug, "schema check passed", slog.String("kind", c.spec.Kind.String()))
	}
	return iss
}

// applicators are keywords whose failure only restates a failure of a
// subschema; the nested detail carries the precise location.
var applicators = map[string]bool{
	"items": true, "prefixItems": true, "contains": true,
	"properties": true, "patternProperties": true, "propertyNames": true,
	"allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"if": true, "then": true, "else": true, "dependentSchemas": true,
}

// collectResult flattens an evaluation tree into issues, keyword order
// sorted within each node so output is stable. Instance locations of nested
// details are relative to their parent, so base accumulates the pointer.
func collectResult(res *kjs.EvaluationResult, base, layer string, dst *Issues) {
	if res == nil {
		return
	}
	loc := base + strings.TrimPrefix(res.InstanceLocation, "#")
	nested := false
	for _, d := range res.Details {
		if d != nil && !d.Valid {
			nested = true
			break
		}
	}
	keys := make([]string, 0, len(res.Errors))
	for k := range res.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := res.Errors[k]
		if e == nil || (nested && applicators[k]) {
			continue
		}
		*dst = AppendIssues(*dst, Issue{
			Path:    instancePointer(loc),
			Code:    CodeSchema,
			Message: e.Error(),
			Offset:  -1,
			Keyword: k,
			Params:  map[string]any{"layer": layer},
		})
	}
	for _, d := range res.Details {
		collectResult(d, loc, layer, dst)
	}
}

func instancePointer(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}

var compiled = struct {
	once [3]sync.Once
	s    [3]*CompiledSchema
	err  [3]error
}{}

// CompiledFor returns the process-wide compiled schema of a built-in kind.
// Each kind is compiled at most once.
func CompiledFor(k Kind) (*CompiledSchema, error) {
	spec, err := SchemaFor(k)
	if err != nil {
		return nil, err
	}
	i := int(k)
	compiled.once[i].Do(func() {
		compiled.s[i], compiled.err[i] = Compile(spec)
	})
	return compiled.s[i], compiled.err[i]
}
