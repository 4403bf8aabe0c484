package recordcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/reoring/recordcheck/i18n"
)

// Field length limits, in Unicode code points.
const (
	NameMaxLen         = 100
	StringsValueMaxLen = 100
	ColorValueMinLen   = 2
	ColorValueMaxLen   = 7
)

// ColorPattern accepts "#RRGGBB" and the "#RGB" short form.
const ColorPattern = `^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`

var colorRE = regexp.MustCompile(ColorPattern)

// Bounds is a length interval. The lower end is exclusive unless
// MinInclusive is set; the upper end is always inclusive.
type Bounds struct {
	Min          int
	Max          int
	MinInclusive bool
}

// Contains reports whether n lies within the bounds.
func (b Bounds) Contains(n int) bool {
	if b.MinInclusive {
		return n >= b.Min && n <= b.Max
	}
	return n > b.Min && n <= b.Max
}

func (b Bounds) String() string {
	open := "("
	if b.MinInclusive {
		open = "["
	}
	return fmt.Sprintf("%s%d, %d]", open, b.Min, b.Max)
}

// FieldPolicy is the per-variant rule set consulted by the field validator.
// A nil result means the field passed.
type FieldPolicy interface {
	Kind() Kind
	CheckName(name string) *FieldViolation
	CheckValue(value string) *FieldViolation
}

// StringsPolicy accepts any non-empty name and value up to 100 characters.
type StringsPolicy struct{}

var (
	nameBounds         = Bounds{Min: 0, Max: NameMaxLen}
	stringsValueBounds = Bounds{Min: 0, Max: StringsValueMaxLen}
	colorValueBounds   = Bounds{Min: ColorValueMinLen, Max: ColorValueMaxLen, MinInclusive: true}
)

func (StringsPolicy) Kind() Kind { return KindStrings }

func (StringsPolicy) CheckName(name string) *FieldViolation {
	return checkLength("name", name, nameBounds)
}

func (StringsPolicy) CheckValue(value string) *FieldViolation {
	return checkLength("value", value, stringsValueBounds)
}

// ColorsPolicy requires the value to be a hex color.
type ColorsPolicy struct{}

func (ColorsPolicy) Kind() Kind { return KindColors }

func (ColorsPolicy) CheckName(name string) *FieldViolation {
	return checkLength("name", name, nameBounds)
}

func (ColorsPolicy) CheckValue(value string) *FieldViolation {
	if v := checkLength("value", value, colorValueBounds); v != nil {
		return v
	}
	if !colorRE.MatchString(value) {
		return &FieldViolation{
			Field: "value",
			Code:  CodePattern,
			Message: i18n.T(CodePattern, map[string]string{
				"field": "value", "value": value, "pattern": ColorPattern,
			}),
			Params: map[string]any{"value": value, "pattern": ColorPattern},
		}
	}
	return nil
}

// PolicyFor returns the built-in policy of a kind.
func PolicyFor(k Kind) (FieldPolicy, error) {
	switch k {
	case KindStrings:
		return StringsPolicy{}, nil
	case KindColors:
		return ColorsPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

func checkLength(field, s string, b Bounds) *FieldViolation {
	if s == "" {
		return &FieldViolation{
			Field:   field,
			Code:    CodeRequired,
			Message: i18n.T(CodeRequired, map[string]string{"field": field}),
			Params:  map[string]any{"got": 0},
		}
	}
	n := utf8.RuneCountInString(s)
	if b.Contains(n) {
		return nil
	}
	code := CodeTooLong
	if n <= b.Min {
		code = CodeTooShort
	}
	return &FieldViolation{
		Field: field,
		Code:  code,
		Message: i18n.T(code, map[string]string{
			"field": field, "got": strconv.Itoa(n), "range": b.String(),
		}),
		Params: map[string]any{"got": n, "min": b.Min, "max": b.Max},
	}
}
