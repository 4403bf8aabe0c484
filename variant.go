package recordcheck

import (
	"context"
)

// Variant is the decode/validate contract implemented once per record kind.
//
//   - Parse decodes raw text into ordered records (fatal *DecodeError on
//     malformed input).
//   - SchemaCheck validates the raw text against the kind's structural schema
//     and returns a *SchemaError listing every violation.
//   - FieldCheck applies the kind's FieldPolicy to decoded records, stopping
//     at the first failure, which it returns as a *FieldViolation.
type Variant[T Record] interface {
	Kind() Kind
	Parse(ctx context.Context, raw []byte, opts ...ValidateOpt) ([]T, error)
	SchemaCheck(ctx context.Context, raw []byte, opts ...ValidateOpt) error
	FieldCheck(ctx context.Context, records []T, opts ...ValidateOpt) error
}

// StringsVariant returns the built-in Strings variant.
func StringsVariant() Variant[Strings] {
	return &variant[Strings]{kind: KindStrings, policy: StringsPolicy{}, build: NewStrings}
}

// ColorsVariant returns the built-in Colors variant.
func ColorsVariant() Variant[Colors] {
	return &variant[Colors]{kind: KindColors, policy: ColorsPolicy{}, build: NewColors}
}

// NewVariant assembles a variant from parts. A nil schema selects the
// built-in compiled schema of kind.
func NewVariant[T Record](kind Kind, policy FieldPolicy, schema *CompiledSchema, build func(name, value string) T) Variant[T] {
	return &variant[T]{kind: kind, policy: policy, schema: schema, build: build}
}

type variant[T Record] struct {
	kind   Kind
	policy FieldPolicy
	schema *CompiledSchema
	build  func(name, value string) T
}

func (v *variant[T]) Kind() Kind { return v.kind }

func (v *variant[T]) Parse(ctx context.Context, raw []byte, opts ...ValidateOpt) ([]T, error) {
	return Decode(ctx, v.kind, raw, v.build, opts...)
}

func (v *variant[T]) SchemaCheck(ctx context.Context, raw []byte, opts ...ValidateOpt) error {
	s := v.schema
	if s == nil {
		var err error
		if s, err = CompiledFor(v.kind); err != nil {
			return err
		}
	}
	opt := lastOpt(opts)
	if iss := s.Check(ctx, raw, opt.Logger); len(iss) > 0 {
		return &SchemaError{Kind: v.kind, Issues: iss}
	}
	return nil
}

func (v *variant[T]) FieldCheck(ctx context.Context, records []T, opts ...ValidateOpt) error {
	opt := lastOpt(opts)
	if _, fv := ValidateFields(ctx, v.policy, records, opt.Logger); fv != nil {
		return fv
	}
	return nil
}
