package recordcheck_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/recordcheck"
	"github.com/reoring/recordcheck/internal/logging"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NotEmpty(t, data, "fixture %s is empty", name)
	return data
}

func TestValidate_Scenarios(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("x", 101)

	cases := []struct {
		name  string
		kind  recordcheck.Kind
		input string
		valid bool
		code  string
		field string
	}{
		{name: "colors full hex", kind: recordcheck.KindColors, input: `[{"name":"brand","value":"#FF00FF"}]`, valid: true},
		{name: "colors missing digit", kind: recordcheck.KindColors, input: `[{"name":"brand","value":"#FF00F"}]`, code: recordcheck.CodePattern, field: "value"},
		{name: "strings empty name", kind: recordcheck.KindStrings, input: `[{"name":"","value":"hello"}]`, code: recordcheck.CodeRequired, field: "name"},
		{name: "strings long value", kind: recordcheck.KindStrings, input: `[{"name":"brand","value":"` + long + `"}]`, code: recordcheck.CodeTooLong, field: "value"},
		{name: "strings empty document", kind: recordcheck.KindStrings, input: `[]`, valid: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := recordcheck.Validate(ctx, tc.kind, []byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.valid, res.Valid())
			if tc.valid {
				assert.Nil(t, res.Violation)
				assert.NoError(t, res.Err())
				return
			}
			require.NotNil(t, res.Violation)
			assert.Equal(t, tc.code, res.Violation.Code)
			assert.Equal(t, tc.field, res.Violation.Field)
			assert.ErrorIs(t, res.Err(), recordcheck.ErrInvalid)
		})
	}
}

func TestValidate_MalformedInputIsDecodeError(t *testing.T) {
	res, err := recordcheck.Validate(context.Background(), recordcheck.KindStrings, []byte("not a json array"))
	require.Error(t, err)
	assert.ErrorIs(t, err, recordcheck.ErrDecode)
	assert.Equal(t, recordcheck.Result{}, res)

	var de *recordcheck.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, recordcheck.CodeParseError, de.Issues[0].Code)
}

func TestValidate_Fixtures(t *testing.T) {
	ctx := context.Background()

	res, err := recordcheck.Validate(ctx, recordcheck.KindStrings, readFixture(t, "strings.json"))
	require.NoError(t, err)
	assert.True(t, res.Valid())
	assert.Equal(t, 3, res.Records)
	assert.Equal(t, 3, res.Checked)
	assert.Empty(t, res.SchemaIssues)

	res, err = recordcheck.Validate(ctx, recordcheck.KindStrings, readFixture(t, "strings_invalid.json"))
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Equal(t, 2, res.Checked, "records after the first failure are not evaluated")
	assert.Equal(t, "/1/name", res.Violation.Path())

	res, err = recordcheck.Validate(ctx, recordcheck.KindColors, readFixture(t, "colors.json"))
	require.NoError(t, err)
	assert.True(t, res.Valid())
	assert.Empty(t, res.SchemaIssues)

	res, err = recordcheck.Validate(ctx, recordcheck.KindColors, readFixture(t, "colors_invalid.json"))
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Equal(t, 1, res.Violation.Index)
	assert.Equal(t, 2, res.Checked)
}

func TestValidate_ShortColorSchemaModes(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`[{"name":"accent","value":"#fff"}]`)

	advisory, err := recordcheck.Validate(ctx, recordcheck.KindColors, doc)
	require.NoError(t, err)
	assert.True(t, advisory.Valid(), "short form passes the field policy")
	assert.NotEmpty(t, advisory.SchemaIssues, "schema requires exactly seven characters")
	assert.Equal(t, recordcheck.SchemaAdvisory, advisory.SchemaMode)

	gating, err := recordcheck.Validate(ctx, recordcheck.KindColors, doc, recordcheck.ValidateOpt{SchemaMode: recordcheck.SchemaGating})
	require.NoError(t, err)
	assert.False(t, gating.Valid())
	assert.Nil(t, gating.Violation)
	assert.ErrorIs(t, gating.Err(), recordcheck.ErrSchema)
	assert.Equal(t, advisory.SchemaIssues, gating.SchemaIssues)
}

func TestValidate_SchemaIssuesDoNotStopFieldCheck(t *testing.T) {
	doc := []byte(`[{"name":"a","value":"b","extra":true}]`)
	res, err := recordcheck.Validate(context.Background(), recordcheck.KindStrings, doc, recordcheck.ValidateOpt{SchemaMode: recordcheck.SchemaGating})
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.NotEmpty(t, res.SchemaIssues)
	assert.Equal(t, 1, res.Checked)
	assert.Nil(t, res.Violation)
}

func TestValidate_UnknownKind(t *testing.T) {
	_, err := recordcheck.Validate(context.Background(), recordcheck.Kind(42), []byte(`[]`))
	assert.ErrorIs(t, err, recordcheck.ErrUnknownKind)
}

func TestValidate_DigestIgnoresFormatting(t *testing.T) {
	ctx := context.Background()
	a, err := recordcheck.Validate(ctx, recordcheck.KindStrings, []byte(`[{"name":"a","value":"b"}]`))
	require.NoError(t, err)
	b, err := recordcheck.Validate(ctx, recordcheck.KindStrings, []byte("[\n  {\"value\": \"b\", \"name\": \"a\"}\n]"))
	require.NoError(t, err)
	assert.Len(t, a.Digest, 64)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestValidate_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	opt := recordcheck.ValidateOpt{Logger: logging.NewWriter(&buf, slog.LevelDebug)}
	_, err := recordcheck.Validate(context.Background(), recordcheck.KindColors, []byte(`[{"name":"brand","value":"#FF00F"}]`), opt)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "field check failed")
	assert.Contains(t, out, "path=/0/value")
	assert.Contains(t, out, "outcome=invalid")
}

func TestIs(t *testing.T) {
	ctx := context.Background()
	assert.True(t, recordcheck.Is(ctx, recordcheck.KindColors, []byte(`[{"name":"x","value":"#abcdef"}]`)))
	assert.False(t, recordcheck.Is(ctx, recordcheck.KindColors, []byte(`[{"name":"x","value":"abcdef"}]`)))
	assert.False(t, recordcheck.Is(ctx, recordcheck.KindColors, []byte(`{`)))
}

func TestRun_CustomVariant(t *testing.T) {
	spec := recordcheck.StringsSchema()
	spec.MaxTextLength = 10
	compiled, err := recordcheck.Compile(spec)
	require.NoError(t, err)

	v := recordcheck.NewVariant(recordcheck.KindStrings, recordcheck.StringsPolicy{}, compiled, recordcheck.NewStrings)
	res, err := recordcheck.Run(context.Background(), v, []byte(`[{"name":"a","value":"b"}]`))
	require.NoError(t, err)
	assert.True(t, res.Valid())
	require.NotEmpty(t, res.SchemaIssues, "text is longer than ten characters")
	assert.Equal(t, "envelope", res.SchemaIssues[0].Params["layer"])
}
