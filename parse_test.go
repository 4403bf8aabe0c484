package recordcheck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeIssues(t *testing.T, err error) Issues {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDecode)
	iss, ok := AsIssues(err)
	require.True(t, ok, "error does not carry issues: %v", err)
	return iss
}

func TestDecode_PreservesOrder(t *testing.T) {
	raw := []byte(`[{"name":"b","value":"2"},{"value":"1","name":"a"},{"name":"c","value":"3","note":"ignored"}]`)
	got, err := Decode(context.Background(), KindStrings, raw, NewStrings)
	require.NoError(t, err)

	want := []Strings{{"b", "2"}, {"a", "1"}, {"c", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	raw := []byte(`[{"name":"brand","value":"#FF00FF"},{"name":"bg","value":"#000"}]`)
	first, err := Decode(context.Background(), KindColors, raw, NewColors)
	require.NoError(t, err)
	second, err := Decode(context.Background(), KindColors, raw, NewColors)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestDecode_EmptyArray(t *testing.T) {
	got, err := Decode(context.Background(), KindStrings, []byte(" [ ] "), NewStrings)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		path string
		code string
	}{
		{name: "not json", raw: `not a json array`, path: "/", code: CodeParseError},
		{name: "top level object", raw: `{"name":"a","value":"b"}`, path: "/", code: CodeInvalidType},
		{name: "top level null", raw: `null`, path: "/", code: CodeInvalidType},
		{name: "element not object", raw: `["a"]`, path: "/0", code: CodeInvalidType},
		{name: "missing name", raw: `[{"value":"b"}]`, path: "/0/name", code: CodeRequired},
		{name: "null value", raw: `[{"name":"a","value":null}]`, path: "/0/value", code: CodeInvalidType},
		{name: "numeric value", raw: `[{"name":"a","value":"b"},{"name":"c","value":7}]`, path: "/1/value", code: CodeInvalidType},
		{name: "duplicate key", raw: `[{"name":"a","name":"b","value":"c"}]`, path: "/0/name", code: CodeDuplicateKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(context.Background(), KindStrings, []byte(tc.raw), NewStrings)
			assert.Nil(t, got)
			iss := decodeIssues(t, err)
			require.NotEmpty(t, iss)
			assert.Equal(t, tc.path, iss[0].Path)
			assert.Equal(t, tc.code, iss[0].Code)
		})
	}
}

func TestDecode_CollectsEveryElementProblem(t *testing.T) {
	raw := []byte(`[{"name":1},{"name":"ok","value":"ok"},5]`)
	_, err := Decode(context.Background(), KindStrings, raw, NewStrings)
	iss := decodeIssues(t, err)

	var paths []string
	for _, it := range iss {
		paths = append(paths, it.Path)
	}
	assert.Equal(t, []string{"/0/name", "/0/value", "/2"}, paths)
}

func TestDecode_LocalizedMessages(t *testing.T) {
	_, err := Decode(context.Background(), KindStrings, []byte(`[1]`), NewStrings)
	iss := decodeIssues(t, err)
	assert.Equal(t, "expected an object with name and value", iss[0].Message)

	_, err = Decode(context.Background(), KindStrings, []byte(`[{"name":"a","value":true}]`), NewStrings)
	iss = decodeIssues(t, err)
	assert.Equal(t, "expected a string", iss[0].Message)
	assert.Equal(t, "true", iss[0].Params["got"])

	_, err = Decode(context.Background(), KindStrings, []byte(`[`), NewStrings)
	iss = decodeIssues(t, err)
	assert.True(t, strings.HasPrefix(iss[0].Message, "invalid JSON: "), iss[0].Message)
}

func TestDecode_SyntaxErrorOffset(t *testing.T) {
	_, err := Decode(context.Background(), KindStrings, []byte(`[{"name":"a",}]`), NewStrings)
	iss := decodeIssues(t, err)
	assert.Equal(t, CodeParseError, iss[0].Code)
	assert.GreaterOrEqual(t, iss[0].Offset, int64(0))
}

func TestDecode_DuplicateKeySeverity(t *testing.T) {
	raw := []byte(`[{"name":"a","value":"b","value":"c"}]`)

	got, err := Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{Strictness: Strictness{OnDuplicateKey: Warn}})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{Strictness: Strictness{OnDuplicateKey: Ignore}})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Decode(context.Background(), KindStrings, raw, NewStrings)
	iss := decodeIssues(t, err)
	assert.Equal(t, "/0/value", iss[0].Path)
	assert.Contains(t, iss[0].Message, "value")
}

func TestDecode_MaxDepth(t *testing.T) {
	raw := []byte(`[{"name":"a","value":"b"}]`)
	_, err := Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{MaxDepth: 1})
	iss := decodeIssues(t, err)
	assert.Equal(t, CodeParseError, iss[0].Code)

	_, err = Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{MaxDepth: 2})
	assert.NoError(t, err)
}

func TestDecode_MaxBytes(t *testing.T) {
	raw := []byte(`[{"name":"a","value":"b"}]`)
	_, err := Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{MaxBytes: 8})
	iss := decodeIssues(t, err)
	assert.Equal(t, CodeTruncated, iss[0].Code)
	assert.EqualValues(t, 8, iss[0].Params["max"])

	_, err = Decode(context.Background(), KindStrings, raw, NewStrings, ValidateOpt{MaxBytes: int64(len(raw))})
	assert.NoError(t, err)
}

func TestReadInput(t *testing.T) {
	data, err := ReadInput(strings.NewReader("[]"), 0)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = ReadInput(strings.NewReader("[]"), 2)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = ReadInput(strings.NewReader("[ ]"), 2)
	require.Error(t, err)
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeTruncated, de.Issues[0].Code)
	assert.True(t, strings.HasPrefix(de.Error(), "decode: "), de.Error())
}
