package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })

	data := map[string]string{"field": "name", "got": "0", "range": "(0, 100]"}
	assert.Equal(t, "name length 0 is outside (0, 100]", T("too_short", data))

	SetLanguage("ja")
	assert.Equal(t, "name の長さ 0 が範囲 (0, 100] の外です", T("too_short", data))
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

func TestTranslator_UnknownLanguageIsEnglish(t *testing.T) {
	t.Cleanup(func() { SetLanguage("en") })
	SetLanguage("fr")
	assert.Equal(t, "value is empty", T("required", map[string]string{"field": "value"}))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator(t *testing.T) {
	t.Cleanup(func() { SetTranslator(nil) })
	SetTranslator(upper{})
	assert.Equal(t, "X-pattern", T("pattern", nil))

	SetTranslator(nil)
	assert.Equal(t, "invalid JSON: eof", T("parse_error", map[string]string{"detail": "eof"}))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("ja"))
	assert.False(t, Supported("fr"))
}
