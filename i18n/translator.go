package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data fills {placeholders} in the message (for example "field", "got",
// "range").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":  "expected {expected}",
		"required":      "{field} is empty",
		"duplicate_key": "key '{key}' duplicated",
		"too_short":     "{field} length {got} is outside {range}",
		"too_long":      "{field} length {got} is outside {range}",
		"pattern":       "{field} \"{value}\" does not match {pattern}",
		"parse_error":   "invalid JSON: {detail}",
		"truncated":     "input exceeds {max} bytes",
	},
	"ja": {
		"invalid_type":  "{expected} が必要です",
		"required":      "{field} が空です",
		"duplicate_key": "キー '{key}' が重複しています",
		"too_short":     "{field} の長さ {got} が範囲 {range} の外です",
		"too_long":      "{field} の長さ {got} が範囲 {range} の外です",
		"pattern":       "{field} \"{value}\" がパターン {pattern} に一致しません",
		"parse_error":   "JSON が不正です: {detail}",
		"truncated":     "入力が {max} バイトを超えています",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return fill(msg, data)
}

// fill substitutes {key} placeholders; keys are applied in sorted order so
// output is deterministic.
func fill(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
