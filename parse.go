package recordcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/recordcheck/i18n"
	eng "github.com/reoring/recordcheck/internal/engine"
)

// Decode turns raw into the ordered records of one kind. Any structural
// problem (malformed JSON, a top level that is not an array, an element that
// is not an object, a missing, null or non-string name/value) is reported as
// a *DecodeError carrying every problem found; no records are returned with
// it. Properties other than name and value are ignored here.
func Decode[T Record](ctx context.Context, kind Kind, raw []byte, build func(name, value string) T, opts ...ValidateOpt) ([]T, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 && int64(len(raw)) > opt.MaxBytes {
		return nil, decodeIssue(kind, truncatedIssue(opt.MaxBytes))
	}

	if !json.Valid(raw) {
		var v any
		err := json.Unmarshal(raw, &v)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, decodeIssue(kind, unmarshalIssue(NewRef(), err))
	}
	if trimmed := bytes.TrimSpace(raw); trimmed[0] != '[' {
		return nil, decodeIssue(kind, NewRef().Issue(CodeInvalidType, expected("a JSON array of objects")))
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, decodeIssue(kind, unmarshalIssue(NewRef(), err))
	}

	if err := enforce(ctx, kind, raw, opt); err != nil {
		return nil, err
	}

	var iss Issues
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		at := NewRef().Index(i)
		trimmed := bytes.TrimSpace(elem)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			iss = AppendIssues(iss, at.Issue(CodeInvalidType, expected("an object with name and value")))
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			iss = AppendIssues(iss, unmarshalIssue(at, err))
			continue
		}
		name, nameIss := stringField(at, obj, "name")
		value, valueIss := stringField(at, obj, "value")
		if nameIss != nil || valueIss != nil {
			for _, it := range []*Issue{nameIss, valueIss} {
				if it != nil {
					iss = AppendIssues(iss, *it)
				}
			}
			continue
		}
		out = append(out, build(name, value))
	}
	if len(iss) > 0 {
		return nil, &DecodeError{Kind: kind, Issues: iss}
	}
	opt.Logger.LogAttrs(ctx, slog.LevelDebug, "decoded records",
		slog.String("kind", kind.String()),
		slog.Int("records", len(out)),
	)
	return out, nil
}

// enforce applies the duplicate-key and depth policies. It is skipped when
// both are disabled.
func enforce(ctx context.Context, kind Kind, raw []byte, opt ValidateOpt) error {
	if opt.Strictness.OnDuplicateKey == Ignore && opt.MaxDepth == 0 {
		return nil
	}
	warnings, err := eng.Scan(raw, eng.ScanOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
	})
	for _, w := range warnings {
		opt.Logger.LogAttrs(ctx, slog.LevelWarn, "duplicate key",
			slog.String("kind", kind.String()),
			slog.String("path", w.Path),
		)
	}
	if err == nil {
		return nil
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		msg := ie.Message
		if ie.Code == CodeDuplicateKey {
			msg = i18n.T(CodeDuplicateKey, map[string]string{"key": lastToken(ie.Path)})
		}
		return decodeIssue(kind, Issue{Path: ie.Path, Code: ie.Code, Message: msg, Offset: -1})
	}
	return decodeIssue(kind, IssueAt(NewRef(), CodeParseError, invalidJSON(err.Error()), nil))
}

func stringField(at PathRef, obj map[string]json.RawMessage, field string) (string, *Issue) {
	p := at.Field(field)
	raw, ok := obj[field]
	if !ok {
		it := p.Issue(CodeRequired, "missing property "+strconv.Quote(field))
		return "", &it
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		it := p.Issue(CodeInvalidType, expected("a string"), "got", string(trimmed))
		return "", &it
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		it := unmarshalIssue(p, err)
		return "", &it
	}
	return s, nil
}

func unmarshalIssue(at PathRef, err error) Issue {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		it := at.Issue(CodeParseError, invalidJSON(se.Error()))
		it.Offset = se.Offset
		return it
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return at.Issue(CodeInvalidType, te.Error())
	}
	return at.Issue(CodeParseError, invalidJSON(err.Error()))
}

func expected(what string) string {
	return i18n.T(CodeInvalidType, map[string]string{"expected": what})
}

func invalidJSON(detail string) string {
	return i18n.T(CodeParseError, map[string]string{"detail": detail})
}

func truncatedIssue(max int64) Issue {
	return IssueAt(NewRef(), CodeTruncated,
		i18n.T(CodeTruncated, map[string]string{"max": strconv.FormatInt(max, 10)}),
		map[string]any{"max": max})
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func lastToken(pointer string) string {
	return At(pointer).(pathRef).last()
}

// ReadInput reads a whole document from r. When maxBytes is positive a larger
// input fails with a *DecodeError coded "truncated" instead of being read to
// the end.
func ReadInput(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, &DecodeError{Issues: AppendIssues(nil, truncatedIssue(maxBytes))}
	}
	return data, nil
}
