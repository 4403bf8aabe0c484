package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in Scan.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// ScanOptions controls the structural checks applied by Scan.
type ScanOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// Scan walks the JSON token stream of data once. Duplicate object keys are
// reported as warnings (DupWarn) or returned as a fatal IssueError (DupError);
// exceeding MaxDepth is always fatal. The go-json tokenizer does not check
// grammar, so callers must have validated data with Unmarshal first.
func Scan(data []byte, opt ScanOptions) ([]SimpleIssue, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		issues []SimpleIssue
		stack  []frame
	)
	// valuePath resolves the pointer of the value that starts at the current token.
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		return joinJSONPointer(top.path, top.pendingKey)
	}
	// valueDone flips the parent object back to expecting a key.
	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
				top.pendingKey = ""
			}
		}
	}
	push := func(f frame) error {
		stack = append(stack, f)
		if opt.MaxDepth > 0 && len(stack) > opt.MaxDepth {
			return IssueError{SimpleIssue{Code: "parse_error", Path: normalizeIssuePath(f.path), Message: "max depth exceeded"}}
		}
		return nil
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return issues, err
		}

		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				if err := push(frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: valuePath()}); err != nil {
					return issues, err
				}
			case '[':
				if err := push(frame{kind: kindArray, path: valuePath()}); err != nil {
					return issues, err
				}
			case '}', ']':
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					if _, dup := top.keys[v]; dup && opt.OnDuplicate != DupIgnore {
						si := SimpleIssue{Code: "duplicate_key", Path: joinJSONPointer(top.path, v), Message: "key '" + v + "' duplicated"}
						if opt.OnDuplicate == DupError {
							return issues, IssueError{si}
						}
						issues = append(issues, si)
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.pendingKey = v
					continue
				}
			}
			valuePath()
			valueDone()
		default:
			valuePath()
			valueDone()
		}
	}
	return issues, nil
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
