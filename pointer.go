package recordcheck

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef is an immutable JSON Pointer (RFC 6901) under construction.
// Field and Index return extended copies, so a PathRef can be shared.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	// Issue creates an Issue located at this pointer; kv are param pairs.
	Issue(code, msg string, kv ...any) Issue
}

// NewRef returns the document root, rendered as "/".
func NewRef() PathRef { return pathRef{} }

// At parses a pointer such as "/0/name" back into a PathRef, decoding
// "~1" and "~0" escapes.
func At(pointer string) PathRef {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return pathRef{}
	}
	raw := strings.Split(pointer, "/")
	tokens := make([]string, len(raw))
	for i, t := range raw {
		tokens[i] = pointerUnescaper.Replace(t)
	}
	return pathRef{tokens: tokens}
}

// IssueAt creates an Issue at p with an explicit params map.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Offset: -1, Params: params}
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// pathRef holds unescaped reference tokens.
type pathRef struct {
	tokens []string
}

func (p pathRef) with(token string) pathRef {
	next := make([]string, len(p.tokens), len(p.tokens)+1)
	copy(next, p.tokens)
	return pathRef{tokens: append(next, token)}
}

func (p pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return p.with(name)
}

func (p pathRef) Index(i int) PathRef { return p.with(strconv.Itoa(i)) }

func (p pathRef) Pointer() string {
	if len(p.tokens) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteByte('/')
		pointerEscaper.WriteString(&b, t)
	}
	return b.String()
}

// last returns the final token, or "" at the root.
func (p pathRef) last() string {
	if len(p.tokens) == 0 {
		return ""
	}
	return p.tokens[len(p.tokens)-1]
}

func (p pathRef) Issue(code, msg string, kv ...any) Issue {
	params := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		params[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return IssueAt(p, code, msg, params)
}
