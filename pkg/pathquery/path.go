// Package pathquery parses and evaluates literal path expressions against a
// single document node: a leading $ root marker followed by .key and [index]
// segments. Failed resolution is a normal "not found" result; a malformed
// path is an error.
package pathquery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath marks a syntactically invalid path expression. It signals a
// caller bug, unlike "not found", which is a normal empty result.
var ErrInvalidPath = errors.New("invalid path expression")

type segment struct {
	key     string
	index   int
	isIndex bool
}

// Path is a parsed path expression.
type Path struct {
	raw      string
	segments []segment
}

// String returns the original path text.
func (p Path) String() string { return p.raw }

// Parse validates and compiles a path expression. The expression must start
// with $; each following segment is .key, ['key'] or [index].
func Parse(expr string) (Path, error) {
	if !strings.HasPrefix(expr, "$") {
		return Path{}, fmt.Errorf("%w: %q must start with $", ErrInvalidPath, expr)
	}
	p := Path{raw: expr}
	rest := expr[1:]
	for rest != "" {
		switch rest[0] {
		case '.':
			key, tail, err := parseBareKey(rest[1:])
			if err != nil {
				return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidPath, expr, err)
			}
			p.segments = append(p.segments, segment{key: key})
			rest = tail
		case '[':
			seg, tail, err := parseBracket(rest[1:])
			if err != nil {
				return Path{}, fmt.Errorf("%w: %q: %v", ErrInvalidPath, expr, err)
			}
			p.segments = append(p.segments, seg)
			rest = tail
		default:
			return Path{}, fmt.Errorf("%w: %q: unexpected %q", ErrInvalidPath, expr, rest[0])
		}
	}
	return p, nil
}

func parseBareKey(s string) (key, rest string, err error) {
	end := len(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == '[' {
			end = i
			break
		}
	}
	if end == 0 {
		return "", "", errors.New("empty key segment")
	}
	return s[:end], s[end:], nil
}

func parseBracket(s string) (segment, string, error) {
	if s == "" {
		return segment{}, "", errors.New("unterminated bracket segment")
	}
	if s[0] == '\'' || s[0] == '"' {
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return segment{}, "", errors.New("unterminated quoted key")
		}
		key := s[1 : 1+end]
		rest := s[1+end+1:]
		if !strings.HasPrefix(rest, "]") {
			return segment{}, "", errors.New("missing ] after quoted key")
		}
		return segment{key: key}, rest[1:], nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return segment{}, "", errors.New("unterminated bracket segment")
	}
	idx, err := strconv.Atoi(s[:end])
	if err != nil || idx < 0 {
		return segment{}, "", fmt.Errorf("index %q is not a non-negative integer", s[:end])
	}
	return segment{index: idx, isIndex: true}, s[end+1:], nil
}
