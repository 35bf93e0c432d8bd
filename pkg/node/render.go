package node

import (
	"strings"
)

// CompactText renders a Node as single-line flow-style YAML. Used when a
// non-scalar query result has to come back as text.
func CompactText(n Node) string {
	var b strings.Builder
	writeCompact(&b, n)
	return b.String()
}

func writeCompact(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil, Null:
		b.WriteString("null")
	case Scalar:
		b.WriteString(quoteIfNeeded(v.Raw))
	case Sequence:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeCompact(b, item)
		}
		b.WriteByte(']')
	case Mapping:
		b.WriteByte('{')
		for i, e := range v.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quoteIfNeeded(e.Key))
			b.WriteString(": ")
			writeCompact(b, e.Value)
		}
		b.WriteByte('}')
	}
}

// quoteIfNeeded single-quotes text that flow syntax would otherwise
// misinterpret.
func quoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, ",:[]{}#&*!|>'\"%@`\n") &&
		s[0] != ' ' && s[len(s)-1] != ' ' && s[0] != '-' && s[0] != '?' {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
