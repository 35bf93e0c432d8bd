package materialize

import (
	"strconv"
	"strings"

	"github.com/teaguesterling/yamlrows/pkg/infer"
)

// Render formats a value as stable text for the row sinks. The second result
// is false when the value is null.
func Render(v Value) (string, bool) {
	if v.IsNull {
		return "", false
	}
	var b strings.Builder
	writeText(&b, v)
	return b.String(), true
}

func writeText(b *strings.Builder, v Value) {
	if v.IsNull {
		b.WriteString("null")
		return
	}
	switch v.Type.ID {
	case infer.TypeBoolean:
		b.WriteString(strconv.FormatBool(v.Bool))
	case infer.TypeInteger:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case infer.TypeDouble:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case infer.TypeDate:
		b.WriteString(v.Time.Format("2006-01-02"))
	case infer.TypeTime:
		b.WriteString(v.Time.Format("15:04:05.999999999"))
	case infer.TypeTimestamp:
		b.WriteString(v.Time.Format("2006-01-02 15:04:05.999999999"))
	case infer.TypeString:
		b.WriteString(v.Str)
	case infer.TypeList:
		b.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				b.WriteString(", ")
			}
			writeText(b, item)
		}
		b.WriteByte(']')
	case infer.TypeStruct:
		b.WriteByte('{')
		for i, f := range v.Type.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			writeText(b, v.Struct[i])
		}
		b.WriteByte('}')
	}
}

// AppendJSON appends the JSON encoding of a value. Struct fields keep schema
// order, which encoding/json maps would not preserve.
func AppendJSON(dst []byte, v Value) []byte {
	if v.IsNull {
		return append(dst, "null"...)
	}
	switch v.Type.ID {
	case infer.TypeBoolean:
		return strconv.AppendBool(dst, v.Bool)
	case infer.TypeInteger:
		return strconv.AppendInt(dst, v.Int, 10)
	case infer.TypeDouble:
		// JSON has no Inf/NaN literals; encode those as strings.
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if strings.ContainsAny(s, "IN") {
			return strconv.AppendQuote(dst, s)
		}
		return append(dst, s...)
	case infer.TypeDate, infer.TypeTime, infer.TypeTimestamp, infer.TypeString:
		s, _ := Render(v)
		return strconv.AppendQuote(dst, s)
	case infer.TypeList:
		dst = append(dst, '[')
		for i, item := range v.List {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, item)
		}
		return append(dst, ']')
	case infer.TypeStruct:
		dst = append(dst, '{')
		for i, f := range v.Type.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = strconv.AppendQuote(dst, f.Name)
			dst = append(dst, ':')
			dst = AppendJSON(dst, v.Struct[i])
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}
