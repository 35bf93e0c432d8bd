package extract

import (
	"bytes"
)

type rawDoc struct {
	body []byte
	line int // 1-based starting line within the source
}

// splitDocuments cuts a byte stream into per-document chunks on textual
// boundaries, without any parse state: a line starting with "---" opens a
// new document (inline content after the marker belongs to it) and a "..."
// line closes the current one. Splitting on raw lines is what lets a
// malformed document be skipped without corrupting its siblings.
func splitDocuments(data []byte, multi bool) []rawDoc {
	if !multi {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return []rawDoc{{body: data, line: 1}}
	}

	var docs []rawDoc
	var cur []byte
	curLine := 1
	started := false
	closed := false

	// A document whose body is all whitespace (a trailing --- separator,
	// or blank lines between markers) is not a row candidate.
	flush := func() {
		if started && len(bytes.TrimSpace(cur)) > 0 {
			docs = append(docs, rawDoc{body: cur, line: curLine})
		}
		cur = nil
		started = false
		closed = false
	}

	lineNo := 0
	for _, line := range splitLines(data) {
		lineNo++
		trimmed := bytes.TrimRight(line, "\r\n")
		switch {
		case isMarker(trimmed, "---"):
			flush()
			curLine = lineNo
			started = true
			if rest := bytes.TrimLeft(trimmed[3:], " \t"); len(rest) > 0 {
				cur = append(cur, rest...)
				cur = append(cur, '\n')
			}
		case isMarker(trimmed, "..."):
			closed = true
		case closed:
			// Content after ... and before the next --- belongs to an
			// unmarked follow-up document.
			flush()
			curLine = lineNo
			started = true
			cur = append(cur, line...)
		default:
			if !started {
				curLine = lineNo
				started = true
			}
			cur = append(cur, line...)
		}
	}
	flush()
	return docs
}

// isMarker reports whether a trimmed line is the given document marker,
// either exactly or followed by whitespace.
func isMarker(line []byte, marker string) bool {
	if !bytes.HasPrefix(line, []byte(marker)) {
		return false
	}
	rest := line[len(marker):]
	return len(rest) == 0 || rest[0] == ' ' || rest[0] == '\t'
}

// splitLines splits on \n keeping the terminator with each line.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}
