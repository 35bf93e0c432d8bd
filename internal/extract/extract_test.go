package extract_test

import (
	"errors"
	"testing"

	"github.com/teaguesterling/yamlrows/internal/extract"
	"github.com/teaguesterling/yamlrows/pkg/node"
)

func candidates(t *testing.T, opts extract.Options, input string) []extract.Candidate {
	t.Helper()
	out, err := extract.New(opts).Candidates("test.yaml", []byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func scalar(t *testing.T, c extract.Candidate, key, want string) {
	t.Helper()
	m, ok := c.Node.(node.Mapping)
	if !ok {
		t.Fatalf("candidate is %T, want mapping", c.Node)
	}
	v, ok := m.Get(key)
	if !ok {
		t.Fatalf("key %q missing", key)
	}
	s, ok := v.(node.Scalar)
	if !ok || s.Raw != want {
		t.Fatalf("key %q = %#v, want scalar %q", key, v, want)
	}
}

func TestMultiDocumentSplit(t *testing.T) {
	t.Parallel()

	out := candidates(t, extract.DefaultOptions(), "a: 1\n---\na: 2\n---\na: 3\n")
	if len(out) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(out))
	}
	for i, want := range []string{"1", "2", "3"} {
		scalar(t, out[i], "a", want)
		if out[i].Doc != i {
			t.Fatalf("candidate %d has doc ordinal %d", i, out[i].Doc)
		}
	}
}

func TestSingleDocumentMode(t *testing.T) {
	t.Parallel()

	opts := extract.DefaultOptions()
	opts.MultiDocument = false

	// Without splitting, the separator makes the input one bad parse.
	_, err := extract.New(opts).Candidates("test.yaml", []byte("a: 1\n---\na: 2\n"))
	if err == nil {
		t.Fatal("expected a parse error in single-document mode")
	}
}

func TestMalformedDocumentRecovery(t *testing.T) {
	t.Parallel()

	// Document 2 is malformed; with recovery the stream yields documents
	// 1 and 3, in order.
	input := "a: 1\n---\na: [unclosed\n---\na: 3\n"

	opts := extract.DefaultOptions()
	opts.IgnoreErrors = true
	out := candidates(t, opts, input)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	scalar(t, out[0], "a", "1")
	scalar(t, out[1], "a", "3")

	// Strict mode reports the failing document's position instead.
	opts.IgnoreErrors = false
	_, err := extract.New(opts).Candidates("test.yaml", []byte(input))
	var perr *extract.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Doc != 1 || perr.Line != 2 {
		t.Fatalf("ParseError position = doc %d line %d, want doc 1 line 2", perr.Doc, perr.Line)
	}
}

func TestRootSequenceExpansion(t *testing.T) {
	t.Parallel()

	input := "- a: 1\n- a: 2\n"

	out := candidates(t, extract.DefaultOptions(), input)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	scalar(t, out[1], "a", "2")

	opts := extract.DefaultOptions()
	opts.ExpandRootSequence = false
	out = candidates(t, opts, input)
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate without expansion, got %d", len(out))
	}
	if _, ok := out[0].Node.(node.Sequence); !ok {
		t.Fatalf("candidate is %T, want the whole sequence", out[0].Node)
	}
}

func TestRecordsPath(t *testing.T) {
	t.Parallel()

	input := "meta: x\ndata:\n  records:\n    - a: 1\n    - a: 2\n"

	opts := extract.DefaultOptions()
	opts.RecordsPath = "data.records"
	out := candidates(t, opts, input)
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	scalar(t, out[0], "a", "1")
}

func TestRecordsPathDisablesRootExpansion(t *testing.T) {
	t.Parallel()

	// Root is a sequence, but the records path governs; the sequence
	// root simply fails to resolve.
	opts := extract.DefaultOptions()
	opts.RecordsPath = "data"
	_, err := extract.New(opts).Candidates("test.yaml", []byte("- 1\n- 2\n"))
	var serr *extract.ShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
}

func TestRecordsPathErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"missing key", "other: 1\n"},
		{"not a sequence", "data:\n  records: scalar\n"},
		{"intermediate not a mapping", "data: 5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := extract.DefaultOptions()
			opts.RecordsPath = "data.records"
			_, err := extract.New(opts).Candidates("test.yaml", []byte(tt.input))
			var serr *extract.ShapeError
			if !errors.As(err, &serr) {
				t.Fatalf("expected ShapeError, got %v", err)
			}

			// Recoverable: the offending document is skipped.
			opts.IgnoreErrors = true
			out := candidates(t, opts, tt.input)
			if len(out) != 0 {
				t.Fatalf("expected no candidates, got %d", len(out))
			}
		})
	}
}

func TestLeadingSeparatorAndTerminator(t *testing.T) {
	t.Parallel()

	out := candidates(t, extract.DefaultOptions(), "---\na: 1\n...\n---\na: 2\n")
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	scalar(t, out[0], "a", "1")
	scalar(t, out[1], "a", "2")
}

func TestEmptyInputYieldsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"zero bytes", ""},
		{"only blank lines", "\n\n"},
		{"only separators", "---\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := candidates(t, extract.DefaultOptions(), tt.input)
			if len(out) != 0 {
				t.Fatalf("expected no candidates, got %d", len(out))
			}
		})
	}
}

func TestBlankDocumentsAreNotCandidates(t *testing.T) {
	t.Parallel()

	// A trailing separator, and blank bodies between markers, must not
	// manufacture null row candidates.
	out := candidates(t, extract.DefaultOptions(), "a: 1\n---\n")
	if len(out) != 1 {
		t.Fatalf("trailing separator: expected 1 candidate, got %d", len(out))
	}
	scalar(t, out[0], "a", "1")

	out = candidates(t, extract.DefaultOptions(), "a: 1\n---\n\n---\na: 2\n")
	if len(out) != 2 {
		t.Fatalf("blank middle document: expected 2 candidates, got %d", len(out))
	}
	scalar(t, out[1], "a", "2")

	opts := extract.DefaultOptions()
	opts.MultiDocument = false
	out = candidates(t, opts, "  \n\n")
	if len(out) != 0 {
		t.Fatalf("whitespace-only single document: expected no candidates, got %d", len(out))
	}

	// An explicit null body is still a real document.
	out = candidates(t, extract.DefaultOptions(), "a: 1\n---\n~\n")
	if len(out) != 2 {
		t.Fatalf("explicit null document: expected 2 candidates, got %d", len(out))
	}
	if _, ok := out[1].Node.(node.Null); !ok {
		t.Fatalf("second candidate is %T, want null", out[1].Node)
	}
}

func TestScanStopsWhenCallbackErrors(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	seen := 0
	err := extract.New(extract.DefaultOptions()).Scan("test.yaml", []byte("a: 1\n---\na: 2\n"), func(extract.Candidate) error {
		seen++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if seen != 1 {
		t.Fatalf("expected 1 candidate before stop, got %d", seen)
	}
}
