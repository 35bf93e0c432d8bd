// Package extract turns raw multi-document input into row-candidate nodes:
// it splits document streams on textual boundaries, parses each document in
// isolation, and applies root-sequence expansion or records-path extraction.
package extract

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/teaguesterling/yamlrows/pkg/node"
)

// Options configures extraction. The zero value is not useful; use
// DefaultOptions as the base.
type Options struct {
	// MultiDocument splits the input on document separators. When false
	// the whole input is parsed as a single document.
	MultiDocument bool

	// ExpandRootSequence turns each element of a root-level sequence into
	// its own row candidate. Implicitly disabled when RecordsPath is set.
	ExpandRootSequence bool

	// RecordsPath is a dot-separated key path from the document root to a
	// nested sequence whose elements become the row candidates.
	RecordsPath string

	// IgnoreErrors skips malformed documents and unresolvable records
	// paths instead of aborting the read.
	IgnoreErrors bool

	Logger zerolog.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MultiDocument:      true,
		ExpandRootSequence: true,
		Logger:             zerolog.Nop(),
	}
}

// ParseError reports a malformed document within a stream. Position is the
// document ordinal and starting line within its source.
type ParseError struct {
	Source string
	Doc    int
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: document %d (line %d): %v", e.Source, e.Doc, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports a records path that did not resolve to a sequence.
type ShapeError struct {
	Source string
	Doc    int
	Path   string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: document %d: records path %q: %s", e.Source, e.Doc, e.Path, e.Reason)
}

// Candidate is one row-candidate node together with its origin.
type Candidate struct {
	Source string
	Doc    int
	Node   node.Node
}

// Extractor produces row candidates from raw document streams.
type Extractor struct {
	opts Options
}

// New returns an extractor with the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Scan parses one source's bytes and invokes fn for every row candidate, in
// document order. A malformed document or unresolvable records path is
// skipped under IgnoreErrors and fatal otherwise; a skipped document never
// affects its siblings, since recovery re-synchronizes on the textual
// document boundary. A non-nil error from fn stops the scan.
func (e *Extractor) Scan(source string, data []byte, fn func(Candidate) error) error {
	docs := splitDocuments(data, e.opts.MultiDocument)

	for i, doc := range docs {
		root, err := node.Decode(doc.body)
		if err != nil {
			perr := &ParseError{Source: source, Doc: i, Line: doc.line, Err: err}
			if !e.opts.IgnoreErrors {
				return perr
			}
			e.opts.Logger.Warn().Str("source", source).Int("doc", i).Err(err).
				Msg("skipping malformed document")
			continue
		}

		candidates, err := e.expand(source, i, root)
		if err != nil {
			if !e.opts.IgnoreErrors {
				return err
			}
			e.opts.Logger.Warn().Str("source", source).Int("doc", i).Err(err).
				Msg("skipping document without records")
			continue
		}
		for _, c := range candidates {
			if err := fn(Candidate{Source: source, Doc: i, Node: c}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Candidates is a convenience wrapper collecting every candidate of one
// source.
func (e *Extractor) Candidates(source string, data []byte) ([]Candidate, error) {
	var out []Candidate
	err := e.Scan(source, data, func(c Candidate) error {
		out = append(out, c)
		return nil
	})
	return out, err
}

func (e *Extractor) expand(source string, doc int, root node.Node) ([]node.Node, error) {
	if e.opts.RecordsPath != "" {
		return e.records(source, doc, root)
	}
	if seq, ok := root.(node.Sequence); ok && e.opts.ExpandRootSequence {
		return seq.Items, nil
	}
	return []node.Node{root}, nil
}

// records navigates the dot-separated records path through successive
// mapping lookups and returns the target sequence's elements.
func (e *Extractor) records(source string, doc int, root node.Node) ([]node.Node, error) {
	cur := root
	for _, key := range strings.Split(e.opts.RecordsPath, ".") {
		m, ok := cur.(node.Mapping)
		if !ok {
			return nil, &ShapeError{Source: source, Doc: doc, Path: e.opts.RecordsPath,
				Reason: fmt.Sprintf("segment %q: not a mapping", key)}
		}
		next, ok := m.Get(key)
		if !ok {
			return nil, &ShapeError{Source: source, Doc: doc, Path: e.opts.RecordsPath,
				Reason: fmt.Sprintf("key %q not found", key)}
		}
		cur = next
	}
	seq, ok := cur.(node.Sequence)
	if !ok {
		return nil, &ShapeError{Source: source, Doc: doc, Path: e.opts.RecordsPath,
			Reason: "target is not a sequence"}
	}
	return seq.Items, nil
}
