package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/teaguesterling/yamlrows/pkg/node"
	"github.com/teaguesterling/yamlrows/pkg/pathquery"
)

// QueryConfig describes one path evaluation against a single document.
type QueryConfig struct {
	Input string // file path, or "-" for stdin
	Path  string
	Op    string // extract, exists, type, keys or length
}

// RunQuery parses the input's first document and evaluates the path against
// it, writing the result as text. A path that does not resolve produces no
// output and a nonzero result through ErrNotFound.
func RunQuery(w io.Writer, cfg QueryConfig) error {
	data, err := readInput(cfg.Input)
	if err != nil {
		return err
	}
	root, err := node.Decode(data)
	if err != nil {
		return err
	}

	switch strings.ToLower(cfg.Op) {
	case "", "extract":
		text, ok, err := pathquery.ExtractText(root, cfg.Path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		_, err = fmt.Fprintln(w, text)
		return err
	case "exists":
		ok, err := pathquery.Exists(root, cfg.Path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ok)
		return err
	case "type":
		shape, ok, err := pathquery.TypeOf(root, cfg.Path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		_, err = fmt.Fprintln(w, shape)
		return err
	case "keys":
		keys, ok, err := pathquery.Keys(root, cfg.Path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		for _, k := range keys {
			if _, err := fmt.Fprintln(w, k); err != nil {
				return err
			}
		}
		return nil
	case "length":
		n, ok, err := pathquery.ArrayLength(root, cfg.Path)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		_, err = fmt.Fprintln(w, n)
		return err
	default:
		return fmt.Errorf("unknown query operation %q", cfg.Op)
	}
}

// ErrNotFound reports a path that did not resolve (or resolved to a shape
// the operation does not apply to). It is a normal outcome, not a syntax
// error.
var ErrNotFound = fmt.Errorf("path did not resolve")

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
