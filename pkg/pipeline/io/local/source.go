package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/teaguesterling/yamlrows/pkg/pipeline/core"
)

// FileSource loads document payloads from local files and glob patterns.
type FileSource struct {
	patterns []string

	// IgnoreErrors skips unreadable files instead of failing the load.
	IgnoreErrors bool
	Logger       zerolog.Logger
}

// NewFileSource returns a source over the given paths or glob patterns.
func NewFileSource(patterns ...string) *FileSource {
	return &FileSource{patterns: patterns, Logger: zerolog.Nop()}
}

// Load expands the patterns and reads every matched file, in sorted path
// order per pattern. A pattern that matches nothing is an error; so is an
// unreadable file unless IgnoreErrors is set.
func (s *FileSource) Load(ctx context.Context) ([]core.Payload, error) {
	var payloads []core.Payload
	for _, pattern := range s.patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// A literal path that doesn't exist should say so.
			if _, statErr := os.Stat(pattern); statErr != nil {
				return nil, fmt.Errorf("no files match %q", pattern)
			}
			matches = []string{pattern}
		}
		sort.Strings(matches)

		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				if s.IgnoreErrors {
					s.Logger.Warn().Str("path", path).Err(err).Msg("skipping unreadable file")
					continue
				}
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			payloads = append(payloads, core.Payload{Name: path, Data: data})
		}
	}
	return payloads, nil
}
