package cricsheet

import (
	"context"
	"iter"
	"path/filepath"

	"cricket-mcs/internal/cricket"

	"github.com/rs/zerolog/log"
)

// Source yields the matches stored in a directory of Cricsheet YAML files.
type Source struct {
	dir  string
	skip func(id string) bool
}

// NewSource creates a source over dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Skip excludes matches for which fn returns true. They are never read from disk.
func (s *Source) Skip(fn func(id string) bool) *Source {
	s.skip = fn
	return s
}

// Matches lazily parses match files in ascending id order. Each call restarts from the first file.
// Iteration ends after the first error, which is yielded with a zero Match.
func (s *Source) Matches(ctx context.Context) iter.Seq2[cricket.Match, error] {
	return func(yield func(cricket.Match, error) bool) {
		files, err := ListMatchFiles(s.dir)
		if err != nil {
			yield(cricket.Match{}, err)
			return
		}

		skipped := 0
		for _, name := range files {
			if err := ctx.Err(); err != nil {
				yield(cricket.Match{}, err)
				return
			}

			id, err := MatchID(name)
			if err != nil {
				yield(cricket.Match{}, err)
				return
			}
			if s.skip != nil && s.skip(id) {
				skipped++
				continue
			}

			m, err := ParseFile(filepath.Join(s.dir, name))
			if err != nil {
				yield(cricket.Match{}, err)
				return
			}
			if !yield(m, nil) {
				return
			}
		}

		log.Debug().Str("dir", s.dir).Int("files", len(files)).Int("skipped", skipped).Msg("Match directory exhausted")
	}
}
