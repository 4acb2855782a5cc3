// Package ingest turns the Cricsheet archive into a probability model, reusing cached per-match tallies.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cricket-mcs/internal/cricsheet"
	"cricket-mcs/internal/stats"
	"cricket-mcs/internal/tally"
	"cricket-mcs/internal/tallylog"

	"github.com/rs/zerolog/log"
)

// Model sources reported alongside a loaded model.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceBuilt   = "built"
)

// Options controls a model build.
type Options struct {
	MatchDir  string
	CacheDir  string // empty folds every match in memory without a tally log
	ModelPath string // empty skips writing the model file
	URL       string // empty skips the download step
	Rebuild   bool   // ignore cached tallies and re-parse every match
}

// Result reports what a build produced.
type Result struct {
	Model   stats.Model
	Matches int // matches represented in the model
	Added   int // matches parsed during this build
}

// BuildModel ensures match data is present, tallies matches not yet in the tally log,
// and derives the percentage model from the combined tally.
func BuildModel(ctx context.Context, opts Options) (Result, error) {
	if opts.URL != "" {
		if err := cricsheet.EnsureData(ctx, opts.MatchDir, opts.URL); err != nil {
			return Result{}, err
		}
	}

	var (
		global         tally.Tally
		matches, added int
		err            error
	)
	if opts.CacheDir == "" {
		global, matches, err = tally.Fold(cricsheet.NewSource(opts.MatchDir).Matches(ctx))
		added = matches
	} else {
		global, matches, added, err = foldWithLog(ctx, opts)
	}
	if err != nil {
		return Result{}, err
	}

	model, err := stats.CalcPercentages(global)
	if err != nil {
		return Result{}, fmt.Errorf("no deliveries tallied from %s: %w", opts.MatchDir, err)
	}

	if opts.ModelPath != "" {
		if err := stats.SaveModel(opts.ModelPath, model); err != nil {
			return Result{}, err
		}
	}

	log.Info().Int("matches", matches).Int("added", added).Msg("Probability model built")
	return Result{Model: model, Matches: matches, Added: added}, nil
}

// foldWithLog tallies only the matches missing from the tally log, then folds the whole log.
func foldWithLog(ctx context.Context, opts Options) (tally.Tally, int, int, error) {
	store := tallylog.NewStore()
	if !opts.Rebuild {
		if err := store.Load(opts.CacheDir); err != nil {
			return nil, 0, 0, err
		}
	}

	src := cricsheet.NewSource(opts.MatchDir).Skip(store.Has)
	added, err := store.Ingest(src.Matches(ctx))
	if err != nil {
		return nil, 0, 0, err
	}

	if added > 0 || opts.Rebuild {
		if err := store.Save(opts.CacheDir); err != nil {
			return nil, 0, 0, err
		}
	}
	return store.Global(), store.Count(), added, nil
}

// LoadModel returns the model saved at path, or the built-in model when no file exists.
func LoadModel(path string) (stats.Model, string, error) {
	if path != "" {
		m, err := stats.LoadModel(path)
		switch {
		case err == nil:
			return m, SourceFile, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, "", err
		}
	}
	return stats.DefaultModel(), SourceDefault, nil
}

