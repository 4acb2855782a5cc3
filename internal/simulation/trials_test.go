package simulation

import (
	"context"
	"errors"
	"testing"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/stats"
)

func TestRunTrials_Deterministic(t *testing.T) {
	run := func() Summary {
		e := NewEngine(stats.DefaultModel())
		e.SetSeed(2024)
		s, err := e.RunTrials(context.Background(), DefaultBalls, 500, 4)
		if err != nil {
			t.Fatalf("RunTrials failed: %v", err)
		}
		return s
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("Summaries differ for the same seed:\n%+v\n%+v", a, b)
	}
	if a.Trials != 500 || a.FirstWins+a.SecondWins+a.Ties != 500 {
		t.Errorf("Win counts do not add up: %+v", a)
	}
	if a.Seed != 2024 || a.Workers != 4 || a.Balls != DefaultBalls {
		t.Errorf("Run parameters not recorded: %+v", a)
	}
	if a.Chases > a.SecondWins {
		t.Errorf("More early chases (%d) than second innings wins (%d)", a.Chases, a.SecondWins)
	}
}

func TestRunTrials_CertainOutcomes(t *testing.T) {
	model := stats.Model{
		cricket.FirstInnings:  certain(1),
		cricket.SecondInnings: certain(4),
	}
	e := NewEngine(model)

	s, err := e.RunTrials(context.Background(), 12, 10, 3)
	if err != nil {
		t.Fatalf("RunTrials failed: %v", err)
	}
	// 12 to beat with fours: passed on the 4th ball at 16.
	if s.SecondWins != 10 || s.Chases != 10 || s.MedianRuns1 != 12 || s.MedianRuns2 != 16 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.SecondWinShare != 1 {
		t.Errorf("Expected win share 1, got %v", s.SecondWinShare)
	}
}

func TestRunTrials_WorkersClamped(t *testing.T) {
	e := NewEngine(stats.DefaultModel())
	s, err := e.RunTrials(context.Background(), DefaultBalls, 2, 16)
	if err != nil {
		t.Fatalf("RunTrials failed: %v", err)
	}
	if s.Workers != 2 {
		t.Errorf("Expected workers clamped to 2, got %d", s.Workers)
	}

	s, err = e.RunTrials(context.Background(), DefaultBalls, 3, 0)
	if err != nil {
		t.Fatalf("RunTrials failed: %v", err)
	}
	if s.Workers != 1 {
		t.Errorf("Expected at least 1 worker, got %d", s.Workers)
	}
}

func TestRunTrials_Invalid(t *testing.T) {
	e := NewEngine(stats.DefaultModel())
	if _, err := e.RunTrials(context.Background(), DefaultBalls, 0, 1); !errors.Is(err, cricket.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for zero trials, got %v", err)
	}

	bad := NewEngine(stats.Model{})
	if _, err := bad.RunTrials(context.Background(), DefaultBalls, 10, 1); !errors.Is(err, cricket.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty model, got %v", err)
	}
}

func TestRunTrials_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(stats.DefaultModel())
	if _, err := e.RunTrials(ctx, DefaultBalls, 100, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
