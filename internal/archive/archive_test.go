package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/simulation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

func TestStore_ResultRoundTrip(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	first := simulation.Result{Runs1: 150, Wickets1: 7, Runs2: 151, Wickets2: 4, Balls1: 120, Balls2: 110, Chased: true}
	second := simulation.Result{Runs1: 140, Wickets1: 9, Runs2: 120, Wickets2: 10, Balls1: 120, Balls2: 120}

	id1, err := s.SaveResult(ctx, first, RunMeta{Balls: 120, Seed: 7, Policy: simulation.WicketOnWalk})
	require.NoError(t, err)
	_, err = uuid.Parse(id1)
	require.NoError(t, err)

	id2, err := s.SaveResult(ctx, second, RunMeta{Balls: 120, Seed: 8, Policy: simulation.WicketOnDraw})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := s.RecentResults(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, id2, got[0].ID, "newest first")
	assert.Equal(t, second, got[0].Result)
	assert.Equal(t, cricket.FirstInnings, got[0].Winner)
	assert.Equal(t, "draw", got[0].Policy)

	assert.Equal(t, first, got[1].Result)
	assert.Equal(t, cricket.SecondInnings, got[1].Winner)
	assert.Equal(t, int64(7), got[1].Seed)
	assert.Equal(t, time.Date(2026, 1, 1, 12, 0, 1, 0, time.UTC), got[1].CreatedAt)

	limited, err := s.RecentResults(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_SummaryRoundTrip(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	sum := simulation.Summary{
		Trials: 100, Balls: 120, Seed: 3, Workers: 4,
		FirstWins: 55, SecondWins: 40, Ties: 5, Chases: 38,
		SecondWinShare: 0.4,
		MedianRuns1:    148.5, MedianRuns2: 139,
		P85Runs1: 170, P85Runs2: 165,
	}
	_, err := s.SaveSummary(ctx, sum, simulation.WicketOnWalk)
	require.NoError(t, err)

	got, err := s.RecentSummaries(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sum, got[0].Summary)
	assert.Equal(t, "walk", got[0].Policy)
}

func TestStore_InvalidLimit(t *testing.T) {
	s := openMemory(t)
	_, err := s.RecentResults(context.Background(), 0)
	assert.ErrorIs(t, err, cricket.ErrInvalidInput)
	_, err = s.RecentSummaries(context.Background(), -1)
	assert.ErrorIs(t, err, cricket.ErrInvalidInput)
}

func TestStore_CancelledContext(t *testing.T) {
	s := openMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.SaveResult(ctx, simulation.Result{}, RunMeta{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simulations.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveResult(context.Background(), simulation.Result{Runs1: 1}, RunMeta{Balls: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.RecentResults(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Result.Runs1)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.ErrorIs(t, err, cricket.ErrInvalidInput)
}
