package solver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/redclover/klondike/equity"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/testcommon"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestTrivialWin(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())
	res, err := s.Solve(context.Background(), testcommon.Won())
	is.NoErr(err)
	is.Equal(res.Status, StatusSolved)
	is.True(res.Solvable)
	is.Equal(res.MoveCount, 0)
}

func TestOneMoveFromWin(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())
	g := testcommon.OneMoveFromWin()
	res, err := s.Solve(context.Background(), g)
	is.NoErr(err)
	is.True(res.Solvable)
	is.Equal(res.MoveCount, 1)
	is.Equal(res.Moves[0].Type, move.MoveTypeTableauToFoundation)
	is.Equal(res.Moves[0].FromCol, 0)
	// The input state was not touched.
	is.True(!g.Won())
}

// Search soundness: a returned solution must replay from the original
// state to a win, staying valid at every step.
func TestSolutionReplays(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())
	g := testcommon.EightMovesFromWin()
	res, err := s.Solve(context.Background(), g)
	is.NoErr(err)
	is.True(res.Solvable)

	replay := g.Copy()
	for _, m := range res.Moves {
		is.NoErr(replay.ApplyMove(m))
		is.NoErr(replay.Validate())
	}
	is.True(replay.Won())
	is.Equal(res.MoveCount, 8) // foundation-first ordering finds the direct line
}

func TestDeadlockNotSolvable(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())
	start := time.Now()
	res, err := s.Solve(context.Background(), testcommon.Deadlock())
	is.NoErr(err)
	is.Equal(res.Status, StatusNotFound)
	is.True(!res.Solvable)
	is.True(time.Since(start) < 2*time.Second) // no moves to explore, returns at once
}

func TestCycleTerminates(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.TimeBudget = 5 * time.Second
	// The conservative preset does not skip the shuffles outright, so the
	// visited-path check is what has to stop them.
	cfg.Weights = equity.ConservativeWeights()
	s := New(cfg)
	start := time.Now()
	res, err := s.Solve(context.Background(), testcommon.KingShuffle())
	is.NoErr(err)
	is.True(!res.Solvable)
	// King shuffles repeat states after one or two moves; the search must
	// return long before the budget.
	is.True(time.Since(start) < cfg.TimeBudget)
}

func TestBoundedness(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.TimeBudget = 250 * time.Millisecond
	s := New(cfg)
	start := time.Now()
	res, err := s.Solve(context.Background(), game.Deal(1234, 1))
	is.NoErr(err)
	is.True(res != nil)
	is.True(time.Since(start) < cfg.TimeBudget+2*time.Second)
}

func TestCallerContextCancels(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.TimeBudget = time.Minute
	s := New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := s.Solve(ctx, game.Deal(555, 3))
	is.NoErr(err) // exhaustion is an outcome, not an error
	is.True(time.Since(start) < 10*time.Second)
}

func TestInvalidStateRejected(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())
	bad := testcommon.Won()
	bad.Stock = bad.Stock[:0]
	bad.Foundations[0] = bad.Foundations[0][:10]
	_, err := s.Solve(context.Background(), bad)
	is.True(err != nil)
	_, err = s.BestMove(bad)
	is.True(err != nil)
}

func TestBestMove(t *testing.T) {
	is := is.New(t)
	s := New(DefaultConfig())

	m, err := s.BestMove(testcommon.Deadlock())
	is.NoErr(err)
	is.True(m == nil)

	m, err = s.BestMove(testcommon.OneMoveFromWin())
	is.NoErr(err)
	is.True(m != nil)
	is.True(m.IsFoundationMove())
}

func TestFreshSolverPerCallIsIndependent(t *testing.T) {
	is := is.New(t)
	// Two sequential solves on one Solver must not leak visited state.
	s := New(DefaultConfig())
	for i := 0; i < 2; i++ {
		res, err := s.Solve(context.Background(), testcommon.OneMoveFromWin())
		is.NoErr(err)
		is.True(res.Solvable)
		is.Equal(res.MoveCount, 1)
	}
}
