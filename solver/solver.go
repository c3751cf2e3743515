// Package solver is the bounded backtracking search over Klondike
// positions. The search is depth-first with a visited-on-current-path
// set, heuristic move ordering, an adaptive branching cap, and a wall
// clock budget enforced through the context deadline.
//
// A failure result means "not proven solvable within the given bounds",
// never "proven unsolvable": the branch limiting and move skipping trade
// completeness for tractability by design. Every solution that is
// returned, however, replays to a win with game.ApplyMove.
package solver

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/redclover/klondike/equity"
	"github.com/redclover/klondike/eval"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/movegen"
	"github.com/redclover/klondike/zobrist"
)

// Status is the tri-state outcome of a search.
type Status int

const (
	// StatusSolved means a winning sequence was found and verified.
	StatusSolved Status = iota
	// StatusNotFound means no solution was found within the depth and
	// time bounds. It is not a proof of unsolvability.
	StatusNotFound
)

func (s Status) String() string {
	if s == StatusSolved {
		return "solved"
	}
	return "not-found-within-budget"
}

// Result is the outcome of a Solve call.
type Result struct {
	Status    Status
	Solvable  bool // Status == StatusSolved
	Moves     []*move.Move
	MoveCount int
	Nodes     uint64
	Elapsed   time.Duration
}

// Config bounds and tunes one search. A fresh Solver is constructed per
// request, so nothing here is shared across calls.
type Config struct {
	// MaxDepth is the move-count bound per branch.
	MaxDepth int
	// TimeBudget is the wall-clock bound. Solve also respects any earlier
	// deadline or cancellation already on the caller's context.
	TimeBudget time.Duration
	// BaseBranchLimit and MaxBranchLimit bound how many top-ranked moves
	// a frame explores. The effective limit widens with game progress and
	// narrows as the remaining depth budget shrinks; foundation moves are
	// always explored regardless of the limit.
	BaseBranchLimit int
	MaxBranchLimit  int
	// RecycleCap bounds waste-to-stock recycles per branch. Cycle
	// detection already guarantees termination; the cap keeps branches
	// from burning their budget shuffling the stock.
	RecycleCap int
	// Weights drive move ranking and the skip heuristics.
	Weights equity.Weights
}

// DefaultConfig returns the standard search bounds.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        180,
		TimeBudget:      8 * time.Second,
		BaseBranchLimit: 4,
		MaxBranchLimit:  10,
		RecycleCap:      3,
		Weights:         equity.DefaultWeights(),
	}
}

// checkInterval is how many nodes pass between context checks. The check
// is the search's cooperative yield point and its cancellation mechanism.
const checkInterval = 64

// skipEquityThreshold: candidates at or below this equity are skipped
// while ample depth budget remains. A heuristic prune, so it can cause
// false not-found results, never a wrong solution.
const skipEquityThreshold = -50.0

var errBudgetExhausted = errors.New("search budget exhausted")

// Solver runs one search. Construct with New per request; the visited set
// and counters are never reused across calls.
type Solver struct {
	cfg  Config
	gen  *movegen.Generator
	calc *equity.HeuristicCalculator
	zob  *zobrist.Zobrist

	onPath    map[uint64]struct{}
	nodes     atomic.Uint64
	sinceTick int
}

// New creates a Solver with the given config.
func New(cfg Config) *Solver {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.TimeBudget <= 0 {
		cfg.TimeBudget = DefaultConfig().TimeBudget
	}
	if cfg.BaseBranchLimit <= 0 {
		cfg.BaseBranchLimit = DefaultConfig().BaseBranchLimit
	}
	if cfg.MaxBranchLimit < cfg.BaseBranchLimit {
		cfg.MaxBranchLimit = cfg.BaseBranchLimit
	}
	s := &Solver{
		cfg:  cfg,
		gen:  movegen.NewGenerator(),
		calc: equity.NewHeuristicCalculator(cfg.Weights),
		zob:  &zobrist.Zobrist{},
	}
	s.zob.Initialize()
	return s
}

// Solve searches for a winning sequence from g. The input state is
// validated and never mutated; the search works on its own copy. A nil
// error with Status StatusNotFound is the expected outcome for a budget
// or depth exhaustion.
func (s *Solver) Solve(ctx context.Context, g *game.Game) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.cfg.TimeBudget)
	defer cancel()

	s.onPath = make(map[uint64]struct{})
	s.nodes.Store(0)
	s.sinceTick = 0

	working := g.Copy()
	line := make([]*move.Move, 0, s.cfg.MaxDepth)

	var found bool
	var searchErr error

	eg := &errgroup.Group{}
	done := make(chan struct{})
	eg.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var last uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				n := s.nodes.Load()
				log.Debug().Uint64("nps", n-last).Msg("nodes-per-second")
				last = n
			}
		}
	})
	eg.Go(func() error {
		found, line, searchErr = s.search(ctx, working, s.cfg.MaxDepth, line, 0)
		close(done)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if searchErr != nil && !errors.Is(searchErr, errBudgetExhausted) {
		return nil, searchErr
	}

	res := &Result{
		Status:  StatusNotFound,
		Nodes:   s.nodes.Load(),
		Elapsed: time.Since(start),
	}
	if found {
		res.Status = StatusSolved
		res.Solvable = true
		res.Moves = line
		res.MoveCount = len(line)
	}
	log.Debug().
		Str("status", res.Status.String()).
		Int("move-count", res.MoveCount).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

// search explores one frame. It owns g exclusively and may mutate it; the
// accumulated winning line (shared backing with the caller's slice) is
// returned on success. A non-nil error is either errBudgetExhausted, which
// unwinds the whole search, or a state-integrity failure.
func (s *Solver) search(ctx context.Context, g *game.Game, depth int,
	line []*move.Move, recycles int) (bool, []*move.Move, error) {

	// The periodic context check is both the cooperative yield and the
	// time budget: when the deadline passes, the entire search unwinds as
	// undetermined.
	s.sinceTick++
	if s.sinceTick >= checkInterval {
		s.sinceTick = 0
		if ctx.Err() != nil {
			return false, line, errBudgetExhausted
		}
	}

	if g.Won() {
		return true, line, nil
	}
	if depth <= 0 {
		return false, line, nil
	}

	key := s.zob.Hash(g)
	if _, seen := s.onPath[key]; seen {
		return false, line, nil
	}
	s.onPath[key] = struct{}{}
	// This is a visited-on-current-path set, not a global memo: the entry
	// is removed when the branch fails so the state stays reachable via
	// other paths.
	defer delete(s.onPath, key)

	moves := s.gen.GenAll(g)
	if len(moves) == 0 {
		return false, line, nil
	}
	s.calc.Assign(moves, g)
	equity.Sort(moves)

	limit := s.branchLimit(g, depth)
	explored := 0
	for _, m := range moves {
		if !m.IsFoundationMove() {
			if explored >= limit {
				continue
			}
			// Skip clearly bad candidates while there is still plenty of
			// budget to find a cleaner line.
			if m.Equity() <= skipEquityThreshold && depth > s.cfg.MaxDepth/4 {
				continue
			}
		}
		childRecycles := recycles
		if m.Type == move.MoveTypeStockDraw && len(g.Stock) == 0 {
			childRecycles++
			if childRecycles > s.cfg.RecycleCap {
				continue
			}
		}
		child := g.Copy()
		if err := child.ApplyMove(m); err != nil {
			// The generator proposed an illegal move: a contract bug, not
			// a searchable condition.
			return false, line, err
		}
		s.nodes.Add(1)
		explored++
		found, newLine, err := s.search(ctx, child, depth-1, append(line, m), childRecycles)
		if err != nil {
			return false, line, err
		}
		if found {
			return true, newLine, nil
		}
	}
	return false, line, nil
}

// branchLimit adapts the branching cap: wider as the game progresses
// (complex endgame sequences need it), narrower when the remaining depth
// budget is shallow.
func (s *Solver) branchLimit(g *game.Game, depth int) int {
	limit := s.cfg.BaseBranchLimit +
		int(eval.Progress(g)*float64(s.cfg.MaxBranchLimit-s.cfg.BaseBranchLimit))
	if depth < s.cfg.MaxDepth/6 && limit > s.cfg.BaseBranchLimit {
		limit = s.cfg.BaseBranchLimit
	}
	if limit > s.cfg.MaxBranchLimit {
		limit = s.cfg.MaxBranchLimit
	}
	return limit
}

// BestMove validates g, ranks its legal moves, and returns the single
// best one, or nil when no legal move exists.
func (s *Solver) BestMove(g *game.Game) (*move.Move, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	moves := s.gen.GenAll(g)
	if len(moves) == 0 {
		return nil, nil
	}
	s.calc.Assign(moves, g)
	equity.Sort(moves)
	return moves[0], nil
}
