// Package analysis is the request-level surface over the solver: it takes
// a serialized game state, runs a freshly constructed search (no state is
// carried between requests), and returns a self-describing report the UI
// layer can replay without re-deriving intent.
package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/redclover/klondike/config"
	"github.com/redclover/klondike/equity"
	"github.com/redclover/klondike/eval"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/solver"
)

// Request is one analysis job: a boundary-format state plus optional
// bound overrides (zero means "use configured default").
type Request struct {
	State        json.RawMessage `json:"state"`
	MaxDepth     int             `json:"maxDepth,omitempty"`
	TimeBudgetMs int             `json:"timeBudgetMs,omitempty"`
	HintOnly     bool            `json:"hintOnly,omitempty"`
}

// MoveDescriptor is a replayable description of one move.
type MoveDescriptor struct {
	Kind     string `json:"kind"`
	Card     string `json:"card,omitempty"`
	FromCol  int    `json:"fromCol"`
	ToCol    int    `json:"toCol"`
	Count    int    `json:"count"`
	Notation string `json:"notation"`
}

// Report is the analysis result. Status distinguishes "solved" from
// "not-found-within-budget"; the latter is never a proof of
// unsolvability, and consumers must present it that way.
type Report struct {
	Fingerprint    uint64           `json:"fingerprint"`
	Status         string           `json:"status"`
	Solvable       bool             `json:"solvable"`
	Moves          []MoveDescriptor `json:"moves,omitempty"`
	MoveCount      int              `json:"moveCount"`
	Hint           *MoveDescriptor  `json:"hint,omitempty"`
	WinProbability float64          `json:"winProbability"`
	Insights       []string         `json:"insights,omitempty"`
	Nodes          uint64           `json:"nodes"`
	ElapsedMs      int64            `json:"elapsedMs"`
}

var kindNames = map[move.MoveType]string{
	move.MoveTypeStockDraw:           "STOCK_DRAW",
	move.MoveTypeWasteToFoundation:   "WASTE_TO_FOUNDATION",
	move.MoveTypeWasteToTableau:      "WASTE_TO_TABLEAU",
	move.MoveTypeTableauToFoundation: "TABLEAU_TO_FOUNDATION",
	move.MoveTypeTableauToTableau:    "TABLEAU_TO_TABLEAU",
}

// Describe converts a move into its boundary descriptor.
func Describe(m *move.Move) MoveDescriptor {
	d := MoveDescriptor{
		Kind:     kindNames[m.Type],
		FromCol:  m.FromCol,
		ToCol:    m.ToCol,
		Count:    m.Count,
		Notation: m.ShortDescription(),
	}
	if m.Type != move.MoveTypeStockDraw {
		d.Card = m.Card.String()
	}
	return d
}

// Service runs analyses. It holds only configuration; every request gets
// a fresh solver, visited set, and budgets.
type Service struct {
	cfg *config.Config
}

// NewService creates a Service.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) solverConfig(req *Request) solver.Config {
	sc := solver.Config{
		MaxDepth:        s.cfg.MaxDepth,
		TimeBudget:      s.cfg.TimeBudget,
		BaseBranchLimit: s.cfg.BaseBranchLimit,
		MaxBranchLimit:  s.cfg.MaxBranchLimit,
		RecycleCap:      s.cfg.RecycleCap,
		Weights:         equity.WeightsByName(s.cfg.WeightPreset),
	}
	if req.MaxDepth > 0 {
		sc.MaxDepth = req.MaxDepth
	}
	if req.TimeBudgetMs > 0 {
		sc.TimeBudget = time.Duration(req.TimeBudgetMs) * time.Millisecond
	}
	return sc
}

// Analyze parses, validates, and analyzes one request.
func (s *Service) Analyze(ctx context.Context, req *Request) (*Report, error) {
	g, err := game.FromJSON(req.State)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeGame(ctx, g, req)
}

// AnalyzeGame analyzes an in-memory state. The state is validated first
// and never mutated.
func (s *Service) AnalyzeGame(ctx context.Context, g *game.Game, req *Request) (*Report, error) {
	if req == nil {
		req = &Request{}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	rep := &Report{
		Fingerprint:    g.Fingerprint(),
		WinProbability: eval.WinProbability(g),
		Insights:       eval.Insights(g),
	}
	sv := solver.New(s.solverConfig(req))

	if req.HintOnly {
		hint, err := sv.BestMove(g)
		if err != nil {
			return nil, err
		}
		rep.Status = solver.StatusNotFound.String()
		if hint != nil {
			d := Describe(hint)
			rep.Hint = &d
		}
		return rep, nil
	}

	res, err := sv.Solve(ctx, g)
	if err != nil {
		return nil, err
	}
	rep.Status = res.Status.String()
	rep.Solvable = res.Solvable
	rep.MoveCount = res.MoveCount
	rep.Nodes = res.Nodes
	rep.ElapsedMs = res.Elapsed.Milliseconds()
	rep.Moves = lo.Map(res.Moves, func(m *move.Move, _ int) MoveDescriptor {
		return Describe(m)
	})
	if len(res.Moves) > 0 {
		d := Describe(res.Moves[0])
		rep.Hint = &d
	}
	log.Info().
		Uint64("fingerprint", rep.Fingerprint).
		Str("status", rep.Status).
		Int("move-count", rep.MoveCount).
		Msg("analysis-complete")
	return rep, nil
}
