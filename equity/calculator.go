package equity

import (
	"sort"

	"github.com/samber/lo"

	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
)

// Weights are the additive point values behind the heuristic calculator.
// Only the relative ordering matters: foundation moves must outrank
// reveals, reveals must outrank everything else, and counterproductive
// moves must rank below a plain draw.
type Weights struct {
	Foundation        float64 // base bonus for any foundation move
	AceBonus          float64 // extra for a foundation Ace
	RankStep          float64 // per-rank bonus favoring low foundation cards
	Reveal            float64 // move uncovers a face-down tableau card
	KingToEmpty       float64 // King moved onto an empty column
	SequencePreserve  float64 // a built run travels with the King
	ExtendSequence    float64 // placement extends an existing run
	Counterproductive float64 // negative; see isCounterproductive
	DrawBaseline      float64 // draw when nothing better exists
	DrawPenalty       float64 // negative; draw while better moves exist
}

// DefaultWeights is the standard ("aggressive") preset.
func DefaultWeights() Weights {
	return Weights{
		Foundation:        100,
		AceBonus:          20,
		RankStep:          2,
		Reveal:            50,
		KingToEmpty:       30,
		SequencePreserve:  10,
		ExtendSequence:    5,
		Counterproductive: -60,
		DrawBaseline:      2,
		DrawPenalty:       -25,
	}
}

// ConservativeWeights softens the penalties so that the search prunes
// fewer branches. Slower, but finds solutions the aggressive preset can
// skip past.
func ConservativeWeights() Weights {
	w := DefaultWeights()
	w.Counterproductive = -20
	w.DrawPenalty = -5
	return w
}

// WeightsByName maps a config preset name to weights. Unknown names fall
// back to the default preset.
func WeightsByName(name string) Weights {
	if name == "conservative" {
		return ConservativeWeights()
	}
	return DefaultWeights()
}

// HeuristicCalculator scores moves with the additive point system above.
type HeuristicCalculator struct {
	weights Weights
}

var _ EquityCalculator = (*HeuristicCalculator)(nil)

// NewHeuristicCalculator creates a calculator with the given weights.
func NewHeuristicCalculator(w Weights) *HeuristicCalculator {
	return &HeuristicCalculator{weights: w}
}

// Equity values a single move against g. Pure: neither the move's equity
// field nor the state is touched.
func (hc *HeuristicCalculator) Equity(m *move.Move, g *game.Game) float64 {
	w := hc.weights
	switch m.Type {
	case move.MoveTypeStockDraw:
		// Set-context adjustment happens in Assign; alone, a draw is a
		// small positive so the search still explores it.
		return w.DrawBaseline
	case move.MoveTypeWasteToFoundation, move.MoveTypeTableauToFoundation:
		v := w.Foundation + w.RankStep*float64(card.King-m.Card.Rank)
		if m.Card.Rank == card.Ace {
			v += w.AceBonus
		}
		if m.Type == move.MoveTypeTableauToFoundation && hc.reveals(m, g) {
			v += w.Reveal
		}
		return v
	case move.MoveTypeWasteToTableau, move.MoveTypeTableauToTableau:
		if hc.isCounterproductive(m, g) {
			return w.Counterproductive
		}
		var v float64
		if hc.reveals(m, g) {
			v += w.Reveal
		}
		if m.Card.Rank == card.King && len(g.Tableau[m.ToCol]) == 0 {
			v += w.KingToEmpty
			if m.Count >= 3 {
				// A built run rides along under the King.
				v += w.SequencePreserve
			}
		}
		if hc.extendsSequence(m, g) {
			v += w.ExtendSequence
		}
		return v
	}
	return 0
}

// reveals reports whether the move uncovers a face-down card in its
// source column.
func (hc *HeuristicCalculator) reveals(m *move.Move, g *game.Game) bool {
	if m.FromCol < 0 {
		return false
	}
	pile := g.Tableau[m.FromCol]
	below := len(pile) - m.Count - 1
	return below >= 0 && !pile[below].FaceUp
}

// extendsSequence reports whether the placement lands on a face-up run of
// at least two cards, growing an already-built sequence.
func (hc *HeuristicCalculator) extendsSequence(m *move.Move, g *game.Game) bool {
	if m.ToCol < 0 || len(g.Tableau[m.ToCol]) == 0 {
		return false
	}
	return len(g.Tableau[m.ToCol])-g.FaceUpStart(m.ToCol) >= 2
}

// isCounterproductive classifies moves that fight the player's own
// progress: burying an Ace on the tableau, moving a card sideways when it
// could score on its foundation, and shuffling a fully exposed King
// between empty columns.
func (hc *HeuristicCalculator) isCounterproductive(m *move.Move, g *game.Game) bool {
	if m.Card.Rank == card.Ace {
		return true
	}
	switch m.Type {
	case move.MoveTypeWasteToTableau:
		return g.CanPlaceOnFoundation(m.Card)
	case move.MoveTypeTableauToTableau:
		if m.Count == 1 && g.CanPlaceOnFoundation(m.Card) {
			return true
		}
		// Relocating a run that starts at the very bottom of its column
		// onto an empty column uncovers nothing and gains nothing.
		if len(g.Tableau[m.ToCol]) == 0 && m.Count == len(g.Tableau[m.FromCol]) {
			return true
		}
	}
	return false
}

// Assign computes equities for the whole candidate set, applying the
// set-context draw rule: a draw is penalized whenever the set contains a
// foundation move or a reveal.
func (hc *HeuristicCalculator) Assign(moves []*move.Move, g *game.Game) {
	betterThanDraw := lo.SomeBy(moves, func(m *move.Move) bool {
		return m.IsFoundationMove() ||
			(m.Type != move.MoveTypeStockDraw && hc.reveals(m, g) && !hc.isCounterproductive(m, g))
	})
	for _, m := range moves {
		if m.Type == move.MoveTypeStockDraw && betterThanDraw {
			m.SetEquity(hc.weights.DrawPenalty)
			continue
		}
		m.SetEquity(hc.Equity(m, g))
	}
}

// Sort orders moves by descending equity. The sort is stable, so ties
// keep generation order and ranking is deterministic for a fixed input.
func Sort(moves []*move.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Equity() > moves[j].Equity()
	})
}
