// Package eval scores how close a position is to a win. It is cheap and
// non-recursive: the solver consults Progress while pruning, and the UI
// shows WinProbability. Neither function ever calls back into the search.
package eval

import (
	"fmt"

	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/game"
)

// Component weights. Foundation progress dominates; hidden cards count
// against; empty columns help a little (King-ready space).
const (
	foundationWeight = 70.0
	hiddenWeight     = 25.0
	emptyColWeight   = 5.0

	maxHidden = 21 // 0+1+..+6 face-down cards in a fresh deal
)

// Progress returns a [0,1] estimate of how far along the game is. A won
// position scores 1; a fresh deal scores near 0.
func Progress(g *game.Game) float64 {
	return WinProbability(g) / 100.0
}

// WinProbability returns a [0,100] heuristic score of a position's
// closeness to victory. Monotonic with foundation progress.
func WinProbability(g *game.Game) float64 {
	foundationFrac := float64(g.FoundationCount()) / float64(card.DeckSize)
	hiddenFrac := float64(g.HiddenCount()) / maxHidden
	if hiddenFrac > 1 {
		hiddenFrac = 1
	}
	emptyFrac := float64(g.EmptyColumns()) / float64(game.NumTableauCols)

	score := foundationWeight*foundationFrac +
		hiddenWeight*(1-hiddenFrac) +
		emptyColWeight*emptyFrac
	if g.Won() {
		return 100
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Insights returns short categorical observations about the position,
// advisory strings for display only.
func Insights(g *game.Game) []string {
	var out []string
	fc := g.FoundationCount()
	switch {
	case fc >= 26:
		out = append(out, "foundation progress high")
	case fc == 0:
		out = append(out, "no foundation progress yet")
	default:
		out = append(out, "foundation progress low")
	}
	if hidden := g.HiddenCount(); hidden > 12 {
		out = append(out, fmt.Sprintf("many cards still hidden (%d)", hidden))
	} else if hidden == 0 {
		out = append(out, "all tableau cards revealed")
	}
	if g.EmptyColumns() > 0 {
		out = append(out, fmt.Sprintf("%d empty columns for Kings", g.EmptyColumns()))
	}
	if len(g.Stock)+len(g.Waste) > 18 {
		out = append(out, "most of the stock is unplayed")
	}
	return out
}
