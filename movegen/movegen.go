// Package movegen enumerates the legal moves from a Klondike position.
// Generation is a pure query over the state and produces moves in a fixed
// order (draw, waste→foundation, waste→tableau, tableau→foundation,
// tableau→tableau by column), which together with deterministic ranking
// gives reproducible searches.
package movegen

import (
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
)

// Generator produces legal moves. It holds no state between calls.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenAll returns every legal move from g. It never mutates g; calling it
// twice on the same state yields the same moves in the same order.
func (gen *Generator) GenAll(g *game.Game) []*move.Move {
	var moves []*move.Move

	// A draw is legal whenever there is anything to draw or recycle.
	if len(g.Stock) > 0 || len(g.Waste) > 0 {
		moves = append(moves, move.NewStockDraw())
	}

	if top, ok := g.WasteTop(); ok {
		if g.CanPlaceOnFoundation(top) {
			moves = append(moves, move.NewWasteToFoundation(top))
		}
		for col := 0; col < game.NumTableauCols; col++ {
			if g.CanPlaceOnTableau(top, col) {
				moves = append(moves, move.NewWasteToTableau(top, col))
			}
		}
	}

	for col := 0; col < game.NumTableauCols; col++ {
		if top, ok := g.TableauTop(col); ok && top.FaceUp && g.CanPlaceOnFoundation(top) {
			moves = append(moves, move.NewTableauToFoundation(top, col))
		}
	}

	moves = append(moves, gen.tableauToTableau(g)...)
	return moves
}

// tableauToTableau enumerates moves of every contiguous face-up sub-suffix
// of every column onto every other column that accepts its head card.
func (gen *Generator) tableauToTableau(g *game.Game) []*move.Move {
	var moves []*move.Move
	for from := 0; from < game.NumTableauCols; from++ {
		pile := g.Tableau[from]
		start := g.FaceUpStart(from)
		for i := start; i < len(pile); i++ {
			head := pile[i]
			count := len(pile) - i
			for to := 0; to < game.NumTableauCols; to++ {
				if to == from {
					continue
				}
				if !g.CanPlaceOnTableau(head, to) {
					continue
				}
				moves = append(moves, move.NewTableauToTableau(head, from, to, count))
			}
		}
	}
	return moves
}
