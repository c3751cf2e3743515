package game

import (
	"errors"
	"fmt"

	"github.com/redclover/klondike/move"
)

// ErrIllegalMove is returned when a move's preconditions do not hold
// against the state it is applied to. The generator only ever proposes
// legal moves, so seeing this error means a caller contract was violated;
// the state is left unmodified.
var ErrIllegalMove = errors.New("illegal move application")

// ApplyMove applies m to the game in place, including the auto-flip of a
// newly exposed tableau top. Callers that need the prior state must Copy
// first; the solver does exactly that per search frame.
func (g *Game) ApplyMove(m *move.Move) error {
	switch m.Type {
	case move.MoveTypeStockDraw:
		return g.applyStockDraw()
	case move.MoveTypeWasteToFoundation:
		return g.applyWasteToFoundation(m)
	case move.MoveTypeWasteToTableau:
		return g.applyWasteToTableau(m)
	case move.MoveTypeTableauToFoundation:
		return g.applyTableauToFoundation(m)
	case move.MoveTypeTableauToTableau:
		return g.applyTableauToTableau(m)
	}
	return fmt.Errorf("%w: unknown move type %d", ErrIllegalMove, m.Type)
}

func (g *Game) applyStockDraw() error {
	if len(g.Stock) == 0 && len(g.Waste) == 0 {
		return fmt.Errorf("%w: draw with empty stock and waste", ErrIllegalMove)
	}
	if len(g.Stock) == 0 {
		// Recycle: the waste, reversed and face down, becomes the stock.
		for i := len(g.Waste) - 1; i >= 0; i-- {
			c := g.Waste[i]
			c.FaceUp = false
			g.Stock = append(g.Stock, c)
		}
		g.Waste = g.Waste[:0]
		g.MoveCount++
		return nil
	}
	n := g.DrawMode
	if n > len(g.Stock) {
		n = len(g.Stock)
	}
	for i := 0; i < n; i++ {
		c := g.Stock[len(g.Stock)-1]
		g.Stock = g.Stock[:len(g.Stock)-1]
		c.FaceUp = true
		g.Waste = append(g.Waste, c)
	}
	g.MoveCount++
	return nil
}

func (g *Game) applyWasteToFoundation(m *move.Move) error {
	top, ok := g.WasteTop()
	if !ok || !top.SameIdentity(m.Card) || !g.CanPlaceOnFoundation(top) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	g.Waste = g.Waste[:len(g.Waste)-1]
	g.Foundations[top.Suit] = append(g.Foundations[top.Suit], top)
	g.MoveCount++
	return nil
}

func (g *Game) applyWasteToTableau(m *move.Move) error {
	top, ok := g.WasteTop()
	if !ok || !top.SameIdentity(m.Card) ||
		m.ToCol < 0 || m.ToCol >= NumTableauCols ||
		!g.CanPlaceOnTableau(top, m.ToCol) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	g.Waste = g.Waste[:len(g.Waste)-1]
	g.Tableau[m.ToCol] = append(g.Tableau[m.ToCol], top)
	g.MoveCount++
	return nil
}

func (g *Game) applyTableauToFoundation(m *move.Move) error {
	if m.FromCol < 0 || m.FromCol >= NumTableauCols {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	top, ok := g.TableauTop(m.FromCol)
	if !ok || !top.FaceUp || !top.SameIdentity(m.Card) || !g.CanPlaceOnFoundation(top) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	pile := g.Tableau[m.FromCol]
	g.Tableau[m.FromCol] = pile[:len(pile)-1]
	g.Foundations[top.Suit] = append(g.Foundations[top.Suit], top)
	g.flipExposed(m.FromCol)
	g.MoveCount++
	return nil
}

func (g *Game) applyTableauToTableau(m *move.Move) error {
	if m.FromCol < 0 || m.FromCol >= NumTableauCols ||
		m.ToCol < 0 || m.ToCol >= NumTableauCols || m.FromCol == m.ToCol {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	pile := g.Tableau[m.FromCol]
	if m.Count < 1 || m.Count > len(pile) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	head := pile[len(pile)-m.Count]
	if !head.FaceUp || !head.SameIdentity(m.Card) || !g.CanPlaceOnTableau(head, m.ToCol) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m.ShortDescription())
	}
	moved := pile[len(pile)-m.Count:]
	g.Tableau[m.ToCol] = append(g.Tableau[m.ToCol], moved...)
	g.Tableau[m.FromCol] = pile[:len(pile)-m.Count]
	g.flipExposed(m.FromCol)
	g.MoveCount++
	return nil
}

// flipExposed turns the new top of a column face up if it was hidden.
func (g *Game) flipExposed(col int) {
	pile := g.Tableau[col]
	if len(pile) > 0 && !pile[len(pile)-1].FaceUp {
		pile[len(pile)-1].FaceUp = true
	}
}
