package game

import (
	"errors"
	"fmt"

	"github.com/redclover/klondike/card"
)

// ErrInvalidState is returned for structurally malformed input states:
// wrong card count, duplicated cards, out-of-order foundations, or a bad
// draw mode. Searching such a state risks nonsense results, so it is
// rejected at the solve entry point.
var ErrInvalidState = errors.New("invalid game state")

// Validate checks the structural invariants of the position.
func (g *Game) Validate() error {
	if g.DrawMode != 1 && g.DrawMode != 3 {
		return fmt.Errorf("%w: draw mode %d", ErrInvalidState, g.DrawMode)
	}
	var seen [card.DeckSize]bool
	total := 0
	count := func(pile []card.Card, where string) error {
		for _, c := range pile {
			if c.Rank < card.Ace || c.Rank > card.King || c.Suit >= card.NumSuits {
				return fmt.Errorf("%w: bad card %v in %s", ErrInvalidState, c, where)
			}
			if seen[c.Index()] {
				return fmt.Errorf("%w: duplicate card %v in %s", ErrInvalidState, c, where)
			}
			seen[c.Index()] = true
			total++
		}
		return nil
	}
	if err := count(g.Stock, "stock"); err != nil {
		return err
	}
	if err := count(g.Waste, "waste"); err != nil {
		return err
	}
	for s := card.Suit(0); s < card.NumSuits; s++ {
		f := g.Foundations[s]
		if err := count(f, "foundation "+s.String()); err != nil {
			return err
		}
		for i, c := range f {
			if c.Suit != s || c.Rank != card.Rank(i+1) {
				return fmt.Errorf("%w: foundation %v holds %v at position %d",
					ErrInvalidState, s, c, i)
			}
		}
	}
	for col := range g.Tableau {
		if err := count(g.Tableau[col], fmt.Sprintf("tableau %d", col)); err != nil {
			return err
		}
		// Face-up cards must form a suffix of the column.
		upSeen := false
		for _, c := range g.Tableau[col] {
			if c.FaceUp {
				upSeen = true
			} else if upSeen {
				return fmt.Errorf("%w: face-down card above face-up in tableau %d",
					ErrInvalidState, col)
			}
		}
	}
	if total != card.DeckSize {
		return fmt.Errorf("%w: %d cards, want %d", ErrInvalidState, total, card.DeckSize)
	}
	return nil
}
