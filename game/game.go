// Package game holds the Klondike game state and its transitions. A Game
// is created once per deal and then evolves through ApplyMove; the search
// engine operates on throwaway copies so a caller's state is never mutated
// behind its back.
package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/redclover/klondike/card"
)

const (
	// NumTableauCols is the number of tableau columns.
	NumTableauCols = 7
)

// Game is the full Klondike position: stock, waste, four foundations
// (indexed by suit) and seven tableau columns. All piles are ordered
// bottom-to-top; the last element of a slice is the top of the pile.
type Game struct {
	Stock       []card.Card                   `json:"stock"`
	Waste       []card.Card                   `json:"waste"`
	Foundations [card.NumSuits][]card.Card    `json:"foundations"`
	Tableau     [NumTableauCols][]card.Card   `json:"tableau"`
	DrawMode    int                           `json:"drawMode"`
	MoveCount   int                           `json:"moveCount"`
}

// NewGame returns an empty game shell with the given draw mode (1 or 3).
func NewGame(drawMode int) *Game {
	return &Game{DrawMode: drawMode}
}

// Deal deals a fresh game from a seed-shuffled deck: column i receives
// i+1 cards with only the last face up, and the remaining 24 cards form
// the stock.
func Deal(seed uint64, drawMode int) *Game {
	g := NewGame(drawMode)
	deck := card.ShuffledDeck(seed)
	idx := 0
	for col := 0; col < NumTableauCols; col++ {
		for n := 0; n <= col; n++ {
			c := deck[idx]
			idx++
			c.FaceUp = n == col
			g.Tableau[col] = append(g.Tableau[col], c)
		}
	}
	g.Stock = append(g.Stock, deck[idx:]...)
	return g
}

// Copy returns a deep copy. Search frames copy before applying moves.
func (g *Game) Copy() *Game {
	ng := &Game{
		Stock:     append([]card.Card(nil), g.Stock...),
		Waste:     append([]card.Card(nil), g.Waste...),
		DrawMode:  g.DrawMode,
		MoveCount: g.MoveCount,
	}
	for i := range g.Foundations {
		ng.Foundations[i] = append([]card.Card(nil), g.Foundations[i]...)
	}
	for i := range g.Tableau {
		ng.Tableau[i] = append([]card.Card(nil), g.Tableau[i]...)
	}
	return ng
}

// Won reports whether all 52 cards are on the foundations.
func (g *Game) Won() bool {
	for i := range g.Foundations {
		if len(g.Foundations[i]) != card.NumRanks {
			return false
		}
	}
	return true
}

// FoundationCount is the total number of cards on all foundations.
func (g *Game) FoundationCount() int {
	return lo.SumBy(g.Foundations[:], func(f []card.Card) int { return len(f) })
}

// HiddenCount is the number of face-down tableau cards.
func (g *Game) HiddenCount() int {
	n := 0
	for col := range g.Tableau {
		n += lo.CountBy(g.Tableau[col], func(c card.Card) bool { return !c.FaceUp })
	}
	return n
}

// EmptyColumns is the number of empty tableau columns.
func (g *Game) EmptyColumns() int {
	return lo.CountBy(g.Tableau[:], func(col []card.Card) bool { return len(col) == 0 })
}

// WasteTop returns the top waste card, if any.
func (g *Game) WasteTop() (card.Card, bool) {
	if len(g.Waste) == 0 {
		return card.Card{}, false
	}
	return g.Waste[len(g.Waste)-1], true
}

// TableauTop returns the top card of a column, if any.
func (g *Game) TableauTop(col int) (card.Card, bool) {
	if len(g.Tableau[col]) == 0 {
		return card.Card{}, false
	}
	return g.Tableau[col][len(g.Tableau[col])-1], true
}

// FaceUpStart returns the index within a column where the maximal face-up
// suffix begins, or len(column) for an empty or fully face-down column.
func (g *Game) FaceUpStart(col int) int {
	pile := g.Tableau[col]
	i := len(pile)
	for i > 0 && pile[i-1].FaceUp {
		i--
	}
	return i
}

// CanPlaceOnFoundation reports whether c may be placed on its own suit's
// foundation: an Ace on an empty pile, otherwise exactly one rank above
// the current top.
func (g *Game) CanPlaceOnFoundation(c card.Card) bool {
	f := g.Foundations[c.Suit]
	if len(f) == 0 {
		return c.Rank == card.Ace
	}
	return f[len(f)-1].Rank+1 == c.Rank
}

// CanPlaceOnTableau reports whether c may be placed on the given column: a
// King on an empty column, otherwise alternating color and exactly one
// rank below the face-up top.
func (g *Game) CanPlaceOnTableau(c card.Card, col int) bool {
	pile := g.Tableau[col]
	if len(pile) == 0 {
		return c.Rank == card.King
	}
	top := pile[len(pile)-1]
	if !top.FaceUp {
		return false
	}
	return top.Suit.Color() != c.Suit.Color() && top.Rank == c.Rank+1
}

// ToJSON serializes the state as the boundary format.
func (g *Game) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// FromJSON parses a boundary-format state. The result is not validated;
// call Validate before searching it.
func FromJSON(data []byte) (*Game, error) {
	g := &Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parsing game state: %w", err)
	}
	return g, nil
}

// String renders the position for the shell.
func (g *Game) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "stock: %d cards  waste:", len(g.Stock))
	if top, ok := g.WasteTop(); ok {
		fmt.Fprintf(&sb, " %v (%d)", top, len(g.Waste))
	} else {
		sb.WriteString(" -")
	}
	sb.WriteString("\nfoundations:")
	for s := card.Suit(0); s < card.NumSuits; s++ {
		f := g.Foundations[s]
		if len(f) == 0 {
			fmt.Fprintf(&sb, " %v:-", s)
		} else {
			fmt.Fprintf(&sb, " %v:%v", s, f[len(f)-1])
		}
	}
	sb.WriteString("\n")
	for col := range g.Tableau {
		fmt.Fprintf(&sb, "%d:", col)
		for _, c := range g.Tableau[col] {
			if c.FaceUp {
				fmt.Fprintf(&sb, " %v", c)
			} else {
				sb.WriteString(" ##")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
