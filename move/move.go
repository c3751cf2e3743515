// Package move defines the closed set of Klondike moves and their text
// notation. A move is created by the generator, valued by the equity
// calculator, and applied by the game package; it carries no reference to
// the state it was generated from.
package move

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/redclover/klondike/card"
)

// MoveType is the kind of move.
type MoveType uint8

const (
	MoveTypeStockDraw MoveType = iota
	MoveTypeWasteToFoundation
	MoveTypeWasteToTableau
	MoveTypeTableauToFoundation
	MoveTypeTableauToTableau
)

var typeTokens = map[MoveType]string{
	MoveTypeStockDraw:           "draw",
	MoveTypeWasteToFoundation:   "w2f",
	MoveTypeWasteToTableau:      "w2t",
	MoveTypeTableauToFoundation: "t2f",
	MoveTypeTableauToTableau:    "t2t",
}

// Move describes a single state transition. Card is the card being moved
// (for tableau-to-tableau, the head of the moved sequence, meaning the
// deepest card of the face-up run being relocated). FromCol/ToCol are tableau
// column indexes where applicable; Count is the length of the sequence for
// tableau-to-tableau moves and 1 otherwise.
type Move struct {
	Type    MoveType  `json:"type"`
	Card    card.Card `json:"card"`
	FromCol int       `json:"fromCol"`
	ToCol   int       `json:"toCol"`
	Count   int       `json:"count"`

	// equity is assigned by an external calculator and consulted during
	// move ordering. It is not part of the move's identity.
	equity float64
}

// NewStockDraw creates a stock draw (or waste recycle, when the stock is
// empty).
func NewStockDraw() *Move {
	return &Move{Type: MoveTypeStockDraw, FromCol: -1, ToCol: -1, Count: 1}
}

// NewWasteToFoundation moves the waste top to its suit's foundation.
func NewWasteToFoundation(c card.Card) *Move {
	return &Move{Type: MoveTypeWasteToFoundation, Card: c, FromCol: -1, ToCol: -1, Count: 1}
}

// NewWasteToTableau moves the waste top onto a tableau column.
func NewWasteToTableau(c card.Card, toCol int) *Move {
	return &Move{Type: MoveTypeWasteToTableau, Card: c, FromCol: -1, ToCol: toCol, Count: 1}
}

// NewTableauToFoundation moves a column's top card to its foundation.
func NewTableauToFoundation(c card.Card, fromCol int) *Move {
	return &Move{Type: MoveTypeTableauToFoundation, Card: c, FromCol: fromCol, ToCol: -1, Count: 1}
}

// NewTableauToTableau moves a face-up sequence of length count, headed by
// c, from one column to another.
func NewTableauToTableau(c card.Card, fromCol, toCol, count int) *Move {
	return &Move{Type: MoveTypeTableauToTableau, Card: c, FromCol: fromCol, ToCol: toCol, Count: count}
}

// Equity is the strategic value assigned by the ranker.
func (m *Move) Equity() float64 { return m.equity }

// SetEquity sets the strategic value. It is calculated outside this package.
func (m *Move) SetEquity(e float64) { m.equity = e }

// IsFoundationMove reports whether the move places a card on a foundation.
// Foundation moves are never pruned from the search candidate set.
func (m *Move) IsFoundationMove() bool {
	return m.Type == MoveTypeWasteToFoundation || m.Type == MoveTypeTableauToFoundation
}

// Equals compares moves structurally, ignoring equity.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Type == o.Type &&
		m.Card.SameIdentity(o.Card) &&
		m.FromCol == o.FromCol &&
		m.ToCol == o.ToCol &&
		m.Count == o.Count
}

// ShortDescription renders the move in the strict notation understood by
// Parse, e.g. "draw", "w2f QH", "t2t 5 2 3 8C".
func (m *Move) ShortDescription() string {
	switch m.Type {
	case MoveTypeStockDraw:
		return "draw"
	case MoveTypeWasteToFoundation:
		return fmt.Sprintf("w2f %v", m.Card)
	case MoveTypeWasteToTableau:
		return fmt.Sprintf("w2t %d %v", m.ToCol, m.Card)
	case MoveTypeTableauToFoundation:
		return fmt.Sprintf("t2f %d %v", m.FromCol, m.Card)
	case MoveTypeTableauToTableau:
		return fmt.Sprintf("t2t %d %d %d %v", m.FromCol, m.ToCol, m.Count, m.Card)
	}
	return "unhandled"
}

// String is for debugging.
func (m *Move) String() string {
	return fmt.Sprintf("<%s eq: %.1f>", m.ShortDescription(), m.equity)
}

// Parse parses the notation produced by ShortDescription. Anything that
// does not match the grammar exactly is an error; callers at the advisor
// boundary treat a parse error as "no recommendation".
func Parse(s string) (*Move, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty move string")
	}
	bad := func() (*Move, error) { return nil, fmt.Errorf("malformed move %q", s) }
	atoi := func(f string) (int, bool) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	switch fields[0] {
	case typeTokens[MoveTypeStockDraw]:
		if len(fields) != 1 {
			return bad()
		}
		return NewStockDraw(), nil
	case typeTokens[MoveTypeWasteToFoundation]:
		if len(fields) != 2 {
			return bad()
		}
		c, err := card.Parse(fields[1])
		if err != nil {
			return nil, err
		}
		return NewWasteToFoundation(c), nil
	case typeTokens[MoveTypeWasteToTableau]:
		if len(fields) != 3 {
			return bad()
		}
		col, ok := atoi(fields[1])
		if !ok {
			return bad()
		}
		c, err := card.Parse(fields[2])
		if err != nil {
			return nil, err
		}
		return NewWasteToTableau(c, col), nil
	case typeTokens[MoveTypeTableauToFoundation]:
		if len(fields) != 3 {
			return bad()
		}
		col, ok := atoi(fields[1])
		if !ok {
			return bad()
		}
		c, err := card.Parse(fields[2])
		if err != nil {
			return nil, err
		}
		return NewTableauToFoundation(c, col), nil
	case typeTokens[MoveTypeTableauToTableau]:
		if len(fields) != 5 {
			return bad()
		}
		from, ok := atoi(fields[1])
		if !ok {
			return bad()
		}
		to, ok := atoi(fields[2])
		if !ok {
			return bad()
		}
		count, ok := atoi(fields[3])
		if !ok || count < 1 {
			return bad()
		}
		c, err := card.Parse(fields[4])
		if err != nil {
			return nil, err
		}
		return NewTableauToTableau(c, from, to, count), nil
	}
	return nil, fmt.Errorf("unknown move type %q", fields[0])
}
