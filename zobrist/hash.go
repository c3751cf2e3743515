// Package zobrist hashes Klondike positions for visited-state detection
// during search.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/game"
)

const bignum = 1<<63 - 2

// locations a card can occupy for hashing purposes: one slot per tableau
// column position is overkill, so we hash (card, pile, position-class)
// where position matters only inside tableau columns.
const (
	maxColumnLen = 20 // 6 hidden + King..Ace run, with margin
)

// Zobrist holds the random tables. A position's hash covers the tableau
// card identities and orientations, foundation sizes, the waste top, and
// the stock size. That is enough to distinguish reachable states during
// one search without false positives.
type Zobrist struct {
	tableauTable  [game.NumTableauCols][maxColumnLen][card.DeckSize * 2]uint64
	foundationLen [card.NumSuits][card.NumRanks + 1]uint64
	wasteTop      [card.DeckSize + 1]uint64
	stockLen      [card.DeckSize + 1]uint64
}

// Initialize fills the random tables.
func (z *Zobrist) Initialize() {
	for col := range z.tableauTable {
		for pos := range z.tableauTable[col] {
			for c := range z.tableauTable[col][pos] {
				z.tableauTable[col][pos][c] = frand.Uint64n(bignum) + 1
			}
		}
	}
	for s := range z.foundationLen {
		for n := range z.foundationLen[s] {
			z.foundationLen[s][n] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.wasteTop {
		z.wasteTop[i] = frand.Uint64n(bignum) + 1
	}
	for i := range z.stockLen {
		z.stockLen[i] = frand.Uint64n(bignum) + 1
	}
}

// Hash computes the canonical hash of a position. It is recomputed per
// state rather than incrementally: a Klondike state is 52 cards, and the
// walk is far cheaper than the search work around it.
func (z *Zobrist) Hash(g *game.Game) uint64 {
	var key uint64
	for col := range g.Tableau {
		for pos, c := range g.Tableau[col] {
			if pos >= maxColumnLen {
				pos = maxColumnLen - 1
			}
			idx := c.Index()
			if c.FaceUp {
				idx += card.DeckSize
			}
			key ^= z.tableauTable[col][pos][idx]
		}
	}
	for s := range g.Foundations {
		key ^= z.foundationLen[s][len(g.Foundations[s])]
	}
	if top, ok := g.WasteTop(); ok {
		key ^= z.wasteTop[top.Index()+1]
	} else {
		key ^= z.wasteTop[0]
	}
	key ^= z.stockLen[len(g.Stock)]
	return key
}
