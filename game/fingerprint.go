package game

import (
	"github.com/cespare/xxhash"

	"github.com/redclover/klondike/card"
)

// Fingerprint returns a stable hash of the full position, used at the
// service boundary for request dedup and logging. It is distinct from the
// zobrist hash the search uses internally: this one walks a canonical
// serialization and is stable across processes.
func (g *Game) Fingerprint() uint64 {
	buf := make([]byte, 0, 3*card.DeckSize+16)
	appendPile := func(pile []card.Card) {
		for _, c := range pile {
			face := byte(0)
			if c.FaceUp {
				face = 1
			}
			buf = append(buf, byte(c.Index()), face)
		}
		buf = append(buf, 0xFF)
	}
	appendPile(g.Stock)
	appendPile(g.Waste)
	for i := range g.Foundations {
		appendPile(g.Foundations[i])
	}
	for i := range g.Tableau {
		appendPile(g.Tableau[i])
	}
	buf = append(buf, byte(g.DrawMode))
	return xxhash.Sum64(buf)
}
