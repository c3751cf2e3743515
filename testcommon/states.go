// Package testcommon builds hand-constructed positions used by tests in
// several packages. All returned states pass game.Validate except
// RecycleReady, which is a partial state for transition tests.
package testcommon

import (
	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/game"
)

func up(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r, FaceUp: true}
}

func down(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

// foundationRun fills a foundation with Ace..top of the given suit.
func foundationRun(g *game.Game, s card.Suit, top card.Rank) {
	for r := card.Ace; r <= top; r++ {
		g.Foundations[s] = append(g.Foundations[s], up(s, r))
	}
}

// Won returns the finished game: all 52 cards on the foundations.
func Won() *game.Game {
	g := game.NewGame(1)
	for s := card.Suit(0); s < card.NumSuits; s++ {
		foundationRun(g, s, card.King)
	}
	return g
}

// OneMoveFromWin is Won except the King of Spades sits face up on a
// tableau column with the spades foundation at Queen.
func OneMoveFromWin() *game.Game {
	g := game.NewGame(1)
	foundationRun(g, card.Spades, card.Queen)
	foundationRun(g, card.Hearts, card.King)
	foundationRun(g, card.Diamonds, card.King)
	foundationRun(g, card.Clubs, card.King)
	g.Tableau[0] = []card.Card{up(card.Spades, card.King)}
	return g
}

// EightMovesFromWin has every foundation at Jack and the queens and kings
// spread over the tableau; the shortest win is eight foundation moves.
func EightMovesFromWin() *game.Game {
	g := game.NewGame(1)
	for s := card.Suit(0); s < card.NumSuits; s++ {
		foundationRun(g, s, card.Jack)
	}
	g.Tableau[0] = []card.Card{up(card.Spades, card.Queen)}
	g.Tableau[1] = []card.Card{up(card.Hearts, card.Queen)}
	g.Tableau[2] = []card.Card{up(card.Diamonds, card.King), up(card.Clubs, card.Queen)}
	g.Tableau[3] = []card.Card{up(card.Diamonds, card.Queen)}
	g.Tableau[4] = []card.Card{up(card.Spades, card.King)}
	g.Tableau[5] = []card.Card{up(card.Hearts, card.King)}
	g.Tableau[6] = []card.Card{up(card.Clubs, card.King)}
	return g
}

// Deadlock has no legal moves at all: empty stock and waste, empty
// foundations, and seven black non-Ace non-King tableau tops that fit
// nowhere. The face-down cards beneath are the rest of the deck.
func Deadlock() *game.Game {
	g := game.NewGame(1)
	tops := []card.Card{
		up(card.Spades, 2), up(card.Spades, 4), up(card.Spades, 6),
		up(card.Spades, 8), up(card.Clubs, 2), up(card.Clubs, 4),
		up(card.Clubs, 6),
	}
	isTop := func(c card.Card) bool {
		for _, t := range tops {
			if t.SameIdentity(c) {
				return true
			}
		}
		return false
	}
	var rest []card.Card
	for _, c := range card.NewDeck() {
		if !isTop(c) {
			rest = append(rest, down(c.Suit, c.Rank))
		}
	}
	// 45 hidden cards over 7 columns: sizes 6,6,6,6,7,7,7.
	sizes := []int{6, 6, 6, 6, 7, 7, 7}
	idx := 0
	for col, n := range sizes {
		g.Tableau[col] = append(g.Tableau[col], rest[idx:idx+n]...)
		idx += n
		g.Tableau[col] = append(g.Tableau[col], tops[col])
	}
	return g
}

// KingShuffle has king-to-empty-column relocations as its only legal
// moves, which can never make progress: the search must terminate via
// cycle detection rather than loop.
func KingShuffle() *game.Game {
	g := game.NewGame(1)
	foundationRun(g, card.Hearts, card.King)
	foundationRun(g, card.Diamonds, card.King)
	foundationRun(g, card.Spades, 9)
	foundationRun(g, card.Clubs, 9)
	g.Tableau[0] = []card.Card{up(card.Spades, card.King)}
	g.Tableau[1] = []card.Card{up(card.Clubs, card.King)}
	g.Tableau[2] = []card.Card{up(card.Spades, card.Queen)}
	g.Tableau[3] = []card.Card{up(card.Clubs, card.Queen)}
	g.Tableau[4] = []card.Card{down(card.Spades, 10), up(card.Spades, card.Jack)}
	g.Tableau[5] = []card.Card{down(card.Clubs, 10), up(card.Clubs, card.Jack)}
	return g
}

// RecycleReady has an empty stock and the given cards in the waste.
func RecycleReady(waste ...card.Card) *game.Game {
	g := game.NewGame(1)
	for i := range waste {
		waste[i].FaceUp = true
	}
	g.Waste = append(g.Waste, waste...)
	return g
}
