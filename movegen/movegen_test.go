package movegen_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/movegen"
	"github.com/redclover/klondike/testcommon"
)

func notations(moves []*move.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.ShortDescription()
	}
	return out
}

func TestDeadlockHasNoMoves(t *testing.T) {
	is := is.New(t)
	g := testcommon.Deadlock()
	is.NoErr(g.Validate())
	gen := movegen.NewGenerator()
	is.Equal(len(gen.GenAll(g)), 0)
}

func TestIdempotentGeneration(t *testing.T) {
	is := is.New(t)
	gen := movegen.NewGenerator()
	g := game.Deal(99, 1)
	first := notations(gen.GenAll(g))
	second := notations(gen.GenAll(g))
	is.Equal(first, second)
}

func TestFreshDealHasDraw(t *testing.T) {
	is := is.New(t)
	gen := movegen.NewGenerator()
	moves := gen.GenAll(game.Deal(3, 1))
	foundDraw := false
	for _, m := range moves {
		if m.Type == move.MoveTypeStockDraw {
			foundDraw = true
		}
	}
	is.True(foundDraw)
}

func TestOneMoveFromWin(t *testing.T) {
	is := is.New(t)
	gen := movegen.NewGenerator()
	moves := gen.GenAll(testcommon.OneMoveFromWin())
	// The foundation move plus the King relocations onto the six empty
	// columns.
	is.Equal(len(moves), 7)
	foundationMoves := 0
	for _, m := range moves {
		if m.IsFoundationMove() {
			foundationMoves++
			is.Equal(m.Type, move.MoveTypeTableauToFoundation)
			is.Equal(m.FromCol, 0)
			is.True(m.Card.SameIdentity(card.Card{Suit: card.Spades, Rank: card.King}))
		}
	}
	is.Equal(foundationMoves, 1)
}

func TestWasteMoves(t *testing.T) {
	is := is.New(t)
	gen := movegen.NewGenerator()
	g := game.NewGame(1)
	g.Waste = []card.Card{{Suit: card.Hearts, Rank: card.Ace, FaceUp: true}}
	g.Tableau[0] = []card.Card{{Suit: card.Spades, Rank: 2, FaceUp: true}}

	moves := gen.GenAll(g)
	// Draw (recycle), Ace to its foundation, and Ace onto the black 2.
	got := notations(moves)
	is.Equal(got, []string{"draw", "w2f AH", "w2t 0 AH"})
}

func TestTableauSequenceMoves(t *testing.T) {
	is := is.New(t)
	gen := movegen.NewGenerator()
	g := game.NewGame(1)
	// col0: hidden card, then 8S-7H face up; col1: 9H face up.
	g.Tableau[0] = []card.Card{
		{Suit: card.Diamonds, Rank: 3},
		{Suit: card.Spades, Rank: 8, FaceUp: true},
		{Suit: card.Hearts, Rank: 7, FaceUp: true},
	}
	g.Tableau[1] = []card.Card{{Suit: card.Hearts, Rank: 9, FaceUp: true}}

	moves := gen.GenAll(g)
	// The full 8S-7H run moves onto the 9H; the 7H alone fits nowhere.
	wantRun := move.NewTableauToTableau(
		card.Card{Suit: card.Spades, Rank: 8, FaceUp: true}, 0, 1, 2)
	found := false
	for _, m := range moves {
		if m.Equals(wantRun) {
			found = true
		}
		if m.Type == move.MoveTypeTableauToTableau {
			is.True(m.Equals(wantRun)) // no other tableau moves expected
		}
	}
	is.True(found)
}
