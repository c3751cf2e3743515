package equity_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/redclover/klondike/card"
	"github.com/redclover/klondike/equity"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
)

func up(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r, FaceUp: true}
}

func TestFoundationOutranksEverything(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())
	g := game.NewGame(1)
	// col0: hidden card under a 2S that can score (spades foundation at A).
	g.Foundations[card.Spades] = []card.Card{up(card.Spades, card.Ace)}
	g.Tableau[0] = []card.Card{{Suit: card.Hearts, Rank: 9}, up(card.Spades, 2)}
	// col1: hidden card under a 5H that can shift onto the black 6.
	g.Tableau[1] = []card.Card{{Suit: card.Clubs, Rank: 3}, up(card.Hearts, 5)}
	g.Tableau[2] = []card.Card{up(card.Spades, 6)}

	foundation := move.NewTableauToFoundation(up(card.Spades, 2), 0)
	reveal := move.NewTableauToTableau(up(card.Hearts, 5), 1, 2, 1)
	draw := move.NewStockDraw()

	is.True(calc.Equity(foundation, g) > calc.Equity(reveal, g))
	is.True(calc.Equity(reveal, g) > calc.Equity(draw, g))
}

func TestAcesScoreHighestAmongFoundationMoves(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())
	g := game.NewGame(1)
	g.Waste = []card.Card{up(card.Hearts, card.Ace)}

	ace := move.NewWasteToFoundation(up(card.Hearts, card.Ace))
	two := move.NewWasteToFoundation(up(card.Diamonds, 2))
	nine := move.NewWasteToFoundation(up(card.Diamonds, 9))

	is.True(calc.Equity(ace, g) > calc.Equity(two, g))
	is.True(calc.Equity(two, g) > calc.Equity(nine, g))
}

func TestCounterproductiveMoves(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())
	g := game.NewGame(1)
	g.Foundations[card.Hearts] = []card.Card{up(card.Hearts, card.Ace), up(card.Hearts, 2)}
	g.Tableau[0] = []card.Card{up(card.Spades, 4)}
	g.Tableau[1] = []card.Card{up(card.Diamonds, 5)}
	g.Waste = []card.Card{up(card.Hearts, 3)}

	// Burying an Ace on the tableau.
	buryAce := move.NewWasteToTableau(up(card.Clubs, card.Ace), 1)
	is.True(calc.Equity(buryAce, g) < 0)

	// Waste card that could score moved sideways instead.
	sideways := move.NewWasteToTableau(up(card.Hearts, 3), 0)
	is.True(calc.Equity(sideways, g) < 0)

	// Tableau card that could score moved to another column.
	g.Foundations[card.Spades] = []card.Card{up(card.Spades, card.Ace),
		up(card.Spades, 2), up(card.Spades, 3)}
	shuffle := move.NewTableauToTableau(up(card.Spades, 4), 0, 1, 1)
	is.True(calc.Equity(shuffle, g) < 0)
}

func TestKingToEmptyBonus(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())
	g := game.NewGame(1)
	// KH and its run sit on a hidden card; col1 is empty.
	g.Tableau[0] = []card.Card{
		{Suit: card.Clubs, Rank: 8},
		up(card.Hearts, card.King), up(card.Spades, card.Queen), up(card.Diamonds, card.Jack),
	}

	kingRun := move.NewTableauToTableau(up(card.Hearts, card.King), 0, 1, 3)
	v := calc.Equity(kingRun, g)
	// Reveal + king-to-empty + preserved sequence all apply.
	w := equity.DefaultWeights()
	is.Equal(v, w.Reveal+w.KingToEmpty+w.SequencePreserve)
}

func TestDrawPenalizedOnlyWhenBetterExists(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())

	// Alone, a draw keeps its small positive baseline.
	g := game.Deal(17, 1)
	lone := []*move.Move{move.NewStockDraw()}
	calc.Assign(lone, g)
	is.True(lone[0].Equity() > 0)

	// Next to a foundation move it is penalized.
	g2 := game.NewGame(1)
	g2.Stock = []card.Card{{Suit: card.Clubs, Rank: 9}}
	g2.Waste = []card.Card{up(card.Diamonds, card.Ace)}
	set := []*move.Move{
		move.NewStockDraw(),
		move.NewWasteToFoundation(up(card.Diamonds, card.Ace)),
	}
	calc.Assign(set, g2)
	is.True(set[0].Equity() < 0)
	is.True(set[1].Equity() > 0)
}

func TestSortDeterministic(t *testing.T) {
	is := is.New(t)
	calc := equity.NewHeuristicCalculator(equity.DefaultWeights())
	g := game.Deal(29, 1)
	for trial := 0; trial < 3; trial++ {
		moves := []*move.Move{
			move.NewStockDraw(),
			move.NewTableauToTableau(g.Tableau[3][3], 3, 4, 1),
			move.NewTableauToTableau(g.Tableau[4][4], 4, 3, 1),
		}
		calc.Assign(moves, g)
		equity.Sort(moves)
		if trial == 0 {
			continue
		}
		// Rebuilt fresh each trial; order must not vary.
		prev := []*move.Move{
			move.NewStockDraw(),
			move.NewTableauToTableau(g.Tableau[3][3], 3, 4, 1),
			move.NewTableauToTableau(g.Tableau[4][4], 4, 3, 1),
		}
		calc.Assign(prev, g)
		equity.Sort(prev)
		for i := range moves {
			is.True(moves[i].Equals(prev[i]))
		}
	}
}

func TestConservativePreset(t *testing.T) {
	is := is.New(t)
	aggressive := equity.WeightsByName("aggressive")
	conservative := equity.WeightsByName("conservative")
	is.True(conservative.Counterproductive > aggressive.Counterproductive)
	is.True(conservative.DrawPenalty > aggressive.DrawPenalty)
	is.Equal(equity.WeightsByName("bogus"), aggressive)
}
