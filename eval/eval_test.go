package eval_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/redclover/klondike/eval"
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/testcommon"
)

func TestWonScoresOneHundred(t *testing.T) {
	is := is.New(t)
	is.Equal(eval.WinProbability(testcommon.Won()), 100.0)
	is.Equal(eval.Progress(testcommon.Won()), 1.0)
}

func TestFreshDealScoresLow(t *testing.T) {
	is := is.New(t)
	p := eval.WinProbability(game.Deal(8, 1))
	is.True(p >= 0)
	is.True(p < 15)
}

func TestNearWinScoresHigh(t *testing.T) {
	is := is.New(t)
	is.True(eval.WinProbability(testcommon.OneMoveFromWin()) > 90)
}

func TestMonotonicWithFoundationProgress(t *testing.T) {
	is := is.New(t)
	g := testcommon.OneMoveFromWin()
	before := eval.WinProbability(g)
	kp := g.Copy()
	is.NoErr(kp.ApplyMove(move.NewTableauToFoundation(g.Tableau[0][0], 0)))
	is.True(eval.WinProbability(kp) > before)
}

func TestInsights(t *testing.T) {
	is := is.New(t)
	fresh := eval.Insights(game.Deal(2, 1))
	is.True(len(fresh) > 0)
	contains := func(list []string, want string) bool {
		for _, s := range list {
			if s == want {
				return true
			}
		}
		return false
	}
	is.True(contains(fresh, "no foundation progress yet"))

	near := eval.Insights(testcommon.OneMoveFromWin())
	is.True(contains(near, "foundation progress high"))
	is.True(contains(near, "all tableau cards revealed"))
}
