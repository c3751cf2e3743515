package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/redclover/klondike/card"
)

func TestNotationRoundTrip(t *testing.T) {
	is := is.New(t)
	qh, _ := card.Parse("QH")
	tenC, _ := card.Parse("10C")
	moves := []*Move{
		NewStockDraw(),
		NewWasteToFoundation(qh),
		NewWasteToTableau(tenC, 4),
		NewTableauToFoundation(qh, 2),
		NewTableauToTableau(tenC, 5, 2, 3),
	}
	for _, m := range moves {
		parsed, err := Parse(m.ShortDescription())
		is.NoErr(err)
		is.True(parsed.Equals(m))
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	is := is.New(t)
	for _, bad := range []string{
		"", "jump 3", "draw now", "w2f", "w2f XX", "t2t 1 2 3",
		"t2t 1 2 0 QH", "t2t a b c QH", "w2t -1 QH",
	} {
		_, err := Parse(bad)
		is.True(err != nil)
	}
}

func TestEqualsIgnoresEquity(t *testing.T) {
	is := is.New(t)
	qh, _ := card.Parse("QH")
	a := NewWasteToFoundation(qh)
	b := NewWasteToFoundation(qh)
	b.SetEquity(123)
	is.True(a.Equals(b))
	is.True(!a.Equals(NewStockDraw()))
	is.True(!a.Equals(nil))
}

func TestFoundationClassification(t *testing.T) {
	is := is.New(t)
	qh, _ := card.Parse("QH")
	is.True(NewWasteToFoundation(qh).IsFoundationMove())
	is.True(NewTableauToFoundation(qh, 0).IsFoundationMove())
	is.True(!NewStockDraw().IsFoundationMove())
	is.True(!NewTableauToTableau(qh, 0, 1, 1).IsFoundationMove())
}
