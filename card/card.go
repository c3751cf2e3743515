// Package card models the standard 52-card deck: suits, ranks, colors,
// and the compact text notation used by the shell and the advisor boundary.
package card

import (
	"fmt"
	"strings"

	"lukechampine.com/frand"
)

// Suit is one of the four card suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
	NumSuits = 4
)

// Color is the red/black color class of a suit.
type Color uint8

const (
	Black Color = iota
	Red
)

// Rank runs from Ace (1) to King (13).
type Rank uint8

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13

	NumRanks = 13
	DeckSize = 52
)

var suitLetters = [NumSuits]string{"S", "H", "D", "C"}
var rankStrings = [NumRanks + 1]string{
	"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

func (s Suit) String() string {
	if int(s) >= NumSuits {
		return "?"
	}
	return suitLetters[s]
}

// Color returns Red for hearts/diamonds, Black for spades/clubs.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return rankStrings[r]
}

// Card is a playing card. Identity (Suit, Rank) is immutable; only FaceUp
// changes over the course of a game.
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"faceUp"`
}

// Index returns a stable 0..51 ordinal for the card's identity, used for
// hash-table addressing.
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank-Ace)
}

// SameIdentity reports whether two cards are the same physical card,
// ignoring orientation.
func (c Card) SameIdentity(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// String renders the card as rank-then-suit, e.g. "KS" or "10H".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Parse parses the notation produced by String. It accepts lowercase and
// ignores orientation (the returned card is face up).
func Parse(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("card notation too short: %q", s)
	}
	suitLetter := s[len(s)-1:]
	rankStr := s[:len(s)-1]
	var suit Suit
	found := false
	for i, l := range suitLetters {
		if l == suitLetter {
			suit = Suit(i)
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("unknown suit in %q", s)
	}
	for r := Ace; r <= King; r++ {
		if rankStrings[r] == rankStr {
			return Card{Suit: suit, Rank: r, FaceUp: true}, nil
		}
	}
	return Card{}, fmt.Errorf("unknown rank in %q", s)
}

// NewDeck returns the 52 cards in suit-major order, all face down.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Spades; s < NumSuits; s++ {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffledDeck returns a deck shuffled with the given seed. The same seed
// always produces the same deal.
func ShuffledDeck(seed uint64) []Card {
	deck := NewDeck()
	var seedBytes [32]byte
	for i := 0; i < 8; i++ {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	rng := frand.NewCustom(seedBytes[:], 1024, 12)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
