// Package advisor is the boundary to an external natural-language hint
// source. The collaborator receives a textual state and the legal move
// list and returns free-form text; nothing about that text is trusted.
// Its reply is parsed against the strict move grammar and re-validated
// against the generator. Any failure degrades to "no recommendation",
// never to a move the generator would not itself propose.
package advisor

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
	"github.com/redclover/klondike/movegen"
)

// ErrNoRecommendation is returned whenever the collaborator's output
// cannot be turned into a legal move. Callers fall back to the solver's
// own hint.
var ErrNoRecommendation = errors.New("no recommendation available")

// Recommender is the external collaborator. Implementations typically
// wrap an LLM API; the core never depends on their output being
// well-formed.
type Recommender interface {
	Recommend(ctx context.Context, stateText string, legalMoves []string) (string, error)
}

// Advisor validates collaborator output against a position.
type Advisor struct {
	rec Recommender
	gen *movegen.Generator
}

// New creates an Advisor around a Recommender.
func New(rec Recommender) *Advisor {
	return &Advisor{rec: rec, gen: movegen.NewGenerator()}
}

// Hint asks the collaborator for a move and returns it only if it parses
// under the strict grammar and structurally matches a move the generator
// proposes for g. Every other outcome is ErrNoRecommendation.
func (a *Advisor) Hint(ctx context.Context, g *game.Game) (*move.Move, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	legal := a.gen.GenAll(g)
	if len(legal) == 0 {
		return nil, ErrNoRecommendation
	}
	notations := make([]string, len(legal))
	for i, m := range legal {
		notations[i] = m.ShortDescription()
	}

	text, err := a.rec.Recommend(ctx, g.String(), notations)
	if err != nil {
		log.Warn().Err(err).Msg("recommender failed")
		return nil, ErrNoRecommendation
	}
	return Validate(text, legal)
}

// Validate parses free text as a move and checks it against the legal
// set. Exposed separately so transports that already hold a reply can
// reuse the validation.
func Validate(text string, legal []*move.Move) (*move.Move, error) {
	parsed, err := move.Parse(firstLine(text))
	if err != nil {
		log.Debug().Err(err).Str("text", text).Msg("unparseable recommendation")
		return nil, ErrNoRecommendation
	}
	for _, m := range legal {
		if m.Equals(parsed) {
			return m, nil
		}
	}
	log.Debug().Str("move", parsed.ShortDescription()).Msg("recommendation not legal")
	return nil, ErrNoRecommendation
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
