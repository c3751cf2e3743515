// Package equity values candidate moves. The calculator is the only place
// where Klondike strategy lives; the generator stays purely legal and the
// solver just consumes the ordering.
package equity

import (
	"github.com/redclover/klondike/game"
	"github.com/redclover/klondike/move"
)

// EquityCalculator is a calculator of a single move's strategic value
// against a position. Set-dependent adjustments (a draw being penalized
// because better moves exist) are applied by Assign, not here.
type EquityCalculator interface {
	Equity(m *move.Move, g *game.Game) float64
}
