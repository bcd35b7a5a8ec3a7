package ruleset

import (
	"github.com/garlicgarrison/chess-variant-rules/board"
	"github.com/garlicgarrison/chess-variant-rules/pieces"
	guuid "github.com/google/uuid"
)

// Game is a board set up from one of a ruleset's placements. Moves are not
// played here; the session only carries the initial state.
type Game struct {
	ID       guuid.UUID
	Ruleset  *Ruleset
	Position string
	Board    *board.Board
	Turn     pieces.Color
}

func NewGame(rs *Ruleset, position string) (*Game, error) {
	b, err := board.Setup(rs.Catalog, rs.Placements, position)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:       guuid.New(),
		Ruleset:  rs,
		Position: position,
		Board:    b,
		Turn:     pieces.White,
	}, nil
}
