package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/garlicgarrison/go-chess"
)

const orthodoxSymbols = "PNBRQKpnbrqk"

var ErrNotOrthodox = errors.New("board is not an orthodox chess position")

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Bishop: 3,
	chess.Knight: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// Orthodox converts an 8x8 board using only the standard symbols into a
// go-chess position with white to move and no castling or en passant rights.
func (b *Board) Orthodox() (*chess.Position, error) {
	game, err := b.orthodoxGame()
	if err != nil {
		return nil, err
	}
	return game.Position(), nil
}

func (b *Board) orthodoxGame() (*chess.Game, error) {
	if b.Files != 8 || b.Ranks != 8 {
		return nil, fmt.Errorf("%w: board is %dx%d", ErrNotOrthodox, b.Files, b.Ranks)
	}
	for _, p := range b.Pieces {
		if !strings.ContainsRune(orthodoxSymbols, p.Symbol) {
			return nil, fmt.Errorf("%w: symbol %q", ErrNotOrthodox, p.Symbol)
		}
	}

	f, err := chess.FEN(b.Placement() + " w - - 0 1")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotOrthodox, err)
	}
	return chess.NewGame(f), nil
}

// Analysis is what go-chess reports about an orthodox board.
type Analysis struct {
	FEN        string `json:"fen"`
	ValidMoves int    `json:"valid_moves"`
	White      int    `json:"white_material"`
	Black      int    `json:"black_material"`
}

func (b *Board) Analyze() (*Analysis, error) {
	game, err := b.orthodoxGame()
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		FEN:        game.Position().String(),
		ValidMoves: len(game.ValidMoves()),
	}
	for _, piece := range game.Position().Board().SquareMap() {
		if piece.Color() == chess.White {
			a.White += pieceValues[piece.Type()]
		} else {
			a.Black += pieceValues[piece.Type()]
		}
	}
	return a, nil
}
