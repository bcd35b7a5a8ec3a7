package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/garlicgarrison/chess-variant-rules/pieces"
)

var (
	ErrMalformedPlacement      = errors.New("malformed placement")
	ErrUnknownSymbol           = errors.New("unknown symbol")
	ErrMissingStartingPosition = errors.New("missing starting position")
)

// Piece is one piece on a board. Its type is shared and read-only.
type Piece struct {
	ID         uint16
	Color      pieces.Color
	Symbol     rune
	Type       *pieces.PieceType
	HasCastled bool
	History    []string
}

// Board stores piece IDs row by row in the order the placement is written,
// 0 marking an empty square. Pieces[i] has ID i+1.
type Board struct {
	Files   int
	Ranks   int
	Squares []uint16
	Pieces  []*Piece
}

/*
	Builds a board from a placement string: ranks separated by '/', runs of
	digits for empty squares, any other character a piece symbol looked up in
	the catalog. Anything after the first space (side to move, castling and so
	on in a full FEN) is ignored. Every rank must have the same width.
*/
func New(catalog *pieces.Catalog, placement string) (*Board, error) {
	fields := strings.Fields(placement)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedPlacement)
	}

	rows := strings.Split(fields[0], "/")
	b := &Board{Ranks: len(rows)}

	for r, row := range rows {
		file, run, inRun := 0, 0, false
		flush := func() error {
			if !inRun {
				return nil
			}
			if run == 0 {
				return fmt.Errorf("%w: empty run of zero squares in rank %d", ErrMalformedPlacement, r+1)
			}
			for i := 0; i < run; i++ {
				b.Squares = append(b.Squares, 0)
			}
			file += run
			run, inRun = 0, false
			return nil
		}

		for _, ch := range row {
			if ch >= '0' && ch <= '9' {
				run = run*10 + int(ch-'0')
				inRun = true
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}

			pt, ok := catalog.Lookup(ch)
			if !ok {
				return nil, fmt.Errorf("%w %q at rank %d file %d", ErrUnknownSymbol, ch, r+1, file+1)
			}
			color, _ := pt.Owner(ch)

			p := &Piece{
				ID:     uint16(len(b.Pieces) + 1),
				Color:  color,
				Symbol: ch,
				Type:   pt,
			}
			b.Pieces = append(b.Pieces, p)
			b.Squares = append(b.Squares, p.ID)
			file++
		}
		if err := flush(); err != nil {
			return nil, err
		}

		if file == 0 {
			return nil, fmt.Errorf("%w: rank %d is empty", ErrMalformedPlacement, r+1)
		}
		if r == 0 {
			b.Files = file
		} else if file != b.Files {
			return nil, fmt.Errorf("%w: rank %d has %d files, expected %d", ErrMalformedPlacement, r+1, file, b.Files)
		}
	}

	return b, nil
}

// At returns the piece on the given row (as written) and file, or nil.
func (b *Board) At(row, file int) *Piece {
	if row < 0 || row >= b.Ranks || file < 0 || file >= b.Files {
		return nil
	}
	return b.Piece(b.Squares[row*b.Files+file])
}

func (b *Board) Piece(id uint16) *Piece {
	if id == 0 || int(id) > len(b.Pieces) {
		return nil
	}
	return b.Pieces[id-1]
}

// Placement writes the board back as a placement string.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < b.Ranks; row++ {
		empty := 0
		for file := 0; file < b.Files; file++ {
			p := b.At(row, file)
			if p == nil {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(fmt.Sprintf("%d", empty))
			}
			sb.WriteRune(p.Symbol)
			empty = 0
		}

		if empty != 0 {
			sb.WriteString(fmt.Sprintf("%d", empty))
		}
		if row != b.Ranks-1 {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}

// Count returns how many pieces each color has.
func (b *Board) Count() map[pieces.Color]int {
	out := map[pieces.Color]int{pieces.White: 0, pieces.Black: 0}
	for _, p := range b.Pieces {
		out[p.Color]++
	}
	return out
}

// Placements are named starting placements.
type Placements map[string]string

func (p Placements) Lookup(name string) (string, error) {
	placement, ok := p[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingStartingPosition, name)
	}
	return placement, nil
}

// Setup builds the board of a named placement.
func Setup(catalog *pieces.Catalog, placements Placements, name string) (*Board, error) {
	placement, err := placements.Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(catalog, placement)
}
