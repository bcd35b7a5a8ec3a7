package pieces

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/garlicgarrison/chess-variant-rules/moveid"
)

var (
	ErrInvalidSymbolPair = errors.New("symbol pair must be two distinct non-digit characters")
	ErrDuplicateSymbol   = errors.New("duplicate symbol")
	ErrDuplicateName     = errors.New("duplicate piece name")
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Declaration is a piece as written in a ruleset file.
type Declaration struct {
	Name       string
	Symbols    string
	Moves      []string
	Promotable bool
	PromotesTo string
}

// PieceType is shared by every piece of one kind. It is never modified after Build.
type PieceType struct {
	Name       string
	White      rune
	Black      rune
	Moves      []*moveid.Move
	Promotable bool
	PromotesTo string
}

func (pt *PieceType) Symbol(c Color) rune {
	if c == White {
		return pt.White
	}
	return pt.Black
}

// Owner reports which player a board symbol of this type belongs to.
func (pt *PieceType) Owner(symbol rune) (Color, bool) {
	switch symbol {
	case pt.White:
		return White, true
	case pt.Black:
		return Black, true
	}
	return White, false
}

func (pt *PieceType) String() string {
	return fmt.Sprintf("%s (%c%c)", pt.Name, pt.White, pt.Black)
}

// Build decodes every move-ID of decl. All failures are collected into a
// *Report naming the piece and the offending move-ID.
func Build(decl Declaration) (*PieceType, error) {
	white, black, err := splitSymbols(decl.Symbols)
	if err != nil {
		return nil, &Report{Problems: []*Problem{{Piece: decl.Name, Err: err}}}
	}

	pt := &PieceType{
		Name:       decl.Name,
		White:      white,
		Black:      black,
		Moves:      make([]*moveid.Move, 0, len(decl.Moves)),
		Promotable: decl.Promotable,
		PromotesTo: decl.PromotesTo,
	}

	report := &Report{}
	for _, id := range decl.Moves {
		m, err := moveid.Decode(id)
		if err != nil {
			report.add(decl.Name, id, err)
			continue
		}
		pt.Moves = append(pt.Moves, m)
	}

	if err := report.Err(); err != nil {
		return nil, err
	}
	return pt, nil
}

func splitSymbols(pair string) (rune, rune, error) {
	if utf8.RuneCountInString(pair) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSymbolPair, pair)
	}
	white, size := utf8.DecodeRuneInString(pair)
	black, _ := utf8.DecodeRuneInString(pair[size:])

	for _, r := range []rune{white, black} {
		if r == utf8.RuneError || r == '/' || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSymbolPair, pair)
		}
	}
	if white == black {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSymbolPair, pair)
	}
	return white, black, nil
}
