package board

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// String draws the board with one symbol per square and '.' for empty ones.
func (b *Board) String() string {
	return b.draw(1, func(p *Piece) string {
		if p == nil {
			return "."
		}
		return string(p.Symbol)
	})
}

// IDMap draws the board with the ID of the piece on each square, 0 for empty.
func (b *Board) IDMap() string {
	width := len(strconv.Itoa(len(b.Pieces)))
	return b.draw(width, func(p *Piece) string {
		if p == nil {
			return "0"
		}
		return strconv.Itoa(int(p.ID))
	})
}

func (b *Board) draw(width int, cell func(*Piece) string) string {
	var sb strings.Builder
	for row := 0; row < b.Ranks; row++ {
		for file := 0; file < b.Files; file++ {
			if file != 0 {
				sb.WriteString("  ")
			}
			s := cell(b.At(row, file))
			if pad := width - utf8.RuneCountInString(s); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			sb.WriteString(s)
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
