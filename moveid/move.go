package moveid

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Shape uint8

const (
	Plain Shape = iota
	PreviousMoveConditioned
	EnPassant
)

func (s Shape) String() string {
	switch s {
	case Plain:
		return "plain"
	case PreviousMoveConditioned:
		return "previous-move"
	case EnPassant:
		return "en-passant"
	default:
		return fmt.Sprintf("shape(%d)", s)
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Translation holds magnitudes only, direction comes from the reflections.
type Translation struct {
	File uint8 `json:"file"`
	Rank uint8 `json:"rank"`
}

// Reflections are the four symmetry axes of a move-ID, in slot order:
// mirror file, mirror rank, diagonal, anti-diagonal.
type Reflections [4]bool

// Location is a relative offset written as four magnitudes:
// +file, +rank, -file, -rank.
type Location [4]uint8

// Offset folds the four magnitudes into a signed (file, rank) delta.
func (l Location) Offset() (int, int) {
	return int(l[0]) - int(l[2]), int(l[1]) - int(l[3])
}

// PieceRef names a piece the way move-IDs do: a player character and a board symbol.
type PieceRef struct {
	Player byte `json:"player"`
	Symbol byte `json:"symbol"`
}

func (p PieceRef) String() string {
	return string([]byte{p.Player, p.Symbol})
}

func (p PieceRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

type TargetCondition struct {
	Piece            PieceRef `json:"piece"`
	RelativeLocation Location `json:"relative_location"`
}

type CastleCondition struct {
	Piece            PieceRef `json:"piece"`
	RelativeLocation Location `json:"relative_location"`
}

type EnPassantCapture struct {
	Piece            PieceRef `json:"piece"`
	RelativeLocation Location `json:"relative_location"`
	// PreviousMove is the move the captured piece must have just played, nil
	// when the capture carries no such requirement.
	PreviousMove *Move `json:"previous_move,omitempty"`
}

// Move is one decoded movement rule. Shape decides which of PreviousMove and
// EnPassant may be set; Plain records carry neither.
type Move struct {
	ID    string `json:"id"`
	Shape Shape  `json:"shape"`

	Translation Translation `json:"translation"`
	Reflections Reflections `json:"reflections"`

	Captures      bool `json:"captures"`
	Moves         bool `json:"moves"`
	Jump          bool `json:"jump"`
	AnyMultiple   bool `json:"any_multiple"`
	OnlyFirstMove bool `json:"only_first_move"`
	Once          bool `json:"once"`

	Target *TargetCondition `json:"target,omitempty"`
	Castle *CastleCondition `json:"castle,omitempty"`

	// CastleMovement and CannotMove are their own slots and are kept even
	// when the castle block is empty.
	CastleMovement Location `json:"castle_movement"`
	CannotMove     bool     `json:"castle_cannot_move"`

	PreviousMove *Move             `json:"previous_move,omitempty"`
	EnPassant    *EnPassantCapture `json:"enpassant,omitempty"`
}

func (m *Move) RequiresTargetPiece() bool { return m.Target != nil }

func (m *Move) Castles() bool { return m.Castle != nil }

func (m *Move) CastleCannotMove() bool { return m.CannotMove }

func (m *Move) MakesPreviousMove() bool { return m.Shape == PreviousMoveConditioned }

func (m *Move) IsEnPassant() bool { return m.Shape == EnPassant }

// String is a one-line summary for diagnostics.
func (m *Move) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d,%d)", m.Shape, m.Translation.File, m.Translation.Rank)

	flags := []struct {
		set  bool
		name string
	}{
		{m.Captures, "captures"},
		{m.Moves, "moves"},
		{m.Jump, "jump"},
		{m.AnyMultiple, "any"},
		{m.OnlyFirstMove, "first"},
		{m.Once, "once"},
	}
	for _, f := range flags {
		if f.set {
			sb.WriteRune(' ')
			sb.WriteString(f.name)
		}
	}

	if m.Target != nil {
		fmt.Fprintf(&sb, " target=%s@%v", m.Target.Piece, m.Target.RelativeLocation)
	}
	if m.Castle != nil {
		fmt.Fprintf(&sb, " castle=%s@%v->%v", m.Castle.Piece, m.Castle.RelativeLocation, m.CastleMovement)
	}
	if m.CannotMove {
		sb.WriteString(" cannot-move")
	}
	if m.PreviousMove != nil {
		fmt.Fprintf(&sb, " after[%s]", m.PreviousMove)
	}
	if m.EnPassant != nil {
		fmt.Fprintf(&sb, " takes=%s@%v", m.EnPassant.Piece, m.EnPassant.RelativeLocation)
		if m.EnPassant.PreviousMove != nil {
			fmt.Fprintf(&sb, " after[%s]", m.EnPassant.PreviousMove)
		}
	}
	return sb.String()
}
