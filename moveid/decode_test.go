package moveid

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	pawnPush    = "0100000m0000lM0r000000sr000000t00000er000000M0!"
	pawnDouble  = "0200000m00f0lM0r000000sr000000t00000er000000M0!"
	pawnCapture = "111000c00000lM0r000000sr000000t00000er000000M0!"
	rookSlide   = "101234cm0n00lM0r000000sr000000t00000er000000M0!"
	knightJump  = "211234cmj000lM0r000000sr000000t00000er000000M0!"
	bishopSlide = "111200cm0n00lM0r000000sr000000t00000er000000M0!"
	kingCastle  = "2000000m00f0lM0r000000srwR3000t0020per000000M0!"

	pawnEnPassant = "111000c00000lM0r000000sr000000t00000erbp1000M" + pawnDouble + "!"
	afterDouble   = "1000000m000olM" + pawnDouble + "rwP0100sr000000t00000er000000M0!"
	afterAfter    = "0100000m0000lM" + afterDouble + "r000000sr000000t00000er000000M0!"
	castleAfter   = "1000000m000olM" + pawnDouble + "rwP0100srwR3000t0020per000000M0!"
	pushCannot    = "0100000m0000lM0r000000sr000000t0000per000000M0!"

	knightScenario = "2100000m000000000000000000000000000000000000000"
)

func TestDecodePlainScenario(t *testing.T) {
	m, err := Decode(knightScenario)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := &Move{
		ID:          knightScenario,
		Shape:       Plain,
		Translation: Translation{File: 2, Rank: 1},
		Moves:       true,
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("decoded record mismatch (-want +got):\n%s", diff)
	}
	if m.RequiresTargetPiece() || m.Castles() || m.CastleCannotMove() || m.IsEnPassant() || m.MakesPreviousMove() {
		t.Fatalf("plain record reports a condition: %s", m)
	}
}

func TestDecodeInvalidCaptures(t *testing.T) {
	id := knightScenario[:6] + "x" + knightScenario[7:]

	_, err := Decode(id)
	if !errors.Is(err, ErrInvalidFlagCharacter) {
		t.Fatalf("expected ErrInvalidFlagCharacter, got %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Slot != "captures" || de.Offset != 6 || de.Char != 'x' {
		t.Fatalf("unexpected error detail: %+v", de)
	}
}

func TestDecodeFlags(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		check func(*Move) bool
	}{
		{"rook", rookSlide, func(m *Move) bool {
			return m.Captures && m.Moves && m.AnyMultiple && !m.Jump && m.Reflections == Reflections{true, true, true, true}
		}},
		{"knight", knightJump, func(m *Move) bool {
			return m.Jump && !m.AnyMultiple && m.Translation == Translation{2, 1}
		}},
		{"bishop", bishopSlide, func(m *Move) bool {
			return m.Reflections == Reflections{true, true, false, false}
		}},
		{"pawn double", pawnDouble, func(m *Move) bool {
			return m.OnlyFirstMove && m.Moves && !m.Captures
		}},
		{"pawn capture", pawnCapture, func(m *Move) bool {
			return m.Captures && !m.Moves && m.Reflections[0]
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.id)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if m.Shape != Plain {
				t.Fatalf("expected plain shape, got %s", m.Shape)
			}
			if !tt.check(m) {
				t.Fatalf("unexpected record: %s", m)
			}
		})
	}
}

func TestDecodeCastle(t *testing.T) {
	m, err := Decode(kingCastle)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !m.Castles() || !m.CastleCannotMove() {
		t.Fatalf("expected castling record, got %s", m)
	}
	want := &CastleCondition{
		Piece:            PieceRef{Player: 'w', Symbol: 'R'},
		RelativeLocation: Location{3, 0, 0, 0},
	}
	if diff := cmp.Diff(want, m.Castle); diff != "" {
		t.Fatalf("castle mismatch (-want +got):\n%s", diff)
	}
	if m.CastleMovement != (Location{0, 0, 2, 0}) {
		t.Fatalf("castle movement = %v", m.CastleMovement)
	}
	if f, r := m.CastleMovement.Offset(); f != -2 || r != 0 {
		t.Fatalf("castle movement offset = (%d,%d)", f, r)
	}
	if m.RequiresTargetPiece() {
		t.Fatalf("castle record should not require a target piece")
	}
}

func TestDecodeCannotMoveWithoutCastle(t *testing.T) {
	m, err := Decode(pushCannot)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Castles() {
		t.Fatalf("empty castle block should not castle: %s", m)
	}
	if !m.CastleCannotMove() {
		t.Fatalf("cannot-move flag lost: %s", m)
	}
}

func TestDecodeEnPassant(t *testing.T) {
	m, err := Decode(pawnEnPassant)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if m.Shape != EnPassant || !m.IsEnPassant() || m.MakesPreviousMove() {
		t.Fatalf("expected en passant shape, got %s", m.Shape)
	}
	if m.PreviousMove != nil {
		t.Fatalf("en passant record carries a previous move")
	}
	ep := m.EnPassant
	if ep.Piece != (PieceRef{Player: 'b', Symbol: 'p'}) || ep.RelativeLocation != (Location{1, 0, 0, 0}) {
		t.Fatalf("unexpected captured piece: %+v", ep)
	}
	if ep.PreviousMove == nil || ep.PreviousMove.ID != pawnDouble {
		t.Fatalf("captured piece previous move = %v", ep.PreviousMove)
	}
	if !ep.PreviousMove.OnlyFirstMove {
		t.Fatalf("nested move not decoded: %s", ep.PreviousMove)
	}
}

func TestDecodeEnPassantWithoutPreviousMove(t *testing.T) {
	id := pawnCapture[:38] + "bp1000M!"

	m, err := Decode(id)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Shape != EnPassant || m.EnPassant.PreviousMove != nil {
		t.Fatalf("unexpected record: %s", m)
	}
}

func TestDecodePreviousMove(t *testing.T) {
	m, err := Decode(afterDouble)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if m.Shape != PreviousMoveConditioned || !m.MakesPreviousMove() {
		t.Fatalf("expected previous-move shape, got %s", m.Shape)
	}
	if !m.Once || !m.Moves || m.Translation != (Translation{1, 0}) {
		t.Fatalf("prefix decoded wrong: %s", m)
	}
	if m.PreviousMove == nil || m.PreviousMove.ID != pawnDouble {
		t.Fatalf("previous move = %v", m.PreviousMove)
	}

	// the tail is shifted by the nested move-ID
	want := &TargetCondition{Piece: PieceRef{Player: 'w', Symbol: 'P'}, RelativeLocation: Location{0, 1, 0, 0}}
	if diff := cmp.Diff(want, m.Target); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
	if m.Castles() {
		t.Fatalf("unexpected castle condition")
	}
}

func TestDecodePreviousMoveCastle(t *testing.T) {
	m, err := Decode(castleAfter)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Shape != PreviousMoveConditioned || m.PreviousMove.ID != pawnDouble {
		t.Fatalf("unexpected record: %s", m)
	}

	want := &CastleCondition{Piece: PieceRef{Player: 'w', Symbol: 'R'}, RelativeLocation: Location{3, 0, 0, 0}}
	if diff := cmp.Diff(want, m.Castle); diff != "" {
		t.Fatalf("castle mismatch (-want +got):\n%s", diff)
	}
	if m.CastleMovement != (Location{0, 0, 2, 0}) || !m.CastleCannotMove() {
		t.Fatalf("castle tail decoded wrong: %s", m)
	}
	if m.Target == nil || m.Target.Piece != (PieceRef{Player: 'w', Symbol: 'P'}) {
		t.Fatalf("target decoded wrong: %s", m)
	}
}

func TestDecodeNestedPreviousMove(t *testing.T) {
	m, err := Decode(afterAfter)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	depth := 0
	for cur := m; cur.PreviousMove != nil; cur = cur.PreviousMove {
		depth++
	}
	if depth != 2 {
		t.Fatalf("expected two nested previous moves, got %d", depth)
	}
	if m.PreviousMove.Target == nil {
		t.Fatalf("inner record lost its target condition")
	}
}

func TestDecodeShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want error
	}{
		{"empty", "", ErrMalformedLength},
		{"short", "0100000m", ErrMalformedLength},
		{"long plain", pawnPush + "0", ErrMalformedLength},
		{"truncated en passant", pawnPush[:40], ErrMalformedLength},
		{"previous move without nested terminator", "0100000m0000lM" + strings.Repeat("0", 40) + "M0!", ErrMalformedLength},
		{"both anchors", pawnPush[:45] + "0M0!", ErrAmbiguousShape},
		{"previous move and en passant", "1000000m000olM" + pawnDouble + "rwP0100sr000000t00000erbp1000M" + pawnDouble + "!", ErrAmbiguousShape},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode(tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got record %v err %v", tt.want, m, err)
			}
			if m != nil {
				t.Fatalf("partial record returned alongside error")
			}
		})
	}
}

func TestDecodeNestedError(t *testing.T) {
	bad := pawnDouble[:7] + "q" + pawnDouble[8:]
	id := "1000000m000olM" + bad + "rwP0100sr000000t00000er000000M0!"

	_, err := Decode(id)
	if !errors.Is(err, ErrInvalidFlagCharacter) {
		t.Fatalf("expected nested ErrInvalidFlagCharacter, got %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) || de.Slot != "previous_move" {
		t.Fatalf("expected outer previous_move slot, got %v", err)
	}
	var inner *DecodeError
	if !errors.As(de.Err, &inner) || inner.Slot != "moves" || inner.ID != bad {
		t.Fatalf("expected inner moves slot, got %v", de.Err)
	}
}

// Every flag slot rejects anything outside its two-character alphabet, and
// the error names that slot regardless of the rest of the string.
func TestDecodeFlagSlots(t *testing.T) {
	slots := []struct {
		off  int
		slot string
	}{
		{0, "translation"},
		{1, "translation"},
		{2, "reflection_1"},
		{3, "reflection_2"},
		{4, "reflection_3"},
		{5, "reflection_4"},
		{6, "captures"},
		{7, "moves"},
		{8, "jump"},
		{9, "any_multiple"},
		{10, "only_first_move"},
		{11, "once"},
		{18, "target_piece_relative_location"},
		{21, "target_piece_relative_location"},
		{26, "castle_target_piece_relative_location"},
		{31, "castle_target_piece_movement"},
		{34, "castle_target_piece_movement"},
		{35, "castle_target_piece_cannot_move"},
	}

	// previous-move bases carry the nested move-ID in place of the single
	// slot at 14, so everything after it moves by the nested length less one
	shifted := len(pawnDouble) - 1
	bases := []struct {
		id    string
		shift int
	}{
		{rookSlide, 0},
		{knightJump, 0},
		{kingCastle, 0},
		{knightScenario, 0},
		{afterDouble, shifted},
		{castleAfter, shifted},
	}

	for _, base := range bases {
		for _, s := range slots {
			off := s.off
			if off > offPreviousMove {
				off += base.shift
			}
			for _, c := range []byte{'x', 'Z', '!', 'c'} {
				if base.id[off] == c {
					continue
				}
				// 'c' is only legal in the captures slot
				if s.off == offCaptures && c == 'c' {
					continue
				}
				// a stray terminator in a shifted tail moves the nested boundary
				if base.shift != 0 && c == '!' {
					continue
				}
				id := base.id[:off] + string(c) + base.id[off+1:]

				_, err := Decode(id)
				var de *DecodeError
				if !errors.As(err, &de) || !errors.Is(err, ErrInvalidFlagCharacter) {
					t.Fatalf("%q: expected invalid flag error, got %v", id, err)
				}
				if de.Slot != s.slot || de.Offset != off {
					t.Fatalf("%q: expected slot %s at %d, got %s at %d", id, s.slot, off, de.Slot, de.Offset)
				}
			}
		}
	}
}

func TestDecodeConditionSentinel(t *testing.T) {
	tests := []struct {
		name   string
		block  string
		target bool
	}{
		{"all zero", "000000", false},
		{"player only", "w00000", true},
		{"symbol only", "0P0000", true},
		{"location only", "000001", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			target := pawnPush[:16] + tt.block + pawnPush[22:]
			m, err := Decode(target)
			if err != nil {
				t.Fatalf("decode target: %v", err)
			}
			if m.RequiresTargetPiece() != tt.target {
				t.Fatalf("target: got %v want %v", m.RequiresTargetPiece(), tt.target)
			}

			castle := pawnPush[:24] + tt.block + pawnPush[30:]
			m, err = Decode(castle)
			if err != nil {
				t.Fatalf("decode castle: %v", err)
			}
			if m.Castles() != tt.target {
				t.Fatalf("castle: got %v want %v", m.Castles(), tt.target)
			}
		})
	}
}

func TestDecodeDeterministic(t *testing.T) {
	for _, id := range []string{pawnPush, kingCastle, pawnEnPassant, afterDouble, afterAfter} {
		a, err := Decode(id)
		if err != nil {
			t.Fatalf("decode %q: %v", id, err)
		}
		b, err := Decode(id)
		if err != nil {
			t.Fatalf("decode %q: %v", id, err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("decode is not deterministic (-first +second):\n%s", diff)
		}
		if a.ID != id {
			t.Fatalf("id not retained verbatim: %q", a.ID)
		}
	}
}
