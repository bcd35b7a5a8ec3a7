package moveid

import "strings"

/*
	Canonical layout of a plain move-ID (47 characters):

	  0-1   translation           HV
	  2-5   reflections           1234
	  6-11  flags                 cmjnfo
	  12-15 previous move         lM0r    (nested move-ID replaces the 0)
	  16-21 target piece          FI1234
	  22-23                       sr
	  24-29 castle target piece   FI1234
	  30-34 castle movement       t1234
	  35    castle cannot move    p
	  36-43 en passant piece      erFI1234
	  44-46 en passant previous   M0!     (nested move-ID replaces the 0)
*/
const (
	plainLength = 47

	offTranslation      = 0
	offReflections      = 2
	offCaptures         = 6
	offMoves            = 7
	offJump             = 8
	offAnyMultiple      = 9
	offOnlyFirstMove    = 10
	offOnce             = 11
	offPreviousMove     = 14
	offTarget           = 16
	offCastle           = 24
	offCastleMovement   = 31
	offCastleCannotMove = 35
	offEnPassant        = 38
	offEnPassantMove    = 45

	// characters after the previous-move slot, final '!' included
	tailLength = plainLength - offPreviousMove - 1

	enPassantAnchor    = "lM0r"
	previousMoveAnchor = "M0!"
	nestedAnchor       = "lM"
	terminator         = '!'
	sentinel           = '0'
)

var reflectionChars = [4]byte{'1', '2', '3', '4'}

var reflectionSlots = [4]string{"reflection_1", "reflection_2", "reflection_3", "reflection_4"}

// Decode turns a move-ID into a Move. It never returns a partially filled
// record: any failure is a *DecodeError.
func Decode(id string) (*Move, error) {
	shape, end, err := detect(id)
	if err != nil {
		return nil, err
	}

	d := &decoder{id: id, shift: end - offPreviousMove}
	m := &Move{ID: id, Shape: shape}

	if err := d.prefix(m); err != nil {
		return nil, err
	}

	if shape == PreviousMoveConditioned {
		prev, err := Decode(id[offPreviousMove : end+1])
		if err != nil {
			return nil, d.nested("previous_move", offPreviousMove, err)
		}
		m.PreviousMove = prev
	}

	if err := d.conditions(m); err != nil {
		return nil, err
	}

	if shape == EnPassant {
		ep, err := d.enPassant()
		if err != nil {
			return nil, err
		}
		m.EnPassant = ep
	}

	return m, nil
}

// detect picks the shape of id. For the previous-move shape it also returns
// the index of the nested move-ID's terminator; otherwise the index of the
// single-character previous-move slot, so the tail is never shifted.
func detect(id string) (Shape, int, error) {
	if len(id) == plainLength {
		return Plain, offPreviousMove, nil
	}
	if len(id) <= offTarget {
		return 0, 0, &DecodeError{ID: id, Err: ErrMalformedLength}
	}

	enPassant := id[12:16] == enPassantAnchor
	previous := strings.HasSuffix(id, previousMoveAnchor)

	switch {
	case enPassant && previous:
		return 0, 0, &DecodeError{ID: id, Err: ErrAmbiguousShape}

	case enPassant:
		if len(id) <= offEnPassantMove {
			return 0, 0, &DecodeError{ID: id, Err: ErrMalformedLength}
		}
		return EnPassant, offPreviousMove, nil

	case previous:
		end := strings.LastIndexByte(id[:len(id)-1], terminator)
		if end < offPreviousMove || len(id)-end-1 != tailLength {
			return 0, 0, &DecodeError{ID: id, Err: ErrMalformedLength}
		}
		return PreviousMoveConditioned, end, nil

	case id[12:14] == nestedAnchor && id[len(id)-1] == terminator:
		// a nested previous move followed by a captured piece's previous move
		return 0, 0, &DecodeError{ID: id, Err: ErrAmbiguousShape}
	}

	return 0, 0, &DecodeError{ID: id, Err: ErrMalformedLength}
}

type decoder struct {
	id    string
	shift int
}

// pos maps a plain-layout offset to its index in id. Everything after the
// previous-move slot moves by the length of the nested move-ID.
func (d *decoder) pos(off int) int {
	if off > offPreviousMove {
		return off + d.shift
	}
	return off
}

func (d *decoder) invalid(slot string, p int) error {
	return &DecodeError{ID: d.id, Slot: slot, Offset: p, Char: d.id[p], Err: ErrInvalidFlagCharacter}
}

func (d *decoder) nested(slot string, p int, err error) error {
	return &DecodeError{ID: d.id, Slot: slot, Offset: p, Err: err}
}

func (d *decoder) flag(off int, slot string, set byte) (bool, error) {
	p := d.pos(off)
	switch d.id[p] {
	case sentinel:
		return false, nil
	case set:
		return true, nil
	default:
		return false, d.invalid(slot, p)
	}
}

func (d *decoder) digit(off int, slot string) (uint8, error) {
	p := d.pos(off)
	c := d.id[p]
	if c < '0' || c > '9' {
		return 0, d.invalid(slot, p)
	}
	return c - '0', nil
}

func (d *decoder) location(off int, slot string) (Location, error) {
	var l Location
	for i := range l {
		v, err := d.digit(off+i, slot)
		if err != nil {
			return Location{}, err
		}
		l[i] = v
	}
	return l, nil
}

// block reads a six-character piece condition. It is present unless every
// character is the sentinel.
func (d *decoder) block(off int, slot string) (PieceRef, Location, bool, error) {
	p := d.pos(off)
	ref := PieceRef{Player: d.id[p], Symbol: d.id[p+1]}
	loc, err := d.location(off+2, slot)
	if err != nil {
		return PieceRef{}, Location{}, false, err
	}
	return ref, loc, d.id[p:p+6] != "000000", nil
}

func (d *decoder) prefix(m *Move) error {
	var err error
	if m.Translation.File, err = d.digit(offTranslation, "translation"); err != nil {
		return err
	}
	if m.Translation.Rank, err = d.digit(offTranslation+1, "translation"); err != nil {
		return err
	}

	for i := range m.Reflections {
		if m.Reflections[i], err = d.flag(offReflections+i, reflectionSlots[i], reflectionChars[i]); err != nil {
			return err
		}
	}

	flags := []struct {
		dst  *bool
		off  int
		slot string
		set  byte
	}{
		{&m.Captures, offCaptures, "captures", 'c'},
		{&m.Moves, offMoves, "moves", 'm'},
		{&m.Jump, offJump, "jump", 'j'},
		{&m.AnyMultiple, offAnyMultiple, "any_multiple", 'n'},
		{&m.OnlyFirstMove, offOnlyFirstMove, "only_first_move", 'f'},
		{&m.Once, offOnce, "once", 'o'},
	}
	for _, f := range flags {
		if *f.dst, err = d.flag(f.off, f.slot, f.set); err != nil {
			return err
		}
	}
	return nil
}

// conditions reads the target and castle blocks, which every shape carries.
func (d *decoder) conditions(m *Move) error {
	ref, loc, ok, err := d.block(offTarget, "target_piece_relative_location")
	if err != nil {
		return err
	}
	if ok {
		m.Target = &TargetCondition{Piece: ref, RelativeLocation: loc}
	}

	ref, loc, ok, err = d.block(offCastle, "castle_target_piece_relative_location")
	if err != nil {
		return err
	}
	movement, err := d.location(offCastleMovement, "castle_target_piece_movement")
	if err != nil {
		return err
	}
	cannotMove, err := d.flag(offCastleCannotMove, "castle_target_piece_cannot_move", 'p')
	if err != nil {
		return err
	}
	if ok {
		m.Castle = &CastleCondition{Piece: ref, RelativeLocation: loc}
	}
	m.CastleMovement = movement
	m.CannotMove = cannotMove
	return nil
}

func (d *decoder) enPassant() (*EnPassantCapture, error) {
	ref, loc, _, err := d.block(offEnPassant, "enpassant_target_piece_relative_location")
	if err != nil {
		return nil, err
	}
	ep := &EnPassantCapture{Piece: ref, RelativeLocation: loc}

	sub := d.id[offEnPassantMove : len(d.id)-1]
	if sub == "" {
		return ep, nil
	}
	prev, err := Decode(sub)
	if err != nil {
		return nil, d.nested("enpassant_target_piece_previous_move", offEnPassantMove, err)
	}
	ep.PreviousMove = prev
	return ep, nil
}
