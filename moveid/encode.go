package moveid

import "strings"

// Encode writes the canonical move-ID of m. Translation and location values
// must be single decimal digits, as Decode produces them.
func Encode(m *Move) string {
	var sb strings.Builder
	encode(&sb, m)
	return sb.String()
}

func encode(sb *strings.Builder, m *Move) {
	sb.WriteByte('0' + m.Translation.File)
	sb.WriteByte('0' + m.Translation.Rank)

	for i, set := range m.Reflections {
		writeFlag(sb, set, reflectionChars[i])
	}
	writeFlag(sb, m.Captures, 'c')
	writeFlag(sb, m.Moves, 'm')
	writeFlag(sb, m.Jump, 'j')
	writeFlag(sb, m.AnyMultiple, 'n')
	writeFlag(sb, m.OnlyFirstMove, 'f')
	writeFlag(sb, m.Once, 'o')

	sb.WriteString(nestedAnchor)
	if m.PreviousMove != nil {
		encode(sb, m.PreviousMove)
	} else {
		sb.WriteByte(sentinel)
	}
	sb.WriteByte('r')

	if m.Target != nil {
		writeBlock(sb, m.Target.Piece, m.Target.RelativeLocation)
	} else {
		sb.WriteString("000000")
	}

	sb.WriteString("sr")
	if m.Castle != nil {
		writeBlock(sb, m.Castle.Piece, m.Castle.RelativeLocation)
	} else {
		sb.WriteString("000000")
	}
	sb.WriteByte('t')
	writeLocation(sb, m.CastleMovement)
	writeFlag(sb, m.CannotMove, 'p')

	sb.WriteString("er")
	switch {
	case m.EnPassant == nil:
		sb.WriteString("000000")
		sb.WriteString(previousMoveAnchor)
	case m.EnPassant.PreviousMove == nil:
		writeBlock(sb, m.EnPassant.Piece, m.EnPassant.RelativeLocation)
		sb.WriteByte('M')
		sb.WriteByte(terminator)
	default:
		writeBlock(sb, m.EnPassant.Piece, m.EnPassant.RelativeLocation)
		sb.WriteByte('M')
		encode(sb, m.EnPassant.PreviousMove)
		sb.WriteByte(terminator)
	}
}

func writeFlag(sb *strings.Builder, set bool, c byte) {
	if set {
		sb.WriteByte(c)
		return
	}
	sb.WriteByte(sentinel)
}

func writeBlock(sb *strings.Builder, ref PieceRef, loc Location) {
	sb.WriteByte(ref.Player)
	sb.WriteByte(ref.Symbol)
	writeLocation(sb, loc)
}

func writeLocation(sb *strings.Builder, loc Location) {
	for _, v := range loc {
		sb.WriteByte('0' + v)
	}
}
