package board

import "strings"

// CastlingRights is a per-color bitmap over the 8 files: a set bit at file x
// for a color means the rook that started on file x on that color's home
// rank may still castle. This representation supports Chess960 (any rook
// file) natively and collapses to the standard 4-right case when the set
// files are a and h.
type CastlingRights struct {
	white, black uint8
}

// NoCastlingRights is the empty set of rights.
var NoCastlingRights = CastlingRights{}

// Get reports whether the color may still castle with the rook on file x.
func (c CastlingRights) Get(color Color, x File) bool {
	return c.byte(color)&(1<<uint8(x)) != 0
}

// Add grants the (color, file) castling right.
func (c CastlingRights) Add(color Color, x File) CastlingRights {
	return c.update(color, c.byte(color)|(1<<uint8(x)))
}

// Remove revokes the (color, file) castling right.
func (c CastlingRights) Remove(color Color, x File) CastlingRights {
	return c.update(color, c.byte(color)&^(1<<uint8(x)))
}

// Clear revokes all castling rights for the color.
func (c CastlingRights) Clear(color Color) CastlingRights {
	return c.update(color, 0)
}

// All returns the files, low to high, where the color still has a right.
func (c CastlingRights) All(color Color) []File {
	var ret []File
	for x := File(0); x < NumFiles; x++ {
		if c.Get(color, x) {
			ret = append(ret, x)
		}
	}
	return ret
}

func (c CastlingRights) byte(color Color) uint8 {
	if color == White {
		return c.white
	}
	return c.black
}

func (c CastlingRights) update(color Color, v uint8) CastlingRights {
	if color == White {
		c.white = v
	} else {
		c.black = v
	}
	return c
}

// FromBackRank derives the starting castling rights from a (possibly
// Chess960) back-rank arrangement: every file holding a rook gets a right
// for both colors.
func FromBackRank(rank [NumFiles]PieceKind) CastlingRights {
	var c CastlingRights
	for x, kind := range rank {
		if kind == Rook {
			c = c.Add(White, File(x))
			c = c.Add(Black, File(x))
		}
	}
	return c
}

// String renders Shredder-FEN style, always naming files (A-H for White,
// a-h for Black), e.g. "AHah" or "-" when empty.
func (c CastlingRights) String() string {
	var sb strings.Builder
	for _, x := range c.All(White) {
		sb.WriteByte('A' + byte(x))
	}
	for _, x := range c.All(Black) {
		sb.WriteByte('a' + byte(x))
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// StandardString renders standard-FEN style: K/Q/k/q when the right's file
// is exactly a or h for that color, else the Shredder file letter. The
// file alone decides the shorthand, without checking that the king stands
// on e; ParseCastlingRights maps K/Q back to the h/a files the same way,
// so the encoding round-trips even for a Chess960 setup whose rooks happen
// to start on the corner files. Per color, file letters come first (low to
// high), then K, then Q, so the standard rights render as "KQkq".
func (c CastlingRights) StandardString() string {
	var sb strings.Builder
	for _, x := range c.All(White) {
		if x != FileA && x != FileH {
			sb.WriteByte('A' + byte(x))
		}
	}
	if c.Get(White, FileH) {
		sb.WriteByte('K')
	}
	if c.Get(White, FileA) {
		sb.WriteByte('Q')
	}
	for _, x := range c.All(Black) {
		if x != FileA && x != FileH {
			sb.WriteByte('a' + byte(x))
		}
	}
	if c.Get(Black, FileH) {
		sb.WriteByte('k')
	}
	if c.Get(Black, FileA) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseCastlingRights parses both the standard K/Q/k/q letters and the
// Chess960 Shredder-FEN A-H/a-h file letters. "-" means no rights.
func ParseCastlingRights(s string) (CastlingRights, error) {
	var c CastlingRights
	if s == "-" {
		return c, nil
	}
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == 'K':
			c = c.Add(White, FileH)
		case ch == 'Q':
			c = c.Add(White, FileA)
		case ch == 'k':
			c = c.Add(Black, FileH)
		case ch == 'q':
			c = c.Add(Black, FileA)
		case ch >= 'A' && ch <= 'H':
			c = c.Add(White, File(ch-'A'))
		case ch >= 'a' && ch <= 'h':
			c = c.Add(Black, File(ch-'a'))
		default:
			return c, &parseError{what: "castling right", value: s}
		}
	}
	return c, nil
}

// RemoveForRookCapture clears the captured side's (color, file) right when
// a rook is captured on its own home rank.
func (c CastlingRights) RemoveForRookCapture(captured ColoredPiece, sq Square) CastlingRights {
	if captured.Kind == Rook && sq.Rank() == HomeRank(captured.Color) {
		return c.Remove(captured.Color, sq.File())
	}
	return c
}
