package board

import "fmt"

// PieceKind is a chess piece kind, colorless.
type PieceKind uint8

const (
	NoPiece PieceKind = iota
	Pawn
	Bishop
	Knight
	Rook
	Queen
	King

	NumPieceKinds = 7
)

// PromotionChoices lists the kinds a pawn may promote to, in the order used
// to expand a promoting move into its four variants.
var PromotionChoices = [4]PieceKind{Queen, Rook, Bishop, Knight}

func (p PieceKind) IsValid() bool {
	return p >= Pawn && p <= King
}

// Uppercase returns the FEN letter for a white piece of this kind.
func (p PieceKind) Uppercase() byte {
	return "\x00PBNRQK"[p]
}

// Lowercase returns the FEN letter for a black piece of this kind.
func (p PieceKind) Lowercase() byte {
	return "\x00pbnrqk"[p]
}

func (p PieceKind) String() string {
	if !p.IsValid() {
		return "?"
	}
	return string(p.Lowercase())
}

// ParsePieceKind parses a FEN piece letter, case-insensitive.
func ParsePieceKind(c byte) (PieceKind, error) {
	switch c {
	case 'p', 'P':
		return Pawn, nil
	case 'b', 'B':
		return Bishop, nil
	case 'n', 'N':
		return Knight, nil
	case 'r', 'R':
		return Rook, nil
	case 'q', 'Q':
		return Queen, nil
	case 'k', 'K':
		return King, nil
	default:
		return NoPiece, &parseError{what: "piece", value: string(c)}
	}
}

// ColoredPiece pairs a color with a piece kind.
type ColoredPiece struct {
	Color Color
	Kind  PieceKind
}

func (p ColoredPiece) String() string {
	if p.Color == White {
		return string(p.Kind.Uppercase())
	}
	return string(p.Kind.Lowercase())
}

// figurines maps (color, kind) to the Unicode chess glyph, White row then
// Black row, indexed by PieceKind (NoPiece unused).
var figurines = [2][7]rune{
	{' ', '♙', '♗', '♘', '♖', '♕', '♔'},
	{' ', '♟', '♝', '♞', '♜', '♛', '♚'},
}

// Figurine returns the Unicode chess glyph for the piece.
func (p ColoredPiece) Figurine() rune {
	return figurines[p.Color][p.Kind]
}

// StartingBackRank is the standard (non-Chess960) back-rank arrangement.
var StartingBackRank = [NumFiles]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// chess960KnightSlots enumerates, for each of the 10 possible ways to place
// two knights among the 5 remaining empty slots (after the two bishops and
// the queen are seated), which two slot offsets (0-indexed among the
// remaining empty slots) the knights occupy.
var chess960KnightSlots = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4},
	{3, 4},
}

// Chess960BackRank decomposes id (0..960) into a Chess960 starting back
// rank. The id decomposes as id = knights*24 + queen*4*4 + bishopDark*4 +
// bishopLight, with bishops seated first on opposite-color files, then the
// queen into the next free slot, then the knights into a fixed pairing of
// the five still-free slots, and the three remaining slots filled
// rook/king/rook left to right.
func Chess960BackRank(id int) ([NumFiles]PieceKind, error) {
	if id < 0 || id >= 960 {
		return [NumFiles]PieceKind{}, fmt.Errorf("invalid chess960 id: %d", id)
	}

	var rank [NumFiles]PieceKind
	occupied := [NumFiles]bool{}

	place := func(file int, kind PieceKind) {
		rank[file] = kind
		occupied[file] = true
	}
	nthFree := func(n int) int {
		for file := 0; file < NumFiles; file++ {
			if occupied[file] {
				continue
			}
			if n == 0 {
				return file
			}
			n--
		}
		panic("chess960: ran out of free files")
	}

	state := id
	bishopLight := state % 4
	state /= 4
	bishopDark := state % 4
	state /= 4
	queen := state % 6
	state /= 6
	knights := state // 0..9

	// Light bishop sits on an odd file, a light square on White's home rank.
	place(2*bishopLight+1, Bishop)
	place(2*bishopDark, Bishop)
	place(nthFree(queen), Queen)

	slots := chess960KnightSlots[knights]
	// nthFree must be resolved against the *current* set of free files for
	// each knight in turn, low offset first.
	place(nthFree(slots[0]), Knight)
	place(nthFree(slots[1]-1), Knight)

	rook1 := nthFree(0)
	place(rook1, Rook)
	place(nthFree(0), King)
	place(nthFree(0), Rook)

	return rank, nil
}
