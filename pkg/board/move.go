package board

// PieceIndex is a stable small integer identifying a piece slot in a
// Position's 32-slot array. See Position for the layout.
type PieceIndex uint8

// NoPieceIndex is the "no piece" sentinel, used for Move.Captured when a
// move isn't a capture.
const NoPieceIndex PieceIndex = 0xFF

const (
	WhiteKingIndex  PieceIndex = 0
	WhiteQueenIndex PieceIndex = 1
	// WhiteRookIndex, WhiteBishopIndex, WhiteKnightIndex are the first of
	// their two-slot range; +1 gives the second.
	WhiteRookIndex   PieceIndex = 2
	WhiteBishopIndex PieceIndex = 4
	WhiteKnightIndex PieceIndex = 6
	// WhitePawnIndex is the first of the eight-slot pawn range.
	WhitePawnIndex PieceIndex = 8

	BlackKingIndex   PieceIndex = 16
	BlackQueenIndex  PieceIndex = 17
	BlackRookIndex   PieceIndex = 18
	BlackBishopIndex PieceIndex = 20
	BlackKnightIndex PieceIndex = 22
	BlackPawnIndex   PieceIndex = 24

	// NumPieceSlots is the size of a Position's piece array.
	NumPieceSlots = 32
)

// SubMove is the rook's half of a castling move: its piece index and its
// origin/destination squares.
type SubMove struct {
	Piece    PieceIndex
	From, To Square
}

// Move is a value object recording everything needed to apply itself to a
// Position in place, with no further derivation: the mover's piece index,
// destination square, the captured piece's index (for en passant this is
// the pawn on the adjacent file, not the destination square), an optional
// castling-rook sub-move, an optional promotion kind, the en-passant target
// to install after the move, and the full post-move castling rights.
type Move struct {
	Mover    PieceIndex
	From, To Square

	Captured PieceIndex // NoPieceIndex if not a capture

	CastlingRook *SubMove // nil unless this move castles

	Promotion PieceKind // NoPiece unless this move promotes

	EnPassantTarget Square         // NoSquare unless this move opens an en-passant target
	CastlingRights  CastlingRights // full rights after the move
}

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPieceIndex
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPiece
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.CastlingRook != nil
}

// IsEnPassant reports whether the move is an en-passant capture: a capture
// whose captured square differs from the destination square.
func (m Move) IsEnPassant(pos *Position) bool {
	return m.IsCapture() && pos.squareOf(m.Captured) != m.To
}

// Equal reports whether two moves have the same effect. Moves generated
// from the same Position are equal iff mover, destination, and promotion
// match (the rest is a deterministic function of those and the position).
func (m Move) Equal(o Move) bool {
	return m.Mover == o.Mover && m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}
