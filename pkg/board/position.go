package board

import "sort"

// pieceSlot is one entry of a Position's 32-slot piece array. Sq is
// NoSquare when the slot's piece has been captured.
type pieceSlot struct {
	Kind PieceKind
	Sq   Square
}

// Position is a complete, self-validating chess position: a 32-slot piece
// array indexed by stable PieceIndex (see move.go for the slot layout),
// side to move, castling rights, and an optional en-passant target.
//
// The square-to-index mapping is a lazily built cache, invalidated on every
// mutation, rather than a field maintained incrementally: ApplyMove only
// ever touches a handful of slots, so rebuilding the 64-entry cache on next
// read is cheaper than keeping two representations in lockstep.
type Position struct {
	slots [NumPieceSlots]pieceSlot

	index      [NumFiles * NumRanks]PieceIndex
	indexValid bool

	turn      Color
	castling  CastlingRights
	enPassant Square
}

func linear(sq Square) int {
	return int(sq.Rank())*NumFiles + int(sq.File())
}

func kingIndexFor(c Color) PieceIndex {
	if c == White {
		return WhiteKingIndex
	}
	return BlackKingIndex
}

// pieceIndexRange returns the half-open slot range reserved for a
// (color, kind) pair.
func pieceIndexRange(c Color, kind PieceKind) (lo, hi PieceIndex) {
	base := PieceIndex(0)
	if c == Black {
		base = 16
	}
	switch kind {
	case King:
		return base + 0, base + 1
	case Queen:
		return base + 1, base + 2
	case Rook:
		return base + 2, base + 4
	case Bishop:
		return base + 4, base + 6
	case Knight:
		return base + 6, base + 8
	case Pawn:
		return base + 8, base + 16
	default:
		return base, base
	}
}

// Placement is one (square, color, kind) fact used to build a Position from
// scratch: a starting arrangement, a Chess960 back rank, or a decoded FEN
// board.
type Placement struct {
	Square Square
	Color  Color
	Kind   PieceKind
}

type overflowPlacement struct {
	kind PieceKind
	sq   Square
}

// assignSlots distributes placements across the 32-slot layout. Non-pawn,
// non-king pieces fill their kind's reserved range in file order; any that
// don't fit (more than two rooks, three knights, a second queen, and so on)
// overflow into that color's unused pawn slots, the same way a promoted
// piece takes over the slot of whichever pawn it replaced. Pawns beyond
// eight are always an error: pawns can only be lost, never gained.
func assignSlots(placements []Placement) ([NumPieceSlots]pieceSlot, error) {
	var slots [NumPieceSlots]pieceSlot
	for i := range slots {
		slots[i].Sq = NoSquare
	}

	byColorKind := map[Color]map[PieceKind][]Square{
		White: {}, Black: {},
	}
	for _, pl := range placements {
		byColorKind[pl.Color][pl.Kind] = append(byColorKind[pl.Color][pl.Kind], pl.Square)
	}
	byFile := func(sqs []Square) []Square {
		out := append([]Square(nil), sqs...)
		sort.Slice(out, func(i, j int) bool { return out[i].File() < out[j].File() })
		return out
	}

	for _, c := range [2]Color{White, Black} {
		kings := byColorKind[c][King]
		if len(kings) == 0 {
			return slots, ErrNoKing
		}
		if len(kings) > 1 {
			return slots, ErrTooManyKings
		}
		slots[kingIndexFor(c)] = pieceSlot{Kind: King, Sq: kings[0]}

		var overflow []overflowPlacement
		for _, kind := range [4]PieceKind{Queen, Rook, Bishop, Knight} {
			lo, hi := pieceIndexRange(c, kind)
			next := lo
			for _, sq := range byFile(byColorKind[c][kind]) {
				if next < hi {
					slots[next] = pieceSlot{Kind: kind, Sq: sq}
					next++
				} else {
					overflow = append(overflow, overflowPlacement{kind, sq})
				}
			}
		}

		pawns := byFile(byColorKind[c][Pawn])
		if len(pawns) > 8 {
			return slots, ErrTooManyPawns
		}
		plo, phi := pieceIndexRange(c, Pawn)
		next := plo
		for _, sq := range pawns {
			slots[next] = pieceSlot{Kind: Pawn, Sq: sq}
			next++
		}
		for _, ov := range overflow {
			if next >= phi {
				return slots, ErrTooManyPromotedPieces
			}
			slots[next] = pieceSlot{Kind: ov.kind, Sq: ov.sq}
			next++
		}
	}

	return slots, nil
}

func fromBackRank(rank [NumFiles]PieceKind) (*Position, error) {
	var placements []Placement
	for _, c := range [2]Color{White, Black} {
		home, pawnHome := HomeRank(c), PawnHomeRank(c)
		for f := File(0); f < NumFiles; f++ {
			placements = append(placements, Placement{NewSquare(f, home), c, rank[f]})
			placements = append(placements, Placement{NewSquare(f, pawnHome), c, Pawn})
		}
	}
	slots, err := assignSlots(placements)
	if err != nil {
		return nil, err
	}
	return &Position{
		slots:     slots,
		turn:      White,
		castling:  FromBackRank(rank),
		enPassant: NoSquare,
	}, nil
}

// FromStartingPosition returns the standard chess starting position.
func FromStartingPosition() *Position {
	p, err := fromBackRank(StartingBackRank)
	if err != nil {
		panic("board: standard starting position rejected: " + err.Error())
	}
	return p
}

// FromChess960 returns the Chess960 starting position for the given
// shuffle id (0..959).
func FromChess960(id int) (*Position, error) {
	rank, err := Chess960BackRank(id)
	if err != nil {
		return nil, err
	}
	return fromBackRank(rank)
}

// FromHashable builds and validates a Position from a fully decoded board:
// used by the FEN importer, where every field comes from untrusted input
// and must pass Validate.
func FromHashable(placements []Placement, turn Color, castling CastlingRights, enPassant Square) (*Position, error) {
	slots, err := assignSlots(placements)
	if err != nil {
		return nil, err
	}
	p := &Position{slots: slots, turn: turn, castling: castling, enPassant: enPassant}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Position) ensureIndex() {
	if p.indexValid {
		return
	}
	for i := range p.index {
		p.index[i] = NoPieceIndex
	}
	for i, s := range p.slots {
		if s.Sq.IsValid() {
			p.index[linear(s.Sq)] = PieceIndex(i)
		}
	}
	p.indexValid = true
}

// Turn returns the side to move.
func (p *Position) Turn() Color { return p.turn }

// Castling returns the current castling rights.
func (p *Position) Castling() CastlingRights { return p.castling }

// EnPassant returns the en-passant target square, or NoSquare if none.
func (p *Position) EnPassant() Square { return p.enPassant }

// PieceAt reports the piece occupying sq, if any.
func (p *Position) PieceAt(sq Square) (ColoredPiece, bool) {
	p.ensureIndex()
	i := p.index[linear(sq)]
	if i == NoPieceIndex {
		return ColoredPiece{}, false
	}
	return ColoredPiece{Color: i.Color(), Kind: p.slots[i].Kind}, true
}

// IndexAt returns the piece index occupying sq, if any.
func (p *Position) IndexAt(sq Square) (PieceIndex, bool) {
	p.ensureIndex()
	i := p.index[linear(sq)]
	return i, i != NoPieceIndex
}

// Color reports the fixed color of a piece index: indices 0-15 are White,
// 16-31 are Black.
func (i PieceIndex) Color() Color {
	if i < 16 {
		return White
	}
	return Black
}

// squareOf returns the current square of a piece index, or NoSquare if it
// has been captured.
func (p *Position) squareOf(i PieceIndex) Square {
	return p.slots[i].Sq
}

// KindOf returns the current kind of a piece index (it changes across a
// promotion), or NoPiece if the slot is empty or the piece is captured.
func (p *Position) KindOf(i PieceIndex) PieceKind {
	if !p.slots[i].Sq.IsValid() {
		return NoPiece
	}
	return p.slots[i].Kind
}

// KingSquare returns the square of the color's king.
func (p *Position) KingSquare(c Color) Square {
	return p.slots[kingIndexFor(c)].Sq
}

// Pieces returns the indices of the color's pieces still on the board, in
// slot order.
func (p *Position) Pieces(c Color) []PieceIndex {
	lo, hi := PieceIndex(0), PieceIndex(16)
	if c == Black {
		lo, hi = 16, 32
	}
	var out []PieceIndex
	for i := lo; i < hi; i++ {
		if p.slots[i].Sq.IsValid() {
			out = append(out, i)
		}
	}
	return out
}

// attackersOf returns the indices of by-colored pieces attacking sq in the
// current position.
func (p *Position) attackersOf(sq Square, by Color) []PieceIndex {
	var out []PieceIndex

	for _, off := range PawnAttacks(by) {
		if from, ok := sq.Add(off.Negate()); ok {
			if i, ok := p.IndexAt(from); ok && i.Color() == by && p.KindOf(i) == Pawn {
				out = append(out, i)
			}
		}
	}
	for _, off := range KnightOffsets {
		if from, ok := sq.Add(off); ok {
			if i, ok := p.IndexAt(from); ok && i.Color() == by && p.KindOf(i) == Knight {
				out = append(out, i)
			}
		}
	}
	for _, off := range KingDirections {
		if from, ok := sq.Add(off); ok {
			if i, ok := p.IndexAt(from); ok && i.Color() == by && p.KindOf(i) == King {
				out = append(out, i)
			}
		}
	}
	for _, dir := range RookDirections {
		for _, cand := range LineExclusive(sq, dir) {
			i, ok := p.IndexAt(cand)
			if !ok {
				continue
			}
			if kind := p.KindOf(i); i.Color() == by && (kind == Rook || kind == Queen) {
				out = append(out, i)
			}
			break
		}
	}
	for _, dir := range BishopDirections {
		for _, cand := range LineExclusive(sq, dir) {
			i, ok := p.IndexAt(cand)
			if !ok {
				continue
			}
			if kind := p.KindOf(i); i.Color() == by && (kind == Bishop || kind == Queen) {
				out = append(out, i)
			}
			break
		}
	}
	return out
}

// IsAttacked reports whether sq is attacked by any by-colored piece.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return len(p.attackersOf(sq, by)) > 0
}

// AttacksSquare reports whether the still-on-board piece at idx currently
// attacks target, respecting blockers along its line of attack. Used by the
// evaluator to test whether a candidate move presses on the enemy king.
func (p *Position) AttacksSquare(idx PieceIndex, target Square) bool {
	from := p.squareOf(idx)
	if !from.IsValid() {
		return false
	}
	color := idx.Color()
	switch p.KindOf(idx) {
	case Pawn:
		for _, off := range PawnAttacks(color) {
			if to, ok := from.Add(off); ok && to == target {
				return true
			}
		}
	case Knight:
		for _, off := range KnightOffsets {
			if to, ok := from.Add(off); ok && to == target {
				return true
			}
		}
	case King:
		for _, off := range KingDirections {
			if to, ok := from.Add(off); ok && to == target {
				return true
			}
		}
	case Bishop:
		return p.firstOnRayIs(from, BishopDirections[:], target)
	case Rook:
		return p.firstOnRayIs(from, RookDirections[:], target)
	case Queen:
		return p.firstOnRayIs(from, KingDirections[:], target)
	}
	return false
}

// firstOnRayIs reports whether target is reached before any blocker, along
// any of the given directions from from.
func (p *Position) firstOnRayIs(from Square, dirs []Vector, target Square) bool {
	for _, dir := range dirs {
		for _, sq := range LineExclusive(from, dir) {
			if sq == target {
				return true
			}
			if _, occ := p.PieceAt(sq); occ {
				break
			}
		}
	}
	return false
}

// IsCheck reports whether c's king is currently attacked.
func (p *Position) IsCheck(c Color) bool {
	return p.IsAttacked(p.KingSquare(c), c.Opponent())
}

// Checkers returns the opponent pieces currently attacking c's king.
func (p *Position) Checkers(c Color) []PieceIndex {
	return p.attackersOf(p.KingSquare(c), c.Opponent())
}

func (p *Position) validateCastlingRights() error {
	for _, c := range [2]Color{White, Black} {
		home := HomeRank(c)
		rights := p.castling.All(c)
		if len(rights) == 0 {
			continue
		}
		if p.KingSquare(c).Rank() != home {
			return ErrInvalidCastlingRight
		}
		for _, f := range rights {
			piece, ok := p.PieceAt(NewSquare(f, home))
			if !ok || piece.Color != c || piece.Kind != Rook {
				return ErrInvalidCastlingRight
			}
		}
	}
	return nil
}

// validEnPassantTarget reports whether the en-passant target square is
// consistent with an actual just-moved pawn and at least one pawn able to
// capture it.
func (p *Position) validEnPassantTarget() bool {
	ep := p.enPassant
	movingColor := p.turn.Opponent()
	landing, ok := ep.Add(PawnSingleMove(movingColor))
	if !ok {
		return false
	}
	piece, ok := p.PieceAt(landing)
	if !ok || piece.Color != movingColor || piece.Kind != Pawn {
		return false
	}
	for _, off := range PawnAttacks(p.turn) {
		from, ok := ep.Add(off.Negate())
		if !ok {
			continue
		}
		if pc, ok := p.PieceAt(from); ok && pc.Color == p.turn && pc.Kind == Pawn {
			return true
		}
	}
	return false
}

// Validate checks every Position invariant. It is called automatically by
// FromHashable; ApplyMove does not re-validate, since a move generated by
// this package from an already-valid Position always yields a valid one.
func (p *Position) Validate() error {
	p.ensureIndex()

	opponent := p.turn.Opponent()
	if p.IsAttacked(p.KingSquare(opponent), p.turn) {
		return ErrSideNotToMoveInCheck
	}
	if len(p.Checkers(p.turn)) > 2 {
		return ErrMoreThanTwoCheckers
	}
	if err := p.validateCastlingRights(); err != nil {
		return err
	}
	if p.enPassant.IsValid() && !p.validEnPassantTarget() {
		// Not a construction error: FEN importers routinely carry a stale
		// en-passant field (e.g. one written after every double step, even
		// with no pawn able to capture).
		// Clearing it is the forgiving behavior; ErrInvalidEnPassantTarget
		// exists for callers that want to reject it explicitly instead.
		p.enPassant = NoSquare
	}
	return nil
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// ApplyMove returns the position resulting from playing m, which must have
// been generated from p by this package. The receiver is left unmodified.
func (p *Position) ApplyMove(m Move) *Position {
	next := p.Clone()
	next.applyInPlace(m)
	return next
}

func (p *Position) applyInPlace(m Move) {
	if m.IsCapture() {
		p.slots[m.Captured].Sq = NoSquare
	}
	p.slots[m.Mover].Sq = m.To
	if m.IsPromotion() {
		p.slots[m.Mover].Kind = m.Promotion
	}
	if m.IsCastle() {
		p.slots[m.CastlingRook.Piece].Sq = m.CastlingRook.To
	}

	p.turn = p.turn.Opponent()
	p.castling = m.CastlingRights
	p.enPassant = m.EnPassantTarget
	p.indexValid = false
}
