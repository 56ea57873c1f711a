package board

import "strings"

// CastlingRights is the set of castling rights held by both sides. 4 bits.
type CastlingRights uint8

const (
	WhiteOO CastlingRights = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastling   CastlingRights = 0
	AnyCastling  CastlingRights = WhiteOO | WhiteOOO | BlackOO | BlackOOO
	NumCastling  CastlingRights = 16
	ZeroCastling CastlingRights = 0
)

// rightsOf returns the two rights (king-side, queen-side) belonging to c.
func rightsOf(c Color) (kingSide, queenSide CastlingRights) {
	if c == White {
		return WhiteOO, WhiteOOO
	}
	return BlackOO, BlackOOO
}

func (c CastlingRights) Has(right CastlingRights) bool {
	return c&right != 0
}

func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	var sb strings.Builder
	if c.Has(WhiteOO) {
		sb.WriteString("K")
	}
	if c.Has(WhiteOOO) {
		sb.WriteString("Q")
	}
	if c.Has(BlackOO) {
		sb.WriteString("k")
	}
	if c.Has(BlackOOO) {
		sb.WriteString("q")
	}
	return sb.String()
}

// CastlingInfo is the Chess960-aware geometry for one castling right,
// resolved once (at FEN parse time) from the actual king/rook home
// squares, since in Chess960 those squares are not fixed.
type CastlingInfo struct {
	Right            CastlingRights
	Color            Color
	KingFrom, KingTo Square
	RookFrom, RookTo Square

	// Path is the set of squares, other than the king's and rook's own
	// origin squares, that must be empty for the move to be legal.
	Path Bitboard
	// KingPath is the set of squares (including origin and destination)
	// the king passes through; none may be attacked by the opponent.
	KingPath Bitboard
}

// NewCastlingInfo computes the Chess960-aware path/king-path geometry for
// a castling right given the actual king and rook home squares.
func NewCastlingInfo(right CastlingRights, c Color, kingFrom, rookFrom Square) CastlingInfo {
	kingSide := right == WhiteOO || right == BlackOO

	kingTo := relSquare(c, FileG, Rank1)
	rookTo := relSquare(c, FileF, Rank1)
	if !kingSide {
		kingTo = relSquare(c, FileC, Rank1)
		rookTo = relSquare(c, FileD, Rank1)
	}

	path := LineSpan(kingFrom, kingTo) | LineSpan(rookFrom, rookTo) | SquareBB(kingTo) | SquareBB(rookTo)
	path &^= SquareBB(kingFrom) | SquareBB(rookFrom)

	kingPath := LineSpan(kingFrom, kingTo) | SquareBB(kingFrom) | SquareBB(kingTo)

	return CastlingInfo{
		Right:    right,
		Color:    c,
		KingFrom: kingFrom,
		KingTo:   kingTo,
		RookFrom: rookFrom,
		RookTo:   rookTo,
		Path:     path,
		KingPath: kingPath,
	}
}

func relSquare(c Color, f File, r Rank) Square {
	if c == Black {
		r = Rank8 - r
	}
	return NewSquare(f, r)
}

// LineSpan returns the inclusive set of squares spanning the smaller
// rectangle between a and b along a rank (used only for same-rank castling
// geometry); it is the simple min..max span along the rank, not a general
// ray.
func LineSpan(a, b Square) Bitboard {
	if a.Rank() != b.Rank() {
		return SquareBB(a) | SquareBB(b)
	}
	lo, hi := a.File(), b.File()
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb Bitboard
	for f := lo; f <= hi; f++ {
		bb |= SquareBB(NewSquare(f, a.Rank()))
	}
	return bb
}
