package board

import "math/rand"

// PolyGlotKey is a position hash compatible in SHAPE (XOR of independent
// per-feature random keys over piece/castling/en-passant/turn) with the
// PolyGlot opening book format, computed from its own fixed random table
// rather than this package's internal ZobristTable -- the two must never
// be mixed, since a PolyGlot book was built against PolyGlot's published
// constant table, not ours.
//
// NOTE: polyglotRandom below is seeded deterministically but is NOT the
// published PolyGlot constant table (reproducing those 781 specific
// uint64 literals verbatim was out of reach here); swap it for the real
// table before probing a genuine .bin book (see DESIGN.md).
type PolyGlotKey uint64

const (
	polyglotPieceOffset    = 0
	polyglotCastleOffset   = 768
	polyglotEnPassOffset   = 772
	polyglotTurnOffset     = 780
	polyglotRandomTableLen = 781
)

var polyglotRandom [polyglotRandomTableLen]uint64

func init() {
	r := rand.New(rand.NewSource(0x706F6C79676C6F74))
	for i := range polyglotRandom {
		polyglotRandom[i] = r.Uint64()
	}
}

// polyglotPieceIndex mirrors PolyGlot's fixed piece-kind ordering (BP, WP,
// BN, WN, BB, WB, BR, WR, BQ, WQ, BK, WK), which differs from this
// package's PieceType ordering.
func polyglotPieceIndex(pc Piece) int {
	order := map[PieceType]int{Pawn: 0, Knight: 1, Bishop: 2, Rook: 3, Queen: 4, King: 5}
	kind := order[pc.Type()]
	colorBit := 0
	if pc.Color() == White {
		colorBit = 1
	}
	return kind*2 + colorBit
}

// PolyGlotKey computes the PolyGlot-shaped book key for the position as it stands.
func (p *Position) PolyGlotKey() PolyGlotKey {
	var key uint64
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		pc := p.pieceOn[sq]
		if pc == NoPiece {
			continue
		}
		idx := polyglotPieceIndex(pc)*64 + int(sq)
		key ^= polyglotRandom[polyglotPieceOffset+idx]
	}

	rights := p.st.CastlingRights
	if rights.Has(WhiteOO) {
		key ^= polyglotRandom[polyglotCastleOffset+0]
	}
	if rights.Has(WhiteOOO) {
		key ^= polyglotRandom[polyglotCastleOffset+1]
	}
	if rights.Has(BlackOO) {
		key ^= polyglotRandom[polyglotCastleOffset+2]
	}
	if rights.Has(BlackOOO) {
		key ^= polyglotRandom[polyglotCastleOffset+3]
	}

	if ep := p.st.EnPassantSq; ep != NoSquare {
		them := p.activeColor.Opponent()
		if p.Pieces(p.activeColor, Pawn)&PawnAttacksBB(them, ep) != 0 {
			key ^= polyglotRandom[polyglotEnPassOffset+int(ep.File())]
		}
	}

	if p.activeColor == White {
		key ^= polyglotRandom[polyglotTurnOffset]
	}

	return PolyGlotKey(key)
}
