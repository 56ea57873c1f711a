package board

import "fmt"

const maxPieceListLen = 16

// Position is the mutable board aggregate: piece placement, piece lists,
// castling geometry and the borrowed pointer to the top of the caller-owned
// State stack. Position carries no move history of its own -- do_move and
// undo_move thread a State chain through it, and repetition/50-move
// bookkeeping lives in the State values (see repetition.go).
type Position struct {
	pieceOn [NumSquares]Piece
	typeBB  [NumPieceTypes]Bitboard
	colorBB [NumColors]Bitboard
	allBB   Bitboard

	pieceList  [NumColors][NumPieceTypes][maxPieceListLen]Square
	pieceCount [NumColors][NumPieceTypes]int
	indexOf    [NumSquares]int

	activeColor Color
	gamePly     int
	chess960    bool

	// castling holds the resolved Chess960-aware geometry for each of the
	// four rights, indexed by CastlingRights bit position (0=WhiteOO,
	// 1=WhiteOOO, 2=BlackOO, 3=BlackOOO). Only entries whose Right bit is
	// ever set in a FEN's castling field are populated.
	castling      [4]CastlingInfo
	castlingValid [4]bool
	// rightsLostAt maps a square to the rights forfeited the moment a
	// piece leaves or arrives there (king/rook home squares).
	rightsLostAt [NumSquares]CastlingRights

	zt *ZobristTable

	// st is a borrowed, non-owning pointer to the top of the caller-owned
	// State stack. NewPosition requires a root State to anchor it.
	st *State
}

// NewPosition returns an empty position (no pieces placed) rooted at root,
// which the caller owns and must keep alive for the position's lifetime.
// Use fen.Decode to populate a position from a FEN string.
func NewPosition(zt *ZobristTable, root *State) *Position {
	p := &Position{zt: zt, st: root}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		p.indexOf[sq] = -1
	}
	root.EnPassantSq = NoSquare
	return p
}

func (p *Position) ZobristTable() *ZobristTable { return p.zt }

func (p *Position) State() *State { return p.st }

func (p *Position) ActiveColor() Color { return p.activeColor }

func (p *Position) GamePly() int { return p.gamePly }

func (p *Position) IsChess960() bool { return p.chess960 }

func (p *Position) SetChess960(v bool) { p.chess960 = v }

// PieceOn returns the piece on sq, or NoPiece if empty.
func (p *Position) PieceOn(sq Square) Piece { return p.pieceOn[sq] }

func (p *Position) Empty(sq Square) bool { return p.pieceOn[sq] == NoPiece }

// Pieces returns the bitboard of every square occupied by any of the given
// piece types, for color c. With no piece types given, it returns every
// piece of color c.
func (p *Position) Pieces(c Color, pts ...PieceType) Bitboard {
	if len(pts) == 0 {
		return p.colorBB[c]
	}
	var bb Bitboard
	for _, pt := range pts {
		bb |= p.typeBB[pt]
	}
	return bb & p.colorBB[c]
}

// PiecesByType returns every piece of the given types, of either color.
func (p *Position) PiecesByType(pts ...PieceType) Bitboard {
	var bb Bitboard
	for _, pt := range pts {
		bb |= p.typeBB[pt]
	}
	return bb
}

func (p *Position) Occupied() Bitboard { return p.allBB }

func (p *Position) Count(c Color, pt PieceType) int { return p.pieceCount[c][pt] }

func (p *Position) KingSquare(c Color) Square {
	if p.pieceCount[c][King] == 0 {
		panic("board: position has no king")
	}
	return p.pieceList[c][King][0]
}

// SquaresOf returns the (read-only) list of squares occupied by (c, pt).
func (p *Position) SquaresOf(c Color, pt PieceType) []Square {
	return p.pieceList[c][pt][:p.pieceCount[c][pt]]
}

func (p *Position) CastlingRights() CastlingRights { return p.st.CastlingRights }

func (p *Position) EnPassantSquare() Square { return p.st.EnPassantSq }

func (p *Position) Rule50() int { return p.st.Rule50 }

// CastlingInfo returns the resolved geometry for one right, and whether it
// was ever registered (via SetCastlingRight) for this position.
func (p *Position) CastlingInfo(right CastlingRights) (CastlingInfo, bool) {
	i := castlingIndex(right)
	return p.castling[i], p.castlingValid[i]
}

func castlingIndex(right CastlingRights) int {
	switch right {
	case WhiteOO:
		return 0
	case WhiteOOO:
		return 1
	case BlackOO:
		return 2
	case BlackOOO:
		return 3
	default:
		panic("board: not a single castling right")
	}
}

// SetCastlingRight registers the Chess960-aware geometry for one right and
// records the forfeiture squares for it. Called during FEN decoding.
func (p *Position) SetCastlingRight(right CastlingRights, c Color, kingFrom, rookFrom Square) {
	i := castlingIndex(right)
	p.castling[i] = NewCastlingInfo(right, c, kingFrom, rookFrom)
	p.castlingValid[i] = true
	p.rightsLostAt[kingFrom] |= right
	p.rightsLostAt[rookFrom] |= right
}

// RightsLostAt returns the castling rights forfeited the instant a piece
// leaves or lands on sq (the king's and rooks' home squares).
func (p *Position) RightsLostAt(sq Square) CastlingRights { return p.rightsLostAt[sq] }

// SetActiveColorAndPly is used by the FEN decoder to finish initializing a
// freshly-populated position.
func (p *Position) SetActiveColorAndPly(c Color, ply int) {
	p.activeColor = c
	p.gamePly = ply
}

// --- piece placement primitives, shared by fen decoding and domove.go ---

// PutPiece places pc on sq, which must currently be empty. It updates the
// occupancy bitboards and piece list but does NOT touch the Zobrist key or
// any State field; callers (fen.Decode, domove.go) own that.
func (p *Position) PutPiece(pc Piece, sq Square) {
	if p.pieceOn[sq] != NoPiece {
		panic(fmt.Sprintf("board: PutPiece on occupied square %v", sq))
	}
	c, pt := pc.Color(), pc.Type()

	p.pieceOn[sq] = pc
	p.typeBB[pt] |= SquareBB(sq)
	p.colorBB[c] |= SquareBB(sq)
	p.allBB |= SquareBB(sq)

	idx := p.pieceCount[c][pt]
	if idx >= maxPieceListLen {
		panic("board: piece list overflow")
	}
	p.pieceList[c][pt][idx] = sq
	p.indexOf[sq] = idx
	p.pieceCount[c][pt]++
}

// RemovePiece removes the piece on sq, which must be occupied.
func (p *Position) RemovePiece(sq Square) {
	pc := p.pieceOn[sq]
	if pc == NoPiece {
		panic(fmt.Sprintf("board: RemovePiece on empty square %v", sq))
	}
	c, pt := pc.Color(), pc.Type()

	p.pieceOn[sq] = NoPiece
	p.typeBB[pt] &^= SquareBB(sq)
	p.colorBB[c] &^= SquareBB(sq)
	p.allBB &^= SquareBB(sq)

	idx := p.indexOf[sq]
	last := p.pieceCount[c][pt] - 1
	moved := p.pieceList[c][pt][last]
	p.pieceList[c][pt][idx] = moved
	p.indexOf[moved] = idx
	p.pieceCount[c][pt] = last
	p.indexOf[sq] = -1
}

// MovePiece relocates the piece on from (which must be occupied) to to
// (which must be empty), preserving its identity in the piece list.
func (p *Position) MovePiece(from, to Square) {
	pc := p.pieceOn[from]
	if pc == NoPiece {
		panic(fmt.Sprintf("board: MovePiece from empty square %v", from))
	}
	if p.pieceOn[to] != NoPiece {
		panic(fmt.Sprintf("board: MovePiece onto occupied square %v", to))
	}
	c, pt := pc.Color(), pc.Type()

	fromTo := SquareBB(from) | SquareBB(to)
	p.pieceOn[from] = NoPiece
	p.pieceOn[to] = pc
	p.typeBB[pt] ^= fromTo
	p.colorBB[c] ^= fromTo
	p.allBB ^= fromTo

	idx := p.indexOf[from]
	p.pieceList[c][pt][idx] = to
	p.indexOf[to] = idx
	p.indexOf[from] = -1
}

// --- attacker/pin/check queries ---

// AttackersTo returns every piece of either color attacking sq, given an
// explicit occupancy (pass p.Occupied() for the real board, or a modified
// occupancy to answer "would still attack after this piece is removed"
// questions such as mid-SEE ray rescans).
func (p *Position) AttackersTo(sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	att |= PawnAttacksBB(White, sq) & p.Pieces(Black, Pawn)
	att |= PawnAttacksBB(Black, sq) & p.Pieces(White, Pawn)
	att |= KnightAttackboard(sq) & p.PiecesByType(Knight)
	att |= KingAttackboard(sq) & p.PiecesByType(King)
	att |= BishopAttacks(sq, occ) & p.PiecesByType(Bishop, Queen)
	att |= RookAttacks(sq, occ) & p.PiecesByType(Rook, Queen)
	return att & occ
}

// SlideAttackersTo returns only the sliding (bishop/rook/queen) attackers
// of sq for the given occupancy; used by GivesCheck's discovered-check
// re-scan.
func (p *Position) SlideAttackersTo(sq Square, occ Bitboard) Bitboard {
	var att Bitboard
	att |= BishopAttacks(sq, occ) & p.PiecesByType(Bishop, Queen)
	att |= RookAttacks(sq, occ) & p.PiecesByType(Rook, Queen)
	return att & occ
}

// Checkers returns the attackers of the side to move's king in the current
// position (the incrementally-maintained State field).
func (p *Position) Checkers() Bitboard { return p.st.CheckersBB }

func (p *Position) InCheck() bool { return p.st.CheckersBB != 0 }

// RecomputeCheckInfo recomputes CheckersBB/PinnersBB/BlockersBB/ChecksBB
// for the position as it stands right now. DoMove/DoNullMove already keep
// this up to date incrementally; call this directly only right after
// populating a Position by hand (e.g. from fen.Decode).
func (p *Position) RecomputeCheckInfo() { p.computeCheckInfo(p.st) }

// Pinners returns the color-c sliders that pin an opposing piece against
// the opposing king, as maintained in the current State.
func (p *Position) Pinners(c Color) Bitboard { return p.st.PinnersBB[c] }

// Blockers returns the color-c pieces that, if moved off their line, would
// expose color c's own king to check (i.e. c's pinned pieces), as
// maintained in the current State.
func (p *Position) Blockers(c Color) Bitboard { return p.st.BlockersBB[c] }

// ChecksBB returns the squares from which a side-to-move piece of type pt
// would check the opponent's king, as maintained in the current State (used by
// movegen's "gives check" classification without a do/undo round trip).
func (p *Position) ChecksBB(pt PieceType) Bitboard { return p.st.ChecksBB[pt] }

// computeCheckInfo recomputes CheckersBB/PinnersBB/BlockersBB/ChecksBB for
// the position as it stands right now, writing into st. Called by
// domove.go after do_null_move and once at FEN decode time.
func (p *Position) computeCheckInfo(st *State) {
	us := p.activeColor
	them := us.Opponent()
	ksq := p.KingSquare(us)

	st.CheckersBB = p.AttackersTo(ksq, p.allBB) & p.colorBB[them]
	p.computeCheckInfoRest(them, st)
}

// computeCheckInfoAfterMove is computeCheckInfo's do_move fast path:
// givesCheck, already known from GivesCheck(m) against the pre-move
// position, says whether the king of the new side to move is in check, so
// that king's checkers are set to empty without an AttackersTo scan
// whenever the move is known not to give check (the common case).
func (p *Position) computeCheckInfoAfterMove(givesCheck bool, st *State) {
	us := p.activeColor
	them := us.Opponent()
	ksq := p.KingSquare(us)

	if givesCheck {
		st.CheckersBB = p.AttackersTo(ksq, p.allBB) & p.colorBB[them]
	} else {
		st.CheckersBB = 0
	}
	p.computeCheckInfoRest(them, st)
}

func (p *Position) computeCheckInfoRest(them Color, st *State) {

	st.PinnersBB[White] = 0
	st.PinnersBB[Black] = 0
	st.BlockersBB[White] = 0
	st.BlockersBB[Black] = 0
	p.computePinsFor(White, st)
	p.computePinsFor(Black, st)

	theirKsq := p.KingSquare(them)
	occ := p.allBB
	st.ChecksBB[Pawn] = PawnAttacksBB(them, theirKsq)
	st.ChecksBB[Knight] = KnightAttackboard(theirKsq)
	st.ChecksBB[Bishop] = BishopAttacks(theirKsq, occ)
	st.ChecksBB[Rook] = RookAttacks(theirKsq, occ)
	st.ChecksBB[Queen] = st.ChecksBB[Bishop] | st.ChecksBB[Rook]
	st.ChecksBB[King] = 0

	p.computeAttacksBB(occ, st)
}

// computeAttacksBB recomputes, for every color and piece type, the union of
// squares attacked by that color's pieces of that type given occupancy occ.
// No function in this package reads these aggregate sets (Fork and SEE
// compute their own attacks); they are exposed as State.AttacksBB.
func (p *Position) computeAttacksBB(occ Bitboard, st *State) {
	for c := ZeroColor; c < NumColors; c++ {
		var pawnBB Bitboard
		for _, sq := range p.SquaresOf(c, Pawn) {
			pawnBB |= PawnAttacksBB(c, sq)
		}
		st.AttacksBB[c][Pawn] = pawnBB

		for _, pt := range [...]PieceType{Knight, Bishop, Rook, Queen, King} {
			var bb Bitboard
			for _, sq := range p.SquaresOf(c, pt) {
				bb |= Attacks(pt, sq, occ)
			}
			st.AttacksBB[c][pt] = bb
		}
	}
}

// computePinsFor finds, for the king of color c, every enemy slider with a
// clear line to it save for exactly one of c's own pieces, and records
// that piece as a blocker for c and the slider as a pinner for them.
func (p *Position) computePinsFor(c Color, st *State) {
	them := c.Opponent()
	ksq := p.KingSquare(c)

	candidates := (p.PiecesByType(Bishop, Queen) & p.colorBB[them] & pseudoBishopRay(ksq)) |
		(p.PiecesByType(Rook, Queen) & p.colorBB[them] & pseudoRookRay(ksq))

	for bb := candidates; bb != 0; {
		sq := bb.PopLsb()
		between := BetweenBB(sq, ksq) & p.allBB
		if between.PopCount() == 1 {
			blocker := between.Lsb()
			if p.pieceOn[blocker].Color() == c {
				st.BlockersBB[c] |= SquareBB(blocker)
				st.PinnersBB[them] |= SquareBB(sq)
			}
		}
	}
}

// pseudoBishopRay/pseudoRookRay return the attack set from sq on an empty
// board, used only to cheaply test whether a slider's home square lies on
// one of sq's lines before paying for the real BetweenBB occupancy check.
func pseudoBishopRay(sq Square) Bitboard { return Diag18BB(sq) | Diag81BB(sq) }
func pseudoRookRay(sq Square) Bitboard   { return FileBB(sq.File()) | RankBB(sq.Rank()) }
