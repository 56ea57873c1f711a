package board

// DoMove plays m, pushing st onto the state stack (st.prev is set to the
// position's current state) and updating st in place with the new
// incremental hash/rights/clock material plus the recomputed check info.
// givesCheck should be the result of GivesCheck(m) computed against the
// pre-move position (callers typically already know it from search
// move-ordering; passing an incorrect value corrupts CheckersBB).
func (p *Position) DoMove(m Move, st *State, givesCheck bool) {
	prev := p.st
	*st = State{
		Key:            prev.Key,
		PawnKey:        prev.PawnKey,
		NonPawnKey:     prev.NonPawnKey,
		CastlingRights: prev.CastlingRights,
		EnPassantSq:    NoSquare,
		Rule50:         prev.Rule50 + 1,
		NullPly:        prev.NullPly + 1,
		HasCastled:     prev.HasCastled,
		prev:           prev,
	}

	us := p.activeColor
	them := us.Opponent()
	from, to := m.From(), m.To()
	pc := p.pieceOn[from]
	pt := pc.Type()

	if prev.EnPassantSq != NoSquare {
		st.Key ^= p.zt.EnPassantKey(prev.EnPassantSq.File())
	}

	switch m.Kind() {
	case CastlingKind:
		p.doCastle(us, from, to, st, false)

	case EnPassantKind:
		capSq := NewSquare(to.File(), from.Rank())
		capPc := p.pieceOn[capSq]
		p.removeAndKey(capPc, capSq, st)
		st.CapturedPiece = capPc
		st.CapturedSq = capSq
		p.relocateAndKey(pc, from, to, st)
		st.Rule50 = 0

	default:
		if cap := p.pieceOn[to]; cap != NoPiece {
			p.removeAndKey(cap, to, st)
			st.CapturedPiece = cap
			st.CapturedSq = to
			st.Rule50 = 0
		}

		if pt == Pawn {
			st.Rule50 = 0
			if m.Kind() == PromotionKind {
				p.removeAndKey(pc, from, st)
				promoted := MakePiece(us, m.Promotion())
				p.putAndKey(promoted, to, st)
				st.PromotedPiece = promoted
			} else {
				p.relocateAndKey(pc, from, to, st)
				if absRank(from, to) == 2 {
					// Only hash in the ep key if a pawn could legally
					// recapture; otherwise transpositionally identical
					// positions would hash differently (spec hygiene note).
					epSq := NewSquare(from.File(), midRank(from, to))
					for cands := p.Pieces(them, Pawn) & PawnAttacksBB(us, epSq); cands != 0; {
						if p.enPassantLegal(them, cands.PopLsb(), epSq) {
							st.EnPassantSq = epSq
							st.Key ^= p.zt.EnPassantKey(epSq.File())
							break
						}
					}
				}
			}
		} else {
			p.relocateAndKey(pc, from, to, st)
		}
	}

	if lost := p.rightsLostAt[from] | p.rightsLostAt[to]; lost != 0 && st.CastlingRights.Has(lost) {
		st.Key ^= p.zt.CastlingKey(st.CastlingRights)
		st.CastlingRights &^= lost
		st.Key ^= p.zt.CastlingKey(st.CastlingRights)
	}

	st.Key ^= p.zt.TurnKey()

	p.activeColor = them
	p.gamePly++
	p.st = st

	p.computeCheckInfoAfterMove(givesCheck, st)
	p.recordRepetition(st)
}

// UndoMove reverses the effect of the most recent DoMove(m, ...), restoring
// the position to exactly the state it was in beforehand. m must be the
// same move passed to the matching DoMove call.
func (p *Position) UndoMove(m Move) {
	st := p.st
	prev := st.prev
	if prev == nil {
		panic("board: UndoMove on root state")
	}

	them := p.activeColor
	us := them.Opponent()
	p.activeColor = us
	p.gamePly--

	from, to := m.From(), m.To()

	switch m.Kind() {
	case CastlingKind:
		p.doCastle(us, from, to, st, true)

	case EnPassantKind:
		p.MovePiece(to, from)
		capSq := NewSquare(to.File(), from.Rank())
		p.PutPiece(st.CapturedPiece, capSq)

	default:
		if m.Kind() == PromotionKind {
			p.RemovePiece(to)
			p.PutPiece(MakePiece(us, Pawn), from)
		} else {
			p.MovePiece(to, from)
		}
		if st.CapturedPiece != NoPiece {
			p.PutPiece(st.CapturedPiece, st.CapturedSq)
		}
	}

	p.st = prev
}

// DoNullMove plays a null move (side to move passes), pushing st.
func (p *Position) DoNullMove(st *State) {
	prev := p.st
	if prev.CheckersBB != 0 {
		panic("board: DoNullMove while in check")
	}
	*st = State{
		Key:            prev.Key,
		PawnKey:        prev.PawnKey,
		NonPawnKey:     prev.NonPawnKey,
		CastlingRights: prev.CastlingRights,
		EnPassantSq:    NoSquare,
		Rule50:         prev.Rule50 + 1,
		NullPly:        0,
		HasCastled:     prev.HasCastled,
		prev:           prev,
	}
	if prev.EnPassantSq != NoSquare {
		st.Key ^= p.zt.EnPassantKey(prev.EnPassantSq.File())
	}
	st.Key ^= p.zt.TurnKey()

	p.activeColor = p.activeColor.Opponent()
	p.gamePly++
	p.st = st
	p.computeCheckInfo(st)
}

// UndoNullMove reverses the most recent DoNullMove.
func (p *Position) UndoNullMove() {
	st := p.st
	prev := st.prev
	if prev == nil || st.NullPly != 0 {
		panic("board: UndoNullMove without a matching DoNullMove")
	}
	p.activeColor = p.activeColor.Opponent()
	p.gamePly--
	p.st = prev
}

func (p *Position) doCastle(us Color, kingFrom, rookFrom Square, st *State, undo bool) {
	right := castlingRightOf(us, kingFrom, rookFrom, p)
	info, ok := p.CastlingInfo(right)
	if !ok {
		panic("board: castling move with unregistered rights")
	}

	if undo {
		// Same vacate-both-then-place-both order as below, in reverse.
		kingPc := p.pieceOn[info.KingTo]
		rookPc := p.pieceOn[info.RookTo]
		p.RemovePiece(info.KingTo)
		p.RemovePiece(info.RookTo)
		p.PutPiece(kingPc, info.KingFrom)
		p.PutPiece(rookPc, info.RookFrom)
		return
	}

	kingPc := p.pieceOn[info.KingFrom]
	rookPc := p.pieceOn[info.RookFrom]

	// Vacate both squares first (Chess960 destinations can coincide with
	// either origin square), then place both pieces at their destinations.
	p.RemovePiece(info.KingFrom)
	if info.RookFrom != info.KingFrom {
		p.RemovePiece(info.RookFrom)
	}
	p.PutPiece(kingPc, info.KingTo)
	if info.RookTo != info.KingTo {
		p.PutPiece(rookPc, info.RookTo)
	} else {
		panic("board: castling king/rook destination collision")
	}

	st.Key ^= p.zt.PieceKey(us, King, info.KingFrom) ^ p.zt.PieceKey(us, King, info.KingTo)
	st.Key ^= p.zt.PieceKey(us, Rook, info.RookFrom) ^ p.zt.PieceKey(us, Rook, info.RookTo)
	bucket, _ := nonPawnBucketOf(Rook)
	st.NonPawnKey[us][bucket] ^= p.zt.PieceKey(us, Rook, info.RookFrom) ^ p.zt.PieceKey(us, Rook, info.RookTo)
	st.HasCastled[us] = true
}

func castlingRightOf(us Color, kingFrom, rookFrom Square, p *Position) CastlingRights {
	kingSide, queenSide := rightsOf(us)
	if info, ok := p.CastlingInfo(kingSide); ok && info.KingFrom == kingFrom && info.RookFrom == rookFrom {
		return kingSide
	}
	return queenSide
}

// removeAndKey removes pc from sq and folds the key deltas (main + pawn/
// non-pawn side channels) into st.
func (p *Position) removeAndKey(pc Piece, sq Square, st *State) {
	p.RemovePiece(sq)
	k := p.zt.PieceKey(pc.Color(), pc.Type(), sq)
	st.Key ^= k
	p.foldMaterialKey(pc, k, st)
}

func (p *Position) putAndKey(pc Piece, sq Square, st *State) {
	p.PutPiece(pc, sq)
	k := p.zt.PieceKey(pc.Color(), pc.Type(), sq)
	st.Key ^= k
	p.foldMaterialKey(pc, k, st)
}

func (p *Position) relocateAndKey(pc Piece, from, to Square, st *State) {
	p.MovePiece(from, to)
	k := p.zt.PieceKey(pc.Color(), pc.Type(), from) ^ p.zt.PieceKey(pc.Color(), pc.Type(), to)
	st.Key ^= k
	p.foldMaterialKey(pc, k, st)
}

func (p *Position) foldMaterialKey(pc Piece, k ZobristKey, st *State) {
	c, pt := pc.Color(), pc.Type()
	if pt == Pawn {
		st.PawnKey[c] ^= k
		return
	}
	if bucket, ok := nonPawnBucketOf(pt); ok {
		st.NonPawnKey[c][bucket] ^= k
	}
}

func absRank(from, to Square) int {
	df := int(from.Rank()) - int(to.Rank())
	if df < 0 {
		return -df
	}
	return df
}

func midRank(from, to Square) Rank {
	return Rank((int(from.Rank()) + int(to.Rank())) / 2)
}
