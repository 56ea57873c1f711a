package board

// GenCategory selects which subset of moves a generator pass produces,
// mirroring the ENCOUNTER (any pseudo-legal move) / EVASION (check-evasion
// only) split together with a capture/quiet refinement.
type GenCategory uint8

const (
	// Encounter generates every pseudo-legal move when not in check.
	Encounter GenCategory = iota
	// Evasion generates only moves that get the side to move out of check.
	Evasion
	// Captures generates pseudo-legal captures (en passant included) and
	// every promotion, capturing or not, to all four promotion pieces.
	Captures
	// Quiets generates pseudo-legal non-captures and castling, excluding
	// all promotions (those are reported by Captures).
	Quiets
)

// MoveList is an append target for generated moves, reused across calls to
// avoid per-node allocation in hot search loops.
type MoveList struct {
	Moves []Move
}

func (l *MoveList) reset() { l.Moves = l.Moves[:0] }

func (l *MoveList) add(m Move) { l.Moves = append(l.Moves, m) }

// GeneratePseudoLegal appends every pseudo-legal move for the side to move
// in category cat to l. Pseudo-legal moves may leave the mover's own king
// in check; filter with Legal (or use GenerateLegal).
func (p *Position) GeneratePseudoLegal(cat GenCategory, l *MoveList) {
	us := p.activeColor
	if cat == Evasion || p.InCheck() {
		// Captures/Quiets are only meaningful outside check; a staged
		// generator that asks for either while in check gets the full
		// evasion set instead of an incomplete capture/quiet slice, the
		// same way the source's GT==EVASION family replaces ordinary
		// generation whenever checkers() is non-empty.
		p.genEvasions(us, l)
		return
	}

	switch cat {
	case Captures:
		p.genPawnMoves(us, l, true)
		p.genPieceMoves(us, l, p.Pieces(us.Opponent()))
	case Quiets:
		p.genPawnMoves(us, l, false)
		p.genPieceMoves(us, l, ^p.allBB)
		p.genCastling(us, l)
	default: // Encounter, not in check
		p.genPawnMoves(us, l, true)
		p.genPawnMoves(us, l, false)
		p.genPieceMoves(us, l, ^p.Pieces(us))
		p.genCastling(us, l)
	}
}

// GenerateLegal appends every fully legal move for the side to move to l.
func (p *Position) GenerateLegal(l *MoveList) {
	var pseudo MoveList
	p.GeneratePseudoLegal(Encounter, &pseudo)
	for _, m := range pseudo.Moves {
		if p.Legal(m) {
			l.add(m)
		}
	}
}

func (p *Position) genPawnMoves(us Color, l *MoveList, captures bool) {
	them := us.Opponent()
	pawns := p.Pieces(us, Pawn)
	empty := ^p.allBB
	enemy := p.Pieces(them)

	for bb := pawns; bb != 0; {
		from := bb.PopLsb()
		promoRank := from.RelativeRank(us) == Rank7

		if captures {
			targets := PawnAttacksBB(us, from) & enemy
			for t := targets; t != 0; {
				to := t.PopLsb()
				p.addPawnMoves(l, from, to, promoRank)
			}
			if p.st.EnPassantSq != NoSquare && PawnAttacksBB(us, from).IsSet(p.st.EnPassantSq) {
				l.add(NewEnPassant(from, p.st.EnPassantSq))
			}
			if promoRank {
				// Straight-ahead promotion is a "capture-class" move (it
				// changes material balance and is never quiet), generated
				// here alongside diagonal promotion captures.
				one := PawnPush(us, SquareBB(from)) & empty
				if one != 0 {
					p.addPawnMoves(l, from, one.Lsb(), true)
				}
			}
			continue
		}

		if promoRank {
			continue // already emitted under captures=true
		}
		one := PawnPush(us, SquareBB(from)) & empty
		if one == 0 {
			continue
		}
		l.add(NewMove(from, one.Lsb()))
		if from.RelativeRank(us) == Rank2 {
			two := PawnPush(us, one) & empty
			if two != 0 {
				l.add(NewMove(from, two.Lsb()))
			}
		}
	}
}

func (p *Position) addPawnMoves(l *MoveList, from, to Square, promotion bool) {
	if !promotion {
		l.add(NewMove(from, to))
		return
	}
	l.add(NewPromotion(from, to, Queen))
	l.add(NewPromotion(from, to, Rook))
	l.add(NewPromotion(from, to, Bishop))
	l.add(NewPromotion(from, to, Knight))
}

func (p *Position) genPieceMoves(us Color, l *MoveList, targetMask Bitboard) {
	occ := p.allBB
	for _, pt := range [...]PieceType{Knight, Bishop, Rook, Queen, King} {
		for bb := p.Pieces(us, pt); bb != 0; {
			from := bb.PopLsb()
			att := Attacks(pt, from, occ) & targetMask &^ p.Pieces(us)
			for t := att; t != 0; {
				l.add(NewMove(from, t.PopLsb()))
			}
		}
	}
}

func (p *Position) genCastling(us Color, l *MoveList) {
	if p.InCheck() {
		return
	}
	kingSide, queenSide := rightsOf(us)
	for _, right := range [2]CastlingRights{kingSide, queenSide} {
		if !p.st.CastlingRights.Has(right) {
			continue
		}
		info, ok := p.CastlingInfo(right)
		if !ok {
			continue
		}
		if info.Path&p.allBB != 0 {
			continue
		}
		if p.anyAttacked(info.KingPath, us.Opponent()) {
			continue
		}
		l.add(NewCastling(info.KingFrom, info.RookFrom))
	}
}

func (p *Position) anyAttacked(squares Bitboard, by Color) bool {
	occ := p.allBB
	for bb := squares; bb != 0; {
		sq := bb.PopLsb()
		if p.AttackersTo(sq, occ)&p.colorBB[by] != 0 {
			return true
		}
	}
	return false
}

// genEvasions generates every pseudo-legal move that could get a
// single-checked king out of check: king moves off the checked square,
// captures of the (lone) checker, and interpositions onto the checking
// ray. On double check only king moves are produced.
func (p *Position) genEvasions(us Color, l *MoveList) {
	ksq := p.KingSquare(us)
	checkers := p.st.CheckersBB
	occWithoutKing := p.allBB &^ SquareBB(ksq)

	for bb := KingAttackboard(ksq) &^ p.Pieces(us); bb != 0; {
		to := bb.PopLsb()
		if p.AttackersTo(to, occWithoutKing)&p.colorBB[us.Opponent()] == 0 {
			l.add(NewMove(ksq, to))
		}
	}

	if checkers.PopCount() > 1 {
		return // double check: only king moves escape
	}

	checkerSq := checkers.Lsb()
	target := SquareBB(checkerSq) | BetweenBB(checkerSq, ksq)

	var pseudo MoveList
	p.genPawnMoves(us, &pseudo, true)
	p.genPawnMoves(us, &pseudo, false)
	p.genPieceMoves(us, &pseudo, ^p.allBB|p.Pieces(us.Opponent()))
	for _, m := range pseudo.Moves {
		if m.From() == ksq {
			continue
		}
		if m.Kind() == EnPassantKind {
			capSq := NewSquare(m.To().File(), m.From().Rank())
			if capSq == checkerSq || target.IsSet(m.To()) {
				l.add(m)
			}
			continue
		}
		if target.IsSet(m.To()) {
			l.add(m)
		}
	}
}
