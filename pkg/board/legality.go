package board

// Legal reports whether the pseudo-legal move m is fully legal in the
// current position: it does not leave the mover's own king in check, and
// (for castling) the king does not pass through or land on an attacked
// square and the path between king and rook is clear -- both already
// enforced by the generator, rechecked here defensively since Legal is a
// public filter callers may apply to moves from any source (e.g. a UCI
// "position ... moves" replay).
func (p *Position) Legal(m Move) bool {
	us := p.activeColor
	them := us.Opponent()
	from, to := m.From(), m.To()
	ksq := p.KingSquare(us)

	if m.Kind() == CastlingKind {
		return p.castlingLegal(us, m)
	}

	if m.Kind() == EnPassantKind {
		return p.enPassantLegal(us, from, to)
	}

	if from == ksq {
		// occ excludes the king's own departure square so a slider that was
		// only blocked by the king itself is correctly seen as attacking to.
		occ := (p.allBB &^ SquareBB(from)) | SquareBB(to)
		return p.AttackersTo(to, occ)&p.colorBB[them]&^SquareBB(to) == 0
	}

	if checkers := p.st.CheckersBB; checkers != 0 {
		// Not a king move (handled above): the only way to stay legal
		// while in check is to capture the checker or interpose on the
		// ray between it and the king. Double check has no such move --
		// only the king escapes, so anything reaching here is illegal.
		if checkers.PopCount() > 1 {
			return false
		}
		checkerSq := checkers.Lsb()
		if to != checkerSq && !BetweenBB(ksq, checkerSq).IsSet(to) {
			return false
		}
	}

	if p.st.BlockersBB[us]&SquareBB(from) == 0 {
		return true // not pinned: cannot expose the king
	}
	return LineBB(from, ksq) == 0 || LineBB(from, ksq).IsSet(to)
}

func (p *Position) castlingLegal(us Color, m Move) bool {
	right := castlingRightOf(us, m.From(), m.To(), p)
	info, ok := p.CastlingInfo(right)
	if !ok {
		return false
	}
	if p.InCheck() {
		return false
	}
	if info.Path&p.allBB != 0 {
		return false
	}
	return !p.anyAttacked(info.KingPath, us.Opponent())
}

func (p *Position) enPassantLegal(us Color, from, to Square) bool {
	them := us.Opponent()
	ksq := p.KingSquare(us)
	capSq := NewSquare(to.File(), from.Rank())

	occ := (p.allBB &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(to)
	return p.AttackersTo(ksq, occ)&p.colorBB[them] == 0
}

// GivesCheck reports whether the pseudo-legal move m, if played, would
// place the opponent's king in check. It uses the State's precomputed
// ChecksBB (direct checks) plus a slider re-scan of the enemy king's lines
// with the post-move occupancy (discovered checks, and promotions checking
// through the vacated square), without requiring a do/undo round trip.
func (p *Position) GivesCheck(m Move) bool {
	us := p.activeColor
	from, to := m.From(), m.To()
	pc := p.pieceOn[from]
	pt := pc.Type()
	theirKsq := p.KingSquare(us.Opponent())

	if m.Kind() == PromotionKind {
		pt = m.Promotion()
	}

	if pt != King && p.st.ChecksBB[pt].IsSet(to) {
		// For sliders, ChecksBB was computed against the pre-move
		// occupancy; verify the ray is still unobstructed after this
		// piece's own departure square is vacated (it can only help, by
		// opening the ray further, so a naive true here is always sound
		// for non-sliders, and for sliders moving along the same ray it
		// remains sound since removing `from` cannot reintroduce a block).
		if !pt.IsSlider() || BetweenBB(to, theirKsq)&(p.allBB&^SquareBB(from)) == 0 {
			return true
		}
	}

	if m.Kind() == CastlingKind {
		right := castlingRightOf(us, from, to, p)
		if info, ok := p.CastlingInfo(right); ok {
			if RookAttacks(info.RookTo, (p.allBB&^SquareBB(info.KingFrom)&^SquareBB(info.RookFrom))|SquareBB(info.KingTo)|SquareBB(info.RookTo)).IsSet(theirKsq) {
				return true
			}
		}
	}

	// Discovered check: vacating from (and occupying to) unmasks one of our
	// sliders on a line to the enemy king. A promoted piece may also check
	// along the line through its own vacated origin square.
	if m.Kind() != CastlingKind {
		occ := (p.allBB &^ SquareBB(from)) | SquareBB(to)
		if p.SlideAttackersTo(theirKsq, occ)&p.Pieces(us) != 0 {
			return true
		}
		if m.Kind() == PromotionKind && Attacks(pt, to, occ).IsSet(theirKsq) {
			return true
		}
	}

	if m.Kind() == EnPassantKind {
		// An en passant capture vacates both the mover's origin square and
		// the captured pawn's square, either of which can unmask a slider.
		capSq := NewSquare(to.File(), from.Rank())
		occ := (p.allBB &^ SquareBB(from) &^ SquareBB(capSq)) | SquareBB(to)
		if p.SlideAttackersTo(theirKsq, occ)&p.Pieces(us) != 0 {
			return true
		}
	}

	return false
}

// Check is a terse alias for GivesCheck matching the component-design
// naming in the original source.
func (p *Position) Check(m Move) bool { return p.GivesCheck(m) }

// DblCheck reports whether the current position is a double check (two
// simultaneous checkers), in which only king moves can escape.
func (p *Position) DblCheck() bool { return p.st.CheckersBB.PopCount() > 1 }

// Fork reports whether m's destination, once occupied by the moved piece,
// attacks two or more enemy pieces of a type other than the mover's own --
// a move-ordering heuristic for spotting multi-piece attacks such as knight
// forks. It does not require the move to have been played.
func (p *Position) Fork(m Move) bool {
	us := p.activeColor
	from, to := m.From(), m.To()
	pt := p.pieceOn[from].Type()
	if m.Kind() == PromotionKind {
		pt = m.Promotion()
	}

	// occ reflects the piece having left `from` and landed on `to`; en
	// passant's extra vacated square never matters here since the attacker
	// is never a pawn occupying that square afterward.
	occ := (p.allBB &^ SquareBB(from)) | SquareBB(to)

	var att Bitboard
	if pt == Pawn {
		att = PawnAttacksBB(us, to)
	} else {
		att = Attacks(pt, to, occ)
	}
	att &= p.Pieces(us.Opponent()) &^ p.typeBB[pt]

	return att.PopCount() >= 2
}

// PseudoLegal reports whether m is a pseudo-legal move in the current
// position, independent of whether it came from the generator -- callers
// that accept moves from an untrusted source (a UCI "position ... moves"
// replay, a saved game) validate with PseudoLegal before ever calling
// Legal or DoMove.
func (p *Position) PseudoLegal(m Move) bool {
	if m.IsNone() || m.IsNull() {
		return false
	}

	us := p.activeColor
	from, to := m.From(), m.To()
	if from == to {
		return false
	}

	pc := p.pieceOn[from]
	if pc == NoPiece || pc.Color() != us {
		return false
	}

	switch m.Kind() {
	case CastlingKind:
		if pc.Type() != King {
			return false
		}
		right := castlingRightOf(us, from, to, p)
		info, ok := p.CastlingInfo(right)
		if !ok || info.KingFrom != from || info.RookFrom != to {
			return false
		}
		return !p.InCheck() && info.Path&p.allBB == 0 && !p.anyAttacked(info.KingPath, us.Opponent())

	case EnPassantKind:
		if pc.Type() != Pawn || to != p.st.EnPassantSq {
			return false
		}
		return PawnAttacksBB(us, from).IsSet(to)

	case PromotionKind:
		if pc.Type() != Pawn || to.RelativeRank(us) != Rank8 {
			return false
		}
		if cap := p.pieceOn[to]; cap != NoPiece {
			return cap.Color() != us && PawnAttacksBB(us, from).IsSet(to)
		}
		if PawnAttacksBB(us, from).IsSet(to) {
			return false // diagonal promotion with nothing to capture
		}
		return to == PawnPush(us, SquareBB(from)).Lsb()

	default:
		if target := p.pieceOn[to]; target != NoPiece && target.Color() == us {
			return false
		}
		if pc.Type() == Pawn {
			return p.pawnPseudoLegal(us, from, to)
		}
		return Attacks(pc.Type(), from, p.allBB).IsSet(to)
	}
}

func (p *Position) pawnPseudoLegal(us Color, from, to Square) bool {
	empty := ^p.allBB
	if PawnAttacksBB(us, from).IsSet(to) {
		return p.pieceOn[to] != NoPiece
	}
	one := PawnPush(us, SquareBB(from)) & empty
	if one != 0 && one.Lsb() == to {
		return true
	}
	if from.RelativeRank(us) != Rank2 || one == 0 {
		return false
	}
	two := PawnPush(us, one) & empty
	return two != 0 && two.Lsb() == to
}

// pieceValue gives the conventional SEE ordering value for a piece type;
// King is assigned a value higher than any real capture sequence can reach,
// since "capturing" the king never actually happens in a legal SEE chain.
func pieceValue(pt PieceType) int {
	switch pt {
	case Pawn:
		return 100
	case Knight:
		return 320
	case Bishop:
		return 330
	case Rook:
		return 500
	case Queen:
		return 900
	case King:
		return 20000
	default:
		return 0
	}
}

// SEE performs Static Exchange Evaluation for move m: the net material
// gain (in pieceValue units) if both sides play the locally optimal
// capture sequence on the destination square, stopping as soon as a side
// would come out behind by not stopping. Returns true if that gain for the
// side to move is at least threshold, matching the boolean "is this
// capture safe" signature used by move ordering / quiescence pruning.
// Castling counts as a gain of zero.
func (p *Position) SEE(m Move, threshold int) bool {
	if m.Kind() == CastlingKind {
		return threshold <= 0
	}

	from, to := m.From(), m.To()
	us := p.activeColor

	var nextVictim PieceType
	if m.Kind() == PromotionKind {
		nextVictim = m.Promotion()
	} else {
		nextVictim = p.pieceOn[from].Type()
	}

	gain := 0
	if m.Kind() == EnPassantKind {
		gain = pieceValue(Pawn)
	} else if cap := p.pieceOn[to]; cap != NoPiece {
		gain = pieceValue(cap.Type())
	}
	if m.Kind() == PromotionKind {
		gain += pieceValue(m.Promotion()) - pieceValue(Pawn)
	}

	balance := gain - threshold
	if balance < 0 {
		return false
	}
	balance -= pieceValue(nextVictim)
	if balance >= 0 {
		return true
	}

	occ := p.allBB &^ SquareBB(from)
	if m.Kind() == EnPassantKind {
		occ &^= SquareBB(NewSquare(to.File(), from.Rank()))
	}

	attackers := p.AttackersTo(to, occ)
	side := us.Opponent()

	for {
		ours := attackers & p.colorBB[side]
		// X-ray: sliders behind the square may become attackers once a
		// blocker in front of them is removed from occ; recompute on
		// every iteration against the shrinking occupancy.
		ours &= occ
		if ours == 0 {
			break
		}

		pt, sq := leastValuableAttacker(p, ours)
		occ &^= SquareBB(sq)
		attackers = p.AttackersTo(to, occ)

		balance = -balance - 1 - pieceValue(pt)
		side = side.Opponent()

		if balance >= 0 {
			if pt == King && attackers&p.colorBB[side] != 0 {
				// A king cannot capture into continued check; the side
				// that just "won" the exchange by capturing with the king
				// actually loses if the opponent still attacks the
				// square.
				side = side.Opponent()
			}
			break
		}
	}

	return side != us
}

func leastValuableAttacker(p *Position, attackers Bitboard) (PieceType, Square) {
	for _, pt := range [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		bb := attackers & p.typeBB[pt]
		if bb != 0 {
			return pt, bb.Lsb()
		}
	}
	panic("board: leastValuableAttacker called with no attackers")
}
