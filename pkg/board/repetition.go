package board

// recordRepetition walks the state chain back looking for an earlier
// position with the same key, reachable within the current unbroken
// sequence of reversible moves (bounded by Rule50), and records how far
// back the match was found. A match whose own predecessor already had a
// nonzero Repetition is recorded as negative, so a position is only
// reported as a draw by repetition once the SAME position has recurred
// twice within the search tree (the third occurrence including the game's
// real history is left to the caller, which tracks game history itself).
func (p *Position) recordRepetition(st *State) {
	st.Repetition = 0

	// A null move is never reversible to before it, so the walk never looks
	// further back than the most recent one.
	end := st.Rule50
	if st.NullPly < end {
		end = st.NullPly
	}

	s := st
	for i := 2; i <= end; i += 2 {
		if s.prev == nil || s.prev.prev == nil {
			break
		}
		s = s.prev.prev
		if s.Key == st.Key {
			if s.Repetition != 0 {
				st.Repetition = -i
			} else {
				st.Repetition = i
			}
			return
		}
	}
}

// IsDraw reports whether the current position is a draw by the 50-move
// rule or by repetition, within plyLimit plies of search (matching the
// common "don't claim a draw above the search root via a cycle that
// hasn't actually recurred in the real game" convention: a first match
// counts only when it lies fewer than plyLimit plies back, while a negative
// Repetition -- a position that had already repeated -- always counts,
// mirroring Stockfish's ply-bounded is_draw).
func (p *Position) IsDraw(plyLimit int) bool {
	if p.st.Rule50 > 99 {
		if p.st.CheckersBB == 0 || p.GenerateLegalCount() > 0 {
			return true
		}
	}
	return p.st.Repetition != 0 && p.st.Repetition < plyLimit
}

// GenerateLegalCount returns the number of legal moves in the current
// position; used only by the 50-move-rule draw check above (a position
// with no legal moves is handled as checkmate/stalemate by the caller
// instead, never as a 50-move draw).
func (p *Position) GenerateLegalCount() int {
	var l MoveList
	p.GenerateLegal(&l)
	return len(l.Moves)
}

// HasUpcomingRepetition reports whether, from the current position, the
// side to move has a reversible move after which an earlier position in
// the game (same side to move) would recur -- the "upcoming repetition"
// check used by search to avoid needing to fully replay a line to detect
// a forced draw. It uses the cuckoo hash table (van Kervinck's trick):
// for any two same-colored, same-piece-type squares a,b the key delta of
// a reversible move between them is looked up in a small perfect-ish hash
// table of all such deltas, giving an O(1) candidate test per ply walked.
func (p *Position) HasUpcomingRepetition(maxPly int) bool {
	st := p.st
	end := st.Rule50
	if st.NullPly < end {
		end = st.NullPly
	}
	if end > maxPly {
		end = maxPly
	}

	occ := p.allBB
	s := st.prev
	for i := 3; i <= end; i += 2 {
		if s == nil || s.prev == nil || s.prev.prev == nil {
			break
		}
		s = s.prev.prev
		diff := uint64(st.Key ^ s.Key)

		h1 := cuckooH1(diff)
		if cuckooKey[h1] == diff {
			if from, to, ok := decodeCuckooMove(cuckooMove[h1]); ok {
				if cuckooApplies(p, occ, from, to) {
					return true
				}
			}
		}
		h2 := cuckooH2(diff)
		if cuckooKey[h2] == diff {
			if from, to, ok := decodeCuckooMove(cuckooMove[h2]); ok {
				if cuckooApplies(p, occ, from, to) {
					return true
				}
			}
		}
	}
	return false
}

func cuckooApplies(p *Position, occ Bitboard, from, to Square) bool {
	if p.pieceOn[from] != NoPiece && p.pieceOn[to] != NoPiece {
		return false
	}
	var sq Square
	if p.pieceOn[from] == NoPiece {
		if p.pieceOn[to] == NoPiece {
			return false
		}
		sq = to
	} else {
		sq = from
	}
	return BetweenBB(from, to)&occ == 0 && sq.IsValid() && p.pieceOn[sq].Color() == p.activeColor
}

const cuckooTableSize = 8192

var (
	cuckooKey   [cuckooTableSize]uint64
	cuckooMove  [cuckooTableSize]uint32
	cuckooCount int
)

// CuckooCount returns the number of reversible (non-pawn) moves folded into
// the cuckoo hash table, for diagnostics and testing.
func CuckooCount() int { return cuckooCount }

func cuckooH1(key uint64) uint64 { return key & (cuckooTableSize - 1) }
func cuckooH2(key uint64) uint64 { return (key >> 16) & (cuckooTableSize - 1) }

func encodeCuckooMove(from, to Square) uint32 {
	return uint32(from)<<8 | uint32(to) | 1<<16
}

func decodeCuckooMove(v uint32) (Square, Square, bool) {
	if v&(1<<16) == 0 {
		return 0, 0, false
	}
	return Square(v >> 8 & 0xff), Square(v & 0xff), true
}

// initCuckoo populates the cuckoo hash table with the Zobrist key delta of
// every reversible (knight, bishop, rook, queen or king, quiet) move between two squares a
// piece type attacks each other from, using the classic bucket-swap
// insertion: collisions evict the incumbent into its OTHER slot, so a
// small table can hold the full O(N^2) set of deltas with few probes.
func initCuckoo(zt *ZobristTable) {
	cuckooCount = 0
	for i := range cuckooKey {
		cuckooKey[i] = 0
		cuckooMove[i] = 0
	}

	for c := ZeroColor; c < NumColors; c++ {
		for pt := Knight; pt <= King; pt++ {
			for a := ZeroSquare; a < NumSquares; a++ {
				for b := a + 1; b < NumSquares; b++ {
					if Attacks(pt, a, EmptyBitboard)&SquareBB(b) == 0 {
						continue
					}
					move := encodeCuckooMove(a, b)
					key := uint64(zt.PieceKey(c, pt, a) ^ zt.PieceKey(c, pt, b) ^ zt.TurnKey())

					slot := cuckooH1(key)
					for {
						key, cuckooKey[slot] = cuckooKey[slot], key
						move, cuckooMove[slot] = cuckooMove[slot], move
						if move == 0 {
							break
						}
						if slot == cuckooH1(key) {
							slot = cuckooH2(key)
						} else {
							slot = cuckooH1(key)
						}
					}
					cuckooCount++
				}
			}
		}
	}
}
