package board

import "math/rand"

// Magic bitboards: a perfetto-hashing scheme mapping (square,
// occupancy-masked bits) to an index into a precomputed sliding-attack
// table, giving O(1) bishop/rook attacks on arbitrary occupancy.
//
// This package only implements the random-magic-search fallback path from
// spec.md §4.2: Go has no portable PEXT intrinsic without an assembly
// shim, so the "preferred" PEXT indexer is not built here (see
// DESIGN.md). The search mirrors the classic approach in
// original_source/src/BitBoard.MAGIC.cpp and the magic-query shape used
// at runtime by Bubblyworld-dragontoothmg/movegen.go
// ((occ&mask)*magic>>shift).

type magicEntry struct {
	mask  Bitboard
	magic uint64
	shift uint
	table []Bitboard
}

var (
	bishopMagics [NumSquares]magicEntry
	rookMagics   [NumSquares]magicEntry
)

var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// BishopAttacks returns the bishop attack set from sq given the full board
// occupancy occ.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	e := &bishopMagics[sq]
	idx := ((occ & e.mask) * Bitboard(e.magic)) >> e.shift
	return e.table[idx]
}

// RookAttacks returns the rook attack set from sq given the full board
// occupancy occ.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	e := &rookMagics[sq]
	idx := ((occ & e.mask) * Bitboard(e.magic)) >> e.shift
	return e.table[idx]
}

// QueenAttacks returns the queen attack set from sq given occ.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// Attacks returns the attack set for a non-pawn piece type from sq given
// occ.
func Attacks(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case King:
		return KingAttackboard(sq)
	case Knight:
		return KnightAttackboard(sq)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	default:
		panic("magic: invalid piece type")
	}
}

func init() {
	initMagics(bishopDeltas, &bishopMagics)
	initMagics(rookDeltas, &rookMagics)
}

// relevantMask computes the attack mask on an empty board, minus the
// board edges that never matter as blockers (a/h files unless sq itself
// is on that file; ranks 1/8 unless sq itself is on that rank).
func relevantMask(sq Square, deltas [4][2]int) Bitboard {
	f, r := int(sq.File()), int(sq.Rank())

	var mask Bitboard
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		for nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			// Stop one short of the edge in this ray direction, unless
			// the origin square is itself on that edge (then the edge
			// square can never be a blocker bit we need to mask, so we
			// simply don't extend past it -- the loop bound already
			// handles that naturally).
			nnf, nnr := nf+d[0], nr+d[1]
			onEdge := nnf < 0 || nnf > 7 || nnr < 0 || nnr > 7
			if onEdge {
				break
			}
			mask |= squareBB[NewSquare(File(nf), Rank(nr))]
			nf, nr = nnf, nnr
		}
	}
	return mask
}

// slidingAttack ray-walks each delta direction from sq, stopping after
// (and including) the first occupied square.
func slidingAttack(sq Square, occ Bitboard, deltas [4][2]int) Bitboard {
	f, r := int(sq.File()), int(sq.Rank())

	var attacks Bitboard
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		for nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
			to := NewSquare(File(nf), Rank(nr))
			attacks |= squareBB[to]
			if occ.IsSet(to) {
				break
			}
			nf += d[0]
			nr += d[1]
		}
	}
	return attacks
}

// initMagics fills in the magic entries for one piece family (bishop or
// rook) for every square, via bounded random search.
func initMagics(deltas [4][2]int, out *[NumSquares]magicEntry) {
	rng := rand.New(rand.NewSource(0xC0FFEE))

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		mask := relevantMask(sq, deltas)
		bits := mask.PopCount()
		shift := uint(64 - bits)

		// Enumerate every occupancy subset of mask (carry-rippler) along
		// with its true sliding attack, used both to search for a magic
		// and to populate the final table.
		size := 1 << uint(bits)
		occs := make([]Bitboard, 0, size)
		refs := make([]Bitboard, 0, size)

		var occ Bitboard
		for {
			occs = append(occs, occ)
			refs = append(refs, slidingAttack(sq, occ, deltas))
			occ = (occ - mask) & mask
			if occ == 0 {
				break
			}
		}

		table := make([]Bitboard, size)
		magic := findMagic(rng, mask, shift, occs, refs, table)

		out[sq] = magicEntry{mask: mask, magic: magic, shift: shift, table: table}
	}
}

// findMagic draws sparse 64-bit candidates until one maps every
// enumerated occupancy subset to a table slot that is either empty or
// already holds the same reference attack (i.e. no real collision).
func findMagic(rng *rand.Rand, mask Bitboard, shift uint, occs, refs, table []Bitboard) uint64 {
	for attempt := 0; ; attempt++ {
		magic := sparseRandom(rng)
		if Bitboard(uint64(mask)*magic>>56).PopCount() < 6 {
			continue
		}

		for i := range table {
			table[i] = 0
		}

		ok := true
		for i, occ := range occs {
			idx := (occ * Bitboard(magic)) >> shift
			if table[idx] != 0 && table[idx] != refs[i] {
				ok = false
				break
			}
			table[idx] = refs[i]
		}
		if ok {
			return magic
		}

		if attempt > 100_000_000 {
			panic("magic: no magic found within search budget")
		}
	}
}

func sparseRandom(rng *rand.Rand) uint64 {
	return rng.Uint64() & rng.Uint64() & rng.Uint64()
}
