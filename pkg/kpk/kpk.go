// Package kpk builds and probes the king+pawn-vs-king endgame bitbase: a
// retrograde, fixed-point classification of every reduced KPK position
// into a win for the side with the pawn or a draw.
//
// Ported from the classification scheme in Stockfish-family engines
// (Bitbases::initialize/KPKPosition::classify): the pawn's file is
// mirrored into [FileA, FileD] before indexing, since KPK is symmetric
// across the e/d-file boundary.
package kpk

import "github.com/kaeldric/chesscore/pkg/board"

// baseSize is wpFile(4) * wpRank(6) * active(2) * wkSq(64) * bkSq(64).
const baseSize = 24 * 2 * 64 * 64

type result uint8

const (
	invalid result = 0
	unknown result = 1 << iota
	draw
	win
	lose
)

var table [baseSize]bool // true iff the position at this index is a win

func init() {
	arr := make([]result, baseSize)
	for idx := 0; idx < baseSize; idx++ {
		arr[idx] = classifyInitial(idx)
	}

	for repeat := true; repeat; {
		repeat = false
		for idx := 0; idx < baseSize; idx++ {
			if arr[idx] == unknown {
				if r := classify(idx, arr); r != unknown {
					arr[idx] = r
					repeat = true
				}
			}
		}
	}

	count := 0
	for idx := 0; idx < baseSize; idx++ {
		if arr[idx] == win {
			table[idx] = true
			count++
		}
	}
	if count != 111282 {
		panic("kpk: bitbase win count mismatch")
	}
}

// index packs (active, wkSq, bkSq, wpSq) into a bitbase index. wpSq's file
// must already be in [FileA, FileD].
func index(active board.Color, wkSq, bkSq, wpSq board.Square) int {
	f := int(wpSq.File())
	r := int(wpSq.Rank())
	return int(wkSq) | int(bkSq)<<6 | int(active)<<12 | (f&3)<<13 | ((r-1)&7)<<15
}

func decode(idx int) (active board.Color, wkSq, bkSq, wpSq board.Square) {
	wkSq = board.Square(idx & 0x3f)
	bkSq = board.Square((idx >> 6) & 0x3f)
	active = board.Color((idx >> 12) & 1)
	f := board.File((idx >> 13) & 3)
	r := board.Rank((idx>>15)&7) + board.Rank2
	wpSq = board.NewSquare(f, r)
	return
}

func classifyInitial(idx int) result {
	active, wkSq, bkSq, wpSq := decode(idx)

	if board.KingDistance(wkSq, bkSq) <= 1 || wkSq == wpSq || bkSq == wpSq {
		return invalid
	}
	if active == board.White && board.PawnAttacksBB(board.White, wpSq).IsSet(bkSq) {
		return invalid
	}

	if active == board.White && wpSq.Rank() == board.Rank7 {
		push := wpSq + 8
		if wkSq != push && bkSq != push {
			if board.KingDistance(bkSq, push) >= 2 || board.KingDistance(wkSq, push) == 1 {
				return win
			}
		}
	}

	if active == board.Black {
		if board.KingDistance(bkSq, wpSq) == 1 && board.KingDistance(wkSq, wpSq) >= 2 {
			return draw
		}
		if board.KingAttackboard(bkSq)&^(board.KingAttackboard(wkSq)|board.PawnAttacksBB(board.White, wpSq)) == 0 {
			return draw
		}
	}

	return unknown
}

func classify(idx int, arr []result) result {
	active, wkSq, bkSq, wpSq := decode(idx)

	good, bad := win, draw
	if active == board.Black {
		good, bad = draw, win
	}

	r := invalid

	if active == board.White {
		for b := board.KingAttackboard(wkSq) &^ board.KingAttackboard(bkSq); b != 0; {
			sq := b.PopLsb()
			r |= arr[index(board.Black, sq, bkSq, wpSq)]
		}
		if wpSq.Rank() <= board.Rank6 {
			push := wpSq + 8
			r |= arr[index(board.Black, wkSq, bkSq, push)]
			if wpSq.Rank() == board.Rank2 && wkSq != push && bkSq != push {
				push2 := wpSq + 16
				r |= arr[index(board.Black, wkSq, bkSq, push2)]
			}
		}
	} else {
		for b := board.KingAttackboard(bkSq) &^ board.KingAttackboard(wkSq); b != 0; {
			sq := b.PopLsb()
			r |= arr[index(board.White, wkSq, sq, wpSq)]
		}
	}

	switch {
	case r&good != 0:
		return good
	case r&unknown != 0:
		return unknown
	default:
		return bad
	}
}

// Probe reports whether the side with the pawn (stm reports whether the
// strong side, the side with the pawn, is to move) wins the reduced KPK
// position with the strong king on skSq, weak king on wkSq and pawn on
// spSq -- all from the strong side's point of view, i.e. the pawn always
// moves toward rank 8. Callers with a black pawn must mirror ranks (and
// swap king roles) before calling.
func Probe(strongToMove bool, skSq, wkSq, spSq board.Square) bool {
	f := spSq.File()
	if f >= board.FileE {
		skSq = mirrorFile(skSq)
		wkSq = mirrorFile(wkSq)
		spSq = mirrorFile(spSq)
	}

	active := board.Black
	if strongToMove {
		active = board.White
	}
	return table[index(active, skSq, wkSq, spSq)]
}

func mirrorFile(sq board.Square) board.Square {
	return board.NewSquare(7-sq.File(), sq.Rank())
}
