package board_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboard(t *testing.T) {
	t.Run("popcount", func(t *testing.T) {
		tests := []struct {
			bb       board.Bitboard
			expected int
		}{
			{board.EmptyBitboard, 0},
			{board.SquareBB(board.G4), 1},
			{board.SquareBB(board.G3) | board.SquareBB(board.G4), 2},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.bb.PopCount())
		}
	})

	t.Run("lsb_msb", func(t *testing.T) {
		bb := board.SquareBB(board.C2) | board.SquareBB(board.F6)
		assert.Equal(t, board.C2, bb.Lsb())
		assert.Equal(t, board.F6, bb.Msb())

		first := bb.PopLsb()
		assert.Equal(t, board.C2, first)
		assert.Equal(t, board.SquareBB(board.F6), bb)
	})

	t.Run("king", func(t *testing.T) {
		assert.Equal(t, 3, board.KingAttackboard(board.A1).PopCount())
		assert.Equal(t, 8, board.KingAttackboard(board.D4).PopCount())
		assert.True(t, board.KingAttackboard(board.A1).IsSet(board.B2))
		assert.False(t, board.KingAttackboard(board.A1).IsSet(board.C3))
	})

	t.Run("knight", func(t *testing.T) {
		assert.Equal(t, 2, board.KnightAttackboard(board.A1).PopCount())
		assert.Equal(t, 8, board.KnightAttackboard(board.D4).PopCount())
		assert.True(t, board.KnightAttackboard(board.A1).IsSet(board.B3))
		assert.True(t, board.KnightAttackboard(board.A1).IsSet(board.C2))
	})

	t.Run("pawn attacks", func(t *testing.T) {
		assert.Equal(t, 2, board.PawnAttacksBB(board.White, board.D4).PopCount())
		assert.True(t, board.PawnAttacksBB(board.White, board.D4).IsSet(board.C5))
		assert.True(t, board.PawnAttacksBB(board.White, board.D4).IsSet(board.E5))
		assert.True(t, board.PawnAttacksBB(board.Black, board.D4).IsSet(board.C3))
		assert.Equal(t, 1, board.PawnAttacksBB(board.White, board.A4).PopCount())
	})

	t.Run("between and line", func(t *testing.T) {
		assert.Equal(t, board.SquareBB(board.C1)|board.SquareBB(board.D1)|board.SquareBB(board.E1), board.BetweenBB(board.B1, board.F1))
		assert.Equal(t, board.EmptyBitboard, board.BetweenBB(board.B1, board.B2))
		assert.True(t, board.LineBB(board.A1, board.H8).IsSet(board.D4))
		assert.False(t, board.LineBB(board.A1, board.H8).IsSet(board.A2))
	})
}

func TestMagicAttacks(t *testing.T) {
	t.Run("rook empty board", func(t *testing.T) {
		att := board.RookAttacks(board.H1, board.EmptyBitboard)
		assert.Equal(t, 14, att.PopCount())
	})

	t.Run("rook blocked", func(t *testing.T) {
		occ := board.SquareBB(board.H2) | board.SquareBB(board.D1)
		att := board.RookAttacks(board.H1, occ)
		assert.True(t, att.IsSet(board.H2))
		assert.False(t, att.IsSet(board.H3))
		assert.True(t, att.IsSet(board.D1))
		assert.False(t, att.IsSet(board.C1))
	})

	t.Run("bishop empty board", func(t *testing.T) {
		att := board.BishopAttacks(board.D4, board.EmptyBitboard)
		assert.Equal(t, 13, att.PopCount())
	})

	t.Run("queen union", func(t *testing.T) {
		occ := board.EmptyBitboard
		q := board.QueenAttacks(board.D4, occ)
		expected := board.BishopAttacks(board.D4, occ) | board.RookAttacks(board.D4, occ)
		assert.Equal(t, expected, q)
	})
}
