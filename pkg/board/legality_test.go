package board_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastlingThroughCheck(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var l board.MoveList
	pos.GenerateLegal(&l)
	found := false
	for _, m := range l.Moves {
		if m.Kind() == board.CastlingKind && m.From() == board.E1 && m.To() == board.H1 {
			found = true
		}
	}
	assert.True(t, found, "white O-O should be legal with a clear path")

	root2 := &board.State{}
	pos2, _, _, err := fen.Decode(zt, root2, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	var l2 board.MoveList
	pos2.GenerateLegal(&l2)
	for _, m := range l2.Moves {
		if m.Kind() == board.CastlingKind && m.From() == board.E1 && m.To() == board.H1 {
			t.Fatalf("white O-O should be illegal when the king's path is attacked")
		}
	}
}

func TestEnPassantDiscoveredCheckIsIllegal(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, "8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1")
	require.NoError(t, err)

	var l board.MoveList
	pos.GenerateLegal(&l)
	for _, m := range l.Moves {
		if m.Kind() == board.EnPassantKind && m.From() == board.B5 && m.To() == board.C6 {
			t.Fatalf("b5c6 en passant should be illegal: it discovers a rook check along rank 5")
		}
	}
}

func TestRepetitionDraw(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, fen.Initial)
	require.NoError(t, err)

	moves := []struct{ from, to board.Square }{
		{board.G1, board.F3}, {board.G8, board.F6},
		{board.F3, board.G1}, {board.F6, board.G8},
		{board.G1, board.F3}, {board.G8, board.F6},
		{board.F3, board.G1}, {board.F6, board.G8},
	}

	var last *board.State
	for _, mv := range moves {
		m := board.NewMove(mv.from, mv.to)
		st := &board.State{}
		pos.DoMove(m, st, pos.GivesCheck(m))
		last = st
	}

	assert.True(t, pos.IsDraw(1000))
	assert.NotZero(t, last.Repetition)
}

func TestCuckooTableCount(t *testing.T) {
	board.NewZobristTable(1) // population happens as a side effect of construction
	assert.Equal(t, 3668, board.CuckooCount())
}

func TestGenerateWhileInCheckOnlyProducesLegalEvasions(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, "4r2k/8/8/8/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, pos.InCheck())

	for _, cat := range []board.GenCategory{board.Captures, board.Quiets} {
		var l board.MoveList
		pos.GeneratePseudoLegal(cat, &l)
		require.NotEmpty(t, l.Moves)
		for _, m := range l.Moves {
			assert.True(t, pos.Legal(m), "%v from category %v must be legal while in check", m, cat)
		}
	}
}

func TestForkDetectsTwoPieceAttack(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, "k7/8/8/8/r7/8/4b3/1N4K1 w - - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.B1, board.C3)
	assert.True(t, pos.Fork(m), "Nc3 should fork the rook on a4 and the bishop on e2")
}

func TestPseudoLegalAcceptsAndRejectsMoves(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, fen.Initial)
	require.NoError(t, err)

	assert.True(t, pos.PseudoLegal(board.NewMove(board.E2, board.E4)))
	assert.True(t, pos.PseudoLegal(board.NewMove(board.G1, board.F3)))
	assert.False(t, pos.PseudoLegal(board.NewMove(board.E2, board.E5)))
	assert.False(t, pos.PseudoLegal(board.NewMove(board.A1, board.A8)))
	assert.False(t, pos.PseudoLegal(board.NoMove))
}
