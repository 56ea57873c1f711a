package board_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, f string) (*board.Position, *board.ZobristTable) {
	t.Helper()
	zt := board.NewZobristTable(1)
	root := &board.State{}
	pos, _, _, err := fen.Decode(zt, root, f)
	require.NoError(t, err)
	return pos, zt
}

func TestFenRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/1PB1P1b1/P1NP1N2/2P1QPPP/R4RK1 b - - 0 10",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, f := range tests {
		pos, _ := decode(t, f)
		assert.Equal(t, f, fen.Encode(pos, pos.Rule50(), fullmoveFor(pos)))
	}
}

func fullmoveFor(pos *board.Position) int {
	return pos.GamePly()/2 + 1
}

func TestDoUndoMove(t *testing.T) {
	pos, _ := decode(t, fen.Initial)
	before := fen.Encode(pos, pos.Rule50(), fullmoveFor(pos))

	m := board.NewMove(board.E2, board.E4)
	var st board.State
	pos.DoMove(m, &st, pos.GivesCheck(m))

	assert.Equal(t, board.Black, pos.ActiveColor())
	assert.Equal(t, board.NoPiece, pos.PieceOn(board.E2))
	assert.Equal(t, board.MakePiece(board.White, board.Pawn), pos.PieceOn(board.E4))
	assert.Equal(t, board.NoSquare, pos.EnPassantSquare()) // no black pawn can capture on e3

	pos.UndoMove(m)
	assert.Equal(t, before, fen.Encode(pos, pos.Rule50(), fullmoveFor(pos)))
}

func TestCastlingRights(t *testing.T) {
	pos, _ := decode(t, fen.Initial)

	km := board.NewMove(board.E1, board.E2)
	var st board.State
	pos.DoMove(km, &st, false)
	assert.False(t, pos.CastlingRights().Has(board.WhiteOO))
	assert.False(t, pos.CastlingRights().Has(board.WhiteOOO))
	assert.True(t, pos.CastlingRights().Has(board.BlackOO))
	pos.UndoMove(km)
	assert.True(t, pos.CastlingRights().Has(board.WhiteOO))
}

func perft(pos *board.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var l board.MoveList
	pos.GenerateLegal(&l)
	if depth == 1 {
		return len(l.Moves)
	}
	count := 0
	for _, m := range l.Moves {
		var st board.State
		pos.DoMove(m, &st, pos.GivesCheck(m))
		count += perft(pos, depth-1)
		pos.UndoMove(m)
	}
	return count
}

func TestPerftStartpos(t *testing.T) {
	pos, _ := decode(t, fen.Initial)

	tests := []struct {
		depth    int
		expected int
	}{
		{0, 1},
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth))
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, _ := decode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	tests := []struct {
		depth    int
		expected int
	}{
		{1, 48},
		{2, 2039},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth))
	}
}

func TestPerftPosition3(t *testing.T) {
	pos, _ := decode(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")

	tests := []struct {
		depth    int
		expected int
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, perft(pos, tt.depth))
	}
}

func TestAttackersTo(t *testing.T) {
	pos, _ := decode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	att := pos.AttackersTo(board.D5, pos.Occupied())
	assert.True(t, att.IsSet(board.D7) == false) // sanity: the d7 pawn does not attack d5
	assert.True(t, att.PopCount() > 0)
}

func TestStalemateHasNoLegalMoves(t *testing.T) {
	pos, _ := decode(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	var l board.MoveList
	pos.GenerateLegal(&l)
	assert.True(t, len(l.Moves) == 0)
	assert.False(t, pos.InCheck())
}
