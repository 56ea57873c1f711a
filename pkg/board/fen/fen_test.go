package fen_test

import (
	"errors"
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3k4/8/3K4/3P4/8 w - - 0 1",
	}

	for _, tt := range tests {
		zt := board.NewZobristTable(1)
		root := &board.State{}
		p, rule50, fullmoves, err := fen.Decode(zt, root, tt)
		require.NoError(t, err)

		assert.Equal(t, tt, fen.Encode(p, rule50, fullmoves))
	}
}

func TestDecodeShredderFen(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	p, _, _, err := fen.Decode(zt, root, "r3k2r/8/8/8/8/8/8/R3K2R w HAha - 0 1")
	require.NoError(t, err)
	assert.True(t, p.IsChess960())
}

func TestDecodeInvalid(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}

	tests := []string{
		"",
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, tt := range tests {
		_, _, _, err := fen.Decode(zt, root, tt)
		assert.Error(t, err)
	}
}

func TestDecodeNoKingReturnsErrNoKing(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	_, _, _, err := fen.Decode(zt, root, "8/8/8/8/8/8/8/4K3 w - - 0 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, board.ErrNoKing))
}

func TestDecodeEnPassant(t *testing.T) {
	zt := board.NewZobristTable(1)
	root := &board.State{}
	p, _, _, err := fen.Decode(zt, root, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	assert.Equal(t, board.D6, p.EnPassantSquare())
}
