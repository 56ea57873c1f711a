package board_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	assert.True(t, board.Rank1.IsValid())
	assert.True(t, board.Rank3.IsValid())
	assert.True(t, board.Rank8.IsValid())
	assert.False(t, board.Rank(8).IsValid())

	assert.Equal(t, "1", board.Rank1.String())
	assert.Equal(t, "7", board.Rank7.String())
}

func TestFile(t *testing.T) {
	assert.True(t, board.FileA.IsValid())
	assert.True(t, board.FileB.IsValid())
	assert.True(t, board.FileH.IsValid())
	assert.False(t, board.File(8).IsValid())

	assert.Equal(t, "a", board.FileA.String())
	assert.Equal(t, "g", board.FileG.String())
}

func TestSquare(t *testing.T) {
	assert.Equal(t, board.A1, board.NewSquare(board.FileA, board.Rank1))
	assert.Equal(t, board.H1, board.NewSquare(board.FileH, board.Rank1))
	assert.Equal(t, board.A8, board.NewSquare(board.FileA, board.Rank8))
	assert.Equal(t, board.H8, board.NewSquare(board.FileH, board.Rank8))

	assert.True(t, board.H1.IsValid())
	assert.True(t, board.D4.IsValid())
	assert.True(t, board.A8.IsValid())
	assert.False(t, board.NoSquare.IsValid())

	assert.Equal(t, "h1", board.H1.String())
	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "e4", board.E4.String())

	sq, err := board.ParseSquareStr("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.E4, sq)

	_, err = board.ParseSquareStr("i9")
	assert.Error(t, err)
}

func TestRelativeRank(t *testing.T) {
	assert.Equal(t, board.Rank1, board.A1.RelativeRank(board.White))
	assert.Equal(t, board.Rank8, board.A1.RelativeRank(board.Black))
	assert.Equal(t, board.Rank7, board.D7.RelativeRank(board.White))
	assert.Equal(t, board.Rank2, board.D7.RelativeRank(board.Black))
}

func TestKingDistance(t *testing.T) {
	assert.Equal(t, 0, board.KingDistance(board.A1, board.A1))
	assert.Equal(t, 7, board.KingDistance(board.A1, board.H8))
	assert.Equal(t, 1, board.KingDistance(board.D4, board.E5))
}
