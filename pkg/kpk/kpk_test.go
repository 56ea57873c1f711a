package kpk_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/kpk"
	"github.com/stretchr/testify/assert"
)

func TestProbeKnownWin(t *testing.T) {
	// White king e6, black king e8, white pawn e5, white to move: textbook win.
	win := kpk.Probe(true, board.E6, board.E8, board.E5)
	assert.True(t, win)
}

func TestProbeKnownDraw(t *testing.T) {
	// Black king directly in front of the pawn, white king too far to help.
	win := kpk.Probe(true, board.A1, board.D5, board.D4)
	assert.False(t, win)
}

func TestMirroringIsConsistent(t *testing.T) {
	a := kpk.Probe(true, board.E6, board.E8, board.E5)
	b := kpk.Probe(true, board.D6, board.D8, board.D5)
	assert.Equal(t, a, b)
}

func TestProbeRookPawnOnSecondRank(t *testing.T) {
	// 4k3/8/8/8/8/8/P7/4K3 w - - 0 1: white to move wins this textbook
	// a-pawn position with the defending king cut off on the kingside.
	assert.True(t, kpk.Probe(true, board.E1, board.E8, board.A2))
}
