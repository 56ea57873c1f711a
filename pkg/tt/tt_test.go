package tt_test

import (
	"testing"

	"github.com/kaeldric/chesscore/pkg/board"
	"github.com/kaeldric/chesscore/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreProbe(t *testing.T) {
	table := tt.NewTable(1)

	key := board.ZobristKey(0xABCDEF0123456789)
	move := board.NewMove(board.E2, board.E4)
	table.Store(key, move, 42, 10, 6, tt.BoundExact, true)

	e, ok := table.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, move, e.Move)
	assert.Equal(t, int16(42), e.Score)
	assert.Equal(t, uint8(6), e.Depth)
	assert.Equal(t, tt.BoundExact, e.Bound)
	assert.True(t, e.IsPV)
}

func TestProbeMiss(t *testing.T) {
	table := tt.NewTable(1)
	_, ok := table.Probe(board.ZobristKey(12345))
	assert.False(t, ok)
}

func TestClusterCountIsPowerOfTwo(t *testing.T) {
	table := tt.NewTable(4)
	n := table.Len()
	assert.Equal(t, n&(n-1), 0)
}

func TestClear(t *testing.T) {
	table := tt.NewTable(1)
	key := board.ZobristKey(555)
	table.Store(key, board.NoMove, 1, 1, 1, tt.BoundLower, false)
	table.Clear()
	_, ok := table.Probe(key)
	assert.False(t, ok)
}

// TestStoreReplacementPrefersCurrentGenerationAndExactBound fills one
// cluster, then forces a fifth store into it: the deep BoundExact entry
// must survive even though three shallower BoundLower entries are tied
// with each other on depth alone.
func TestStoreReplacementPrefersCurrentGenerationAndExactBound(t *testing.T) {
	table := tt.NewTable(1)

	// A 1MB table clusters 16384 ways (14 mask bits); adding a multiple of
	// 2^14 to a key preserves its cluster while changing its full key.
	const clusterStride = 1 << 14
	base := board.ZobristKey(7)
	k1, k2, k3 := base, base+clusterStride, base+2*clusterStride
	keeper := base + 3*clusterStride
	evictor := base + 4*clusterStride

	table.Store(k1, board.NoMove, 0, 0, 1, tt.BoundLower, false)
	table.Store(k2, board.NoMove, 0, 0, 1, tt.BoundLower, false)
	table.Store(k3, board.NoMove, 0, 0, 1, tt.BoundLower, false)
	table.Store(keeper, board.NoMove, 0, 0, 20, tt.BoundExact, false)

	table.Store(evictor, board.NoMove, 0, 0, 1, tt.BoundLower, false)

	e, ok := table.Probe(keeper)
	require.True(t, ok)
	assert.Equal(t, uint8(20), e.Depth)
	assert.Equal(t, tt.BoundExact, e.Bound)
}

func TestProbeRefreshesGeneration(t *testing.T) {
	table := tt.NewTable(1)
	key := board.ZobristKey(99)
	table.Store(key, board.NoMove, 5, 5, 3, tt.BoundExact, false)

	table.NewGeneration()

	first, ok := table.Probe(key)
	require.True(t, ok)

	second, ok := table.Probe(key)
	require.True(t, ok)
	assert.Equal(t, first.Generation, second.Generation)
	assert.Equal(t, tt.BoundExact, second.Bound)
	assert.Equal(t, int16(5), second.Score)
}

func TestHashFull(t *testing.T) {
	table := tt.NewTable(1)
	assert.Equal(t, 0, table.HashFull())

	for i := 0; i < 4; i++ {
		table.Store(board.ZobristKey(i), board.NoMove, 0, 0, 1, tt.BoundExact, false)
	}
	assert.Greater(t, table.HashFull(), 0)
}
