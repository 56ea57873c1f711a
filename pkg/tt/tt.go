// Package tt implements a clustered, lock-friendly transposition table.
//
// Layout is ported from the cache-line clustering in
// original_source/src/Transposition.cpp: four 16-byte entries per 64-byte
// cluster, so a probe touches exactly one cache line. Unlike the original
// (single-threaded C++ with no concurrent writers), entries here are
// stored as a pair of atomically-written uint64 words using the classic
// "data XOR key" trick, so a concurrent reader that races a writer either
// sees a fully consistent entry or one whose key verification fails --
// never a value blended from two different stores. There are no locks:
// every table in this package is meant to be shared, read-mostly, across
// search threads.
package tt

import (
	"sync/atomic"

	"github.com/kaeldric/chesscore/pkg/board"
)

// Bound classifies how a stored score relates to the true minimax value.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

const (
	entriesPerCluster = 4
	minSizeMB         = 1
	maxSizeMB         = 1 << 16
	defaultSizeMB     = 16
)

// data packs everything but the key-verification fragment into 64 bits:
//
//	bits  0-15: Move
//	bits 16-31: score (int16)
//	bits 32-47: eval (int16)
//	bits 48-55: depth
//	bits 56-57: bound
//	bit     58: is-PV
//	bits 59-63: generation
type packedData uint64

func packData(move board.Move, score, eval int16, depth uint8, bound Bound, isPV bool, gen uint8) packedData {
	d := packedData(move)
	d |= packedData(uint16(score)) << 16
	d |= packedData(uint16(eval)) << 32
	d |= packedData(depth) << 48
	d |= packedData(bound) << 56
	if isPV {
		d |= 1 << 58
	}
	d |= packedData(gen&0x1f) << 59
	return d
}

func (d packedData) move() board.Move   { return board.Move(d) }
func (d packedData) score() int16       { return int16(d >> 16) }
func (d packedData) eval() int16        { return int16(d >> 32) }
func (d packedData) depth() uint8       { return uint8(d >> 48) }
func (d packedData) bound() Bound       { return Bound((d >> 56) & 0x3) }
func (d packedData) isPV() bool         { return d&(1<<58) != 0 }
func (d packedData) generation() uint8 { return uint8((d >> 59) & 0x1f) }

type slot struct {
	key  atomic.Uint64 // stores (data ^ key) for torn-read detection
	data atomic.Uint64
}

func (s *slot) load(key uint64) (packedData, bool) {
	d := s.data.Load()
	k := s.key.Load()
	if k^d != key {
		return 0, false
	}
	return packedData(d), true
}

func (s *slot) store(key uint64, d packedData) {
	s.data.Store(uint64(d))
	s.key.Store(key ^ uint64(d))
}

type cluster [entriesPerCluster]slot

// Entry is the result of a successful Probe: a snapshotted, internally
// consistent copy of one slot.
type Entry struct {
	Move       board.Move
	Score      int16
	Eval       int16
	Depth      uint8
	Bound      Bound
	IsPV       bool
	Generation uint8
}

// Table is a fixed-size, power-of-two-clustered transposition table.
type Table struct {
	clusters   []cluster
	mask       uint64
	generation atomic.Uint32
}

// NewTable allocates a table of approximately sizeMB megabytes, following
// the teacher's search.NewTranspositionTable(ctx, size) factory shape.
func NewTable(sizeMB int) *Table {
	if sizeMB < minSizeMB {
		sizeMB = minSizeMB
	}
	if sizeMB > maxSizeMB {
		sizeMB = maxSizeMB
	}

	bytesPerCluster := uint64(entriesPerCluster * 16)
	numClusters := nextPowerOfTwo(uint64(sizeMB) * 1024 * 1024 / bytesPerCluster)
	if numClusters == 0 {
		numClusters = 1
	}

	return &Table{
		clusters: make([]cluster, numClusters),
		mask:     numClusters - 1,
	}
}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// NewGeneration bumps the table's generation counter, called once per
// search iteration so the replacement policy can prefer fresher entries
// without clearing the table.
func (t *Table) NewGeneration() {
	t.generation.Add(1)
}

func (t *Table) clusterFor(key board.ZobristKey) *cluster {
	return &t.clusters[uint64(key)&t.mask]
}

// Probe looks up key and returns the stored entry, if any and if its key
// fragment (the full 64-bit key, verified via the XOR trick) matches. A hit
// from an older generation is refreshed in place to the current generation
// (move/score/eval/depth/bound/isPV preserved) before being returned, so a
// frequently-probed entry does not age out under the replacement policy as
// if it had never been touched.
func (t *Table) Probe(key board.ZobristKey) (Entry, bool) {
	c := t.clusterFor(key)
	k := uint64(key)
	gen := uint8(t.generation.Load() & 0x1f)
	for i := range c {
		if d, ok := c[i].load(k); ok {
			if d.generation() != gen {
				d = packData(d.move(), d.score(), d.eval(), d.depth(), d.bound(), d.isPV(), gen)
				c[i].store(k, d)
			}
			return Entry{
				Move:       d.move(),
				Score:      d.score(),
				Eval:       d.eval(),
				Depth:      d.depth(),
				Bound:      d.bound(),
				IsPV:       d.isPV(),
				Generation: d.generation(),
			}, true
		}
	}
	return Entry{}, false
}

// Store writes an entry for key, replacing whichever slot in the cluster
// is the worst candidate to keep: an empty slot first, then a matching
// key (always refresh in place), then the slot with the lowest score:
// depth minus twice its generation age, plus 8 if it is from the current
// generation and 8 more if its bound is exact, mirroring the classic
// depth-preferred-with-aging replacement scheme.
func (t *Table) Store(key board.ZobristKey, move board.Move, score, eval int16, depth uint8, bound Bound, isPV bool) {
	c := t.clusterFor(key)
	k := uint64(key)
	gen := uint8(t.generation.Load() & 0x1f)

	var worst int
	worstScore := int(^uint(0) >> 1)

	for i := range c {
		d, ok := c[i].load(k)
		if !ok {
			raw := c[i].data.Load()
			if raw == 0 && c[i].key.Load() == 0 {
				worst = i
				worstScore = -1 << 30
				break
			}
			continue
		}

		if move == board.NoMove {
			move = d.move() // preserve the best move across a depth-only refresh
		}
		replaceScore := -1 << 30 // always win on an exact key match
		if replaceScore < worstScore {
			worst = i
			worstScore = replaceScore
		}
		break
	}

	if worstScore == int(^uint(0)>>1) {
		// Weigh generation and bound exactness alongside depth: an entry
		// from the current generation, or one holding an exact score, is
		// worth far more to keep than its depth alone suggests, matching
		// the "prefer current generation and EXACT bound, break ties by
		// depth" policy.
		for i := range c {
			d := packedData(c[i].data.Load())
			ageWeight := int(genDistance(gen, d.generation())) * 2
			s := int(d.depth()) - ageWeight
			if d.generation() == gen {
				s += 8
			}
			if d.bound() == BoundExact {
				s += 8
			}
			if s < worstScore {
				worst = i
				worstScore = s
			}
		}
	}

	c[worst].store(k, packData(move, score, eval, depth, bound, isPV, gen))
}

func genDistance(cur, stored uint8) uint8 {
	d := cur - stored
	return d & 0x1f
}

// Clear resets every slot; O(table size), intended only for "ucinewgame"
// style resets between unrelated searches.
func (t *Table) Clear() {
	for i := range t.clusters {
		for j := range t.clusters[i] {
			t.clusters[i][j].key.Store(0)
			t.clusters[i][j].data.Store(0)
		}
	}
}

// Len returns the number of clusters (not entries) in the table.
func (t *Table) Len() int { return len(t.clusters) }

// hashFullSampleClusters bounds the cost of HashFull on very large tables;
// 1000 clusters (4000 entries) gives a stable per-mille estimate without
// walking the whole table.
const hashFullSampleClusters = 1000

// HashFull samples up to hashFullSampleClusters clusters from the start of
// the table and returns, in per-mille, the fraction of entries occupied by
// the current generation -- the conventional UCI "hashfull" statistic.
func (t *Table) HashFull() int {
	n := len(t.clusters)
	if n > hashFullSampleClusters {
		n = hashFullSampleClusters
	}
	if n == 0 {
		return 0
	}

	gen := uint8(t.generation.Load() & 0x1f)
	var filled, total int
	for i := 0; i < n; i++ {
		for j := range t.clusters[i] {
			total++
			raw := t.clusters[i][j].data.Load()
			if raw == 0 && t.clusters[i][j].key.Load() == 0 {
				continue
			}
			if packedData(raw).generation() == gen {
				filled++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return filled * 1000 / total
}
