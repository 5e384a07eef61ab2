package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"

	"snakeflip/game"
)

const (
	chunkBits  = 14
	chunkSize  = 1 << chunkBits
	chunkMask  = chunkSize - 1
	maxChunks  = 1 << 12
	shardCount = 64
)

type chunk [chunkSize]node

type shard struct {
	sync.Mutex
	index map[game.StateHash]handle
}

// table is the transposition table: nodes live in an append-only arena of
// fixed size chunks and are found by content hash through sharded indexes.
// Reading a node by handle takes no lock.
type table struct {
	computer game.Side
	evaluate game.Evaluate

	chunks [maxChunks]atomic.Pointer[chunk]
	size   atomic.Int32
	grow   sync.Mutex
	shards [shardCount]shard
}

func newTable(computer game.Side, evaluate game.Evaluate, capacity int) *table {
	t := &table{computer: computer, evaluate: evaluate}
	perShard := capacity/shardCount + 1
	for i := range t.shards {
		t.shards[i].index = make(map[game.StateHash]handle, perShard)
	}
	t.chunks[0].Store(new(chunk))
	return t
}

func (t *table) node(h handle) *node {
	return &t.chunks[h>>chunkBits].Load()[h&chunkMask]
}

func (t *table) Size() int {
	return int(t.size.Load())
}

// insert returns the node of the grid, creating and evaluating it first
// if the position was never seen. created reports which case happened.
func (t *table) insert(g game.Grid) (h handle, created bool) {
	hash := g.Hash()
	s := &t.shards[hash%shardCount]
	s.Lock()
	defer s.Unlock()

	if h, ok := s.index[hash]; ok {
		return h, false
	}

	h = t.allocate()
	t.node(h).init(g, t.computer, t.evaluate)
	s.index[hash] = h
	return h, true
}

func (t *table) allocate() handle {
	index := t.size.Add(1) - 1
	c := index >> chunkBits
	if c >= maxChunks {
		panic(fmt.Sprintf("transposition table is full at %d nodes", index))
	}
	if t.chunks[c].Load() == nil {
		t.grow.Lock()
		if t.chunks[c].Load() == nil {
			t.chunks[c].Store(new(chunk))
		}
		t.grow.Unlock()
	}
	return handle(index)
}
