package searcher

import (
	"math"
	"sync/atomic"

	"snakeflip/game"
)

// handle indexes a node in the table's arena
type handle int32

const noHandle handle = -1

const (
	canExpand uint32 = iota
	expanding
	expanded
)

// node holds one position, shared by every path reaching it. Fields above
// flags are immutable once the node is published.
type node struct {
	hash     game.StateHash
	player   game.Side // side to move
	terminal bool
	eval     float64 // from the computer's perspective

	// Written once by the expanding worker, readable after expanded is set
	moves []game.Move
	edges []edge

	flags  atomic.Uint32
	visits atomic.Int64 // playouts through the position, along any edge into it
}

// edge holds the statistics of one move out of a node. Transpositions
// share the child node but never the edge.
type edge struct {
	child   atomic.Int32
	visits  atomic.Int64
	pending atomic.Int64
	value   atomic.Uint64 // float64 bits, sum of backed up evaluations
}

func (n *node) init(g game.Grid, computer game.Side, evaluate game.Evaluate) {
	n.hash = g.Hash()
	n.player = g.Next()
	n.terminal = g.Status().Terminal()
	n.eval = evaluate(g, computer)
}

// tryExpand claims the expansion of the node, only one worker succeeds.
func (n *node) tryExpand() bool {
	return n.flags.CompareAndSwap(canExpand, expanding)
}

func (n *node) expand(g game.Grid) {
	n.moves = g.LegalMoves()
	n.edges = make([]edge, len(n.moves))
	for i := range n.edges {
		n.edges[i].child.Store(int32(noHandle))
	}
	n.flags.Store(expanded)
}

func (n *node) expanded() bool {
	return n.flags.Load() == expanded
}

func (n *node) child(i int) handle {
	return handle(n.edges[i].child.Load())
}

// setChild publishes h as the i-th child unless another worker got there first.
func (n *node) setChild(i int, h handle) handle {
	if n.edges[i].child.CompareAndSwap(int32(noHandle), int32(h)) {
		return h
	}
	return n.child(i)
}

func (e *edge) applyLoss() {
	e.pending.Add(VirtualLoss)
}

func (e *edge) addValue(v float64) {
	for {
		old := e.value.Load()
		sum := math.Float64frombits(old) + v
		if e.value.CompareAndSwap(old, math.Float64bits(sum)) {
			return
		}
	}
}

// backup records one playout along the edge and removes its virtual loss.
func (e *edge) backup(v float64) {
	e.pending.Add(-VirtualLoss)
	e.addValue(v)
	e.visits.Add(1)
}

func (e *edge) stats() (value float64, visits int64, pending int64) {
	return math.Float64frombits(e.value.Load()), e.visits.Load(), e.pending.Load()
}

// perspective turns a computer-perspective value into the view of side.
func perspective(computer, side game.Side) float64 {
	if side == computer {
		return 1
	}
	return -1
}
