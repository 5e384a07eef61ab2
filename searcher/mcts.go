package searcher

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"snakeflip/experiments/metrics"
	"snakeflip/game"
	"snakeflip/utils"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	exploration float64
	capacity    int
	seed        uint64
	evaluate    game.Evaluate
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExplorationParam(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithTableCapacity(capacity int) Option {
	return func(m *MCTS) {
		if capacity > 0 {
			m.capacity = capacity
		}
	}
}

// WithSeed fixes the seeds of the worker random generators
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  max(goroutines, 1),
		exploration: DefaultExploration,
		capacity:    DefaultTableCapacity,
		evaluate:    game.EvaluatePieces,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// search is the state of one Simulate call, shared by its workers
type search struct {
	*MCTS
	table    *table
	root     handle
	rootGrid game.Grid
	computer game.Side
	cSquared float64
}

// trail is the path of one playout. nodes[0] is the root and edges[i] is
// the move taken out of nodes[i]. A playout stopped by a cycle ends with
// an edge whose child is already in nodes.
type trail struct {
	nodes []handle
	edges []int
}

// Simulate searches the grid on behalf of computer and returns, for every
// root move, the number of playouts that took it, together with the search
// metrics. A sequential search counts every playout exactly once.
func (m *MCTS) Simulate(grid game.Grid, computer game.Side) (map[game.Move]float64, metrics.SearchMetric) {
	s := m.newSearch(grid, computer)
	metric := s.run()
	return s.policy(), metric
}

// FindMove returns the most played root move. The grid must not be terminal.
func (m *MCTS) FindMove(grid game.Grid, computer game.Side) (game.Move, metrics.SearchMetric) {
	s := m.newSearch(grid, computer)
	metric := s.run()
	return s.bestMove(), metric
}

func (m *MCTS) newSearch(grid game.Grid, computer game.Side) *search {
	if grid.Status().Terminal() {
		panic("cannot search a decided game")
	}
	if len(grid.LegalMoves()) == 0 {
		log.Warn().Msgf("side %v has no legal move in\n%v", grid.Next(), grid)
		panic("cannot search a position without legal moves")
	}

	t := newTable(computer, m.evaluate, m.capacity)
	root, _ := t.insert(grid)
	return &search{
		MCTS:     m,
		table:    t,
		root:     root,
		rootGrid: grid,
		computer: computer,
		cSquared: m.exploration * m.exploration,
	}
}

// run spends the search budget and returns the collected metrics.
func (s *search) run() metrics.SearchMetric {
	s.metrics.Start(s.goroutines, s.episodes, s.duration)
	if s.episodes > 0 {
		s.iterate()
	} else {
		s.countdown()
	}
	s.metrics.SetTableSize(s.table.Size())
	metric := s.metrics.Complete()

	log.Debug().
		Stringer("computer", s.computer).
		Int("tableSize", s.table.Size()).
		Int("episodes", metric.Episodes).
		Int("cycles", metric.Cycles).
		Int("collisions", metric.Collisions).
		Dur("elapsed", metric.Duration).
		Msg("search completed")

	return metric
}

func (s *search) newRand(worker int) *rand.Rand {
	seed := s.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed + uint64(worker)))
}

// iterate runs exactly s.episodes playouts spread over the workers
func (s *search) iterate() {
	var remaining atomic.Int64
	remaining.Store(int64(s.episodes))

	var g errgroup.Group
	for i := 0; i < s.goroutines; i++ {
		rng := s.newRand(i)
		g.Go(func() error {
			tr := &trail{}
			for remaining.Add(-1) >= 0 {
				s.simulate(rng, tr)
				s.metrics.AddEpisode()
			}
			return nil
		})
	}
	_ = g.Wait()
}

// countdown runs playouts until the duration is spent
func (s *search) countdown() {
	deadline := time.Now().Add(s.duration)

	var g errgroup.Group
	for i := 0; i < s.goroutines; i++ {
		rng := s.newRand(i)
		g.Go(func() error {
			tr := &trail{}
			for time.Now().Before(deadline) {
				s.simulate(rng, tr)
				s.metrics.AddEpisode()
			}
			return nil
		})
	}
	_ = g.Wait()
}

// simulate runs one playout: selection, expansion, evaluation and backup.
// tr is scratch space reused between playouts of the same worker.
func (s *search) simulate(rng *rand.Rand, tr *trail) {
	tr.nodes = tr.nodes[:0]
	tr.edges = tr.edges[:0]
	value := s.selectThenExpand(rng, tr)
	s.backup(tr, value)
}

func (s *search) selectThenExpand(rng *rand.Rand, tr *trail) float64 {
	grid := s.rootGrid
	current := s.root
	tr.nodes = append(tr.nodes, current)

	for {
		n := s.table.node(current)
		if n.terminal {
			s.metrics.AddTerminal()
			return n.eval
		}

		if !n.expanded() {
			if n.tryExpand() {
				n.expand(grid)
			} else if !n.expanded() { // Another worker is expanding it
				s.metrics.AddCollision()
				return n.eval
			}
		}
		if len(n.moves) == 0 { // Blocked side, scored as it stands
			return n.eval
		}

		ith := s.pickChild(n, rng)
		grid = play(grid, n.moves[ith])
		child := n.child(ith)
		if child == noHandle {
			h, _ := s.table.insert(grid)
			child = n.setChild(ith, h)
		}

		n.edges[ith].applyLoss()
		tr.edges = append(tr.edges, ith)

		childNode := s.table.node(child)
		if utils.Contains(tr.nodes, child) { // Cycle, reuse the stored evaluation
			s.metrics.AddCycle()
			return childNode.eval
		}

		tr.nodes = append(tr.nodes, child)
		if childNode.visits.Load() == 0 { // New leaf
			return childNode.eval
		}
		current = child
	}
}

// pickChild returns a random edge among the least pending unvisited ones,
// or the edge with the best UCT score for the side to move.
func (s *search) pickChild(n *node, rng *rand.Rand) int {
	factor := perspective(s.computer, n.player)
	policy := newUCT(s.cSquared, float64(max(n.visits.Load(), 1)))

	unvisited := 0
	minPending := int64(-1)
	maxIndex := -1
	maxScore := 0.0
	for i := range n.edges {
		value, visits, pending := n.edges[i].stats()

		if visits == 0 {
			// Reservoir sampling over the unvisited edges with the fewest pending workers
			switch {
			case minPending < 0 || pending < minPending:
				minPending = pending
				unvisited = 1
				maxIndex = i
			case pending == minPending:
				unvisited++
				if rng.Intn(unvisited) == 0 {
					maxIndex = i
				}
			}
			continue
		}
		if minPending >= 0 {
			continue
		}

		score := policy.evaluate(factor*value, float64(visits), float64(pending))
		if maxIndex < 0 || score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// backup adds the playout to every node on the trail and to every edge taken.
func (s *search) backup(tr *trail, value float64) {
	for i, h := range tr.nodes {
		n := s.table.node(h)
		n.visits.Add(1)
		if i < len(tr.edges) {
			n.edges[tr.edges[i]].backup(value)
		}
	}
}

// play applies a move produced by the search itself, an error means the
// move generator and the validator disagree.
func play(grid game.Grid, move game.Move) game.Grid {
	next, err := grid.Apply(move)
	if err != nil {
		panic("search produced an illegal move: " + err.Error())
	}
	return next
}
