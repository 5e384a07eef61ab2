package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Budget       int           // Requested playouts, 0 when searching by duration
	TimeBudget   time.Duration // Requested duration, 0 when searching by playouts
	Duration     time.Duration
	Episodes     int
	Cycles       int
	Collisions   int
	TerminalHits int
	TableSize    int
}

type MoveMetric struct {
	Step int
	Side string
	Move string
	SearchMetric
}

type GameMetric struct {
	StartingSide string
	Winner       string // Empty when the game hit the turn limit
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(goroutines, episodes int, duration time.Duration)
	AddEpisode()
	AddCycle()
	AddCollision()
	AddTerminal()
	SetTableSize(size int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	budget       int
	timeBudget   time.Duration
	startTime    time.Time
	episodes     atomic.Int32
	cycles       atomic.Int32
	collisions   atomic.Int32
	terminalHits atomic.Int32
	tableSize    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, episodes int, duration time.Duration) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.budget = episodes
	m.timeBudget = duration
	m.episodes.Store(0)
	m.cycles.Store(0)
	m.collisions.Store(0)
	m.terminalHits.Store(0)
	m.tableSize.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddCycle() {
	m.cycles.Add(1)
}

func (m *collector) AddCollision() {
	m.collisions.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminalHits.Add(1)
}

func (m *collector) SetTableSize(size int) {
	m.tableSize.Store(int32(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Budget:       m.budget,
		TimeBudget:   m.timeBudget,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Cycles:       int(m.cycles.Load()),
		Collisions:   int(m.collisions.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		TableSize:    int(m.tableSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, episodes int, duration time.Duration) {}
func (m *dummyCollector) AddEpisode()                                            {}
func (m *dummyCollector) AddCycle()                                              {}
func (m *dummyCollector) AddCollision()                                          {}
func (m *dummyCollector) AddTerminal()                                           {}
func (m *dummyCollector) SetTableSize(size int)                                  {}
func (m *dummyCollector) Complete() SearchMetric                                 { return SearchMetric{} }
