package metrics

import (
	"time"
)

// SearchMetric describes one BestMove call of a search strategy.
type SearchMetric struct {
	MaxDepth      int
	Duration      time.Duration
	Nodes         int
	Cutoffs       int // alpha-beta sibling cutoffs
	ThreatCutoffs int // branches dropped because the opponent could win next turn
	CacheHit      bool
}

type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

type GameMetric struct {
	Strategy  string
	Opponent  string
	Status    string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Plies     int
}

type Collector interface {
	Start(maxDepth int)
	AddNode()
	AddCutoff()
	AddThreatCutoff()
	SetCacheHit(value bool)
	Complete() SearchMetric
}

type collector struct {
	maxDepth      int
	startTime     time.Time
	nodes         int
	cutoffs       int
	threatCutoffs int
	cacheHit      bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int) {
	*m = collector{maxDepth: maxDepth, startTime: time.Now()}
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) AddThreatCutoff() {
	m.threatCutoffs++
}

func (m *collector) SetCacheHit(value bool) {
	m.cacheHit = value
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		MaxDepth:      m.maxDepth,
		Duration:      time.Since(m.startTime),
		Nodes:         m.nodes,
		Cutoffs:       m.cutoffs,
		ThreatCutoffs: m.threatCutoffs,
		CacheHit:      m.cacheHit,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int)     {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) AddThreatCutoff()       {}
func (m *dummyCollector) SetCacheHit(value bool) {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
