package searcher

import (
	"time"
)

type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int
	RolloutMoves int // Moves played outside the tree
	Nodes        int // Nodes created, root included
}

type MetricsCollector interface {
	Start()
	AddIteration()
	AddRolloutMove()
	AddNode()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	iterations   int
	rolloutMoves int
	nodes        int
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	*m = metricsCollector{startTime: time.Now()}
}

func (m *metricsCollector) AddIteration() {
	m.iterations++
}

func (m *metricsCollector) AddRolloutMove() {
	m.rolloutMoves++
}

func (m *metricsCollector) AddNode() {
	m.nodes++
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations,
		RolloutMoves: m.rolloutMoves,
		Nodes:        m.nodes,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddIteration()           {}
func (m *noMetricsCollector) AddRolloutMove()         {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
