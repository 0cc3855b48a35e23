package searcher

import (
	"time"

	"uctzero/game"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type Option func(mcts *MCTS)

// MCTS runs single-threaded UCT with random rollouts. A fresh tree is built
// for every Search and dropped afterwards.
type MCTS struct {
	iterations  int
	rng         *rand.Rand
	perspective bool
	metrics     MetricsCollector
}

// WithIterations sets the number of simulations per Search. Zero is allowed
// and yields an empty ranking.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations >= 0 {
			m.iterations = iterations
		}
	}
}

// WithRand sets the source of every random choice made during search.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithPerspectiveBackup credits each node with the outcome for the player who
// made its move, instead of one shared result for the whole path.
func WithPerspectiveBackup() Option {
	return func(m *MCTS) {
		m.perspective = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		iterations: DefaultIterations,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Iterations() int {
	return m.iterations
}

// Search runs the configured number of simulations from state and returns the
// root's children sorted by ascending visit count, so the most visited child
// is last. Children with equal visits keep insertion order. The ranking is
// empty when state is terminal or no iterations are configured.
func (m *MCTS) Search(state game.State) ([]*Node, SearchMetrics) {
	m.metrics.Start()
	root := NewNode(nil, nil, state)
	m.metrics.AddNode()

	for i := 0; i < m.iterations; i++ {
		m.simulate(root, state)
		m.metrics.AddIteration()
	}

	ranked := slices.Clone(root.children)
	slices.SortStableFunc(ranked, func(a, b *Node) int {
		return a.visits - b.visits
	})
	return ranked, m.metrics.Complete()
}

func (m *MCTS) simulate(root *Node, rootState game.State) {
	node, state := m.selectThenExpand(root, rootState.Clone())
	m.rollout(state)
	m.backup(node, state)
}

func (m *MCTS) selectThenExpand(root *Node, state game.State) (*Node, game.State) {
	node := root
	for node.IsFullyExpanded() && len(node.children) > 0 {
		node = node.SelectBestChild()
		state.Play(node.move)
	}

	if !node.IsFullyExpanded() {
		move := node.untried[m.rng.Intn(len(node.untried))]
		state.Play(move)
		node = node.Expand(move, state)
		m.metrics.AddNode()
	}
	return node, state
}

func (m *MCTS) rollout(state game.State) {
	for !game.IsTerminal(state) {
		moves := state.LegalMoves()
		state.Play(moves[m.rng.Intn(len(moves))]) // Random rollout policy
		m.metrics.AddRolloutMove()
	}
}

// backup walks from node to the root. By default every node on the path gets
// the same result, read from the terminal state's turn owner.
func (m *MCTS) backup(node *Node, terminal game.State) {
	result := outcome(terminal, terminal.Player1Turn())
	for node != nil {
		if m.perspective {
			result = outcome(terminal, mover(node))
		}
		node.Update(result)
		node = node.parent
	}
}

func outcome(terminal game.State, player1 bool) float64 {
	won := terminal.BlackWin()
	if player1 {
		won = terminal.WhiteWin()
	}
	if won {
		return Win
	}
	return Loss
}

// mover is the player whose move led to node. The root has no move, so it is
// attributed to the side not on turn.
func mover(node *Node) bool {
	if node.parent != nil {
		return node.parent.player1Turn
	}
	return !node.player1Turn
}
