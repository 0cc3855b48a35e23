package searcher

import (
	"fmt"
	"strings"

	"uctzero/game"

	"golang.org/x/exp/slices"
)

// Node is one position in the search tree. Wins are summed from the
// perspective chosen by the backup rule, so 0 <= wins <= visits always holds.
type Node struct {
	move        game.Move // nil for the root
	parent      *Node     // back-reference for backup only, nil for the root
	children    []*Node
	untried     []game.Move
	wins        float64
	visits      int
	player1Turn bool
}

// NewNode captures the turn owner and legal moves of state. State is required.
func NewNode(move game.Move, parent *Node, state game.State) *Node {
	if state == nil {
		panic("cannot create node without a state")
	}
	return &Node{
		move:        move,
		parent:      parent,
		untried:     slices.Clone(state.LegalMoves()),
		player1Turn: state.Player1Turn(),
	}
}

func (n *Node) Move() game.Move {
	return n.move
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) UntriedMoves() []game.Move {
	return n.untried
}

func (n *Node) Wins() float64 {
	return n.wins
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Player1Turn() bool {
	return n.player1Turn
}

// WinRate is wins/visits, or 0 for a node that was never visited.
func (n *Node) WinRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}

func (n *Node) IsFullyExpanded() bool {
	return len(n.untried) == 0
}

// SelectBestChild returns the child with the highest UCB1 score. Ties go to
// the child added last. Every child must have been visited at least once.
func (n *Node) SelectBestChild() *Node {
	if len(n.children) == 0 {
		panic("cannot select from a node without children")
	}

	policy := newUCB1(CSquared, n.visits)
	var best *Node
	bestScore := 0.0
	for _, child := range n.children {
		score := policy.score(child.wins, child.visits)
		if best == nil || score >= bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// Expand moves an untried move into a new child built from state, which must
// already have the move applied.
func (n *Node) Expand(move game.Move, state game.State) *Node {
	i := slices.Index(n.untried, move)
	if i < 0 {
		panic(fmt.Sprintf("cannot expand move %v: not untried", move))
	}
	n.untried = slices.Delete(n.untried, i, i+1)

	child := NewNode(move, n, state)
	n.children = append(n.children, child)
	return child
}

// Update records one simulation with result in [0, 1].
func (n *Node) Update(result float64) {
	n.visits++
	n.wins += result
}

// Size counts this node and all of its descendants.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

func (n *Node) String() string {
	return fmt.Sprintf("[M:%v W/V:%g/%d U:%v]", n.move, n.wins, n.visits, n.untried)
}

// TreeString renders the subtree, one node per line, indented by depth.
func (n *Node) TreeString(indent int) string {
	var sb strings.Builder
	n.writeTree(&sb, indent)
	return sb.String()
}

func (n *Node) writeTree(sb *strings.Builder, indent int) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("| ", indent))
	sb.WriteString(n.String())
	for _, child := range n.children {
		child.writeTree(sb, indent+1)
	}
}

func (n *Node) ChildrenString() string {
	var sb strings.Builder
	for _, child := range n.children {
		sb.WriteString(child.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
