package selfplay

import (
	"errors"
	"fmt"
	"time"

	"uctzero/game"
	"uctzero/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// DefaultSentinel marks moves that were not explored at a ply.
const DefaultSentinel = -1.0

var (
	ErrMoveIndexOutOfRange = errors.New("move index outside policy vector")
	ErrPlyLimit            = errors.New("ply limit reached")
)

// Searcher ranks the children of a fresh search tree by ascending visits.
type Searcher interface {
	Search(state game.State) ([]*searcher.Node, searcher.SearchMetrics)
}

// Example is one training example. Prob holds each explored move's win rate
// at the root, and the sentinel everywhere else.
type Example struct {
	State []float64 `json:"state"`
	Prob  []float64 `json:"prob"`
}

type MoveStat struct {
	Ply      int
	Player1  bool
	Move     int // Index of the played move
	Visits   int
	WinRate  float64
	Children int
	searcher.SearchMetrics
}

type Record struct {
	ID        uuid.UUID
	Winner    game.Winner
	Plies     int
	Examples  []Example
	Moves     []MoveStat
	StartTime time.Time
	Duration  time.Duration
}

type Option func(d *Driver)

type Driver struct {
	mcts        Searcher
	width       int
	sentinel    float64
	temperature float64
	maxPlies    int
	rng         *rand.Rand
	verbose     bool
}

func WithSentinel(sentinel float64) Option {
	return func(d *Driver) {
		d.sentinel = sentinel
	}
}

// WithTemperature samples the played move proportionally to
// visits^(1/temperature). Zero plays the most visited move.
func WithTemperature(temperature float64) Option {
	return func(d *Driver) {
		if temperature >= 0 {
			d.temperature = temperature
		}
	}
}

// WithMaxPlies stops a game that has not ended after the given number of
// plies. Zero means no limit.
func WithMaxPlies(plies int) Option {
	return func(d *Driver) {
		if plies >= 0 {
			d.maxPlies = plies
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(d *Driver) {
		if rng != nil {
			d.rng = rng
		}
	}
}

// WithVerbose logs the whole search tree of every ply at debug level.
func WithVerbose() Option {
	return func(d *Driver) {
		d.verbose = true
	}
}

// NewDriver creates a self-play driver producing policy vectors of the given
// width, which must cover every move index of the game.
func NewDriver(mcts Searcher, width int, options ...Option) *Driver {
	if width <= 0 {
		panic("policy width must be positive")
	}
	d := &Driver{
		mcts:     mcts,
		width:    width,
		sentinel: DefaultSentinel,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// PlayGame plays state to the end, searching once per ply, and returns one
// example per ply played. State is advanced in place.
func (d *Driver) PlayGame(state game.State) (Record, error) {
	record := Record{
		ID:        uuid.New(),
		StartTime: time.Now(),
	}
	for !game.IsTerminal(state) {
		if d.maxPlies > 0 && record.Plies >= d.maxPlies {
			record.Duration = time.Since(record.StartTime)
			return record, fmt.Errorf("game %s: %w after %d plies", record.ID, ErrPlyLimit, record.Plies)
		}

		ranked, metrics := d.mcts.Search(state)
		if len(ranked) == 0 {
			break
		}

		example, err := d.newExample(state, ranked)
		if err != nil {
			record.Duration = time.Since(record.StartTime)
			return record, fmt.Errorf("game %s ply %d: %w", record.ID, record.Plies, err)
		}
		chosen := d.choose(ranked)

		record.Examples = append(record.Examples, example)
		record.Moves = append(record.Moves, MoveStat{
			Ply:           record.Plies,
			Player1:       state.Player1Turn(),
			Move:          chosen.Move().Index(),
			Visits:        chosen.Visits(),
			WinRate:       chosen.WinRate(),
			Children:      len(ranked),
			SearchMetrics: metrics,
		})

		log.Debug().Msgf("ply %d: best move %v, wins %g, visits %d, prob %.6f",
			record.Plies, chosen.Move(), chosen.Wins(), chosen.Visits(), chosen.WinRate())
		if d.verbose {
			log.Debug().Msg(chosen.Parent().TreeString(0))
		}

		state.Play(chosen.Move())
		record.Plies++
	}

	record.Winner = game.WinnerOf(state)
	record.Duration = time.Since(record.StartTime)
	log.Info().Msgf("game %s over after %d plies, winner: %s", record.ID, record.Plies, record.Winner)
	return record, nil
}

func (d *Driver) newExample(state game.State, ranked []*searcher.Node) (Example, error) {
	prob := make([]float64, d.width)
	for i := range prob {
		prob[i] = d.sentinel
	}
	for _, child := range ranked {
		index := child.Move().Index()
		if index < 0 || index >= d.width {
			return Example{}, fmt.Errorf("%w: index %d, width %d", ErrMoveIndexOutOfRange, index, d.width)
		}
		prob[index] = child.Wins() / float64(child.Visits())
	}
	return Example{State: state.Encode(), Prob: prob}, nil
}

func (d *Driver) choose(ranked []*searcher.Node) *searcher.Node {
	if d.temperature == 0 {
		return ranked[len(ranked)-1]
	}
	return ranked[sample(adjustTemperature(ranked, d.temperature), d.rng)]
}
