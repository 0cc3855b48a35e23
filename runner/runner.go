package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uctzero/config"
	"uctzero/dataset"
	"uctzero/game"
	"uctzero/game/hex"
	"uctzero/searcher"
	"uctzero/selfplay"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Summary struct {
	Dir        string
	Games      int
	WhiteWins  int
	BlackWins  int
	Unfinished int
	Examples   int
	Duration   time.Duration
}

// Run plays cfg.Games self-play games and stores their examples under
// cfg.OutputDir. Game i draws from its own source seeded with seed+i, so the
// produced data does not depend on the number of workers.
func Run(ctx context.Context, cfg config.Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	start := time.Now()

	writer, err := dataset.NewWriter(cfg.OutputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create dataset writer: %w", err)
	}
	if err := writer.WriteConfig(cfg); err != nil {
		return Summary{}, fmt.Errorf("failed to store config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info().Msgf("starting %d games on %d workers (seed %d, %d iterations per move) into %s",
		cfg.Games, cfg.Workers, seed, cfg.Iterations, writer.Dir())

	records := make([]selfplay.Record, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := PlayGame(cfg, seed+uint64(i))
			if errors.Is(err, selfplay.ErrPlyLimit) {
				log.Warn().Msgf("game %d stopped: %v", i, err)
			} else if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			if _, err := writer.WriteGame(i, record); err != nil {
				return err
			}
			records[i] = record

			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, cfg.Games, record.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{Dir: writer.Dir()}, err
	}

	if err := writer.WriteGameRecords(records); err != nil {
		return Summary{Dir: writer.Dir()}, fmt.Errorf("failed to write game records: %w", err)
	}

	summary := summarize(records)
	summary.Dir = writer.Dir()
	summary.Duration = time.Since(start)
	log.Info().Msgf("completed %d games: white %d, black %d, unfinished %d, %d examples in %s",
		summary.Games, summary.WhiteWins, summary.BlackWins, summary.Unfinished, summary.Examples, summary.Duration)
	return summary, nil
}

// PlayGame plays one Hex game with a searcher and driver built from cfg.
func PlayGame(cfg config.Config, seed uint64) (selfplay.Record, error) {
	rng := rand.New(rand.NewSource(seed))

	options := []searcher.Option{
		searcher.WithIterations(cfg.Iterations),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}
	if cfg.PerspectiveBackup {
		options = append(options, searcher.WithPerspectiveBackup())
	}
	mcts := searcher.NewMCTS(options...)

	driverOptions := []selfplay.Option{
		selfplay.WithSentinel(cfg.Sentinel),
		selfplay.WithTemperature(cfg.Temperature),
		selfplay.WithMaxPlies(cfg.MaxPlies),
		selfplay.WithRand(rng),
	}
	if cfg.Verbose {
		driverOptions = append(driverOptions, selfplay.WithVerbose())
	}
	driver := selfplay.NewDriver(mcts, cfg.Width(), driverOptions...)

	return driver.PlayGame(hex.New(cfg.BoardSize))
}

func summarize(records []selfplay.Record) Summary {
	s := Summary{Games: len(records)}
	for _, record := range records {
		switch record.Winner {
		case game.White:
			s.WhiteWins++
		case game.Black:
			s.BlackWins++
		default:
			s.Unfinished++
		}
		s.Examples += len(record.Examples)
	}
	return s
}
