package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uctzero/config"
	"uctzero/runner"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	games := flag.Int("games", 0, "Number of self-play games")
	iterations := flag.Int("iterations", 0, "UCT simulations per move")
	boardSize := flag.Int("board", 0, "Hex board size")
	seed := flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	workers := flag.Int("workers", 0, "Games played concurrently")
	outputDir := flag.String("out", "", "Output folder for training examples")
	perspective := flag.Bool("perspective", false, "Back up results from each node's own perspective")
	temperature := flag.Float64("temperature", 0, "Sample moves by visits^(1/T) instead of playing the most visited")
	maxPlies := flag.Int("max-plies", 0, "Stop games after this many plies (0 means no limit)")
	verbose := flag.Bool("verbose", false, "Log the search tree of every move")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "iterations":
			cfg.Iterations = *iterations
		case "board":
			cfg.BoardSize = *boardSize
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.OutputDir = *outputDir
		case "perspective":
			cfg.PerspectiveBackup = *perspective
		case "temperature":
			cfg.Temperature = *temperature
		case "max-plies":
			cfg.MaxPlies = *maxPlies
		case "verbose":
			cfg.Verbose = *verbose
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if cfg.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel // Trees are logged at debug level
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
	log.Info().Msgf("training examples stored in %s", summary.Dir)
}
