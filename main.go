package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"aigames/chessgame"
	"aigames/config"
	"aigames/engine"
	"aigames/experiments"
	"aigames/server"
	"aigames/tictactoe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	name := flag.String("name", "variants", "Experiment name, used for the output directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [play|serve|experiment]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := flag.Arg(0)
	if command == "" {
		command = "play"
	}

	var err error
	switch command {
	case "play":
		err = play(cfg)
	case "serve":
		err = server.New(cfg).Run(cfg.Server.Addr)
	case "experiment":
		var dir string
		dir, err = experiments.Run(ctx, *name, cfg, experiments.DefaultMatchups(cfg))
		if err == nil {
			fmt.Println(dir)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("failed")
	}
}

func setupLogging(cfg config.Log) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func play(cfg config.Config) error {
	switch cfg.Game {
	case config.TicTacToe:
		strategy, err := engine.NewStrategy[tictactoe.Move](cfg.Strategy)
		if err != nil {
			return err
		}
		session := engine.NewSession(tictactoe.New(), strategy)
		return newConsole(os.Stdin, os.Stdout, session, tictactoe.ParseMove, tictactoe.Move.String).run()
	case config.Chess:
		strategy, err := engine.NewStrategy[string](cfg.Strategy)
		if err != nil {
			return err
		}
		session := engine.NewSession[string](chessgame.FromConfig(cfg.Chess), strategy)
		return newConsole(os.Stdin, os.Stdout, session, chessgame.ParseMove, func(m string) string { return m }).run()
	default:
		return errors.Wrapf(config.ErrInvalid, "unknown game %q", cfg.Game)
	}
}
