package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Game kinds.
const (
	TicTacToe = "tictactoe"
	Chess     = "chess"
)

// Strategy kinds.
const (
	Negamax  = "negamax"
	Matchbox = "matchbox"
)

// Opponent kinds for self-play.
const (
	First  = "first"
	Random = "random"
	Greedy = "greedy"
)

// Chess evaluators.
const (
	NoEvaluator       = "none"
	MaterialEvaluator = "material"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Log        Log        `yaml:"log"`
	Game       string     `yaml:"game"`
	Strategy   Strategy   `yaml:"strategy"`
	Chess      ChessGame  `yaml:"chess"`
	Server     Server     `yaml:"server"`
	Experiment Experiment `yaml:"experiment"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Strategy struct {
	Kind     string         `yaml:"kind"`
	Search   SearchConfig   `yaml:"search"`
	Matchbox MatchboxConfig `yaml:"matchbox"`
}

type SearchConfig struct {
	Depth        int     `yaml:"depth"`
	MaxScore     float64 `yaml:"max_score"`
	ThreatCutoff bool    `yaml:"threat_cutoff"`
	Metrics      bool    `yaml:"metrics"`
}

type MatchboxConfig struct {
	DefaultWeight float64 `yaml:"default_weight"`
	Floor         float64 `yaml:"floor"`
	Seed          uint64  `yaml:"seed"` // 0 seeds from the clock
}

type ChessGame struct {
	Evaluator string `yaml:"evaluator"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Experiment struct {
	Games    int    `yaml:"games"`
	Opponent string `yaml:"opponent"`
	MaxTurns int    `yaml:"max_turns"`
	Seed     uint64 `yaml:"seed"`
	OutDir   string `yaml:"out_dir"`
}

func Default() Config {
	return Config{
		Log:  Log{Level: "info", Pretty: true},
		Game: TicTacToe,
		Strategy: Strategy{
			Kind: Negamax,
			Search: SearchConfig{
				Depth:        9,
				MaxScore:     1000,
				ThreatCutoff: true,
			},
			Matchbox: MatchboxConfig{
				DefaultWeight: 3,
				Floor:         0.01,
			},
		},
		Chess:  ChessGame{Evaluator: MaterialEvaluator},
		Server: Server{Addr: ":8080"},
		Experiment: Experiment{
			Games:    100,
			Opponent: Random,
			MaxTurns: 500,
			OutDir:   "experiments/results",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log level %q", c.Log.Level)
	}
	switch c.Game {
	case TicTacToe, Chess:
	default:
		return errors.Wrapf(ErrInvalid, "unknown game %q", c.Game)
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	switch c.Chess.Evaluator {
	case NoEvaluator, MaterialEvaluator:
	default:
		return errors.Wrapf(ErrInvalid, "unknown chess evaluator %q", c.Chess.Evaluator)
	}
	switch c.Experiment.Opponent {
	case First, Random, Greedy:
	default:
		return errors.Wrapf(ErrInvalid, "unknown opponent %q", c.Experiment.Opponent)
	}
	if c.Experiment.Games <= 0 {
		return errors.Wrap(ErrInvalid, "experiment games must be positive")
	}
	if c.Experiment.MaxTurns <= 0 {
		return errors.Wrap(ErrInvalid, "experiment max turns must be positive")
	}
	return nil
}

func (s Strategy) Validate() error {
	switch s.Kind {
	case Negamax:
		if s.Search.Depth <= 0 {
			return errors.Wrapf(ErrInvalid, "search depth %d", s.Search.Depth)
		}
		if s.Search.MaxScore <= 0 {
			return errors.Wrapf(ErrInvalid, "max score %v", s.Search.MaxScore)
		}
	case Matchbox:
		m := s.Matchbox
		if m.DefaultWeight <= 0 || m.Floor <= 0 {
			return errors.Wrap(ErrInvalid, "matchbox weights must be positive")
		}
		if m.Floor > m.DefaultWeight {
			return errors.Wrapf(ErrInvalid, "matchbox floor %v above default weight %v", m.Floor, m.DefaultWeight)
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown strategy %q", s.Kind)
	}
	return nil
}
