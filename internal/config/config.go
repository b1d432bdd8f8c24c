package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPlayerKind = errors.New("unknown player kind")
	ErrSharedInput       = errors.New("human and json players cannot share standard input")
	ErrNegativeRounds    = errors.New("rounds must not be negative")
	ErrInvalidLogLevel   = errors.New("invalid log level")
)

type PlayerKind string

const (
	Human = PlayerKind("human")
	Bot   = PlayerKind("bot")
	JSON  = PlayerKind("json")
)

type PlayersConfig struct {
	Black PlayerKind `yaml:"black"`
	White PlayerKind `yaml:"white"`
}

type BotConfig struct {
	/* 0 seeds from the clock */
	Seed int64 `yaml:"seed"`
}

type LogConfig struct {
	Level  string   `yaml:"level"`
	Output []string `yaml:"output"`
}

type Config struct {
	Players   PlayersConfig `yaml:"players"`
	Bot       BotConfig     `yaml:"bot"`
	ShowHints bool          `yaml:"show_hints"`
	Rounds    int           `yaml:"rounds"`
	Log       LogConfig     `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Players: PlayersConfig{
			Black: Human,
			White: Bot,
		},
		ShowHints: true,
		Rounds:    1,
		Log: LogConfig{
			Level:  "info",
			Output: []string{"stderr"},
		},
	}
}

func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	return decode(file)
}

func decode(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.WithMessage(err, "decode yaml")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, kind := range []PlayerKind{c.Players.Black, c.Players.White} {
		switch kind {
		case Human, Bot, JSON:
		default:
			return errors.WithMessagef(ErrUnknownPlayerKind, "'%s'", kind)
		}
	}
	if c.uses(Human) && c.uses(JSON) {
		return ErrSharedInput
	}
	if c.Rounds < 0 {
		return errors.WithMessagef(ErrNegativeRounds, "got %d", c.Rounds)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return errors.WithMessagef(ErrInvalidLogLevel, "'%s'", c.Log.Level)
	}
	return nil
}

func (c Config) uses(kind PlayerKind) bool {
	return c.Players.Black == kind || c.Players.White == kind
}

func (c LogConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidLogLevel, "'%s'", c.Level)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	if len(c.Output) > 0 {
		zapCfg.OutputPaths = c.Output
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, errors.WithMessage(err, "build logger")
	}
	return logger, nil
}
