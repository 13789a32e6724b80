package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config is read from the environment when the server starts
type Config struct {
	Port           string   `env:"PORT,default=8000"`
	CardsPerPlayer int      `env:"KABO_CARDS_PER_PLAYER,default=4"`
	MinPlayers     int      `env:"KABO_MIN_PLAYERS,default=2"`
	MaxPlayers     int      `env:"KABO_MAX_PLAYERS,default=6"`
	Seed           int64    `env:"KABO_SEED,default=0"`
	AllowedOrigins []string `env:"KABO_ALLOWED_ORIGINS,default=*"`
}

var (
	ErrBadPlayerRange = errors.New("min players must be between 1 and max players")
	ErrTooManyCards   = errors.New("not enough cards to deal to the maximum number of players")
)

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:           "8000",
		CardsPerPlayer: 4,
		MinPlayers:     2,
		MaxPlayers:     6,
		AllowedOrigins: []string{"*"},
	}
}

// Load decodes the environment into a Config and checks it. A variable
// that is set but does not parse is an error.
func Load() (Config, error) {
	var cfg Config
	err := envdecode.StrictDecode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.CardsPerPlayer == 0 {
		c.CardsPerPlayer = def.CardsPerPlayer
	}
	if c.MinPlayers == 0 {
		c.MinPlayers = def.MinPlayers
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = def.MaxPlayers
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = def.AllowedOrigins
	}
}

// Validate checks that a game can always be dealt and reshuffled.
// Four cards stay out of the deal: one starts the discard pile and a
// reshuffle needs at least four discards.
func (c Config) Validate() error {
	if c.MinPlayers < 1 || c.MinPlayers > c.MaxPlayers {
		return ErrBadPlayerRange
	}
	if c.CardsPerPlayer < 1 || c.CardsPerPlayer*c.MaxPlayers > 48 {
		return ErrTooManyCards
	}
	return nil
}

// Addr is the address to listen on
func (c Config) Addr() string {
	return ":" + c.Port
}
