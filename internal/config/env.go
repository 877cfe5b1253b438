package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds BDAY_* overrides. Unset variables leave fields nil.
type EnvConfig struct {
	Name      *string `env:"BDAY_NAME"`
	Deck      *string `env:"BDAY_DECK"`
	SpeedMs   *int    `env:"BDAY_SPEED_MS"`
	DelayMs   *int    `env:"BDAY_DELAY_MS"`
	MaxWishes *int    `env:"BDAY_MAX_WISHES"`
	Candles   *int    `env:"BDAY_CANDLES"`
	Autoplay  *bool   `env:"BDAY_AUTOPLAY"`
	Audio     *bool   `env:"BDAY_AUDIO"`
	Seed      *int64  `env:"BDAY_SEED"`
	Debug     bool    `env:"BDAY_DEBUG"`
}

// LoadEnv reads overrides from the environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Merge applies env overrides on top of the file config.
func (e EnvConfig) Merge(fc GreetingConfig) GreetingConfig {
	if e.Name != nil {
		fc.Name = e.Name
	}
	if e.Deck != nil {
		fc.Deck = e.Deck
	}
	if e.SpeedMs != nil {
		fc.SpeedMs = e.SpeedMs
	}
	if e.DelayMs != nil {
		fc.DelayMs = e.DelayMs
	}
	if e.MaxWishes != nil {
		fc.MaxWishes = e.MaxWishes
	}
	if e.Candles != nil {
		fc.Candles = e.Candles
	}
	if e.Autoplay != nil {
		fc.Autoplay = e.Autoplay
	}
	if e.Audio != nil {
		fc.Audio = e.Audio
	}
	if e.Seed != nil {
		fc.Seed = e.Seed
	}
	return fc
}
