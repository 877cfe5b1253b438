// Package model defines shared data structures.
package model

import "time"

// Config defines greeting settings after flags, env and config file are merged.
type Config struct {
	Name      string
	DeckPath  string
	Speed     time.Duration
	Delay     time.Duration
	MaxWishes int
	Candles   int
	Autoplay  bool
	Audio     bool
	Seed      int64
	Debug     bool
}

// Wish is an accepted wish board entry. Wishes are never modified after creation.
type Wish struct {
	ID          string
	Text        string
	SubmittedAt time.Time
	Author      string
}

// Memory is a single carousel slide.
type Memory struct {
	ID      int    `yaml:"id"`
	Caption string `yaml:"caption"`
	Date    string `yaml:"date,omitempty"`
	Art     string `yaml:"art,omitempty"`
}

// Point is a normalized screen position; both axes run from 0 to 1.
type Point struct {
	X float64
	Y float64
}

// Burst describes a single particle effect launch.
type Burst struct {
	Count         int
	Spread        float64
	Origin        Point
	Colors        []string
	StartVelocity float64
	Ticks         int
}
