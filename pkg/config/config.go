package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kamrankamilli/gsflood/pkg/geometry"
	"github.com/kamrankamilli/gsflood/pkg/partition"
	"github.com/kamrankamilli/gsflood/pkg/picture"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// Debug enables debug logging.
var Debug bool

// ConnPolicy decides what a worker does with its connection between passes
// and after a failed write.
type ConnPolicy string

const (
	// PolicyPersistent keeps one connection per worker and aborts the run on
	// the first write error.
	PolicyPersistent ConnPolicy = "persistent"
	// PolicyReconnect opens a fresh connection for every pass.
	PolicyReconnect ConnPolicy = "reconnect"
	// PolicyRetry keeps one connection and redials with backoff when a write
	// fails.
	PolicyRetry ConnPolicy = "retry"
)

func (p *ConnPolicy) String() string { return string(*p) }
func (p *ConnPolicy) Type() string   { return "policy" }

func (p *ConnPolicy) Set(s string) error {
	switch v := ConnPolicy(s); v {
	case PolicyPersistent, PolicyReconnect, PolicyRetry:
		*p = v
		return nil
	}
	return fmt.Errorf("unknown connection policy %q (want persistent, reconnect or retry)", s)
}

// Config is the resolved configuration of one flood run.
type Config struct {
	Address   string
	ImagePath string

	// Explicit offset, used when Placement is geometry.Absolute.
	X, Y      uint32
	Placement geometry.Placement
	// Canvas is an assumed canvas size. When zero and an anchor placement
	// needs it, the size is queried from the server.
	Canvas types.CanvasSize

	// Resize target; zero keeps the source dimension (or aspect ratio).
	Width, Height uint
	Filter        picture.Filter

	Workers  int
	Strategy partition.Strategy
	// Seed for the shuffle strategy; zero picks a random seed.
	Seed uint64

	Interval time.Duration
	Passes   int
	Policy   ConnPolicy

	Proxy        string
	DialTimeout  time.Duration
	WriteTimeout time.Duration

	StatsInterval time.Duration
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Placement:   geometry.Absolute,
		Filter:      picture.FilterBilinear,
		Workers:     1,
		Strategy:    partition.StrategyShuffle,
		Policy:      PolicyPersistent,
		DialTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration for values no run can start with.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("no server address given")
	}
	if c.ImagePath == "" {
		return errors.New("no image path given")
	}
	if c.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Workers)
	}
	if c.Passes < 0 {
		return fmt.Errorf("pass count must not be negative, got %d", c.Passes)
	}
	for name, d := range map[string]time.Duration{
		"interval":      c.Interval,
		"dial timeout":  c.DialTimeout,
		"write timeout": c.WriteTimeout,
		"stats":         c.StatsInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	return nil
}
