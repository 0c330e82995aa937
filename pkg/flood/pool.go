package flood

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kamrankamilli/gsflood/pkg/internal/log"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// PoolOpts represents options for building a new pool.
type PoolOpts struct {
	// Slices holds one disjoint slice of ops per worker.
	Slices           [][]types.DrawOp
	OffsetX, OffsetY uint32
	Dial             DialFunc
	Worker           WorkerOpts
	// StatsInterval enables a periodic throughput log.
	StatsInterval time.Duration
}

// Pool runs one worker per slice, each over its own connection.
type Pool struct {
	workers       []*Worker
	stats         *Stats
	statsInterval time.Duration
}

// NewPool returns a pool with one worker per slice.
func NewPool(opts *PoolOpts) *Pool {
	p := &Pool{
		workers:       make([]*Worker, len(opts.Slices)),
		stats:         &Stats{},
		statsInterval: opts.StatsInterval,
	}
	wopts := opts.Worker
	for i, ops := range opts.Slices {
		p.workers[i] = &Worker{
			id:    i,
			ops:   ops,
			offX:  opts.OffsetX,
			offY:  opts.OffsetY,
			opts:  &wopts,
			dial:  opts.Dial,
			stats: p.stats,
		}
	}
	return p
}

// Stats returns the pool's counters.
func (p *Pool) Stats() *Stats { return p.stats }

// Run connects every worker, then runs them until ctx is cancelled or one
// of them fails. A connect failure aborts before any pixel is sent. The
// first worker error cancels the others and is returned.
func (p *Pool) Run(ctx context.Context) error {
	if err := p.connectAll(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.statsInterval > 0 {
		sctx, stop := context.WithCancel(gctx)
		defer stop()
		go p.stats.report(sctx, p.statsInterval)
	}
	for _, w := range p.workers {
		g.Go(func() error { return w.Run(gctx) })
	}
	err := g.Wait()

	s := p.stats.Snapshot()
	log.Infof("Stopped after %d passes, %d pixels, %d bytes", s.Passes, s.Pixels, s.Bytes)
	return err
}

func (p *Pool) connectAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		g.Go(func() error {
			c, err := w.dial(gctx)
			if err != nil {
				return err
			}
			w.client = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, w := range p.workers {
			w.disconnect()
		}
		return err
	}
	log.Debugf("Connected %d workers", len(p.workers))
	return nil
}
