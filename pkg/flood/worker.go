package flood

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kamrankamilli/gsflood/pkg/config"
	"github.com/kamrankamilli/gsflood/pkg/internal/log"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut"
	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

// DialFunc opens a new connection for a worker.
type DialFunc func(ctx context.Context) (*pixelflut.Client, error)

// WorkerOpts controls the redraw loop of every worker in a pool.
type WorkerOpts struct {
	// Interval is the pause after each full pass. Zero redraws immediately.
	Interval time.Duration
	// Passes bounds the number of passes. Zero loops until cancelled.
	Passes int
	// Policy defaults to config.PolicyPersistent.
	Policy config.ConnPolicy
	// NewBackOff builds the wait schedule between a failed pass and the
	// next connection under config.PolicyRetry and config.PolicyReconnect,
	// and the redial schedule for config.PolicyRetry. The default is
	// exponential and never gives up.
	NewBackOff func() backoff.BackOff
}

func (o *WorkerOpts) newBackOff() backoff.BackOff {
	if o.NewBackOff != nil {
		return o.NewBackOff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Worker redraws one slice of the image over its own connection.
type Worker struct {
	id         int
	ops        []types.DrawOp
	offX, offY uint32
	opts       *WorkerOpts
	dial       DialFunc
	stats      *Stats

	client *pixelflut.Client
	// stop unregisters the close-on-cancel hook of client.
	stop func() bool
	// failures paces redials after failed passes; reset by a clean pass.
	failures backoff.BackOff
}

// attach makes c the worker's connection and closes it as soon as ctx is
// cancelled, so a write blocked on a full socket returns.
func (w *Worker) attach(ctx context.Context, c *pixelflut.Client) {
	w.client = c
	w.stop = context.AfterFunc(ctx, func() { c.Close() })
}

func (w *Worker) disconnect() {
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
	if w.client != nil {
		w.client.Close()
		w.client = nil
	}
}

func (w *Worker) connect(ctx context.Context) error {
	w.disconnect()
	if w.opts.Policy != config.PolicyRetry {
		c, err := w.dial(ctx)
		if err != nil {
			return err
		}
		w.attach(ctx, c)
		return nil
	}

	return backoff.RetryNotify(func() error {
		c, err := w.dial(ctx)
		if err != nil {
			return err
		}
		w.attach(ctx, c)
		return nil
	}, backoff.WithContext(w.opts.newBackOff(), ctx), func(err error, d time.Duration) {
		log.Warningf("Worker %d: %v, redialing in %s", w.id, err, d.Round(time.Millisecond))
	})
}

// Run executes the redraw loop until ctx is cancelled, the pass limit is
// reached, or a failure the connection policy does not absorb.
// Cancellation is not an error.
func (w *Worker) Run(ctx context.Context) error {
	defer w.disconnect()
	if w.client != nil && w.stop == nil {
		w.attach(ctx, w.client)
	}
	if len(w.ops) == 0 {
		log.Warningf("Worker %d has no opaque pixels to draw", w.id)
		return nil
	}
	log.Debugf("Worker %d drawing %d pixels", w.id, len(w.ops))

	for pass := 0; w.opts.Passes == 0 || pass < w.opts.Passes; pass++ {
		if ctx.Err() != nil {
			return nil
		}
		if w.client == nil || (pass > 0 && w.opts.Policy == config.PolicyReconnect) {
			if err := w.connect(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("worker %d: %w", w.id, err)
			}
		}

		if err := w.drawPass(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if w.opts.Policy != config.PolicyReconnect && w.opts.Policy != config.PolicyRetry {
				return fmt.Errorf("worker %d: %w", w.id, err)
			}
			if w.failures == nil {
				w.failures = w.opts.newBackOff()
			}
			d := w.failures.NextBackOff()
			if d == backoff.Stop {
				return fmt.Errorf("worker %d: giving up: %w", w.id, err)
			}
			log.Warningf("Worker %d: pass %d on %s failed: %v, reconnecting in %s",
				w.id, pass, w.client.Addr(), err, d.Round(time.Millisecond))
			w.disconnect()
			if !sleep(ctx, d) {
				return nil
			}
			continue
		}
		if w.failures != nil {
			w.failures.Reset()
		}

		if w.opts.Interval > 0 && !sleep(ctx, w.opts.Interval) {
			return nil
		}
	}
	return nil
}

// drawPass writes every op of the slice once and flushes.
func (w *Worker) drawPass(ctx context.Context) error {
	done := ctx.Done()
	before := w.client.Written()
	for _, op := range w.ops {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		if err := w.client.WritePixel(w.offX+op.DX, w.offY+op.DY, op.Color); err != nil {
			return err
		}
	}
	if err := w.client.Flush(); err != nil {
		return err
	}
	w.stats.addPass(uint64(len(w.ops)), w.client.Written()-before)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
