package flood

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kamrankamilli/gsflood/pkg/internal/log"
)

// Stats counts what the workers of a pool have sent.
type Stats struct {
	pixels atomic.Uint64
	bytes  atomic.Uint64
	passes atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Pixels, Bytes, Passes uint64
}

func (s *Stats) addPass(pixels, bytes uint64) {
	s.pixels.Add(pixels)
	s.bytes.Add(bytes)
	s.passes.Add(1)
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Pixels: s.pixels.Load(),
		Bytes:  s.bytes.Load(),
		Passes: s.passes.Load(),
	}
}

// report logs the throughput every interval until ctx is done.
func (s *Stats) report(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, lastAt := s.Snapshot(), time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cur := s.Snapshot()
			secs := now.Sub(lastAt).Seconds()
			log.Infof("%.0f px/s, %.2f MiB/s, %d passes total",
				float64(cur.Pixels-last.Pixels)/secs,
				float64(cur.Bytes-last.Bytes)/secs/(1<<20),
				cur.Passes)
			last, lastAt = cur, now
		}
	}
}
