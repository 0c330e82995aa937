// Package partition splits the draw operations of an image across workers.
//
// Both strategies drop a remainder: EvenSplit never assigns the last
// len(ops) mod n operations, RowBands never assigns the rows below
// n*(height/n). No two slices share an operation.
package partition

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/kamrankamilli/gsflood/pkg/pixelflut/types"
)

var (
	// ErrNoWorkers is returned for a worker count below one.
	ErrNoWorkers = errors.New("at least one worker is required")
	// ErrEmptySlice is returned when a worker would be left with nothing to
	// draw.
	ErrEmptySlice = errors.New("worker slice is empty")
)

// Strategy selects how operations are distributed.
type Strategy string

const (
	// StrategyShuffle permutes all operations and hands out equal chunks.
	StrategyShuffle Strategy = "shuffle"
	// StrategyBands gives each worker a horizontal band of rows in raw order.
	StrategyBands Strategy = "bands"
)

func (s *Strategy) String() string { return string(*s) }
func (s *Strategy) Type() string   { return "strategy" }

func (s *Strategy) Set(v string) error {
	switch st := Strategy(v); st {
	case StrategyShuffle, StrategyBands:
		*s = st
		return nil
	}
	return fmt.Errorf("unknown partition strategy %q (want shuffle or bands)", v)
}

// Shuffle returns a permuted copy of ops. The same seed always yields the
// same permutation; ops itself is left untouched.
func Shuffle(ops []types.DrawOp, seed uint64) []types.DrawOp {
	out := make([]types.DrawOp, len(ops))
	copy(out, ops)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// EvenSplit cuts ops into n contiguous chunks of len(ops)/n operations.
func EvenSplit(ops []types.DrawOp, n int) ([][]types.DrawOp, error) {
	if n < 1 {
		return nil, ErrNoWorkers
	}
	size := len(ops) / n
	if size == 0 {
		return nil, fmt.Errorf("%w: %d operations for %d workers", ErrEmptySlice, len(ops), n)
	}
	slices := make([][]types.DrawOp, n)
	for i := range slices {
		lo, hi := i*size, (i+1)*size
		slices[i] = ops[lo:hi:hi]
	}
	return slices, nil
}

// RowBands assigns the rows [i*h, (i+1)*h) to worker i, h being height/n.
// Operations keep their relative order inside a band. A band can come out
// empty when its rows are fully transparent.
func RowBands(ops []types.DrawOp, height uint32, n int) ([][]types.DrawOp, error) {
	if n < 1 {
		return nil, ErrNoWorkers
	}
	band := height / uint32(n)
	if band == 0 {
		return nil, fmt.Errorf("%w: %d rows for %d workers", ErrEmptySlice, height, n)
	}
	slices := make([][]types.DrawOp, n)
	for _, op := range ops {
		i := op.DY / band
		if i >= uint32(n) {
			continue
		}
		slices[i] = append(slices[i], op)
	}
	return slices, nil
}

// Split dispatches to the selected strategy. imageHeight is only used by
// StrategyBands, seed only by StrategyShuffle.
func Split(s Strategy, ops []types.DrawOp, imageHeight uint32, n int, seed uint64) ([][]types.DrawOp, error) {
	switch s {
	case StrategyShuffle, "":
		return EvenSplit(Shuffle(ops, seed), n)
	case StrategyBands:
		return RowBands(ops, imageHeight, n)
	}
	return nil, fmt.Errorf("unknown partition strategy %q", s)
}
