package types

import "math"

// Weight is the execution cost a bridged chain assigns to a call. The
// bridge never interprets the unit; it only compares declared weight
// against the executor's estimate and accounts for the unspent remainder.
type Weight uint64

func (w Weight) Add(o Weight) Weight {
	r := w + o
	if r < w {
		return Weight(math.MaxUint64)
	}
	return r
}

func (w Weight) SaturatingSub(o Weight) Weight {
	if o >= w {
		return 0
	}
	return w - o
}

func (w Weight) GreaterThan(o Weight) bool {
	return w > o
}

func (w Weight) LessThan(o Weight) bool {
	return w < o
}

func (w Weight) IsZero() bool {
	return w == 0
}
