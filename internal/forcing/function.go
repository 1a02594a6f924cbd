// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package forcing implements piecewise-linear evaluation of externally
// supplied time-series functions: rainfall rates, outlet stage boundary
// conditions, point-source hydrographs, and the like. It is this system's
// analogue of gosl/fun.TimeSpace, used the same way gofem's
// inp.FuncsData.Get resolves a named function.
package forcing

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/diag"
)

// sentinelGap is how far beyond the last real point the padding sentinel is
// placed; any query at or beyond it is rejected rather than wrapped.
const sentinelGap = 1e12

// Point is one (time, value) pair of a forcing time series.
type Point struct {
	T, V float64
}

// Function is a piecewise-linear time series padded with a sentinel far
// beyond the last real pair, per §9's anti-wraparound contract: querying a
// time at or beyond the sentinel is an error, not a wrap to the first pair.
type Function struct {
	pts      []Point // sorted ascending by T, includes the appended sentinel
	lastReal float64 // T of the last real (non-sentinel) pair
}

// New builds a Function from a time-ordered series of real points. pts must
// be non-empty and strictly increasing in T.
func New(pts []Point) (*Function, error) {
	if len(pts) == 0 {
		return nil, diag.Err(diag.ConfigurationError, "forcing function requires at least one point")
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].T <= pts[i-1].T {
			return nil, diag.Err(diag.ConfigurationError, "forcing function times must be strictly increasing: pts[%d].T=%g <= pts[%d].T=%g", i, pts[i].T, i-1, pts[i-1].T)
		}
	}
	last := pts[len(pts)-1]
	padded := make([]Point, len(pts)+1)
	copy(padded, pts)
	padded[len(pts)] = Point{T: last.T + sentinelGap, V: last.V}
	return &Function{pts: padded, lastReal: last.T}, nil
}

// Constant returns a Function holding a single value for all time.
func Constant(v float64) *Function {
	f, _ := New([]Point{{T: 0, V: v}})
	return f
}

// Zero is the always-zero forcing function, the analogue of gosl/fun.Zero,
// used as the "zero"/"none" built-in in a Registry.
var Zero = Constant(0)

// Eval linearly interpolates the value at time t. Times before the first
// point hold at the first value. Times at or beyond the sentinel are
// rejected: implementations must not wrap to the first pair.
func (f *Function) Eval(t float64) (float64, error) {
	if t < f.pts[0].T {
		return f.pts[0].V, nil
	}
	if t >= f.pts[len(f.pts)-1].T {
		return 0, diag.Err(diag.ConfigurationError, "forcing function queried at t=%g, at or beyond the sentinel pad (last real point at t=%g)", t, f.lastReal)
	}
	// linear scan is fine: series are short relative to a tick count.
	for i := 1; i < len(f.pts); i++ {
		if t <= f.pts[i].T {
			a, b := f.pts[i-1], f.pts[i]
			if b.T == a.T {
				return a.V, nil
			}
			frac := (t - a.T) / (b.T - a.T)
			return a.V + frac*(b.V-a.V), nil
		}
	}
	return f.pts[len(f.pts)-1].V, nil
}

// MustEval is Eval without the error return, clamping any evaluation error
// to the last real value; callers that have already validated their
// simulation horizon against every registered Function's span may use this
// to keep hot-loop call sites error-free.
func (f *Function) MustEval(t float64) float64 {
	v, err := f.Eval(t)
	if err != nil {
		return f.pts[len(f.pts)-2].V
	}
	return v
}

// LastRealTime returns the time of the last real (pre-sentinel) point.
func (f *Function) LastRealTime() float64 { return f.lastReal }

// Registry resolves named forcing functions, mirroring
// gofem/inp.FuncsData.Get's "zero"/"none" built-in plus named lookup.
type Registry struct {
	byName map[string]*Function
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Function)}
}

// Set registers a function under a name.
func (r *Registry) Set(name string, f *Function) {
	r.byName[name] = f
}

// Get resolves a function by name, special-casing "zero"/"none".
func (r *Registry) Get(name string) (*Function, error) {
	if name == "" || name == "zero" || name == "none" {
		return Zero, nil
	}
	f, ok := r.byName[name]
	if !ok {
		return nil, diag.Err(diag.ConfigurationError, "cannot find forcing function named %q", name)
	}
	return f, nil
}

// clampNonNegative zeroes a value that is negative by less than tol, i.e. a
// barely-negative interpolated rate produced by round-off; other values are
// returned unchanged.
func clampNonNegative(v, tol float64) float64 {
	if v < 0 && math.Abs(v) < tol {
		return 0
	}
	return v
}
