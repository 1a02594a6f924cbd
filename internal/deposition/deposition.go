// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deposition implements the three probabilistic-deposition process
// families of §4.8: always-deposit (depopt<=1), Gessler (non-cohesive), and
// Partheniades (cohesive). Variants self-register into a name->allocator
// registry, mirroring gofem/mdl/retention's Model/New/allocators pattern.
package deposition

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Context carries the per-tick, per-location, per-solids-class inputs a
// deposition Model needs to compute a deposition probability.
type Context struct {
	Shear float64 // tau, N/m2
}

// Model is a deposition process family; Probability returns p_dep in [0,1].
type Model interface {
	Init(prms dbf.Params) error
	Probability(ctx *Context) (pDep float64, err error)
}

var allocators = map[string]func() Model{}

// New returns a new deposition Model by name ("always", "gessler", or
// "partheniades").
func New(name string) (Model, error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		return nil, chk.Err("deposition: model %q is not available", name)
	}
	return alloc(), nil
}

// FromOption resolves the depchopt/depovopt selector of §6: 0 disables
// deposition entirely (caller should not invoke a Model), 1 selects
// always-deposit (p_dep=1), and >=2 selects the probabilistic model
// appropriate to the solids class's cohesive flag.
func FromOption(opt int, cohesive bool) (Model, error) {
	if opt <= 0 {
		return nil, nil
	}
	if opt == 1 {
		return New("always")
	}
	if cohesive {
		return New("partheniades")
	}
	return New("gessler")
}

// abramowitzStegunTail computes the Abramowitz & Stegun 26.2.16
// approximation to Phi(|y|), the standard normal CDF at |y|:
//
//	1 - phi(|y|) * (0.4362*xi - 0.1202*xi^2 + 0.9373*xi^3), xi = 1/(1+0.3327*|y|)
//
// Despite the name (carried over from the source formula's own phrasing),
// this approaches 1 as |y| grows, i.e. it approximates Phi(|y|) rather than
// an upper tail; callers apply the sign convention of §4.8 on top of it.
func abramowitzStegunTail(y float64) float64 {
	ay := math.Abs(y)
	xi := 1.0 / (1.0 + 0.3327*ay)
	phi := (1.0 / math.Sqrt(2*math.Pi)) * math.Exp(-ay*ay/2.0)
	return 1.0 - phi*(0.4362*xi-0.1202*xi*xi+0.9373*xi*xi*xi)
}
