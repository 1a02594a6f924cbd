// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deposition

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["partheniades"] = func() Model { return new(Partheniades) }
}

// partheniadesSigma is the fixed Partheniades standard-deviation
// coefficient of §4.8.
const partheniadesSigma = 0.49

// Partheniades implements the cohesive probabilistic deposition model.
type Partheniades struct {
	TauCd float64
}

// Init reads the critical deposition shear "taucd".
func (o *Partheniades) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "taucd":
			o.TauCd = p.V
		default:
			return chk.Err("deposition partheniades: parameter named %q is incorrect", p.N)
		}
	}
	if o.TauCd <= 0 {
		return chk.Err("deposition partheniades: taucd must be positive")
	}
	return nil
}

// Probability implements §4.8's Partheniades branch.
func (o *Partheniades) Probability(ctx *Context) (float64, error) {
	if ctx.Shear <= o.TauCd {
		return 1.0, nil
	}
	arg := 0.25 * (ctx.Shear/o.TauCd - 1.0) * math.Exp(1.27*o.TauCd)
	if arg <= 0 {
		return 1.0, nil
	}
	y := (1.0 / partheniadesSigma) * math.Log(arg)
	tail := abramowitzStegunTail(y)
	// Unlike Gessler, the source flips the assignment here: y<0 (lower
	// half, tau just above taucd) keeps the raw tail as probability of
	// staying, while y>=0 (upper half, tau well above taucd) takes the
	// complement.
	if y < 0 {
		return tail, nil
	}
	return 1.0 - tail, nil
}
