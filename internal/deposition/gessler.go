// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deposition

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["gessler"] = func() Model { return new(Gessler) }
}

// gesslerSigma is the fixed Gessler standard-deviation coefficient of §4.8.
const gesslerSigma = 0.57

// Gessler implements the non-cohesive probabilistic deposition model: the
// critical shear tau_cd is the shear above which half the particles of this
// size settle.
type Gessler struct {
	TauCd float64
}

// Init reads the critical deposition shear "taucd".
func (o *Gessler) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "taucd":
			o.TauCd = p.V
		default:
			return chk.Err("deposition gessler: parameter named %q is incorrect", p.N)
		}
	}
	if o.TauCd <= 0 {
		return chk.Err("deposition gessler: taucd must be positive")
	}
	return nil
}

// Probability implements §4.8's Gessler branch.
func (o *Gessler) Probability(ctx *Context) (float64, error) {
	if ctx.Shear == 0 {
		return 1.0, nil
	}
	y := (1.0 / gesslerSigma) * (o.TauCd/ctx.Shear - 1.0)
	tail := abramowitzStegunTail(y)
	if y >= 0 {
		return tail, nil
	}
	return 1.0 - tail, nil
}
