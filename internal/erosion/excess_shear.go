// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erosion

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["excess-shear"] = func() Model { return new(ExcessShear) }
}

// ExcessShear implements §4.7 mode 1: for a non-cohesive solids class the
// erosion potential is a power-law excess of shear over the critical shear;
// for a cohesive class it is limited by the maximum historical shear
// recorded at this location, giving the surface an erosion "memory".
type ExcessShear struct {
	Cohesive bool
	AyOverZ  float64 // ay/zage
	TauCrit  float64 // tau_ce
	Mexp     float64
}

// Init reads ay/zage ("ay", "zage" or the combined "ayoverzage"), the
// critical shear "tauce", the exponent "mexp", and the cohesive flag
// "cncopt" (0 = non-cohesive, 1 = cohesive).
func (o *ExcessShear) Init(prms dbf.Params) error {
	var ay, zage float64
	haveAy, haveZage, haveCombined := false, false, false
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "ay":
			ay, haveAy = p.V, true
		case "zage":
			zage, haveZage = p.V, true
		case "ayoverzage":
			o.AyOverZ, haveCombined = p.V, true
		case "tauce":
			o.TauCrit = p.V
		case "mexp":
			o.Mexp = p.V
		case "cncopt":
			switch int(p.V) {
			case 0:
				o.Cohesive = false
			case 1:
				o.Cohesive = true
			default:
				return chk.Err("erosion excess-shear: cncopt must be 0 or 1, got %v", p.V)
			}
		default:
			return chk.Err("erosion excess-shear: parameter named %q is incorrect", p.N)
		}
	}
	if haveCombined {
		// already set
	} else if haveAy && haveZage {
		if zage == 0 {
			return chk.Err("erosion excess-shear: zage must be nonzero")
		}
		o.AyOverZ = ay / zage
	} else {
		return chk.Err("erosion excess-shear: requires either 'ayoverzage' or both 'ay' and 'zage'")
	}
	if o.TauCrit <= 0 {
		return chk.Err("erosion excess-shear: tauce must be positive")
	}
	return nil
}

// Rate implements §4.7 mode 1.
func (o *ExcessShear) Rate(ctx *Context) (float64, error) {
	tau := ctx.Shear
	var eps float64
	if !o.Cohesive {
		if tau > o.TauCrit {
			eps = o.AyOverZ * math.Pow(tau/o.TauCrit-1, o.Mexp)
		}
	} else {
		if ctx.TauMax == nil {
			return 0, chk.Err("erosion excess-shear: cohesive mode requires TauMax history pointer")
		}
		if tau > o.TauCrit && tau > *ctx.TauMax {
			term2 := 0.0
			if *ctx.TauMax > o.TauCrit {
				term2 = math.Pow(*ctx.TauMax/o.TauCrit-1, o.Mexp)
			}
			eps = o.AyOverZ * (math.Pow(tau/o.TauCrit-1, o.Mexp) - term2)
			*ctx.TauMax = tau
			if ctx.TauMaxTime != nil {
				*ctx.TauMaxTime = ctx.Now
			}
		}
	}
	if eps <= 0 {
		return 0, nil
	}
	bulkGPerM3 := ctx.BulkDensity
	if bulkGPerM3 <= 0 || ctx.Dt <= 0 {
		return 0, nil
	}
	qErs := eps * ctx.BedArea / bulkGPerM3 / ctx.Dt
	return qErs, nil
}
