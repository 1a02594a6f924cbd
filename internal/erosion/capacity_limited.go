// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erosion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["capacity-limited"] = func() Model { return new(CapacityLimited) }
}

// CapacityLimited implements §4.7 mode 2: erosion fills the gap between a
// transport capacity and the current transport rate (available mass per
// unit time less advection out and deposition), never eroding more than the
// capacity deficit allows.
type CapacityLimited struct{}

// Init accepts no parameters of its own; the transport capacity is supplied
// per call through Context.TransportCap.
func (o *CapacityLimited) Init(prms dbf.Params) error {
	for _, p := range prms {
		return chk.Err("erosion capacity-limited: parameter named %q is incorrect, this model takes none", p.N)
	}
	return nil
}

// Rate implements §4.7 mode 2. The transport-rate sign convention follows
// the literal formula named in spec.md §9's Open Question: transrate =
// available/dt - sum_k adv_out[k] - dep_out. A negative transport rate is
// clamped to zero, and so is a negative capacity deficit, so Rate never
// returns a negative erosion flow.
func (o *CapacityLimited) Rate(ctx *Context) (float64, error) {
	if ctx.Dt <= 0 {
		return 0, nil
	}
	transportRate := ctx.Available/ctx.Dt - ctx.AdvOutTotal - ctx.DepOut
	if transportRate < 0 {
		transportRate = 0
	}
	deficit := ctx.TransportCap - transportRate
	if deficit < 0 {
		deficit = 0
	}
	if ctx.BedArea <= 0 {
		return 0, nil
	}
	eps := deficit * ctx.Dt / ctx.BedArea
	bulkGPerM3 := ctx.BulkDensity
	if bulkGPerM3 <= 0 {
		return 0, nil
	}
	qErs := eps * ctx.BedArea / bulkGPerM3 / ctx.Dt
	return qErs, nil
}
