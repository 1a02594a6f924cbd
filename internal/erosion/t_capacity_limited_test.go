// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erosion

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_capacitylimited01(tst *testing.T) {
	chk.PrintTitle("capacitylimited01")

	mdl := new(CapacityLimited)
	if err := mdl.Init(dbf.Params{}); err != nil {
		tst.Errorf("init failed: %v", err)
	}

	// transport capacity exceeds the current rate: erosion fills the gap.
	ctx := &Context{
		Dt:           1,
		BedArea:      2,
		BulkDensity:  1,
		Available:    4, // available/dt = 4
		AdvOutTotal:  1,
		DepOut:       0.5,
		TransportCap: 5,
	}
	// transportRate = 4 - 1 - 0.5 = 2.5; deficit = 5 - 2.5 = 2.5
	// eps = 2.5*1/2 = 1.25; q_ers = eps*A/bulk/dt = 1.25*2/1/1 = 2.5
	qErs, err := mdl.Rate(ctx)
	if err != nil {
		tst.Errorf("rate failed: %v", err)
	}
	chk.Scalar(tst, "q_ers", 1e-12, qErs, 2.5)

	// capacity already met or exceeded: no erosion.
	ctx.TransportCap = 2.0
	qErs, err = mdl.Rate(ctx)
	if err != nil {
		tst.Errorf("rate failed: %v", err)
	}
	chk.Scalar(tst, "q_ers (no deficit)", 1e-15, qErs, 0)
}
