// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erosion

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Test_excessshear01 reproduces scenario S5: cohesive memory. At tick 1,
// tau=0.8 erodes against tau_ce=0.5 and raises tau_max to 0.8. At tick 2,
// tau=0.7 < tau_max, so no further erosion occurs and tau_max is unchanged.
func Test_excessshear01(tst *testing.T) {

	chk.PrintTitle("excessshear01")

	mdl := new(ExcessShear)
	err := mdl.Init(dbf.Params{
		&dbf.P{N: "ayoverzage", V: 1e-3},
		&dbf.P{N: "tauce", V: 0.5},
		&dbf.P{N: "mexp", V: 1},
		&dbf.P{N: "cncopt", V: 1},
	})
	if err != nil {
		tst.Errorf("init failed: %v", err)
		return
	}

	tauMax := 0.0
	tauMaxTime := 0.0

	// tick 1: tau=0.8
	ctx := &Context{
		Shear:       0.8,
		Dt:          1,
		BedArea:     1,
		BulkDensity: 1, // isolate epsilon*A/dt from density scaling
		TauMax:      &tauMax,
		TauMaxTime:  &tauMaxTime,
		Now:         1,
	}
	qErs, err := mdl.Rate(ctx)
	if err != nil {
		tst.Errorf("rate failed: %v", err)
		return
	}
	chk.Scalar(tst, "q_ers tick1", 1e-12, qErs, 6e-4)
	chk.Scalar(tst, "tau_max after tick1", 1e-15, tauMax, 0.8)

	// tick 2: tau=0.7 < tau_max
	ctx.Shear = 0.7
	ctx.Now = 2
	qErs, err = mdl.Rate(ctx)
	if err != nil {
		tst.Errorf("rate failed: %v", err)
		return
	}
	chk.Scalar(tst, "q_ers tick2", 1e-15, qErs, 0)
	chk.Scalar(tst, "tau_max after tick2", 1e-15, tauMax, 0.8)
}

// Test_excessshear02 checks the non-cohesive branch ignores history.
func Test_excessshear02(tst *testing.T) {
	chk.PrintTitle("excessshear02")
	mdl := new(ExcessShear)
	err := mdl.Init(dbf.Params{
		&dbf.P{N: "ayoverzage", V: 1e-3},
		&dbf.P{N: "tauce", V: 0.5},
		&dbf.P{N: "mexp", V: 1},
		&dbf.P{N: "cncopt", V: 0},
	})
	if err != nil {
		tst.Errorf("init failed: %v", err)
	}
	ctx := &Context{Shear: 0.5, Dt: 1, BedArea: 1, BulkDensity: 1}
	qErs, err := mdl.Rate(ctx)
	if err != nil {
		tst.Errorf("rate failed: %v", err)
	}
	chk.Scalar(tst, "q_ers at tau=tauce", 1e-15, qErs, 0)
}
