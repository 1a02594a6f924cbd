// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deposition

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Test_gessler01 reproduces scenario S4: tau_cd=0.1, tau=0.2 should give
// p_dep ~ 0.190 within +-0.005.
func Test_gessler01(tst *testing.T) {

	chk.PrintTitle("gessler01")

	mdl := new(Gessler)
	err := mdl.Init(dbf.Params{&dbf.P{N: "taucd", V: 0.1}})
	if err != nil {
		tst.Errorf("init failed: %v", err)
		return
	}

	pDep, err := mdl.Probability(&Context{Shear: 0.2})
	if err != nil {
		tst.Errorf("probability failed: %v", err)
		return
	}
	if pDep < 0.185 || pDep > 0.195 {
		tst.Errorf("p_dep = %v, want ~0.190 +-0.005", pDep)
	}
}

// Test_gessler02 checks the tau=0 special case: p_dep must be exactly 1.
func Test_gessler02(tst *testing.T) {
	chk.PrintTitle("gessler02")
	mdl := new(Gessler)
	mdl.Init(dbf.Params{&dbf.P{N: "taucd", V: 0.1}})
	pDep, err := mdl.Probability(&Context{Shear: 0})
	if err != nil {
		tst.Errorf("probability failed: %v", err)
	}
	chk.Scalar(tst, "p_dep", 1e-15, pDep, 1.0)
}
