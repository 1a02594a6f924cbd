// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deposition

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_partheniades01(tst *testing.T) {
	chk.PrintTitle("partheniades01")

	mdl := new(Partheniades)
	if err := mdl.Init(dbf.Params{&dbf.P{N: "taucd", V: 0.2}}); err != nil {
		tst.Errorf("init failed: %v", err)
	}

	// below critical shear: always deposits.
	pDep, err := mdl.Probability(&Context{Shear: 0.1})
	if err != nil {
		tst.Errorf("probability failed: %v", err)
	}
	chk.Scalar(tst, "p_dep below taucd", 1e-15, pDep, 1.0)

	// above critical shear: probability strictly decreases as shear grows.
	pLow, err := mdl.Probability(&Context{Shear: 0.25})
	if err != nil {
		tst.Errorf("probability failed: %v", err)
	}
	pHigh, err := mdl.Probability(&Context{Shear: 0.6})
	if err != nil {
		tst.Errorf("probability failed: %v", err)
	}
	if !(pLow > pHigh) {
		tst.Errorf("expected p_dep to decrease with shear: p(0.25)=%v, p(0.6)=%v", pLow, pHigh)
	}
	if pLow > 1.0 || pHigh < 0.0 {
		tst.Errorf("probability out of range: %v, %v", pLow, pHigh)
	}
}
