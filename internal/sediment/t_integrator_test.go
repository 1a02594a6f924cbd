// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sediment

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/hydroinformatics/trexgo/internal/diag"
	"github.com/hydroinformatics/trexgo/internal/grid"
)

// S6 - Availability scaling: water column holds 1 g of class s over
// V = 1 m3 (C = 1 g/m3). Pre-scaled outfluxes sum to 2 g/s, influx = 0,
// dt = 1 s. Expected uniform scale = 0.5, all out-sinks halved, new mass
// = 1 - 1 = 0, C_new = 0.
func Test_integratorS6(t *testing.T) {
	chk.PrintTitle("integratorS6")

	conc := []float64{1.0}
	concNew := []float64{0.0}
	solids := []grid.SolidsFlux{{}}
	solids[0].AdvOut[grid.DirEast] = 1.5
	solids[0].DepOut = 0.5

	warnings := integrateWaterColumnOne(conc, concNew, solids, 1.0, 1.0, 1.0, 1e-9,
		func() *diag.Error { return diag.Err(diag.NegativeConcentration, "") })

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %d", len(warnings))
	}
	chk.Scalar(t, "C_new", 1e-12, concNew[0], 0.0)
	chk.Scalar(t, "adv_out scaled", 1e-12, solids[0].AdvOut[grid.DirEast], 0.75)
	chk.Scalar(t, "dep_out scaled", 1e-12, solids[0].DepOut, 0.25)
}
