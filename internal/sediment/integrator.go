// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sediment

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/diag"
	"github.com/hydroinformatics/trexgo/internal/grid"
	"github.com/hydroinformatics/trexgo/internal/layer"
)

func scaleOutflux(f *grid.SolidsFlux, scale float64) {
	for k := range f.AdvOut {
		f.AdvOut[k] *= scale
	}
	for k := range f.DspOut {
		f.DspOut[k] *= scale
	}
	f.DepOut *= scale
}

// integrateWaterColumnOne implements §4.9 for every solids class at one
// cell or node. The uniform availability scale factor is applied directly
// onto each flux's AdvOut/DspOut/DepOut so a downstream mass-balance
// accumulator reading those fields sees the already-scaled values, per
// §4.9's "the integrator updates ... accumulators" note.
func integrateWaterColumnOne(conc, concNew []float64, solids []grid.SolidsFlux, vCurrent, vNew, dt, tol float64, loc func() *diag.Error) []*diag.Error {
	var warnings []*diag.Error
	for s := range solids {
		f := &solids[s]
		influx := f.AdvInTotal() + f.DspInTotal() + f.ErsIn
		outflux := f.AdvOutTotal() + f.DspOutTotal() + f.DepOut
		potential := outflux * dt
		available := conc[s] * vCurrent

		if potential > available && potential > 0 {
			scale := available / potential
			scaleOutflux(f, scale)
			outflux *= scale
		}

		derivative := influx - outflux
		newMass := available + derivative*dt
		if newMass < 0 {
			if math.Abs(newMass) < tol {
				newMass = 0
			} else {
				e := loc().WithSolids(s)
				e.Kind = diag.NegativeConcentration
				e.Msg = "concentration integrator produced negative mass beyond tolerance, clamped to zero"
				warnings = append(warnings, e)
				newMass = 0
			}
		}

		if vNew > 0 {
			concNew[s] = newMass / vNew
		} else {
			concNew[s] = 0
		}
	}
	return warnings
}

// IntegrateWaterColumnOverland runs §4.9 for every active overland cell.
func IntegrateWaterColumnOverland(g *grid.Grid, dt, tol float64) []*diag.Error {
	var warnings []*diag.Error
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Class == grid.Outside || cell.Conc == nil {
				continue
			}
			area := cell.OverlandSurfaceArea(g.W)
			vCur, vNew := cell.H*area, cell.HNew*area
			row, col := cell.Row, cell.Col
			ws := integrateWaterColumnOne(cell.Conc, cell.ConcNew, cell.Solids, vCur, vNew, dt, tol,
				func() *diag.Error { return diag.Err(diag.NegativeConcentration, "").AtCell(row, col) })
			warnings = append(warnings, ws...)
		}
	}
	return warnings
}

// IntegrateWaterColumnChannel runs §4.9 for every channel node.
func IntegrateWaterColumnChannel(g *grid.Grid, dt, tol float64) []*diag.Error {
	var warnings []*diag.Error
	for _, l := range g.Links {
		for _, n := range l.Nodes {
			if n.Conc == nil {
				continue
			}
			area := channelArea(n)
			vCur, vNew := n.H*area, n.HNew*area
			link, idx := n.LinkID, n.Index
			ws := integrateWaterColumnOne(n.Conc, n.ConcNew, n.Solids, vCur, vNew, dt, tol,
				func() *diag.Error { return diag.Err(diag.NegativeConcentration, "").AtNode(link, idx) })
			warnings = append(warnings, ws...)
		}
	}
	return warnings
}

// channelArea returns a plan-view water-surface area proxy for a node,
// used only to convert depth to a water-column volume for §4.9; the
// router/depth-updater's cross-sectional geometry governs depth itself.
func channelArea(n *grid.Node) float64 {
	return n.TopWidth * n.Length
}

// IntegrateBedLayerOne implements §4.10's two-pass surface-layer update
// for a single layer stack: a volume pass (summing each class's
// mass-derived volume contribution) followed by a concentration pass, then
// the push/pop bound check of §4.10's "Stack signals".
func IntegrateBedLayerOne(stack *layer.Stack, spGravity []float64, solids []grid.SolidsFlux, dt, tol float64) {
	surf := stack.Surface()
	if surf == nil {
		return
	}
	masses := make([]float64, len(solids))
	var vNew float64
	for s := range solids {
		f := &solids[s]
		m := surf.Conc[s]*surf.Volume + (f.DepIn-f.ErsOut)*dt
		masses[s] = m
		bulk := surf.BulkDensity(spGravity[s])
		if bulk > 0 {
			vNew += m / bulk
		}
	}
	if math.Abs(vNew) < tol {
		vNew = 0
	}
	if vNew >= tol {
		for s := range solids {
			if masses[s] > 0 {
				surf.Conc[s] = masses[s] / vNew
			} else {
				surf.Conc[s] = 0
			}
		}
	} else {
		for s := range surf.Conc {
			surf.Conc[s] = 0
		}
	}
	surf.Volume = vNew
	stack.CheckVolumeBounds()
}

// IntegrateBedLayerOverland runs §4.10 for every active overland cell.
func IntegrateBedLayerOverland(g *grid.Grid, spGravity []float64, dt, tol float64) {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Layers == nil {
				continue
			}
			IntegrateBedLayerOne(cell.Layers, spGravity, cell.Solids, dt, tol)
		}
	}
}

// IntegrateBedLayerChannel runs §4.10 for every channel node.
func IntegrateBedLayerChannel(g *grid.Grid, spGravity []float64, dt, tol float64) {
	for _, l := range g.Links {
		for _, n := range l.Nodes {
			if n.Layers == nil {
				continue
			}
			IntegrateBedLayerOne(n.Layers, spGravity, n.Solids, dt, tol)
		}
	}
}
