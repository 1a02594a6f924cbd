// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/grid"
)

// OverlandContext carries the per-tick external inputs to the Overland
// Water Router that are not already fields on grid.Cell.
type OverlandContext struct {
	Dt          int
	PointSource func(c *grid.Cell) float64
}

// overlandForwardDirs lists the four directions routed once per pair (the
// other four are the Opposite of one of these, and get their bookkeeping
// from the same pass).
var overlandForwardDirs = [4]grid.Direction{grid.DirNorth, grid.DirNortheast, grid.DirEast, grid.DirSoutheast}

func cardinalIndex(d grid.Direction) (int, bool) {
	for i, c := range grid.CardinalDirections {
		if c == d {
			return i, true
		}
	}
	return 0, false
}

// RouteOverland runs the Overland Water Router (§4.3): the same
// diffusive-wave, bed-slope/water-surface-slope Manning mechanics as the
// Channel Water Router, applied across the eight raster neighbours of each
// cell with a wide-channel (R=h) cross-section of unit width w.
func RouteOverland(g *grid.Grid, ctx *OverlandContext) (float64, error) {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Class == grid.Outside {
				continue
			}
			cell.DQ = 0
			cell.SFCardinal = [4]float64{}
			for k := range cell.DQIn {
				cell.DQIn[k] = 0
				cell.DQOut[k] = 0
			}
		}
	}

	if ctx.PointSource != nil {
		for r := 0; r < g.NumRows; r++ {
			for c := 0; c < g.NumCols; c++ {
				cell := g.At(r, c)
				if cell == nil || cell.Class == grid.Outside {
					continue
				}
				q := ctx.PointSource(cell)
				if q == 0 {
					continue
				}
				cell.DQ += q
				cell.DQIn[grid.DirPointSource] += q
			}
		}
	}

	maxCourant := -1.0
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Class == grid.Outside {
				continue
			}
			for _, d := range overlandForwardDirs {
				nb := cell.Neighbor[d]
				if nb == nil || nb.Class == grid.Outside {
					continue
				}
				dq, sf, courant := overlandSegment(cell, nb, g.W, ctx.Dt)
				opp := grid.Opposite(d)
				if idx, ok := cardinalIndex(d); ok {
					cell.SFCardinal[idx] = sf
				}
				if idx, ok := cardinalIndex(opp); ok {
					nb.SFCardinal[idx] = -sf
				}
				if courant > maxCourant {
					maxCourant = courant
				}
				cell.Courant = math.Max(cell.Courant, courant)
				nb.Courant = math.Max(nb.Courant, courant)

				cell.DQ -= dq
				nb.DQ += dq
				if dq >= 0 {
					cell.DQOut[d] += dq
					nb.DQIn[opp] += dq
				} else {
					cell.DQIn[d] += -dq
					nb.DQOut[opp] += -dq
				}
			}

			if cell.IsOutlet {
				dq, courant := overlandBoundarySegment(cell, g.W, ctx.Dt)
				if courant > maxCourant {
					maxCourant = courant
				}
				cell.Courant = math.Max(cell.Courant, courant)
				cell.DQ -= dq
				if dq >= 0 {
					cell.DQOut[grid.DirBoundary] += dq
				} else {
					cell.DQIn[grid.DirBoundary] += -dq
				}
			}
		}
	}
	return maxCourant, nil
}

// overlandBoundarySegment computes the boundary-directed flow at an
// overland outlet cell assuming normal depth (dhdx=0), mirroring the
// channel router's normal-depth boundary condition.
func overlandBoundarySegment(cell *grid.Cell, w float64, dt int) (dq, courant float64) {
	virtual := &grid.Cell{
		Elevation: cell.Elevation - cell.OutletBedSlope*w,
		H:         cell.H,
		ManningN:  cell.ManningN,
	}
	dq, _, courant = overlandSegment(cell, virtual, w, dt)
	return dq, courant
}

// overlandSegment computes the signed flow, friction slope, and Courant
// number for one directed pair of adjacent cells, mirroring §4.2 steps 1-9
// with a rectangular, wide-channel cross-section in place of the trapezoid.
func overlandSegment(from, to *grid.Cell, w float64, dt int) (dq, sf, courant float64) {
	so := (from.Elevation - to.Elevation) / w
	dhdx := (to.H - from.H) / w
	sf = so - dhdx
	if sf == 0 {
		return 0, sf, 0
	}
	a := 1.0
	hov, stordep, n := from.H, from.DepressionStorage, from.ManningN
	if sf < 0 {
		a = -1.0
		hov, stordep, n = to.H, to.DepressionStorage, to.ManningN
	}
	if !(hov > stordep) || n <= 0 {
		return 0, sf, 0
	}
	heff := hov - stordep
	area := heff * w
	rh := area / w
	velocity := math.Sqrt(math.Abs(sf)) / n * math.Pow(rh, 2.0/3.0)
	dq = a * velocity * area
	courant = velocity * float64(dt) / w
	return dq, sf, courant
}
