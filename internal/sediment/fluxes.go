// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sediment

import "github.com/hydroinformatics/trexgo/internal/grid"

// overlandForwardDirs mirrors hydro's own forward-direction set: each pair
// of adjacent overland cells is visited exactly once per tick.
var overlandForwardDirs = [4]grid.Direction{grid.DirNorth, grid.DirNortheast, grid.DirEast, grid.DirSoutheast}

// AdvectDisperseOverland computes §4.6's advective and dispersive fluxes
// between every pair of adjacent overland cells, using the gross
// directional flows already written onto grid.Cell by hydro.RouteOverland.
// Advection is upwind (the source cell's concentration); dispersion moves
// from higher to lower concentration at rate DispersionCoef*dC/w times the
// average flow cross-section.
func AdvectDisperseOverland(g *grid.Grid, classes []Class) {
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
				opp := grid.Opposite(d)
				dqSigned := cell.DQOut[d] - cell.DQIn[d]
				crossSection := 0.5 * (cell.H + nb.H) * g.W

				for s := range classes {
					if dqSigned >= 0 {
						flux := dqSigned * cell.Conc[s]
						cell.Solids[s].AdvOut[d] += flux
						nb.Solids[s].AdvIn[opp] += flux
					} else {
						flux := -dqSigned * nb.Conc[s]
						nb.Solids[s].AdvOut[opp] += flux
						cell.Solids[s].AdvIn[d] += flux
					}

					dsp := classes[s].DispersionCoef * (cell.Conc[s] - nb.Conc[s]) / g.W * crossSection
					if dsp >= 0 {
						cell.Solids[s].DspOut[d] += dsp
						nb.Solids[s].DspIn[opp] += dsp
					} else {
						nb.Solids[s].DspOut[opp] += -dsp
						cell.Solids[s].DspIn[d] += -dsp
					}
				}
			}
		}
	}
}

// AdvectDisperseChannel computes §4.6's fluxes along every interior node
// pair and junction branch of every link, the channel analogue of
// AdvectDisperseOverland.
func AdvectDisperseChannel(g *grid.Grid, classes []Class) {
	flux := func(up, down *grid.Node, upDir, downDir grid.Direction, length float64) {
		dqSigned := up.DQOut[upDir] - up.DQIn[upDir]
		crossSection := 0.5 * (up.H + down.H) * length

		for s := range classes {
			if dqSigned >= 0 {
				f := dqSigned * up.Conc[s]
				up.Solids[s].AdvOut[upDir] += f
				down.Solids[s].AdvIn[downDir] += f
			} else {
				f := -dqSigned * down.Conc[s]
				down.Solids[s].AdvOut[downDir] += f
				up.Solids[s].AdvIn[upDir] += f
			}

			dsp := classes[s].DispersionCoef * (up.Conc[s] - down.Conc[s]) / length * crossSection
			if dsp >= 0 {
				up.Solids[s].DspOut[upDir] += dsp
				down.Solids[s].DspIn[downDir] += dsp
			} else {
				down.Solids[s].DspOut[downDir] += -dsp
				up.Solids[s].DspIn[upDir] += -dsp
			}
		}
	}

	for _, l := range g.Links {
		for j := 0; j < len(l.Nodes)-1; j++ {
			up, down := l.Nodes[j], l.Nodes[j+1]
			flux(up, down, up.NextDir, down.PrevDir, up.Length)
		}
		last := l.Last()
		for k, down := range last.Down {
			flux(last, down, last.DownDir[k], down.UpDirFor(last), last.Length)
		}
		if last.IsOutlet {
			boundaryFlux(last, classes)
		}
	}
}

// boundaryFlux carries solids across an outlet's virtual cross-section
// using the forward/reverse flow last.QOutCh/QInCh already separated by
// the Channel Water Router: outflow is upwind on the domain (last.Conc),
// reverse inflow has no known concentration at the boundary and is
// therefore taken as zero.
func boundaryFlux(last *grid.Node, classes []Class) {
	for s := range classes {
		if last.QOutCh > 0 {
			last.Solids[s].AdvOut[grid.DirBoundary] += last.QOutCh * last.Conc[s]
		}
	}
}
