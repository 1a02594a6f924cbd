// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sediment

import "github.com/hydroinformatics/trexgo/internal/grid"

// committedSink sums a flux's point-source, cardinal and boundary outfluxes
// and its deposition outflux for one solids class: the sink set §4.11 treats as
// already claiming a share of available mass before direction-9 transfer is
// considered.
func committedSink(f *grid.SolidsFlux) float64 {
	sum := f.AdvOut[grid.DirPointSource] + f.AdvOut[grid.DirBoundary] + f.DepOut
	for _, d := range grid.CardinalDirections {
		sum += f.AdvOut[d]
	}
	return sum
}

// TransferFloodplainSolids implements §4.11: for every cell with a channel
// node, moves solids through direction 9 using the upwind concentration and
// the net water flow hydro.TransferFloodplain already wrote onto
// Cell.DQOut/DQIn[DirFloodplain] and Node.DQOut/DQIn[DirFloodplain], scaled
// down if the transfer would exceed the mass left over after every other
// outflux sink on the source side has been honored.
func TransferFloodplainSolids(g *grid.Grid, classes []Class, dt float64) {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Node == nil {
				continue
			}
			node := cell.Node
			dqNet := cell.DQOut[grid.DirFloodplain] - cell.DQIn[grid.DirFloodplain]
			if dqNet == 0 {
				continue
			}

			for s := range classes {
				if dqNet > 0 {
					transferOne(dqNet, cell.Conc[s], cell.H*cell.OverlandSurfaceArea(g.W),
						&cell.Solids[s], &node.Solids[s], dt)
				} else {
					transferOne(-dqNet, node.Conc[s], node.H*node.TopWidth*node.Length,
						&node.Solids[s], &cell.Solids[s], dt)
				}
			}
		}
	}
}

// transferOne moves one solids class's share of a direction-9 flow from the
// upwind side (conc, available water-column volume) onto dst, scaling the
// rate down if its mass over dt would exceed what is left of the upwind
// side's available mass after committedSink's sinks are honored.
func transferOne(dq, conc, vAvailable float64, upwind, down *grid.SolidsFlux, dt float64) {
	rate := dq * conc
	if rate <= 0 {
		return
	}
	available := conc * vAvailable
	committed := committedSink(upwind) * dt
	remaining := available - committed
	potential := rate * dt
	if potential > remaining {
		if remaining <= 0 {
			return
		}
		rate *= remaining / potential
	}
	upwind.AdvOut[grid.DirFloodplain] += rate
	down.AdvIn[grid.DirFloodplain] += rate
}
