// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import "github.com/hydroinformatics/trexgo/internal/grid"

// TransferFloodplain runs the Floodplain Water Transfer (§4.4): for every
// channel node with a host cell, exchanges water between the overland and
// channel portions through direction 9, using the same diffusive-wave
// mechanics as the other two routers driven by the difference in water-
// surface elevation across the cell's side length. fldopt <= 0 restricts
// the exchange to overland-to-channel only; fldopt > 0 is bidirectional.
func TransferFloodplain(g *grid.Grid, fldopt int, dt int) {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Node == nil {
				continue
			}
			node := cell.Node
			virtualChannelSurface := &grid.Cell{
				Elevation: node.BedElevation,
				H:         node.H,
				ManningN:  cell.ManningN,
			}
			dq, _, _ := overlandSegment(cell, virtualChannelSurface, g.W, dt)
			if fldopt <= 0 && dq < 0 {
				dq = 0
			}
			if dq == 0 {
				continue
			}
			if dq > 0 {
				// overland -> channel
				cell.DQOut[grid.DirFloodplain] += dq
				node.DQIn[grid.DirFloodplain] += dq
				cell.DQ -= dq
				node.DQ += dq
			} else {
				// channel -> overland (bidirectional only)
				amt := -dq
				node.DQOut[grid.DirFloodplain] += amt
				cell.DQIn[grid.DirFloodplain] += amt
				node.DQ -= amt
				cell.DQ += amt
			}
		}
	}
}
