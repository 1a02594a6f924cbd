// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/hydroinformatics/trexgo/internal/diag"

// ValidateMutualNeighbors checks §4.1's invariant: if A.Neighbor[k] == B
// then B.Neighbor[Opposite(k)] == A, for every overland cell and every
// direction 1..8. A violation is a fatal TopologyInconsistency, reported at
// init the same way gofem's domain setup panics on an inconsistent mesh.
func (g *Grid) ValidateMutualNeighbors() error {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.Cells[r][c]
			if cell == nil {
				continue
			}
			for d := DirNorth; d <= DirNorthwest; d++ {
				nb := cell.Neighbor[d]
				if nb == nil {
					continue
				}
				back := nb.Neighbor[Opposite(d)]
				if back != cell {
					return diag.Err(diag.TopologyInconsistency,
						"neighbor table not mutual: cell (%d,%d) -> dir %d -> (%d,%d), but back-link does not return",
						r, c, int(d), nb.Row, nb.Col).AtCell(r, c)
				}
			}
		}
	}
	return nil
}

// ValidateLinkCounts checks that the number of links actually present in
// g.Links matches nlinksExpected, the count read elsewhere (e.g. from a
// channel geometry file); a mismatch is a fatal TopologyInconsistency.
func (g *Grid) ValidateLinkCounts(nlinksExpected int) error {
	if len(g.Links) != nlinksExpected {
		return diag.Err(diag.TopologyInconsistency,
			"link count mismatch: topology holds %d links, expected %d", len(g.Links), nlinksExpected)
	}
	for _, l := range g.Links {
		if len(l.Nodes) == 0 {
			return diag.Err(diag.TopologyInconsistency, "link %d has zero nodes", l.ID)
		}
	}
	return nil
}

// Finalize builds the (link,node) lookup index and classifies each link's
// last node as interior or outlet, based on whether Down is populated.
func (g *Grid) Finalize() error {
	g.nodeIndex = make(map[[2]int]*Node)
	for _, l := range g.Links {
		for idx, n := range l.Nodes {
			if n.LinkID != l.ID {
				return diag.Err(diag.TopologyInconsistency, "node claims link %d but stored under link %d", n.LinkID, l.ID)
			}
			g.nodeIndex[[2]int{l.ID, n.Index}] = n
			if idx+1 < len(l.Nodes) {
				next := l.Nodes[idx+1]
				n.NextDir = DirectionTo(n.Row, n.Col, next.Row, next.Col)
				next.PrevDir = DirectionTo(next.Row, next.Col, n.Row, n.Col)
			}
		}
		last := l.Last()
		last.IsOutlet = len(last.Down) == 0
		if len(last.Down) != len(last.DownDir) {
			return diag.Err(diag.TopologyInconsistency, "link %d last node has %d down branches but %d down directions", l.ID, len(last.Down), len(last.DownDir))
		}
		for _, down := range last.Down {
			if len(down.Up) != len(down.UpDir) {
				return diag.Err(diag.TopologyInconsistency, "node (link %d, node %d) has %d up branches but %d up directions", down.LinkID, down.Index, len(down.Up), len(down.UpDir))
			}
		}
	}
	return nil
}

// DirectionTo returns the 8-direction index from (r0,c0) toward an adjacent
// (r1,c1) cell, the same row/col-delta mapping the source model uses to
// build its updirection/downdirection tables at init.
func DirectionTo(r0, c0, r1, c1 int) Direction {
	dr, dc := r1-r0, c1-c0
	switch {
	case dr == -1 && dc == 0:
		return DirNorth
	case dr == -1 && dc == 1:
		return DirNortheast
	case dr == 0 && dc == 1:
		return DirEast
	case dr == 1 && dc == 1:
		return DirSoutheast
	case dr == 1 && dc == 0:
		return DirSouth
	case dr == 1 && dc == -1:
		return DirSouthwest
	case dr == 0 && dc == -1:
		return DirWest
	case dr == -1 && dc == -1:
		return DirNorthwest
	default:
		return DirPointSource
	}
}

// NodeAt looks up a node by (link,index) after Finalize has been called.
func (g *Grid) NodeAt(link, index int) *Node {
	if g.nodeIndex == nil {
		return nil
	}
	return g.nodeIndex[[2]int{link, index}]
}
