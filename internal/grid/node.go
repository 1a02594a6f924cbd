// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/hydroinformatics/trexgo/internal/layer"

// Node is one channel segment within a Link, indexed 1..N within that link.
// Geometry follows the trapezoidal cross-section of §3: bottom width, bank
// height, side slope, top width at bank, length including sinuosity, and
// dead-storage depth.
type Node struct {
	LinkID int
	Index  int // 1..N within the link

	Row, Col int // host cell location

	BottomWidth      float64 // bw, m
	BankHeight       float64 // hbank, m
	SideSlope        float64 // z, dimensionless
	TopWidth         float64 // tw at bank height, m
	Length           float64 // L, m (includes sinuosity)
	DeadStorageDepth float64 // stordep, m
	ManningN         float64
	BedElevation     float64 // m

	Layers *layer.Stack

	H, HNew float64 // channel water depth, m

	// Conc and ConcNew are the water column's per-solids-class
	// concentration (g/m3), and Solids holds each class's per-tick
	// directional/process fluxes (§4.9).
	Conc, ConcNew []float64
	Solids        []SolidsFlux

	// SF is the friction slope of the last segment computed by the Channel
	// Water Router (for a branching last node, the last branch), kept for
	// §4.7's shear-stress computation and §8's normal-depth BC invariant.
	SF float64

	// DQ is the net signed flow (m3/s) accumulated onto this node by the
	// Channel Water Router: negative when this node is upstream of a flow,
	// positive when downstream, mirroring dqch[i][j] of §4.2.
	DQ float64

	// DQIn and DQOut are the gross per-direction inflow/outflow (m3/s)
	// bookkept separately from DQ so solids advection (§4.6) can apply
	// upwind concentrations per source rather than to the net flow.
	DQIn, DQOut [NumDirections]float64

	// QInCh and QOutCh are the boundary-directed flows at an outlet node:
	// reverse flow (into the domain) accumulates into QInCh, forward flow
	// into QOutCh, per §4.2's "Reverse flow ... accounted as qin_ch".
	QInCh, QOutCh float64

	// Courant is the Courant number v*Dt/L of the last segment routed
	// through this node, tracked so the simulator can report the running
	// domain-wide maximum (§4.2, §8 invariant 6 via the accountant).
	Courant float64

	// NextDir and PrevDir are the direction indices toward the next and
	// previous node within the same link, derived from host-cell row/col at
	// Grid.Finalize, used for interior-pair dqch_in/out bookkeeping the way
	// downdirection[i][j][0]/updirection[i][j][0] address it in the source.
	NextDir, PrevDir Direction

	// Downstream branches within the same link use index 0 (the "next
	// node" link). At the last node of a link, Down holds up to 8 branch
	// targets reached via junctions (possibly in other links), mirroring
	// ndownbranches/downdirection in the source model.
	Down        []*Node
	DownDir     []Direction // direction index used for dqch_in/out bookkeeping, parallel to Down
	Up          []*Node
	UpDir       []Direction
	IsOutlet    bool    // true when no downstream link/node exists
	OutletIndex int     // index into the outlet boundary-condition table, valid when IsOutlet
	BedSlopeOut float64 // s_ch_out: virtual downstream bed slope at an outlet
}

// Link is a contiguous, ordered sequence of channel Nodes.
type Link struct {
	ID    int
	Nodes []*Node // Nodes[0] is node index 1, Nodes[len-1] is the last node
}

// Last returns the final node of the link, the one that may carry junction
// or outlet branching.
func (l *Link) Last() *Node {
	if len(l.Nodes) == 0 {
		return nil
	}
	return l.Nodes[len(l.Nodes)-1]
}

// DownstreamSegmentSlope returns the bed slope from this node to the "next
// node" within the same link (interior nodes only).
func (n *Node) DownstreamSegmentSlope(next *Node) float64 {
	return (n.BedElevation - next.BedElevation) / n.Length
}

// UpDirFor returns the upstream direction index this node uses to address
// dqch_in/out[...][k] for flow arriving from the given upstream branch,
// mirroring the source model's per-branch updirection lookup. It returns
// DirPointSource (0) if from is not among n.Up, which should not occur for
// a topology built by Grid.Finalize.
func (n *Node) UpDirFor(from *Node) Direction {
	for i, u := range n.Up {
		if u == from {
			return n.UpDir[i]
		}
	}
	return DirPointSource
}

// VirtualBoundaryElevation returns the bed elevation of the virtual
// downstream cross-section used at an outlet: z_i - s_ch_out*L, per §4.2.
func (n *Node) VirtualBoundaryElevation() float64 {
	return n.BedElevation - n.BedSlopeOut*n.Length
}
