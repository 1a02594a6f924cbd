// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/hydroinformatics/trexgo/internal/layer"

// Class tags an overland raster cell.
type Class int

const (
	Outside Class = iota
	Overland
	Channel
)

// Cell is one overland raster cell, identified by (Row, Col).
type Cell struct {
	Row, Col int

	Class             Class
	Elevation         float64 // ground elevation, m
	ManningN          float64
	DepressionStorage float64 // m
	LandUse           int

	Layers *layer.Stack

	H, HNew float64 // water depth, m

	// Conc and ConcNew are the water column's per-solids-class
	// concentration (g/m3), and Solids holds each class's per-tick
	// directional/process fluxes (§4.9).
	Conc, ConcNew []float64
	Solids        []SolidsFlux

	// SFCardinal holds the friction slope computed toward each of the four
	// cardinal neighbours (North, East, South, West), used by §4.7's
	// overland shear-stress vector magnitude sqrt(sfN^2+sfE^2+sfS^2+sfW^2).
	SFCardinal [4]float64

	// DQ, DQIn, DQOut mirror grid.Node's water-routing bookkeeping for the
	// overland portion of this cell (§4.3).
	DQ          float64
	DQIn, DQOut [NumDirections]float64

	Courant float64

	// IsOutlet marks a cell as a domain boundary for overland flow in the
	// direction OutletDir; OutletBedSlope is the virtual downstream bed
	// slope used there, mirroring grid.Node's BedSlopeOut/VirtualBoundary-
	// Elevation for channel outlets (§4.2, applied to the overland router
	// per its "collaborator summary" in §4.3).
	IsOutlet       bool
	OutletDir      Direction
	OutletBedSlope float64

	// Neighbor[d] for d in 1..8 is the adjoining cell in that direction, or
	// nil at a domain edge. Index 0 is unused.
	Neighbor [NumNeighbors + 1]*Cell

	// Node is the channel node occupying this cell's channel portion, or
	// nil for a purely overland cell.
	Node *Node
}

// Grid holds the raster cells and channel links. W is the uniform cell side
// length w (m), shared by every cell; it lives on Grid rather than Cell
// since it is constant.
type Grid struct {
	W         float64 // uniform cell side length, m
	Cells     [][]*Cell
	NumRows   int
	NumCols   int
	Links     []*Link
	nodeIndex map[[2]int]*Node // (link,node) -> *Node, built by Finalize
}

// At returns the cell at (row,col), or nil if out of range.
func (g *Grid) At(row, col int) *Cell {
	if row < 0 || row >= g.NumRows || col < 0 || col >= g.NumCols {
		return nil
	}
	return g.Cells[row][col]
}

// OverlandSurfaceArea returns w^2 minus the channel portion (if any), per
// §4.1: "overland portion = w^2 - twch*lch".
func (c *Cell) OverlandSurfaceArea(w float64) float64 {
	area := w * w
	if c.Node != nil {
		area -= c.Node.TopWidth * c.Node.Length
	}
	return area
}

// ChannelSurfaceArea returns twch*lch for this cell's channel portion, or 0
// if the cell has no channel node.
func (c *Cell) ChannelSurfaceArea() float64 {
	if c.Node == nil {
		return 0
	}
	return c.Node.TopWidth * c.Node.Length
}
