// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state implements the State Store of §3/§5: the double-buffered
// water-depth, concentration, and layer fields carried on grid.Cell and
// grid.Node, plus the single swap operation that is the sole mutation of
// shared state across ticks.
package state

import (
	"github.com/hydroinformatics/trexgo/internal/grid"
	"github.com/hydroinformatics/trexgo/internal/layer"
)

// Store owns the grid and is the one collaborator the simulator calls to
// advance "new" into "current" at tick end.
type Store struct {
	Grid      *grid.Grid
	NumSolids int
}

// New wraps an already-built grid. The grid's cells/nodes must already have
// Conc/ConcNew/Solids allocated to NumSolids entries, normally via
// NewStoreFromConfig.
func New(g *grid.Grid, numSolids int) *Store {
	return &Store{Grid: g, NumSolids: numSolids}
}

// Swap advances every cell's and node's "new" fields into "current" and
// resets the per-tick flux accumulators, preserving cohesive memory. It is
// the sole mutation of shared state across ticks per spec.md §5.
func (s *Store) Swap() {
	for r := 0; r < s.Grid.NumRows; r++ {
		for c := 0; c < s.Grid.NumCols; c++ {
			cell := s.Grid.At(r, c)
			if cell == nil || cell.Class == grid.Outside {
				continue
			}
			cell.H = cell.HNew
			copy(cell.Conc, cell.ConcNew)
			for s := range cell.Solids {
				cell.Solids[s].ResetFluxes()
			}
			cell.DQ = 0
			for d := range cell.DQIn {
				cell.DQIn[d], cell.DQOut[d] = 0, 0
			}
		}
	}
	for _, l := range s.Grid.Links {
		for _, n := range l.Nodes {
			n.H = n.HNew
			copy(n.Conc, n.ConcNew)
			for s := range n.Solids {
				n.Solids[s].ResetFluxes()
			}
		}
	}
}

// NewStoreFromConfig derives a consistent initial state for every cell and
// node in g: allocates the double-buffered concentration slices and solids
// flux accumulators, and derives each layer stack's surface-layer volume
// from its porosity and per-class concentrations (the invariant of §3:
// "surface-layer volume equals sum_s mass_s / (bulk_density_s * 1000)"),
// mirroring ComputeInitialStateWater.c/ComputeInitialStateSolids.c's role
// of turning raw input depths/porosities into consistent derived state
// before tick 0.
func NewStoreFromConfig(g *grid.Grid, numSolids int, spGravity []float64, tol float64) *Store {
	for r := 0; r < g.NumRows; r++ {
		for c := 0; c < g.NumCols; c++ {
			cell := g.At(r, c)
			if cell == nil || cell.Class == grid.Outside {
				continue
			}
			cell.Conc = make([]float64, numSolids)
			cell.ConcNew = make([]float64, numSolids)
			cell.Solids = grid.AllocSolids(numSolids)
			cell.HNew = cell.H
			if cell.Layers != nil {
				deriveStackVolumes(cell.Layers, spGravity, tol)
			}
		}
	}
	for _, l := range g.Links {
		for _, n := range l.Nodes {
			n.Conc = make([]float64, numSolids)
			n.ConcNew = make([]float64, numSolids)
			n.Solids = grid.AllocSolids(numSolids)
			n.HNew = n.H
			if n.Layers != nil {
				deriveStackVolumes(n.Layers, spGravity, tol)
			}
		}
	}
	return New(g, numSolids)
}

// deriveStackVolumes recomputes every layer's volume from its porosity and
// per-class concentrations, enforcing §3's bulk-density invariant rather
// than trusting an externally supplied volume to already be consistent.
func deriveStackVolumes(stack *layer.Stack, spGravity []float64, tol float64) {
	for _, l := range stack.Layers {
		masses := make([]float64, len(l.Conc))
		for s, c := range l.Conc {
			masses[s] = c * l.Volume
		}
		l.Volume = layer.VolumeFromMasses(masses, spGravity, l.Porosity, tol)
	}
	stack.CheckVolumeBounds()
}
