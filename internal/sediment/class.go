// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sediment implements the Solids Process Kernel and the two
// Concentration Integrators (§4.6-§4.11): advection and dispersion fluxes,
// shear-stress-driven erosion, probabilistic deposition, and the
// mass-conservative update of water-column and bed-layer concentrations.
package sediment

import (
	"github.com/hydroinformatics/trexgo/internal/deposition"
	"github.com/hydroinformatics/trexgo/internal/erosion"
)

// Class is one solids size class's material properties and pluggable
// process models, dispatched without inheritance per §9's "tagged
// discriminants" design note.
type Class struct {
	Name string

	SpGravity float64 // specific gravity of the solid
	Cohesive  bool    // cncopt: true = cohesive, false = non-cohesive

	SettlingVelocity float64 // w_s, m/s, §4.8
	DispersionCoef   float64 // m2/s, §4.6

	// ProcessScale multiplies q_ers and q_dep before the availability
	// check of §4.7/§4.8's "Scaling" step; 1.0 unless a caller wants to
	// damp a process without disabling it outright.
	ProcessScale float64

	Erosion    erosion.Model
	Deposition deposition.Model
}
