// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package erosion implements the two shear-stress-driven erosion process
// families of §4.7: excess-shear (with history-dependent cohesive memory)
// and capacity-limited. Variants self-register into a name->allocator
// registry, the same "dispatched without inheritance" pattern
// gofem/mdl/retention uses for liquid-retention curves.
package erosion

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Context carries the per-tick, per-location, per-solids-class inputs an
// erosion Model needs to compute an erosion flow q_ers (m3/s-equivalent
// volumetric erosion rate, consistent with §4.7's q_ers definition).
type Context struct {
	Shear        float64 // tau, N/m2
	Dt           float64 // s
	BedArea      float64 // m2
	BulkDensity  float64 // g/m3 of this solids class in the surface layer
	Available    float64 // available bed mass of this class in the surface layer, g
	AdvOutTotal  float64 // sum_k adv_out[k] for this class, g/s (capacity-limited branch)
	DepOut       float64 // deposition outflux for this class, g/s (capacity-limited branch)
	TransportCap float64 // T_cap, transport capacity mass rate, g/s (capacity-limited branch)

	// Cohesive history, mutated in place by Model.Rate for cncopt=1 classes.
	TauMax     *float64 // maximum historical shear at this location/class
	TauMaxTime *float64 // simulation time of the last TauMax update
	Now        float64  // current simulation time, s
}

// Model is an erosion process family.
type Model interface {
	// Init reads model parameters (ay/zage, mexp, tauce, cohesive flag)
	// from a dbf.Params list.
	Init(prms dbf.Params) error
	// Rate returns the erosion flow q_ers (m3/s) for the given context,
	// before the mass-availability scaling §4.7 applies afterward.
	Rate(ctx *Context) (qErs float64, err error)
}

var allocators = map[string]func() Model{}

// New returns a new erosion Model by name ("excess-shear" or
// "capacity-limited").
func New(name string) (Model, error) {
	alloc, ok := allocators[strings.ToLower(name)]
	if !ok {
		return nil, chk.Err("erosion: model %q is not available", name)
	}
	return alloc(), nil
}

// FromOption resolves the erschopt/ersovopt selector of §6: 0 disables
// erosion (caller should not invoke a Model at all), 1 selects
// capacity-limited, >=2 selects excess-shear.
func FromOption(opt int) (Model, error) {
	if opt <= 0 {
		return nil, nil
	}
	if opt == 1 {
		return New("capacity-limited")
	}
	return New("excess-shear")
}
