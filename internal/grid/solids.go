// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// SolidsFlux holds one solids class's per-tick directional and process
// fluxes at an overland cell or channel node. Per §3, "gross inflow and
// outflow are stored per direction so that advection and dispersion are
// bookkept separately from deposition/erosion" — hence the separate
// Ers/Dep scalars rather than folding them into the directional arrays.
type SolidsFlux struct {
	AdvIn, AdvOut [NumDirections]float64 // g/s
	DspIn, DspOut [NumDirections]float64 // g/s

	ErsIn  float64 // water-column influx from erosion, §4.9 "ers_in[0]"
	DepOut float64 // water-column outflux to deposition, §4.9 "dep_out[0]"
	ErsOut float64 // surface-layer outflux to erosion, §4.10
	DepIn  float64 // surface-layer influx from deposition, §4.10

	TauMax     float64 // maximum historical shear stress, cohesive memory (§4.7)
	TauMaxTime float64
}

// ResetFluxes zeroes every per-tick flux field while preserving the
// cohesive-memory state (TauMax/TauMaxTime), which persists across ticks.
func (f *SolidsFlux) ResetFluxes() {
	tauMax, tauMaxTime := f.TauMax, f.TauMaxTime
	*f = SolidsFlux{TauMax: tauMax, TauMaxTime: tauMaxTime}
}

// sumArray totals an 11-element directional array.
func sumArray(a [NumDirections]float64) float64 {
	var total float64
	for _, v := range a {
		total += v
	}
	return total
}

// AdvInTotal sums advective influx across all directions.
func (f *SolidsFlux) AdvInTotal() float64 { return sumArray(f.AdvIn) }

// AdvOutTotal sums advective outflux across all directions.
func (f *SolidsFlux) AdvOutTotal() float64 { return sumArray(f.AdvOut) }

// DspInTotal sums dispersive influx across all directions.
func (f *SolidsFlux) DspInTotal() float64 { return sumArray(f.DspIn) }

// DspOutTotal sums dispersive outflux across all directions.
func (f *SolidsFlux) DspOutTotal() float64 { return sumArray(f.DspOut) }

// AllocSolids allocates a slice of n zeroed SolidsFlux, one per solids
// class, the shape both Cell and Node use for Solids.
func AllocSolids(n int) []SolidsFlux {
	return make([]SolidsFlux, n)
}
