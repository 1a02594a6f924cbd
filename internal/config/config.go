// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the TOML project-file schema of spec.md §6:
// grid dimensions, process option selectors, solids-class material
// parameters, and outlet boundary-condition declarations. It is this
// system's analogue of gofem/inp, but backed by
// github.com/BurntSushi/toml rather than gofem's JSON simulation format,
// since the retrieval pack's only other configuration example
// (spatialmodel-inmap) loads TOML.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/hydroinformatics/trexgo/internal/diag"
)

// Options collects the integer process-option selectors of spec.md §6.
// Specific numeric values are historical; only the thresholds named in
// spec.md §4 are semantically load-bearing.
type Options struct {
	ChnOpt   int `toml:"chnopt"`
	FldOpt   int `toml:"fldopt"`
	CtlOpt   int `toml:"ctlopt"`
	ErschOpt int `toml:"erschopt"`
	ErsovOpt int `toml:"ersovopt"`
	DepchOpt int `toml:"depchopt"`
	DepovOpt int `toml:"depovopt"`
	SnowOpt  int `toml:"snowopt"`
	MeltOpt  int `toml:"meltopt"`
}

// SolidsClass is one solids class's TOML declaration: the cohesive flag
// (cncopt), the two kinetic coefficients the kernel itself reads (§4.6/§4.8),
// and the dbf.Params-shaped material parameters each erosion and deposition
// Model's Init consumes directly. SettlingVelocity/DispersionCoef have their
// own fields rather than living in Params/Dep since neither erosion.Model
// nor deposition.Model accepts an unrecognized parameter name (both
// capacity_limited.go and excess_shear.go reject any parameter they don't
// know), so folding them into a Model's own Init list would make every
// realistic class fail to wire.
type SolidsClass struct {
	Name      string  `toml:"name"`
	SpGravity float64 `toml:"spgravity"`
	CncOpt    int     `toml:"cncopt"`

	SettlingVelocity float64 `toml:"settling_velocity"` // w_s, m/s, §4.8
	DispersionCoef   float64 `toml:"dispersion_coef"`   // m2/s, §4.6

	Params []ParamEntry `toml:"params"`            // erosion.Model.Init parameters
	Dep    []ParamEntry `toml:"deposition_params"` // deposition.Model.Init parameters
}

// ParamEntry mirrors one gosl/fun/dbf.P{N,V} entry in TOML form.
type ParamEntry struct {
	N string  `toml:"n"`
	V float64 `toml:"v"`
}

// ToDbfParams converts a []ParamEntry into gosl/fun/dbf.Params.
func ToDbfParams(entries []ParamEntry) dbf.Params {
	out := make(dbf.Params, len(entries))
	for i, e := range entries {
		out[i] = &dbf.P{N: e.N, V: e.V}
	}
	return out
}

// Outlet is one outlet's boundary-condition declaration.
type Outlet struct {
	LinkID     int     `toml:"link_id"`
	Specified  bool    `toml:"specified_depth"` // dbcopt: false=normal depth, true=specified
	StageFunc  string  `toml:"stage_function"`  // forcing.Registry name, used when Specified
	BedSlope   float64 `toml:"bed_slope_out"`   // s_ch_out
}

// Project is the root TOML document consumed by cmd/trexgo.
type Project struct {
	NumRows  int     `toml:"num_rows"`
	NumCols  int     `toml:"num_cols"`
	CellSize float64 `toml:"cell_size"`
	Dt       int     `toml:"dt"`
	Tf       float64 `toml:"tf"`

	GridFile     string `toml:"grid_file"`     // excluded collaborator input, §1
	GeometryFile string `toml:"geometry_file"` // excluded collaborator input, §1
	ForcingFile  string `toml:"forcing_file"`  // excluded collaborator input, §1

	Options Options       `toml:"options"`
	Solids  []SolidsClass `toml:"solids"`
	Outlets []Outlet      `toml:"outlets"`
}

// Load reads and validates a TOML project file.
func Load(path string) (*Project, error) {
	var p Project
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, diag.Err(diag.ConfigurationError, "cannot decode project file %q: %v", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the numeric preconditions spec.md §7's ConfigurationError
// names: unknown cncopt, negative geometry, and (by extension) a
// nonsensical grid or time step.
func (p *Project) Validate() error {
	if p.NumRows <= 0 || p.NumCols <= 0 {
		return diag.Err(diag.ConfigurationError, "num_rows and num_cols must be positive, got %d x %d", p.NumRows, p.NumCols)
	}
	if p.CellSize <= 0 {
		return diag.Err(diag.ConfigurationError, "cell_size must be positive, got %g", p.CellSize)
	}
	if p.Dt <= 0 {
		return diag.Err(diag.ConfigurationError, "dt must be positive, got %d", p.Dt)
	}
	if p.Tf <= 0 {
		return diag.Err(diag.ConfigurationError, "tf must be positive, got %g", p.Tf)
	}
	for i, s := range p.Solids {
		if s.SpGravity <= 0 {
			return diag.Err(diag.ConfigurationError, "solids[%d] %q: spgravity must be positive, got %g", i, s.Name, s.SpGravity)
		}
		if s.CncOpt != 0 && s.CncOpt != 1 {
			return diag.Err(diag.ConfigurationError, "solids[%d] %q: cncopt must be 0 or 1, got %d", i, s.Name, s.CncOpt)
		}
	}
	for i, o := range p.Outlets {
		if o.LinkID < 0 {
			return diag.Err(diag.ConfigurationError, "outlets[%d]: link_id must be >= 0, got %d", i, o.LinkID)
		}
		if o.Specified && strings.TrimSpace(o.StageFunc) == "" {
			return diag.Err(diag.ConfigurationError, "outlets[%d]: specified_depth requires stage_function", i)
		}
	}
	return nil
}
