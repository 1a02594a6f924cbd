// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/hydroinformatics/trexgo/internal/config"
	"github.com/hydroinformatics/trexgo/internal/diag"
	"github.com/hydroinformatics/trexgo/internal/forcing"
	"github.com/hydroinformatics/trexgo/internal/grid"
	"github.com/hydroinformatics/trexgo/internal/simulate"
)

// GridBuilder constructs the finalized grid topology a project describes.
// Parsing grid/geometry/forcing files is an excluded collaborator per
// spec.md §1, so the open-source CLI ships no default implementation; a
// deployment wires this to its own raster/channel-geometry reader before
// calling run.
var GridBuilder func(p *config.Project) (*grid.Grid, error)

// ForcingBuilder populates a forcing.Registry (stage_function/rainfall
// series) from a project's forcing_file, and supplies the per-cell net
// rainfall lookup simulate.New needs. Like GridBuilder, parsing
// p.ForcingFile is an excluded collaborator per spec.md §1; a nil
// ForcingBuilder runs with an empty registry and zero rainfall everywhere,
// which is still a valid run for a project driven by point-source or
// external inflow alone.
var ForcingBuilder func(p *config.Project) (*forcing.Registry, func(row, col int) float64, error)

func runProject(p *config.Project, log *logrus.Entry) error {
	if GridBuilder == nil {
		return diag.Err(diag.ConfigurationError, "no grid builder configured: wire cmd.GridBuilder to a grid/geometry file reader before calling run")
	}
	g, err := GridBuilder(p)
	if err != nil {
		return err
	}

	var registry *forcing.Registry
	var netRainRate func(row, col int) float64
	if ForcingBuilder != nil {
		registry, netRainRate, err = ForcingBuilder(p)
		if err != nil {
			return err
		}
	}

	sim, err := simulate.New(p, g, registry, netRainRate, log)
	if err != nil {
		return err
	}

	return sim.Run()
}
