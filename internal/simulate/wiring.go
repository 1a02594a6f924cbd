// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulate

import (
	"github.com/sirupsen/logrus"

	"github.com/hydroinformatics/trexgo/internal/config"
	"github.com/hydroinformatics/trexgo/internal/deposition"
	"github.com/hydroinformatics/trexgo/internal/erosion"
	"github.com/hydroinformatics/trexgo/internal/forcing"
	"github.com/hydroinformatics/trexgo/internal/grid"
	"github.com/hydroinformatics/trexgo/internal/hydro"
	"github.com/hydroinformatics/trexgo/internal/massbalance"
	"github.com/hydroinformatics/trexgo/internal/sediment"
	"github.com/hydroinformatics/trexgo/internal/state"
)

// defaultTol is used when a project does not override it; spec.md §6
// suggests 1e-9 for volumes/depths in m and the same value for mass in g.
const defaultTol = 1e-9

// buildClasses resolves each config.SolidsClass into a sediment.Class,
// picking one erosion/deposition Model pair per class from whichever of
// the channel/overland option selectors is active (ersovopt/depovopt take
// priority since the overland portion of a cell is always present, while a
// channel node is not); see DESIGN.md for why a single pair serves both
// legs rather than the full per-leg duplication spec.md's separate
// erschopt/ersovopt selectors would admit.
func buildClasses(p *config.Project) ([]sediment.Class, error) {
	classes := make([]sediment.Class, len(p.Solids))
	for i, sc := range p.Solids {
		c := sediment.Class{
			Name:             sc.Name,
			SpGravity:        sc.SpGravity,
			Cohesive:         sc.CncOpt == 1,
			ProcessScale:     1.0,
			SettlingVelocity: sc.SettlingVelocity,
			DispersionCoef:   sc.DispersionCoef,
		}

		ersOpt := p.Options.ErsovOpt
		if ersOpt == 0 {
			ersOpt = p.Options.ErschOpt
		}
		if ersOpt != 0 {
			mdl, err := erosion.FromOption(ersOpt)
			if err != nil {
				return nil, err
			}
			if mdl != nil {
				if err := mdl.Init(config.ToDbfParams(sc.Params)); err != nil {
					return nil, err
				}
			}
			c.Erosion = mdl
		}

		depOpt := p.Options.DepovOpt
		if depOpt == 0 {
			depOpt = p.Options.DepchOpt
		}
		if depOpt != 0 {
			mdl, err := deposition.FromOption(depOpt, c.Cohesive)
			if err != nil {
				return nil, err
			}
			if mdl != nil {
				if err := mdl.Init(config.ToDbfParams(sc.Dep)); err != nil {
					return nil, err
				}
			}
			c.Deposition = mdl
		}

		classes[i] = c
	}
	return classes, nil
}

// New builds a Simulator from an already-validated config.Project and a
// topology already built and finalized onto g (grid construction itself is
// an excluded collaborator per spec.md §1: reading grid/geometry files).
//
// registry resolves each outlet's stage_function by name (nil is treated as
// an empty registry) and netRainRate supplies each cell's net rainfall rate
// at the current tick. Populating registry from p.ForcingFile is an excluded
// collaborator's job per spec.md §1, same as GridBuilder for the grid
// itself; an unpopulated registry makes every specified-depth outlet
// resolve to stage 0 rather than erroring, and a nil netRainRate defaults
// to "no rain", since a project driven purely by point-source or external
// inflow is still a valid run.
func New(p *config.Project, g *grid.Grid, registry *forcing.Registry, netRainRate func(row, col int) float64, log *logrus.Entry) (*Simulator, error) {
	classes, err := buildClasses(p)
	if err != nil {
		return nil, err
	}

	spGravity := make([]float64, len(classes))
	for i, c := range classes {
		spGravity[i] = c.SpGravity
	}

	store := state.NewStoreFromConfig(g, len(classes), spGravity, defaultTol)
	acc := massbalance.New(g, len(p.Outlets), len(classes))

	if registry == nil {
		registry = forcing.NewRegistry()
	}
	if netRainRate == nil {
		netRainRate = func(int, int) float64 { return 0 }
	}

	s := &Simulator{
		Store:      store,
		Accountant: acc,
		Classes:    classes,
		Forcings:   registry,
		Opts:       p.Options,
		Dt:         float64(p.Dt),
		Tf:         p.Tf,
		SpGravity:  spGravity,
		Tol:        defaultTol,
		Log:        log,

		CourantWarnThreshold: 1.0,

		OvCtx: &hydro.OverlandContext{Dt: p.Dt},
		DepthCtx: &hydro.DepthContext{
			Dt:          float64(p.Dt),
			Tol:         defaultTol,
			NetRainRate: netRainRate,
			CtlOpt:      p.Options.CtlOpt != 0,
		},
	}
	s.HydroCtx = &hydro.ChannelContext{Dt: p.Dt, CtlOpt: p.Options.CtlOpt != 0, Outlet: s.outletBC(p.Outlets)}
	return s, nil
}

// outletBC closes over the Simulator so each call can evaluate an outlet's
// stage_function at the current simulation time, per spec.md §6's
// dbcopt="specified" boundary condition.
func (s *Simulator) outletBC(outlets []config.Outlet) hydro.OutletBC {
	return func(outletIndex int) (bool, float64) {
		if outletIndex < 0 || outletIndex >= len(outlets) {
			return false, 0
		}
		o := outlets[outletIndex]
		if !o.Specified {
			return false, 0
		}
		fn, err := s.Forcings.Get(o.StageFunc)
		if err != nil {
			return true, 0
		}
		return true, fn.MustEval(s.Now)
	}
}
