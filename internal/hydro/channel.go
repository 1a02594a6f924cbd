// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hydro implements the explicit diffusive-wave water routers of
// §4.2-§4.5: channel and overland routing, intra-cell floodplain transfer,
// and the volume-to-depth updaters that close the water budget each tick.
package hydro

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/diag"
	"github.com/hydroinformatics/trexgo/internal/grid"
)

// GammaWater is the unit weight of water in N/m3, used by §4.7's shear
// stress computation; kept here because the router is what produces the
// hydraulic radius and friction slope that feed it.
const GammaWater = 9810.0

// OutletBC resolves the boundary condition at an outlet: Specified reports
// whether a time-series stage applies (dbcopt=1) rather than normal depth
// (dbcopt=0), and Depth is that stage when Specified is true.
type OutletBC func(outletIndex int) (specified bool, depth float64)

// ChannelContext carries the per-tick external inputs to the Channel Water
// Router that are not already fields on grid.Node: transmission loss,
// outlet boundary conditions, and external point-source flows (§4.2).
type ChannelContext struct {
	Dt int

	// CtlOpt selects whether transmission loss is subtracted from the
	// effective flow depth test (§6 ctlopt).
	CtlOpt bool
	// TransLossRate returns the transmission-loss rate (m/s) at a node;
	// ignored when CtlOpt is false.
	TransLossRate func(n *grid.Node) float64

	// Outlet resolves the boundary condition for a node's OutletIndex.
	Outlet OutletBC

	// PointSource returns the external point-source flow (m3/s) at a node,
	// positive for a source; 0 if none.
	PointSource func(n *grid.Node) float64
}

func dtFloat(dt int) float64 { return float64(dt) }

// manningSegment computes the trapezoidal cross-section area, wetted
// perimeter, and whether the segment is active (depth test passed) for one
// directed segment of §4.2 step 5-7.
func manningSegment(n *grid.Node, hchan, tloss float64) (area, wp float64, active bool) {
	if !(hchan > n.DeadStorageDepth+tloss) {
		return 0, 0, false
	}
	heff := hchan - n.DeadStorageDepth
	if hchan <= n.BankHeight {
		area = (n.BottomWidth + n.SideSlope*heff) * heff
		wp = n.BottomWidth + 2.0*heff*math.Sqrt(1.0+n.SideSlope*n.SideSlope)
	} else {
		hbEff := n.BankHeight - n.DeadStorageDepth
		area = (n.BottomWidth+n.SideSlope*hbEff)*hbEff + (hchan-n.BankHeight)*n.TopWidth
		wp = n.BottomWidth + 2.0*hbEff*math.Sqrt(1.0+n.SideSlope*n.SideSlope) + 2.0*(hchan-n.BankHeight)
	}
	return area, wp, true
}

// RouteChannel runs the Channel Water Router (§4.2) over every link in g,
// writing DQ, DQIn/DQOut, SF, QInCh/QOutCh, and Courant on each grid.Node.
// It returns the maximum Courant number observed across the whole network.
func RouteChannel(g *grid.Grid, ctx *ChannelContext) (float64, error) {
	for _, l := range g.Links {
		for _, n := range l.Nodes {
			n.DQ = 0
			n.SF = 0
			n.Courant = 0
			n.QInCh, n.QOutCh = 0, 0
			for k := range n.DQIn {
				n.DQIn[k] = 0
				n.DQOut[k] = 0
			}
		}
	}

	if ctx.PointSource != nil {
		for _, l := range g.Links {
			for _, n := range l.Nodes {
				q := ctx.PointSource(n)
				if q == 0 {
					continue
				}
				n.DQ += q
				n.DQIn[grid.DirPointSource] += q
			}
		}
	}

	maxCourant := -1.0
	tlossOf := func(n *grid.Node) float64 {
		if !ctx.CtlOpt || ctx.TransLossRate == nil {
			return 0
		}
		return ctx.TransLossRate(n) * dtFloat(ctx.Dt)
	}

	for _, l := range g.Links {
		for j := 0; j < len(l.Nodes)-1; j++ {
			up, down := l.Nodes[j], l.Nodes[j+1]
			so := (up.BedElevation - down.BedElevation) / up.Length
			dhdx := (down.H - up.H) / up.Length
			sf := so - dhdx
			up.SF = sf

			var dq, velocity float64
			if up.Length > 0 && up.ManningN > 0 && up.BottomWidth > 0 && sf != 0 {
				a := 1.0
				hchan := up.H
				if sf < 0 {
					a = -1.0
					hchan = down.H
				}
				tloss := tlossOf(up)
				if area, wp, active := manningSegment(up, hchan, tloss); active && wp > 0 {
					rh := area / wp
					velocity = math.Sqrt(math.Abs(sf)) / up.ManningN * math.Pow(rh, 2.0/3.0)
					dq = a * velocity * area
				}
			}

			courant := velocity * dtFloat(ctx.Dt) / up.Length
			if courant > maxCourant {
				maxCourant = courant
			}
			up.Courant = courant

			up.DQ -= dq
			down.DQ += dq
			if dq >= 0 {
				up.DQOut[up.NextDir] += dq
				down.DQIn[down.PrevDir] += dq
			} else {
				up.DQIn[up.NextDir] += -dq
				down.DQOut[down.PrevDir] += -dq
			}
		}

		last := l.Last()
		if err := routeJunction(last, ctx, &maxCourant); err != nil {
			return maxCourant, err
		}
	}

	return maxCourant, nil
}

// routeJunction handles the last node of a link per §4.2's junction rules:
// zero/one downstream branch (possibly a boundary) or independent branches
// at a diverging junction.
func routeJunction(last *grid.Node, ctx *ChannelContext, maxCourant *float64) error {
	if len(last.Down) > 1 {
		for k, down := range last.Down {
			dq, sf, courant := branchFlow(last, down, down.BedElevation, (down.H-last.H)/last.Length, ctx)
			last.SF = sf
			if courant > *maxCourant {
				*maxCourant = courant
			}
			dir := last.DownDir[k]
			last.DQ -= dq
			if dq >= 0 {
				last.DQOut[dir] += dq
			} else {
				last.DQIn[dir] += -dq
			}
			down.DQ += dq
			if dq >= 0 {
				down.DQIn[down.UpDirFor(last)] += dq
			} else {
				down.DQOut[down.UpDirFor(last)] += -dq
			}
		}
		return nil
	}

	if len(last.Down) == 1 {
		down := last.Down[0]
		dq, sf, courant := branchFlow(last, down, down.BedElevation, (down.H-last.H)/last.Length, ctx)
		last.SF = sf
		if courant > *maxCourant {
			*maxCourant = courant
		}
		dir := last.DownDir[0]
		last.DQ -= dq
		down.DQ += dq
		if dq >= 0 {
			last.DQOut[dir] += dq
			down.DQIn[down.UpDirFor(last)] += dq
		} else {
			last.DQIn[dir] += -dq
			down.DQOut[down.UpDirFor(last)] += -dq
		}
		return nil
	}

	// boundary / outlet: no downstream node, route against the virtual bed.
	downBed := last.VirtualBoundaryElevation()
	var dhdx float64
	if ctx.Outlet == nil {
		return diag.Err(diag.ConfigurationError, "channel outlet at link %d has no boundary condition resolver", last.LinkID)
	}
	specified, stage := ctx.Outlet(last.OutletIndex)
	if specified {
		dhdx = (stage - last.H) / last.Length
	} else {
		dhdx = 0
	}
	dq, sf, courant := branchFlow(last, nil, downBed, dhdx, ctx)
	last.SF = sf
	if courant > *maxCourant {
		*maxCourant = courant
	}
	last.DQ -= dq
	if dq >= 0 {
		last.DQOut[grid.DirBoundary] += dq
		last.QOutCh = dq
	} else {
		last.DQIn[grid.DirBoundary] += -dq
		last.QInCh = -dq
	}
	return nil
}

// branchFlow computes the signed flow and friction slope for one directed
// segment from "last" toward either an interior node ("down" non-nil, whose
// depth is used when flow reverses) or a virtual boundary cross-section.
func branchFlow(last, down *grid.Node, downBed, dhdx float64, ctx *ChannelContext) (dq, sf, courant float64) {
	so := (last.BedElevation - downBed) / last.Length
	sf = so - dhdx
	if sf == 0 || last.Length <= 0 || last.ManningN <= 0 || last.BottomWidth <= 0 {
		return 0, sf, 0
	}
	a := 1.0
	hchan := last.H
	if sf < 0 {
		a = -1.0
		if down != nil {
			hchan = down.H
		}
		// at a boundary, reverse-flow depth is assumed equal to last.H,
		// matching the source's "boundary depth assumed to equal depth of
		// present node".
	}
	tloss := 0.0
	if ctx.CtlOpt && ctx.TransLossRate != nil {
		tloss = ctx.TransLossRate(last) * dtFloat(ctx.Dt)
	}
	var velocity float64
	if area, wp, active := manningSegment(last, hchan, tloss); active && wp > 0 {
		rh := area / wp
		velocity = math.Sqrt(math.Abs(sf)) / last.ManningN * math.Pow(rh, 2.0/3.0)
		dq = a * velocity * area
	}
	courant = velocity * dtFloat(ctx.Dt) / last.Length
	return dq, sf, courant
}
