// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/diag"
	"github.com/hydroinformatics/trexgo/internal/grid"
)

// DepthContext carries the per-tick forcing inputs consumed by the Water
// Depth Updater (§4.5) that are not already captured in DQ by the routers.
type DepthContext struct {
	Dt  float64
	Tol float64

	NetRainRate func(row, col int) float64 // m/s
	SnowOn      bool
	NetSnowRate func(row, col int) float64 // m/s, consulted only if SnowOn

	CtlOpt        bool
	TransLossRate func(n *grid.Node) float64 // m/s, consulted only if CtlOpt
}

// channelArea returns the trapezoidal cross-sectional area at depth h,
// including the rectangular overbank once h exceeds bank height. Unlike
// the router's flow cross-section, this uses h directly (not h-stordep):
// §4.5's volume bookkeeping tracks the full channel cross-section.
func channelArea(n *grid.Node, h float64) float64 {
	if h <= n.BankHeight {
		return (n.BottomWidth + n.SideSlope*h) * h
	}
	bankArea := (n.BottomWidth + n.SideSlope*n.BankHeight) * n.BankHeight
	return bankArea + (h-n.BankHeight)*n.TopWidth
}

func clampDepth(h, tol float64) (float64, bool) {
	if h < 0 {
		if math.Abs(h) < tol {
			return 0, true
		}
		return h, false
	}
	if h < tol {
		return 0, true
	}
	return h, true
}

// UpdateChannelDepth implements §4.5's channel volume-to-depth inversion at
// one node, writing n.HNew. row/col address the host cell's rain/snow
// forcing. DQ, set by RouteChannel and TransferFloodplain, is read as the
// net flow term of the volumetric derivative.
func UpdateChannelDepth(n *grid.Node, row, col int, ctx *DepthContext) error {
	aSurf := n.TopWidth * n.Length

	deriv := ctx.NetRainRate(row, col) * aSurf
	if ctx.SnowOn && ctx.NetSnowRate != nil {
		deriv += ctx.NetSnowRate(row, col) * aSurf
	}
	if ctx.CtlOpt && ctx.TransLossRate != nil {
		deriv -= ctx.TransLossRate(n) * n.BottomWidth * n.Length
	}
	deriv += n.DQ

	vIn := deriv * ctx.Dt
	vCur := channelArea(n, n.H) * n.Length

	var hNew float64
	if n.H < n.BankHeight {
		vBank := channelArea(n, n.BankHeight) * n.Length
		vAvail := vBank - vCur
		if vIn <= vAvail {
			vNew := vCur + vIn
			aNew := vNew / n.Length
			if n.SideSlope > 0 {
				hNew = (-n.BottomWidth + math.Sqrt(n.BottomWidth*n.BottomWidth+4*n.SideSlope*aNew)) / (2 * n.SideSlope)
			} else {
				hNew = aNew / n.BottomWidth
			}
		} else {
			hNew = n.BankHeight + (vIn-vAvail)/aSurf
		}
	} else {
		hNew = n.H + vIn/aSurf
	}

	clamped, ok := clampDepth(hNew, ctx.Tol)
	if !ok {
		return diag.Err(diag.NegativeDepth, "channel water depth update produced h=%g beyond tolerance", hNew).AtNode(n.LinkID, n.Index)
	}
	n.HNew = clamped
	return nil
}

// UpdateOverlandDepth implements §4.5's overland analogue: a flat
// rectangular cell of area w^2 minus its channel portion, with no bank
// overtopping geometry.
func UpdateOverlandDepth(c *grid.Cell, w float64, ctx *DepthContext) error {
	aSurf := c.OverlandSurfaceArea(w)

	deriv := ctx.NetRainRate(c.Row, c.Col) * aSurf
	if ctx.SnowOn && ctx.NetSnowRate != nil {
		deriv += ctx.NetSnowRate(c.Row, c.Col) * aSurf
	}
	deriv += c.DQ

	vIn := deriv * ctx.Dt
	hNew := c.H + vIn/aSurf

	clamped, ok := clampDepth(hNew, ctx.Tol)
	if !ok {
		return diag.Err(diag.NegativeDepth, "overland water depth update produced h=%g beyond tolerance", hNew).AtCell(c.Row, c.Col)
	}
	c.HNew = clamped
	return nil
}
