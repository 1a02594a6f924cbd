// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sediment

import (
	"math"

	"github.com/hydroinformatics/trexgo/internal/grid"
	"github.com/hydroinformatics/trexgo/internal/hydro"
)

// ChannelShear computes the bed shear stress at a channel node per §4.7:
// tau = gamma_w * R * sf, with R the hydraulic radius of the flow
// cross-section at the node's current depth. area/wp mirror the router's
// own trapezoidal geometry but are recomputed here since the router does
// not retain them past the tick it ran in.
func ChannelShear(n *grid.Node) float64 {
	h := n.H
	if !(h > n.DeadStorageDepth) {
		return 0
	}
	heff := h - n.DeadStorageDepth
	var area, wp float64
	if h <= n.BankHeight {
		area = (n.BottomWidth + n.SideSlope*heff) * heff
		wp = n.BottomWidth + 2.0*heff*math.Sqrt(1.0+n.SideSlope*n.SideSlope)
	} else {
		hbEff := n.BankHeight - n.DeadStorageDepth
		area = (n.BottomWidth+n.SideSlope*hbEff)*hbEff + (h-n.BankHeight)*n.TopWidth
		wp = n.BottomWidth + 2.0*hbEff*math.Sqrt(1.0+n.SideSlope*n.SideSlope) + 2.0*(h-n.BankHeight)
	}
	if wp <= 0 {
		return 0
	}
	r := area / wp
	return hydro.GammaWater * r * n.SF
}

// OverlandShear computes the overland shear-stress vector magnitude per
// §4.7: tau = gamma_w * h * |sf_vec|, |sf_vec| = sqrt(sfN^2+sfE^2+sfS^2+sfW^2).
func OverlandShear(c *grid.Cell) float64 {
	var sumSq float64
	for _, sf := range c.SFCardinal {
		sumSq += sf * sf
	}
	return hydro.GammaWater * c.H * math.Sqrt(sumSq)
}
