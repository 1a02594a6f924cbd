// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deposition

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func init() {
	allocators["always"] = func() Model { return new(Always) }
}

// Always implements §4.8's depopt<=1 case: p_dep = 1 unconditionally.
type Always struct{}

func (o *Always) Init(prms dbf.Params) error {
	for _, p := range prms {
		return chk.Err("deposition always: parameter named %q is incorrect, this model takes none", p.N)
	}
	return nil
}

func (o *Always) Probability(ctx *Context) (float64, error) {
	return 1.0, nil
}
