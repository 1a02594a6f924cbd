// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/cpmech/gosl/io"
	"github.com/hydroinformatics/trexgo/internal/massbalance"
)

// RasterHeader carries the five values a downstream raster reader needs to
// place row-major cell values back on the ground, mirroring the
// ncols/nrows/cellsize/nodata header convention the excluded grid-file
// parser collaborator reads on input (spec.md §1's "grid files").
type RasterHeader struct {
	NumCols, NumRows int
	XLLCorner        float64
	YLLCorner        float64
	CellSize         float64
	NoData           float64
}

func (h RasterHeader) text() string {
	return io.Sf(
		"ncols %d\nnrows %d\nxllcorner %g\nyllcorner %g\ncellsize %g\nNODATA_value %g\n",
		h.NumCols, h.NumRows, h.XLLCorner, h.YLLCorner, h.CellSize, h.NoData,
	)
}

// WriteFinal implements spec.md §6's persisted-state-layout contract: a
// raster-header + row-major text dump of final water depth and SWE depth
// for the overland grid, and a tabular CSV dump per channel link/node.
// cumulative is the accountant whose node ledgers feed the channel table's
// per-class cumulative erosion-out and deposition-in mass (kg) columns; sweDepth is a per-cell snow-water-equivalent
// lookup (nil when §6's snowopt/meltopt terms are disabled).
func (s *Store) WriteFinal(dir, fnkey string, header RasterHeader, cumulative *massbalance.Accountant, sweDepth func(row, col int) float64) error {
	if err := writeOverlandRaster(dir, fnkey+"_depth.asc", header, func(r, c int) float64 {
		cell := s.Grid.At(r, c)
		if cell == nil {
			return header.NoData
		}
		return cell.H
	}); err != nil {
		return err
	}

	if sweDepth != nil {
		if err := writeOverlandRaster(dir, fnkey+"_swe.asc", header, sweDepth); err != nil {
			return err
		}
	}

	return s.writeChannelTable(dir, fnkey+"_channels.csv", cumulative)
}

func writeOverlandRaster(dir, filename string, header RasterHeader, value func(row, col int) float64) error {
	var buf bytes.Buffer
	buf.WriteString(header.text())
	for r := 0; r < header.NumRows; r++ {
		for c := 0; c < header.NumCols; c++ {
			if c > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(strconv.FormatFloat(value(r, c), 'g', -1, 64))
		}
		buf.WriteByte('\n')
	}
	io.WriteFileSD(dir, filename, buf.String())
	return nil
}

func (s *Store) writeChannelTable(dir, filename string, acc *massbalance.Accountant) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	numSolids := s.NumSolids
	header := []string{"link", "node", "depth_m"}
	for i := 0; i < numSolids; i++ {
		header = append(header, io.Sf("ers_out_kg_class%d", i), io.Sf("dep_in_kg_class%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	idx := 0
	for _, l := range s.Grid.Links {
		for _, n := range l.Nodes {
			row := []string{strconv.Itoa(n.LinkID), strconv.Itoa(n.Index), strconv.FormatFloat(n.H, 'g', -1, 64)}
			if acc != nil && idx < len(acc.Nodes) {
				for _, t := range acc.Nodes[idx].Totals {
					row = append(row, strconv.FormatFloat(t.ErsOut, 'g', -1, 64), strconv.FormatFloat(t.DepIn, 'g', -1, 64))
				}
			}
			idx++
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	io.WriteFileSD(dir, filename, buf.String())
	return nil
}
