/*
 * cellplot.go, part of gorder.
 *
 * Copyright 2023 Rodrigo Soto <rsoto{at}protonmailDOTcom>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package cellplot draws simulation cells and their contents, as a quick
visual check of a box and of whatever wrapping was applied to a point set.
Plots are the xy cross-section of the cell, i.e. the parallelogram spanned
by the first two cell vectors, centered at the origin.*/
package cellplot

import (
	"fmt"
	"image/color"

	order "github.com/rsoto/gorder"
	v3 "github.com/rsoto/gorder/v3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//cellOutline returns the corners of the xy cross-section, closed.
func cellOutline(b *order.Box) plotter.XYs {
	a1x := b.Lx()
	a2x, a2y := b.XY()*b.Ly(), b.Ly()
	ox, oy := -(a1x+a2x)/2, -a2y/2
	return plotter.XYs{
		{X: ox, Y: oy},
		{X: ox + a1x, Y: oy},
		{X: ox + a1x + a2x, Y: oy + a2y},
		{X: ox + a2x, Y: oy + a2y},
		{X: ox, Y: oy},
	}
}

//newCellPlot builds a plot with the cell outline and room around it.
func newCellPlot(b *order.Box) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = b.String()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())
	outline, err := plotter.NewLine(cellOutline(b))
	if err != nil {
		return nil, fmt.Errorf("cellplot: %w", err)
	}
	outline.LineStyle.Width = vg.Points(1.5)
	outline.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(outline)
	return p, nil
}

// CellXY saves a PNG with the xy cross-section of the cell to filename.
func CellXY(b *order.Box, filename string) error {
	if b == nil {
		return fmt.Errorf("cellplot: given nil box")
	}
	p, err := newCellPlot(b)
	if err != nil {
		return err
	}
	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("cellplot: %w", err)
	}
	return nil
}

// PointsXY saves a PNG with the xy cross-section of the cell and a scatter
// of the xy projection of every position in coord.
func PointsXY(b *order.Box, coord *v3.Matrix, filename string) error {
	if b == nil || coord == nil {
		return fmt.Errorf("cellplot: given nil box or coordinates")
	}
	p, err := newCellPlot(b)
	if err != nil {
		return err
	}
	pts := make(plotter.XYs, coord.NVecs())
	for i := range pts {
		pts[i].X = coord.At(i, 0)
		pts[i].Y = coord.At(i, 1)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("cellplot: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	if err := p.Save(4*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("cellplot: %w", err)
	}
	return nil
}
