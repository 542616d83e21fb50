/*
 * wrap.go, part of gorder.
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

package order

import (
	"fmt"
	"math"

	v3 "github.com/rsoto/gorder/v3"
)

//The box is centered at the origin: absolute coordinates live in
//[-L/2, L/2) along each (sheared) axis, fractional coordinates in [0,1).
//The z axis is ignored throughout for 2D boxes.

//fraction converts one absolute position to fractional coordinates by
//back-substitution through the upper-triangular cell matrix.
func (B *Box) fraction(v [3]float64) [3]float64 {
	var f [3]float64
	if !B.is2D && B.l[2] > appzero {
		f[2] = v[2] / B.l[2]
	}
	if B.l[1] > appzero {
		f[1] = (v[1] - B.yz*B.l[2]*f[2]) / B.l[1]
	}
	if B.l[0] > appzero {
		f[0] = (v[0] - B.xy*B.l[1]*f[1] - B.xz*B.l[2]*f[2]) / B.l[0]
	}
	f[0] += 0.5
	f[1] += 0.5
	if !B.is2D {
		f[2] += 0.5
	}
	return f
}

//absolute is the inverse of fraction.
func (B *Box) absolute(f [3]float64) [3]float64 {
	g := [3]float64{f[0] - 0.5, f[1] - 0.5, 0}
	if !B.is2D {
		g[2] = f[2] - 0.5
	}
	var v [3]float64
	v[0] = B.l[0]*g[0] + B.xy*B.l[1]*g[1] + B.xz*B.l[2]*g[2]
	v[1] = B.l[1]*g[1] + B.yz*B.l[2]*g[2]
	v[2] = B.l[2] * g[2]
	return v
}

//rowOf and setRow move one vector between a coordinate matrix and a plain
//array.
func rowOf(coord *v3.Matrix, i int) [3]float64 {
	return [3]float64{coord.At(i, 0), coord.At(i, 1), coord.At(i, 2)}
}

func setRow(coord *v3.Matrix, i int, v [3]float64) {
	coord.Set(i, 0, v[0])
	coord.Set(i, 1, v[1])
	coord.Set(i, 2, v[2])
}

// Fraction fills dest with the fractional coordinates of every position in
// coord. Positions inside the cell map into [0,1) per axis; positions
// outside map outside that range accordingly. dest and coord may be the
// same matrix. It fails with *InvalidArgument on a nil matrix or a size
// mismatch.
func (B *Box) Fraction(dest, coord *v3.Matrix) error {
	if err := sameShape(dest, coord, "Fraction"); err != nil {
		return err
	}
	for i := 0; i < coord.NVecs(); i++ {
		setRow(dest, i, B.fraction(rowOf(coord, i)))
	}
	return nil
}

// Absolute fills dest with the absolute coordinates of every fractional
// position in frac. It is the inverse of Fraction. dest and frac may be
// the same matrix.
func (B *Box) Absolute(dest, frac *v3.Matrix) error {
	if err := sameShape(dest, frac, "Absolute"); err != nil {
		return err
	}
	for i := 0; i < frac.NVecs(); i++ {
		setRow(dest, i, B.absolute(rowOf(frac, i)))
	}
	return nil
}

// Wrap wraps every position in coord back into the fundamental cell, in
// place. Only the periodic axes are wrapped; coordinates along
// non-periodic axes are left where they are.
func (B *Box) Wrap(coord *v3.Matrix) error {
	if coord == nil {
		return &InvalidArgument{NilCoordinates, []string{"Wrap"}}
	}
	for i := 0; i < coord.NVecs(); i++ {
		v := rowOf(coord, i)
		f := B.fraction(v)
		for ax := 0; ax < 3; ax++ {
			if ax == 2 && B.is2D {
				continue
			}
			if B.periodic[ax] {
				f[ax] -= math.Floor(f[ax])
			}
		}
		w := B.absolute(f)
		if B.is2D {
			w[2] = v[2]
		}
		setRow(coord, i, w)
	}
	return nil
}

// MinImage applies the minimum-image convention to every displacement
// vector in d, in place: each row is replaced by its shortest periodic
// image. The tilted axes are corrected from z down to x, following the
// HOOMD-blue convention for triclinic cells.
func (B *Box) MinImage(d *v3.Matrix) error {
	if d == nil {
		return &InvalidArgument{NilCoordinates, []string{"MinImage"}}
	}
	for i := 0; i < d.NVecs(); i++ {
		v := rowOf(d, i)
		if !B.is2D && B.periodic[2] && B.l[2] > appzero {
			img := math.Round(v[2] / B.l[2])
			v[2] -= B.l[2] * img
			v[1] -= B.yz * B.l[2] * img
			v[0] -= B.xz * B.l[2] * img
		}
		if B.periodic[1] && B.l[1] > appzero {
			img := math.Round(v[1] / B.l[1])
			v[1] -= B.l[1] * img
			v[0] -= B.xy * B.l[1] * img
		}
		if B.periodic[0] && B.l[0] > appzero {
			v[0] -= B.l[0] * math.Round(v[0]/B.l[0])
		}
		setRow(d, i, v)
	}
	return nil
}

// Image returns, for every position in coord, the integer image triple n
// such that wrapping the position is equivalent to subtracting the cell
// matrix times n. Non-periodic axes always report image zero.
func (B *Box) Image(coord *v3.Matrix) ([][3]int, error) {
	if coord == nil {
		return nil, &InvalidArgument{NilCoordinates, []string{"Image"}}
	}
	ret := make([][3]int, coord.NVecs())
	for i := 0; i < coord.NVecs(); i++ {
		f := B.fraction(rowOf(coord, i))
		for ax := 0; ax < 3; ax++ {
			if ax == 2 && B.is2D {
				continue
			}
			if B.periodic[ax] {
				ret[i][ax] = int(math.Floor(f[ax]))
			}
		}
	}
	return ret, nil
}

// Unwrap undoes periodic wrapping in place: each position in coord gets
// the cell matrix times its image triple added back. It fails with
// *InvalidArgument if images does not have one triple per position.
func (B *Box) Unwrap(coord *v3.Matrix, images [][3]int) error {
	if coord == nil {
		return &InvalidArgument{NilCoordinates, []string{"Unwrap"}}
	}
	if len(images) != coord.NVecs() {
		return &InvalidArgument{fmt.Sprintf("%d image triples for %d positions", len(images), coord.NVecs()), []string{"Unwrap"}}
	}
	for i := 0; i < coord.NVecs(); i++ {
		v := rowOf(coord, i)
		n := [3]float64{float64(images[i][0]), float64(images[i][1]), float64(images[i][2])}
		v[0] += B.l[0]*n[0] + B.xy*B.l[1]*n[1] + B.xz*B.l[2]*n[2]
		v[1] += B.l[1]*n[1] + B.yz*B.l[2]*n[2]
		v[2] += B.l[2] * n[2]
		setRow(coord, i, v)
	}
	return nil
}

func sameShape(dest, coord *v3.Matrix, caller string) error {
	if dest == nil || coord == nil {
		return &InvalidArgument{NilCoordinates, []string{caller}}
	}
	if dest.NVecs() != coord.NVecs() {
		return &InvalidArgument{fmt.Sprintf("destination holds %d vectors, source %d", dest.NVecs(), coord.NVecs()), []string{caller}}
	}
	return nil
}
