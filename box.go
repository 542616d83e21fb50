/*
 * box.go, part of gorder.
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
	"reflect"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Box is a triclinic simulation cell following the HOOMD-blue conventions:
// three edge lengths Lx, Ly, Lz, three tilt factors xy, xz, yz, and a
// dimensionality of 2 or 3. The cell matrix is always upper triangular with
// a non-negative diagonal:
//
//	[[Lx, xy*Ly, xz*Lz],
//	 [0,  Ly,    yz*Lz],
//	 [0,  0,     Lz   ]]
//
// A 2D box keeps Lz, xz and yz at zero; this is enforced on construction
// and on every later mutation. Boxes are cheap value objects. They may be
// shared by any number of concurrent readers, but concurrent mutation of a
// shared box must be synchronized by the caller.
type Box struct {
	l          [3]float64
	xy, xz, yz float64
	is2D       bool
	periodic   [3]bool
}

// New returns a box with the given lengths and tilt factors. If is2D is
// true, Lz, xz and yz are forced to zero regardless of the inputs (xy is
// retained, as it remains meaningful as an in-plane shear). It fails with
// *InvalidArgument if any length is negative.
func New(Lx, Ly, Lz, xy, xz, yz float64, is2D bool) (*Box, error) {
	if Lx < 0 || Ly < 0 || Lz < 0 {
		return nil, &InvalidArgument{fmt.Sprintf("%s: %4.3f %4.3f %4.3f", NegativeLength, Lx, Ly, Lz), []string{"New"}}
	}
	b := new(Box)
	b.l = [3]float64{Lx, Ly, Lz}
	b.xy = xy
	b.xz = xz
	b.yz = yz
	b.is2D = is2D
	b.periodic = [3]bool{true, true, true}
	b.enforce2D()
	return b, nil
}

// Cube returns a 3D orthorhombic box with all edge lengths equal to L and
// zero tilt.
func Cube(L float64) (*Box, error) {
	b, err := New(L, L, L, 0, 0, 0, false)
	if err != nil {
		return nil, errDecorate(err, "Cube")
	}
	return b, nil
}

// Square returns a 2D box with Lx = Ly = L, Lz = 0 and zero tilt.
func Square(L float64) (*Box, error) {
	b, err := New(L, L, 0, 0, 0, 0, true)
	if err != nil {
		return nil, errDecorate(err, "Square")
	}
	return b, nil
}

//enforce2D resets the fields that a 2D box may not have.
func (B *Box) enforce2D() {
	if B.is2D {
		B.l[2] = 0
		B.xz = 0
		B.yz = 0
	}
}

// FromMatrix builds a box from a 3x3 cell matrix whose columns are the cell
// vectors, inverting the canonical matrix form above. The decomposition
// assumes the first cell vector is aligned with x and the second lies in
// the xy-plane; a matrix not in that convention yields a mathematically
// consistent but possibly unexpected box. If dimensions is not given, the
// box is 2D when the resulting Lz is zero and 3D otherwise. It fails with
// *DegenerateGeometry when the decomposition would divide by a (near) zero
// length, area or normal magnitude.
func FromMatrix(m mat.Matrix, dimensions ...int) (*Box, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, &InvalidArgument{fmt.Sprintf("cell matrix must be 3x3, got %dx%d", r, c), []string{"FromMatrix"}}
	}
	v0 := mat.Col(nil, 0, m)
	v1 := mat.Col(nil, 1, m)
	v2 := mat.Col(nil, 2, m)
	Lx := math.Sqrt(floats.Dot(v0, v0))
	if Lx <= appzero {
		return nil, &DegenerateGeometry{ZeroFirstVector, []string{"FromMatrix"}}
	}
	a2x := floats.Dot(v0, v1) / Lx
	ly2 := floats.Dot(v1, v1) - a2x*a2x
	if ly2 < 0 {
		return nil, &DegenerateGeometry{NegativeUnderRoot, []string{"FromMatrix"}}
	}
	Ly := math.Sqrt(ly2)
	if Ly <= appzero {
		return nil, &DegenerateGeometry{ZeroCellArea, []string{"FromMatrix"}}
	}
	xy := a2x / Ly
	n := cross3(v0, v1)
	nmag := math.Sqrt(floats.Dot(n, n))
	if nmag <= appzero {
		return nil, &DegenerateGeometry{ZeroCellArea, []string{"FromMatrix"}}
	}
	Lz := floats.Dot(v2, n) / nmag
	var xz, yz float64
	if math.Abs(Lz) > appzero {
		a3x := floats.Dot(v0, v2) / Lx
		xz = a3x / Lz
		yz = (floats.Dot(v1, v2) - a2x*a3x) / (Ly * Lz)
	} else {
		Lz = 0
	}
	dims := 3
	if Lz == 0 {
		dims = 2
	}
	if len(dimensions) > 0 {
		dims = dimensions[0]
	}
	if dims != 2 && dims != 3 {
		return nil, &InvalidArgument{fmt.Sprintf("%s: %d", WrongDimensions, dims), []string{"FromMatrix"}}
	}
	b, err := New(Lx, Ly, Lz, xy, xz, yz, dims == 2)
	if err != nil {
		return nil, errDecorate(err, "FromMatrix")
	}
	return b, nil
}

func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

//boxParams holds raw extracted parameters before validation. dims is 0
//when the input carried no dimensionality.
type boxParams struct {
	Lx, Ly, Lz, xy, xz, yz float64
	dims                   int
}

//Lengther is the minimal attribute shape FromGeneric accepts: anything
//with Lx and Ly accessors. The remaining parameters are probed one by one
//and default to zero when absent. *Box itself satisfies it.
type Lengther interface {
	Lx() float64
	Ly() float64
}

//The extraction attempts for FromGeneric, in resolution order. Each either
//fails, falling through to the next, or wins.

func extractAttr(box interface{}) (boxParams, bool) {
	bl, ok := box.(Lengther)
	if !ok {
		return boxParams{}, false
	}
	p := boxParams{Lx: bl.Lx(), Ly: bl.Ly()}
	if v, ok := box.(interface{ Lz() float64 }); ok {
		p.Lz = v.Lz()
	}
	if v, ok := box.(interface{ XY() float64 }); ok {
		p.xy = v.XY()
	}
	if v, ok := box.(interface{ XZ() float64 }); ok {
		p.xz = v.XZ()
	}
	if v, ok := box.(interface{ YZ() float64 }); ok {
		p.yz = v.YZ()
	}
	if v, ok := box.(interface{ Dimensions() int }); ok {
		p.dims = v.Dimensions()
	}
	return p, true
}

//extractMap accepts any map keyed by strings with float64 values,
//including named map types, hence the reflection.
func extractMap(box interface{}) (boxParams, bool) {
	v := reflect.ValueOf(box)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String ||
		v.Type().Elem().Kind() != reflect.Float64 {
		return boxParams{}, false
	}
	get := func(key string) (float64, bool) {
		val := v.MapIndex(reflect.ValueOf(key))
		if !val.IsValid() {
			return 0, false
		}
		return val.Float(), true
	}
	Lx, okx := get("Lx")
	Ly, oky := get("Ly")
	if !okx || !oky {
		return boxParams{}, false
	}
	p := boxParams{Lx: Lx, Ly: Ly}
	p.Lz, _ = get("Lz")
	p.xy, _ = get("xy")
	p.xz, _ = get("xz")
	p.yz, _ = get("yz")
	if d, ok := get("dimensions"); ok {
		p.dims = int(d)
	}
	return p, true
}

//extractSeq accepts any slice or array of float64 with at least 2 entries,
//positionally [Lx, Ly, Lz, xy, xz, yz].
func extractSeq(box interface{}) (boxParams, bool) {
	v := reflect.ValueOf(box)
	if (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) ||
		v.Type().Elem().Kind() != reflect.Float64 || v.Len() < 2 {
		return boxParams{}, false
	}
	at := func(i int) float64 { return v.Index(i).Float() }
	p := boxParams{Lx: at(0), Ly: at(1)}
	if v.Len() > 2 {
		p.Lz = at(2)
	}
	if v.Len() >= 6 {
		p.xy, p.xz, p.yz = at(3), at(4), at(5)
	}
	return p, true
}

// FromGeneric builds a box from any box-like value. It accepts, in this
// order: a 3x3 gonum matrix (delegated to FromMatrix); any value with Lx
// and Ly accessor methods, including another *Box, with Lz, XY, XZ, YZ and
// Dimensions probed individually and defaulting to zero/absent; a
// map[string]float64 with keys Lx, Ly and optionally Lz, xy, xz, yz and
// dimensions; or a []float64 of length at least 2, positionally
// [Lx, Ly, Lz, xy, xz, yz], missing trailing entries defaulting to zero.
// The first extraction that succeeds wins. An explicit dimensions argument
// overrides any dimensionality found on the input; if none is found
// anywhere, the box is 2D when Lz == 0 and 3D otherwise. It fails with
// *InvalidArgument when the input matches none of these shapes.
func FromGeneric(box interface{}, dimensions ...int) (*Box, error) {
	if m, ok := box.(mat.Matrix); ok {
		if r, c := m.Dims(); r == 3 && c == 3 {
			b, err := FromMatrix(m, dimensions...)
			if err != nil {
				return nil, errDecorate(err, "FromGeneric")
			}
			return b, nil
		}
	}
	var p boxParams
	var ok bool
	for _, extract := range []func(interface{}) (boxParams, bool){extractAttr, extractMap, extractSeq} {
		if p, ok = extract(box); ok {
			break
		}
	}
	if !ok {
		return nil, &InvalidArgument{fmt.Sprintf("%s: %v", UnextractableBox, box), []string{"FromGeneric"}}
	}
	dims := p.dims
	if len(dimensions) > 0 {
		dims = dimensions[0]
	}
	if dims == 0 {
		dims = 3
		if p.Lz == 0 {
			dims = 2
		}
	}
	if dims != 2 && dims != 3 {
		return nil, &InvalidArgument{fmt.Sprintf("%s: %d", WrongDimensions, dims), []string{"FromGeneric"}}
	}
	b, err := New(p.Lx, p.Ly, p.Lz, p.xy, p.xz, p.yz, dims == 2)
	if err != nil {
		return nil, errDecorate(err, "FromGeneric")
	}
	return b, nil
}

/*Accessors. The individual length setters are read-modify-write operations
through the full triple, not independent per-axis storage.*/

//L returns the three edge lengths.
func (B *Box) L() [3]float64 {
	return B.l
}

//SetL sets the three edge lengths atomically. It fails with
//*InvalidArgument if any length is negative. On a 2D box the z length is
//forced back to zero.
func (B *Box) SetL(L [3]float64) error {
	if L[0] < 0 || L[1] < 0 || L[2] < 0 {
		return &InvalidArgument{fmt.Sprintf("%s: %4.3f %4.3f %4.3f", NegativeLength, L[0], L[1], L[2]), []string{"SetL"}}
	}
	B.l = L
	B.enforce2D()
	return nil
}

//Lx returns the x edge length.
func (B *Box) Lx() float64 { return B.l[0] }

//Ly returns the y edge length.
func (B *Box) Ly() float64 { return B.l[1] }

//Lz returns the z edge length (zero for 2D boxes).
func (B *Box) Lz() float64 { return B.l[2] }

//SetLx sets the x edge length, reissuing the full triple.
func (B *Box) SetLx(v float64) error {
	err := B.SetL([3]float64{v, B.l[1], B.l[2]})
	if err != nil {
		return errDecorate(err, "SetLx")
	}
	return nil
}

//SetLy sets the y edge length, reissuing the full triple.
func (B *Box) SetLy(v float64) error {
	err := B.SetL([3]float64{B.l[0], v, B.l[2]})
	if err != nil {
		return errDecorate(err, "SetLy")
	}
	return nil
}

//SetLz sets the z edge length, reissuing the full triple.
func (B *Box) SetLz(v float64) error {
	err := B.SetL([3]float64{B.l[0], B.l[1], v})
	if err != nil {
		return errDecorate(err, "SetLz")
	}
	return nil
}

//XY returns the xy tilt factor.
func (B *Box) XY() float64 { return B.xy }

//XZ returns the xz tilt factor (zero for 2D boxes).
func (B *Box) XZ() float64 { return B.xz }

//YZ returns the yz tilt factor (zero for 2D boxes).
func (B *Box) YZ() float64 { return B.yz }

//SetXY sets the xy tilt factor.
func (B *Box) SetXY(v float64) {
	B.xy = v
}

//SetXZ sets the xz tilt factor. On a 2D box it stays zero.
func (B *Box) SetXZ(v float64) {
	B.xz = v
	B.enforce2D()
}

//SetYZ sets the yz tilt factor. On a 2D box it stays zero.
func (B *Box) SetYZ(v float64) {
	B.yz = v
	B.enforce2D()
}

//Linv returns the element-wise reciprocal of the edge lengths, with zero
//where the length itself is zero.
func (B *Box) Linv() [3]float64 {
	var inv [3]float64
	for i, v := range B.l {
		if v > appzero {
			inv[i] = 1 / v
		}
	}
	return inv
}

//Volume returns Lx*Ly*Lz for a 3D box and the area Lx*Ly for a 2D one.
func (B *Box) Volume() float64 {
	if B.is2D {
		return B.l[0] * B.l[1]
	}
	return B.l[0] * B.l[1] * B.l[2]
}

//Is2D returns whether the box is two-dimensional.
func (B *Box) Is2D() bool { return B.is2D }

//Dimensions returns 2 or 3.
func (B *Box) Dimensions() int {
	if B.is2D {
		return 2
	}
	return 3
}

//SetDimensions sets the dimensionality, which must be 2 or 3. Setting 2
//resets Lz, xz and yz to zero.
func (B *Box) SetDimensions(d int) error {
	if d != 2 && d != 3 {
		return &InvalidArgument{fmt.Sprintf("%s: %d", WrongDimensions, d), []string{"SetDimensions"}}
	}
	B.is2D = d == 2
	B.enforce2D()
	return nil
}

//Periodic returns the per-axis periodicity flags.
func (B *Box) Periodic() [3]bool {
	return B.periodic
}

//SetPeriodic sets the periodicity flags. Exactly one flag per axis is
//required; anything else fails with *InvalidArgument.
func (B *Box) SetPeriodic(p ...bool) error {
	if len(p) != 3 {
		return &InvalidArgument{fmt.Sprintf("%s: got %d", WrongPeriodic, len(p)), []string{"SetPeriodic"}}
	}
	B.periodic = [3]bool{p[0], p[1], p[2]}
	return nil
}

//Copy returns a copy of the box.
func (B *Box) Copy() *Box {
	ret := *B
	return &ret
}

// ToMatrix returns the canonical 3x3 upper-triangular cell matrix.
func (B *Box) ToMatrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		B.l[0], B.xy * B.l[1], B.xz * B.l[2],
		0, B.l[1], B.yz * B.l[2],
		0, 0, B.l[2],
	})
}

// ToDict returns the box parameters as a map, including the
// dimensionality under the key "dimensions".
func (B *Box) ToDict() map[string]float64 {
	return map[string]float64{
		"Lx":         B.l[0],
		"Ly":         B.l[1],
		"Lz":         B.l[2],
		"xy":         B.xy,
		"xz":         B.xz,
		"yz":         B.yz,
		"dimensions": float64(B.Dimensions()),
	}
}

// BoxTuple is the fixed-field form of a box. Unlike ToDict, it carries no
// dimensionality; consumers that round-trip through it rely on the
// narrower shape.
type BoxTuple struct {
	Lx, Ly, Lz, Xy, Xz, Yz float64
}

// ToTuple returns the six box parameters as a BoxTuple.
func (B *Box) ToTuple() BoxTuple {
	return BoxTuple{B.l[0], B.l[1], B.l[2], B.xy, B.xz, B.yz}
}

// Equal reports whether two boxes have exactly the same lengths, tilt
// factors and dimensionality. No floating-point tolerance is applied, and
// periodicity is not part of the comparison.
func (B *Box) Equal(other *Box) bool {
	if other == nil {
		return false
	}
	return B.l == other.l && B.xy == other.xy && B.xz == other.xz &&
		B.yz == other.yz && B.is2D == other.is2D
}

func (B *Box) String() string {
	return fmt.Sprintf("Box(Lx=%v, Ly=%v, Lz=%v, xy=%v, xz=%v, yz=%v, dimensions=%d)",
		B.l[0], B.l[1], B.l[2], B.xy, B.xz, B.yz, B.Dimensions())
}
