package order

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//mapBoxy is both a map and a carrier of length accessors, so it matches
//two of the FromGeneric extraction shapes with conflicting values.
type mapBoxy map[string]float64

func (m mapBoxy) Lx() float64 { return 7 }
func (m mapBoxy) Ly() float64 { return 8 }

//seqBoxy does the same for the sequence shape.
type seqBoxy []float64

func (s seqBoxy) Lx() float64 { return 11 }
func (s seqBoxy) Ly() float64 { return 12 }

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestFactories(Te *testing.T) {
	c, err := Cube(5)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Volume() != 125 || c.Dimensions() != 3 {
		Te.Errorf("Wrong cube: %s", c)
	}
	s, err := Square(5)
	if err != nil {
		Te.Fatal(err)
	}
	if s.Volume() != 25 || s.Dimensions() != 2 {
		Te.Errorf("Wrong square: %s", s)
	}
	if s.Lz() != 0 || s.XZ() != 0 || s.YZ() != 0 {
		Te.Errorf("2D box with 3D fields: %s", s)
	}
	fmt.Println("Factories test passed", c, s)
}

func TestNewValidation(Te *testing.T) {
	_, err := New(-1, 5, 5, 0, 0, 0, false)
	if err == nil {
		Te.Fatal("Negative length should be rejected")
	}
	if _, ok := err.(*InvalidArgument); !ok {
		Te.Errorf("Wrong error type for negative length: %T", err)
	}
	//2D forces the degenerate fields to zero, but keeps xy.
	b, err := New(5, 5, 7, 0.1, 0.2, 0.3, true)
	if err != nil {
		Te.Fatal(err)
	}
	if b.Lz() != 0 || b.XZ() != 0 || b.YZ() != 0 {
		Te.Errorf("2D constructor kept 3D fields: %s", b)
	}
	if b.XY() != 0.1 {
		Te.Errorf("2D constructor lost the in-plane shear: %s", b)
	}
}

func TestMatrixRoundTrip(Te *testing.T) {
	b, err := New(10, 12, 8, 0.5, 0.2, -0.3, false)
	if err != nil {
		Te.Fatal(err)
	}
	b2, err := FromMatrix(b.ToMatrix(), b.Dimensions())
	if err != nil {
		Te.Fatal(err)
	}
	t1, t2 := b.ToTuple(), b2.ToTuple()
	for i, pair := range [][2]float64{{t1.Lx, t2.Lx}, {t1.Ly, t2.Ly}, {t1.Lz, t2.Lz}, {t1.Xy, t2.Xy}, {t1.Xz, t2.Xz}, {t1.Yz, t2.Yz}} {
		if !closeTo(pair[0], pair[1]) {
			Te.Errorf("Round trip changed field %d: %v vs %v", i, pair[0], pair[1])
		}
	}
	if b2.Dimensions() != b.Dimensions() {
		Te.Errorf("Round trip changed dimensionality: %s vs %s", b, b2)
	}
	fmt.Println("Round trip test passed", b, b2)
}

func TestToMatrix(Te *testing.T) {
	b, _ := New(5, 5, 5, 0, 0, 0, false)
	want := mat.NewDense(3, 3, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5})
	if !mat.Equal(b.ToMatrix(), want) {
		Te.Errorf("Wrong matrix: %v", mat.Formatted(b.ToMatrix()))
	}
}

func TestFromMatrix(Te *testing.T) {
	m := mat.NewDense(3, 3, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5})
	b, err := FromMatrix(m)
	if err != nil {
		Te.Fatal(err)
	}
	t := b.ToTuple()
	if t.Lx != 5 || t.Ly != 5 || t.Lz != 5 || t.Xy != 0 || t.Xz != 0 || t.Yz != 0 {
		Te.Errorf("Wrong decomposition: %s", b)
	}
	if b.Dimensions() != 3 {
		Te.Errorf("Wrong inferred dimensionality: %s", b)
	}
	//zero first column
	degenerate := mat.NewDense(3, 3, []float64{0, 0, 0, 0, 5, 0, 0, 0, 5})
	_, err = FromMatrix(degenerate)
	if err == nil {
		Te.Fatal("Zero first cell vector should be rejected")
	}
	if _, ok := err.(*DegenerateGeometry); !ok {
		Te.Errorf("Wrong error type for degenerate cell: %T", err)
	}
	//a 2D cell matrix infers 2 dimensions
	flat := mat.NewDense(3, 3, []float64{4, 0, 0, 0, 4, 0, 0, 0, 0})
	b2, err := FromMatrix(flat)
	if err != nil {
		Te.Fatal(err)
	}
	if b2.Dimensions() != 2 {
		Te.Errorf("Flat cell should infer 2D: %s", b2)
	}
}

func TestFromGeneric(Te *testing.T) {
	//matrix shape
	b, err := FromGeneric(mat.NewDense(3, 3, []float64{5, 0, 0, 0, 5, 0, 0, 0, 5}))
	if err != nil {
		Te.Fatal(err)
	}
	if b.Lx() != 5 || b.Dimensions() != 3 {
		Te.Errorf("Wrong box from matrix: %s", b)
	}
	//attribute shape, including another box
	b2, err := FromGeneric(b)
	if err != nil {
		Te.Fatal(err)
	}
	if !b.Equal(b2) {
		Te.Errorf("Box should survive the generic adapter: %s vs %s", b, b2)
	}
	//mapping shape
	b3, err := FromGeneric(map[string]float64{"Lx": 3, "Ly": 4, "Lz": 5, "xy": 0.1, "dimensions": 3})
	if err != nil {
		Te.Fatal(err)
	}
	if b3.Lx() != 3 || b3.XY() != 0.1 || b3.Dimensions() != 3 {
		Te.Errorf("Wrong box from map: %s", b3)
	}
	//sequence shape, trailing entries defaulting
	b4, err := FromGeneric([]float64{3, 4})
	if err != nil {
		Te.Fatal(err)
	}
	if b4.Lz() != 0 || b4.Dimensions() != 2 {
		Te.Errorf("Two lengths should make a 2D box: %s", b4)
	}
	//explicit dimensions override the input
	b5, err := FromGeneric([]float64{3, 4, 5}, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if b5.Dimensions() != 2 || b5.Lz() != 0 {
		Te.Errorf("Explicit dimensions should win: %s", b5)
	}
	//nothing matches
	_, err = FromGeneric("not a box")
	if err == nil {
		Te.Fatal("A string is not a box")
	}
	if _, ok := err.(*InvalidArgument); !ok {
		Te.Errorf("Wrong error type for unextractable input: %T", err)
	}
}

//TestFromGenericOrder checks that the extraction attempts resolve in the
//documented order when a value matches more than one shape.
func TestFromGenericOrder(Te *testing.T) {
	m := mapBoxy{"Lx": 1, "Ly": 2}
	b, err := FromGeneric(m)
	if err != nil {
		Te.Fatal(err)
	}
	if b.Lx() != 7 || b.Ly() != 8 {
		Te.Errorf("Attribute extraction should win over the mapping: %s", b)
	}
	s := seqBoxy{1, 2, 3}
	b2, err := FromGeneric(s)
	if err != nil {
		Te.Fatal(err)
	}
	if b2.Lx() != 11 || b2.Ly() != 12 {
		Te.Errorf("Attribute extraction should win over the sequence: %s", b2)
	}
	fmt.Println("Resolution order test passed", b, b2)
}

func TestSetters(Te *testing.T) {
	b, _ := Cube(10)
	if err := b.SetLx(4); err != nil {
		Te.Fatal(err)
	}
	if b.L() != [3]float64{4, 10, 10} {
		Te.Errorf("SetLx should only touch x: %v", b.L())
	}
	if err := b.SetLy(-1); err == nil {
		Te.Error("Negative length should be rejected by the setters")
	}
	if b.Ly() != 10 {
		Te.Errorf("Failed set should not change the box: %v", b.L())
	}
	inv := b.Linv()
	if !closeTo(inv[0], 0.25) || !closeTo(inv[1], 0.1) {
		Te.Errorf("Wrong inverse lengths: %v", inv)
	}
	s, _ := Square(3)
	if s.Linv()[2] != 0 {
		Te.Errorf("Inverse of a zero length should be zero: %v", s.Linv())
	}
}

func TestDimensionToggle(Te *testing.T) {
	b, _ := New(5, 5, 7, 0.1, 0.2, 0.3, false)
	if err := b.SetDimensions(4); err == nil {
		Te.Error("Only 2 and 3 are valid dimensionalities")
	}
	if err := b.SetDimensions(2); err != nil {
		Te.Fatal(err)
	}
	if b.Lz() != 0 || b.XZ() != 0 || b.YZ() != 0 {
		Te.Errorf("Demoting to 2D should zero the 3D fields: %s", b)
	}
	//mutations while 2D keep the invariant
	b.SetXZ(0.4)
	b.SetLz(3)
	if b.Lz() != 0 || b.XZ() != 0 {
		Te.Errorf("2D invariant broken by mutation: %s", b)
	}
	if err := b.SetDimensions(3); err != nil {
		Te.Fatal(err)
	}
	if b.Dimensions() != 3 {
		Te.Errorf("Wrong dimensionality after promotion: %s", b)
	}
}

func TestSerialization(Te *testing.T) {
	b, _ := New(1, 2, 3, 0.1, 0.2, 0.3, false)
	d := b.ToDict()
	if _, ok := d["dimensions"]; !ok {
		Te.Error("ToDict must carry the dimensionality")
	}
	if d["Lx"] != 1 || d["yz"] != 0.3 {
		Te.Errorf("Wrong dict: %v", d)
	}
	t := b.ToTuple()
	if t != (BoxTuple{1, 2, 3, 0.1, 0.2, 0.3}) {
		Te.Errorf("Wrong tuple: %v", t)
	}
	b2 := b.Copy()
	if !b.Equal(b2) {
		Te.Error("A copy should equal the original")
	}
	b2.SetXY(0.5)
	if b.Equal(b2) {
		Te.Error("Equality must compare tilt factors exactly")
	}
	//periodicity is not part of the comparison
	b3 := b.Copy()
	if err := b3.SetPeriodic(true, false, true); err != nil {
		Te.Fatal(err)
	}
	if !b.Equal(b3) {
		Te.Error("Periodicity should not enter the equality")
	}
	if err := b3.SetPeriodic(true, false); err == nil {
		Te.Error("Periodicity needs exactly one flag per axis")
	}
}
