package order

import (
	"fmt"
	"math"
	"testing"

	v3 "github.com/rsoto/gorder/v3"
)

func TestWrapCube(Te *testing.T) {
	b, _ := Cube(10)
	coord, _ := v3.NewMatrix([]float64{
		6, -7, 12,
		1, 2, 3,
	})
	if err := b.Wrap(coord); err != nil {
		Te.Fatal(err)
	}
	want := []float64{-4, 3, 2, 1, 2, 3}
	for i, w := range want {
		if math.Abs(coord.RawMatrix().Data[i]-w) > 1e-9 {
			Te.Errorf("Wrong wrapped coordinates: %v", coord.RawMatrix().Data)
			break
		}
	}
	fmt.Println("Cube wrap test passed")
}

func TestWrapRespectsPeriodicity(Te *testing.T) {
	b, _ := Cube(10)
	if err := b.SetPeriodic(true, false, true); err != nil {
		Te.Fatal(err)
	}
	coord, _ := v3.NewMatrix([]float64{6, -7, 12})
	if err := b.Wrap(coord); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(coord.At(0, 1)-(-7)) > 1e-9 {
		Te.Errorf("Non-periodic axis was wrapped: %v", coord.At(0, 1))
	}
	if math.Abs(coord.At(0, 0)-(-4)) > 1e-9 || math.Abs(coord.At(0, 2)-2) > 1e-9 {
		Te.Errorf("Periodic axes not wrapped: %v %v", coord.At(0, 0), coord.At(0, 2))
	}
}

func TestWrapTriclinic(Te *testing.T) {
	b, _ := New(10, 10, 10, 0.5, 0, 0, false)
	coord, _ := v3.NewMatrix([]float64{12, 3, 0})
	if err := b.Wrap(coord); err != nil {
		Te.Fatal(err)
	}
	//one x image of the sheared cell
	if math.Abs(coord.At(0, 0)-2) > 1e-9 || math.Abs(coord.At(0, 1)-3) > 1e-9 {
		Te.Errorf("Wrong triclinic wrap: %v %v", coord.At(0, 0), coord.At(0, 1))
	}
}

func TestMinImage(Te *testing.T) {
	b, _ := Cube(10)
	d, _ := v3.NewMatrix([]float64{6, -7, 3})
	if err := b.MinImage(d); err != nil {
		Te.Fatal(err)
	}
	want := [3]float64{-4, 3, 3}
	for i, w := range want {
		if math.Abs(d.At(0, i)-w) > 1e-9 {
			Te.Errorf("Wrong minimum image: %v", d.RawMatrix().Data)
			break
		}
		if math.Abs(d.At(0, i)) > 5+1e-9 {
			Te.Errorf("Minimum image longer than half the cell: %v", d.At(0, i))
		}
	}
}

func TestFractionAbsoluteInverse(Te *testing.T) {
	b, _ := New(10, 8, 6, 0.3, -0.1, 0.2, false)
	coord, _ := v3.NewMatrix([]float64{
		1, 2, -1,
		-3, 0.5, 2.2,
	})
	frac := v3.Zeros(2)
	if err := b.Fraction(frac, coord); err != nil {
		Te.Fatal(err)
	}
	back := v3.Zeros(2)
	if err := b.Absolute(back, frac); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(back.At(i, j)-coord.At(i, j)) > 1e-9 {
				Te.Errorf("Fraction/Absolute not inverses at %d,%d: %v vs %v", i, j, back.At(i, j), coord.At(i, j))
			}
		}
	}
	//shape mismatch
	if err := b.Fraction(v3.Zeros(1), coord); err == nil {
		Te.Error("Shape mismatch should be rejected")
	}
}

func TestImageUnwrap(Te *testing.T) {
	b, _ := New(10, 10, 10, 0.5, 0.2, -0.1, false)
	orig, _ := v3.NewMatrix([]float64{
		12, -13, 24,
		1, 2, 3,
	})
	coord := v3.Zeros(2)
	coord.Copy(orig)
	images, err := b.Image(coord)
	if err != nil {
		Te.Fatal(err)
	}
	if err := b.Wrap(coord); err != nil {
		Te.Fatal(err)
	}
	if err := b.Unwrap(coord, images); err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(coord.At(i, j)-orig.At(i, j)) > 1e-9 {
				Te.Errorf("Unwrap did not restore the original at %d,%d: %v vs %v", i, j, coord.At(i, j), orig.At(i, j))
			}
		}
	}
	if err := b.Unwrap(coord, images[:1]); err == nil {
		Te.Error("Image count mismatch should be rejected")
	}
	fmt.Println("Image/Unwrap test passed")
}

func TestWrap2D(Te *testing.T) {
	b, _ := Square(10)
	coord, _ := v3.NewMatrix([]float64{12, -13, 4})
	if err := b.Wrap(coord); err != nil {
		Te.Fatal(err)
	}
	if math.Abs(coord.At(0, 0)-2) > 1e-9 || math.Abs(coord.At(0, 1)+3) > 1e-9 {
		Te.Errorf("Wrong 2D wrap: %v", coord.RawMatrix().Data)
	}
	if coord.At(0, 2) != 4 {
		Te.Errorf("2D wrap should not touch z: %v", coord.At(0, 2))
	}
}
