/*
 * gonum.go, part of gorder.
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

//Within the package it is understood that a "vector" is a row vector, i.e.
//the cartesian coordinates of a point in 3D space. The names of some
//functions in the library reflect this.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space. The underlying implementation is
//a gonum Dense matrix with 3 columns.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNot3xXMatrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	f := make([]float64, 3*vecs)
	r := mat.NewDense(vecs, 3, f)
	return &Matrix{r}
}

//VecView returns a view of the ith vector of the matrix in the receiver.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Len returns the number of vectors in the matrix. Equivalent to NVecs,
//it exists to satisfy sort-like interfaces.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//SetVec replaces the ith vector of the matrix by the vector vec.
func (F *Matrix) SetVec(i int, vec *Matrix) {
	if vec.NVecs() != 1 {
		panic(ErrNotAVector)
	}
	F.Set(i, 0, vec.At(0, 0))
	F.Set(i, 1, vec.At(0, 1))
	F.Set(i, 2, vec.At(0, 2))
}

//Add puts in the receiver the element-wise sum of A and B.
//Panics on dimension mismatch.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Sub puts in the receiver the element-wise difference A - B.
//Panics on dimension mismatch.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Scale puts in the receiver the matrix A scaled by the factor v.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

//Copy copies A into the receiver. Panics if the shapes differ.
func (F *Matrix) Copy(A *Matrix) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if ar != fr {
		panic(ErrShape)
	}
	F.Dense.Copy(A.Dense)
}

//Dot returns the dot product between the receiver and the argument,
//both of which must be vectors (1x3 matrices).
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrNotAVector)
	}
	var ret float64
	for i := 0; i < 3; i++ {
		ret += F.At(0, i) * B.At(0, i)
	}
	return ret
}

//Cross puts in the receiver, which must be a vector, the cross product
//of the vectors A and B.
func (F *Matrix) Cross(A, B *Matrix) {
	if F.NVecs() != 1 || A.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrNotAVector)
	}
	F.Set(0, 0, A.At(0, 1)*B.At(0, 2)-A.At(0, 2)*B.At(0, 1))
	F.Set(0, 1, A.At(0, 2)*B.At(0, 0)-A.At(0, 0)*B.At(0, 2))
	F.Set(0, 2, A.At(0, 0)*B.At(0, 1)-A.At(0, 1)*B.At(0, 0))
}

//Norm returns the Euclidean norm of the receiver, which must be a vector.
func (F *Matrix) Norm() float64 {
	if F.NVecs() != 1 {
		panic(ErrNotAVector)
	}
	n := F.Dot(F)
	if n <= appzero {
		return 0
	}
	return math.Sqrt(n)
}

//Errors

//Error is the concrete error type for the v3 package. It implements
//gorder's Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("v3 error: %s", err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

//panicErr is the type for the panics thrown by shape-mismatched operations.
type panicErr string

func (err panicErr) Error() string { return string(err) }

const (
	ErrNot3xXMatrix = panicErr("v3: Matrices must have 3 columns")
	ErrNotAVector   = panicErr("v3: expected a 1x3 vector")
	ErrShape        = panicErr("v3: dimension mismatch")
)
