/*
 * errors.go, part of gorder.
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

import "fmt"

//All errors in this package are raised synchronously at construction or
//mutation time. Derived properties (volume, matrix, Linv) never fail once
//the box exists, as the invariants are enforced when the fields change,
//not when they are read.

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// Each Decorate call also returns the resulting "decoration" slice of
// strings. If passed an empty string, it just returns the current value,
// without adding the empty string to the slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// InvalidArgument is returned when a box is requested with parameters that
// no box can have: a negative edge length, a dimensionality other than 2 or
// 3, a periodicity set with other than one flag per axis, or a generic
// input that matches none of the accepted shapes.
type InvalidArgument struct {
	message string
	deco    []string
}

func (err *InvalidArgument) Error() string {
	return fmt.Sprintf("gorder box, invalid argument: %s", err.message)
}

//Decorate adds new information to the error.
func (err *InvalidArgument) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// DegenerateGeometry is returned by the matrix-decomposition constructor
// when the given cell vectors do not span a usable cell, i.e. when the
// decomposition would divide by a (near) zero length, area or normal
// magnitude.
type DegenerateGeometry struct {
	message string
	deco    []string
}

func (err *DegenerateGeometry) Error() string {
	return fmt.Sprintf("gorder box, degenerate geometry: %s", err.message)
}

//Decorate adds new information to the error.
func (err *DegenerateGeometry) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Messages for the errors returned by this package.
const (
	NegativeLength    = "edge lengths must be non-negative"
	WrongDimensions   = "dimensions must be 2 or 3"
	WrongPeriodic     = "periodicity requires exactly one flag per axis"
	UnextractableBox  = "supplied value cannot be converted to a Box"
	NilCoordinates    = "given nil coordinates"
	ZeroFirstVector   = "first cell vector has (near) zero length"
	ZeroCellArea      = "first two cell vectors are (near) collinear"
	NegativeUnderRoot = "second cell vector shorter than its projection"
)

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. It panics on a non-Error error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
