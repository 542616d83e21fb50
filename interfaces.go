/*
 * interfaces.go, part of gorder.
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

import v3 "github.com/rsoto/gorder/v3"

// Computer is the contract for the order-parameter kernels built on top of
// this package. A Computer is a pure function of (box, points): it reads
// the box's matrix and periodicity to perform its own minimum-image
// wrapping, and may be called repeatedly on the same box with different
// point sets. Implementations decide what statistic they accumulate and
// how it is retrieved.
type Computer interface {

	//Compute processes one set of positions (and/or orientations encoded
	//as row vectors) within the given cell.
	Compute(b *Box, coord *v3.Matrix) error
}

// Traj is an interface for any trajectory object, i.e. a sequence of
// frames of particle positions.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output. It can also fill the
	//(optional) box with the cell present in the frame, if any.
	Next(output *v3.Matrix, box ...*Box) error

	//Returns the number of particles per frame
	Len() int
}

// ConcTraj is an interface for a trajectory that can be read concurrently.
type ConcTraj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	/*NextConc takes a slice of coordinate matrices and reads as many
	frames as elements the list has from the trajectory. The frames are
	discarded if the corresponding element of the slice is nil. The
	function returns a slice of channels through each of which a
	*v3.Matrix will be transmitted.*/
	NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error)

	//Returns the number of particles per frame
	Len() int
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless
// end-of-trajectory errors so they can be filtered in a typeswitch that
// looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
