/*
 * doc.go, part of gorder.
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

/*Package order provides the geometric core for computing structural order
parameters over particle positions and orientations in a periodic
simulation cell. Its center is the Box type, a triclinic cell following the
HOOMD-blue conventions, with canonical construction from matrices, maps,
sequences and box-like values, and the periodic-image machinery (wrapping,
minimum image, fractional coordinates) that every analysis built on top of
it shares. The actual order-parameter kernels (nematic order, bond order
via spherical harmonics and friends) plug in through the Computer
interface; trajectories of frames plug in through Traj.

Subpackages provide a gonum-backed coordinate matrix (v3), a compressed
trajectory format that stores the cell with every frame (traj/btf), and
plotting helpers to eyeball a cell and its contents (cellplot).
*/
package order
