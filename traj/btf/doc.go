/*Package btf implements the "box trajectory format", a very simple
compressed format for frames of particle positions together with the full
simulation cell that contains them. Coordinates are stored as
fixed-precision integers, one particle per line, and each frame ends with a
terminator line carrying the six box parameters and the dimensionality, so
a reader can rebuild the exact cell for every frame. The compression
backend is chosen from the file name: names ending in 'g' use gzip, names
ending in 'r' use raw flate, anything else (the canonical .btf) uses zstd.
*/
package btf
