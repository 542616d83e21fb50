package btf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	order "github.com/rsoto/gorder"
	v3 "github.com/rsoto/gorder/v3"
)

//Write!

// BtfW writes a btf trajectory. Use NewWriter to obtain one.
type BtfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	prec      int
}

// NewWriter opens name for writing a trajectory of natoms particles per
// frame. The optional header map is stored at the top of the file; the key
// "prec" sets the number of decimals kept for each coordinate (default 3).
// The compression level, where the backend supports one, can be given as
// the last argument.
func NewWriter(name string, natoms int, header map[string]string, compressionLevel ...int) (*BtfW, error) {
	level := 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := new(BtfW)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	flatewriter := func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, level) }
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var anyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'g':
		anyNewWriter = gzipwriter
	case 'r':
		anyNewWriter = flatewriter
	default:
		anyNewWriter = zstdwriter
	}
	W.h, err = anyNewWriter(W.f)
	if err != nil {
		W.f.Close()
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W.natoms = natoms
	W.filename = name
	W.writeable = true
	W.prec = 3 //the default
	if header != nil {
		if p, ok := header["prec"]; ok {
			prec, err := strconv.Atoi(p)
			if err == nil {
				W.prec = prec
			} else {
				log.Printf("Invalid precision for trajectory %s. Will use the default", W.filename)
			}
		}
		for k, v := range header {
			W.h.Write([]byte(fmt.Sprintf("%s=%v\n", k, v)))
		}
	}
	W.h.Write([]byte(fmt.Sprintf("** %d\n", W.natoms)))
	return W, nil
}

//Close closes the writer. The object can not be used after this call.
func (W *BtfW) Close() {
	if W == nil {
		return
	}
	if W.writeable {
		W.h.Close()
		W.f.Close()
	}
	W.writeable = false
}

//Len returns the number of particles per frame.
func (W *BtfW) Len() int {
	return W.natoms
}

// WNext writes the next frame. If a box is given, its parameters are
// written on the frame terminator line so readers can rebuild the exact
// cell alongside the coordinates.
func (W *BtfW) WNext(coord *v3.Matrix, box ...*order.Box) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != W.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, W.natoms), W.filename, []string{"WNext"}, true}
	}
	var floats [3]float64
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		W.h.Write([]byte(coordsEncode(floats, W.prec)))
	}
	if len(box) > 0 && box[0] != nil {
		t := box[0].ToTuple()
		W.h.Write([]byte(fmt.Sprintf("* %v %v %v %v %v %v %d\n",
			t.Lx, t.Ly, t.Lz, t.Xy, t.Xz, t.Yz, box[0].Dimensions())))
	} else {
		W.h.Write([]byte("*\n"))
	}
	return nil
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

//Read!

// BtfR reads a btf trajectory. Use New to obtain one.
type BtfR struct {
	f        *os.File
	zr       io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
	header   map[string]string
}

//zstd's Decoder does not implement io.ReadCloser, as its Close returns
//nothing. This wrapper fixes the signature.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

// New opens a btf trajectory for reading and parses its header. The
// compression backend is chosen from the file name the same way the writer
// does it.
func New(name string) (*BtfR, error) {
	R := new(BtfR)
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	R.filename = name
	switch strings.ToLower(name)[len(name)-1] {
	case 'g':
		R.zr, err = gzip.NewReader(R.f)
	case 'r':
		R.zr = flate.NewReader(R.f)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(R.f)
		if err == nil {
			R.zr = zstdql{d.Close, d}
		}
	}
	if err != nil {
		R.f.Close()
		return nil, Error{err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.zr)
	R.prec = 3
	R.header = make(map[string]string)
	for {
		line, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, Error{WrongFormat + ": no particle count found", name, []string{"New"}, true}
		}
		line = strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, "** ") {
			R.natoms, err = strconv.Atoi(strings.TrimPrefix(line, "** "))
			if err != nil {
				R.Close()
				return nil, Error{WrongFormat + ": bad particle count", name, []string{"New"}, true}
			}
			break
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			R.Close()
			return nil, Error{WrongFormat + ": bad header line " + line, name, []string{"New"}, true}
		}
		R.header[k] = v
	}
	if p, ok := R.header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil {
			R.prec = prec
		} else {
			log.Printf("Invalid precision in trajectory %s. Will use the default", R.filename)
		}
	}
	R.readable = true
	return R, nil
}

//Close closes the reader. The object can not be used after this call.
func (R *BtfR) Close() {
	if R == nil {
		return
	}
	if R.zr != nil {
		R.zr.Close()
	}
	if R.f != nil {
		R.f.Close()
	}
	R.readable = false
}

//Readable returns whether the trajectory is ready to be read.
func (R *BtfR) Readable() bool {
	return R != nil && R.readable
}

//Len returns the number of particles per frame.
func (R *BtfR) Len() int {
	return R.natoms
}

//Header returns the key/value pairs stored at the top of the file.
func (R *BtfR) Header() map[string]string {
	return R.header
}

// Next reads the next frame into output, which may be nil to skip the
// frame. If a box is given and the frame carries one, the box is
// overwritten with the cell stored in the frame. At the end of the
// trajectory it returns an error implementing order.LastFrameError.
func (R *BtfR) Next(output *v3.Matrix, box ...*order.Box) error {
	if !R.Readable() {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	if output != nil && output.NVecs() < R.natoms {
		return Error{NotEnoughSpace, R.filename, []string{"Next"}, true}
	}
	p := math.Pow(10.0, float64(R.prec))
	for i := 0; i < R.natoms; i++ {
		line, err := R.h.ReadString('\n')
		if err != nil {
			if i == 0 {
				R.readable = false
				return newLastFrameError(R.filename, "Next")
			}
			return Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
		}
		if output == nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return Error{WrongFormat + ": " + line, R.filename, []string{"Next"}, true}
		}
		for j, field := range fields {
			n, err := strconv.Atoi(field)
			if err != nil {
				return Error{WrongFormat + ": " + line, R.filename, []string{"Next"}, true}
			}
			output.Set(i, j, float64(n)/p)
		}
	}
	line, err := R.h.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "*") {
		return Error{WrongFormat + ": missing frame terminator", R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(strings.TrimSuffix(line, "\n"))
	if len(box) > 0 && box[0] != nil && len(fields) == 8 {
		var params [6]float64
		for i := 0; i < 6; i++ {
			params[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return Error{WrongFormat + ": bad box parameter " + fields[i+1], R.filename, []string{"Next"}, true}
			}
		}
		dims, err := strconv.Atoi(fields[7])
		if err != nil {
			return Error{WrongFormat + ": bad box dimensionality " + fields[7], R.filename, []string{"Next"}, true}
		}
		nb, err := order.New(params[0], params[1], params[2], params[3], params[4], params[5], dims == 2)
		if err != nil {
			return errDecorate(err, "Next")
		}
		*box[0] = *nb
	}
	return nil
}

// NextConc takes a slice of coordinate matrices and reads as many frames
// as elements the list has from the trajectory. Frames with a nil entry
// are discarded. It returns a slice of channels through each of which a
// *v3.Matrix will be transmitted. Decompression itself is sequential, so
// the concurrency only helps consumers that process frames in parallel.
func (R *BtfR) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !R.Readable() {
		return nil, Error{TrajUnIniRead, R.filename, []string{"NextConc"}, true}
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := R.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, framechans[key])
	}
	return framechans, nil
}
