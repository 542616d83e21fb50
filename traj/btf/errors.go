package btf

import (
	"fmt"

	order "github.com/rsoto/gorder"
)

//errDecorate is a helper function that asserts that the error implements
//order.Error and decorates it with the caller's name before returning it.
//If used with a non-order.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(order.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for btf trajectory errors. It fulfills
//order.Error and order.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("btf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and
	//tries to alter the receiver, it works, since err.deco is a slice,
	//and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error.
func (err Error) Format() string { return "btf" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the BTF file or frame"
	NotEnoughSpace = "Not enough space in passed matrix"
	EOF            = "EOF"
)

//lastFrameError implements order.LastFrameError.
type lastFrameError struct {
	fileName string
	deco     []string
}

//This is for the interface. It does nothing.
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "btf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
