package emulator

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrRunning    = errors.New(f("emulator is running"))
	ErrNotRunning = errors.New(f("emulator is not running"))
)

// ErrAssemble indicates the source that failed to assemble.
type ErrAssemble struct {
	Filename string
	Err      error
}

func (err *ErrAssemble) Error() string {
	return f("%v: assembly failed: %v", err.Filename, err.Err)
}

func (err *ErrAssemble) Unwrap() error {
	return err.Err
}
