package io

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageOdd  = errors.New(f("image has an odd number of bytes"))
	ErrImageSize = errors.New(f("image exceeds memory"))
)
