package io

import (
	"encoding/binary"
	"io"

	"github.com/ezrec/dcpu16/cpu"
)

const (
	WORD_BYTES = 2                         // Bytes per word in an image.
	IMAGE_SIZE = cpu.RAM_SIZE * WORD_BYTES // Largest image, in bytes.
)

// Rom is a program image: words loaded at address 0, with no header.
type Rom struct {
	Order binary.ByteOrder // Byte order of each word. Little endian if nil.
	Data  []cpu.Word
}

var _ io.ReaderFrom = (*Rom)(nil)
var _ io.WriterTo = (*Rom)(nil)

func (rom *Rom) order() binary.ByteOrder {
	if rom.Order == nil {
		return binary.LittleEndian
	}
	return rom.Order
}

// ReadFrom replaces the image data with the contents of r.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(IMAGE_SIZE)+1))
	n = int64(len(data))
	if err != nil {
		return
	}

	if len(data) > IMAGE_SIZE {
		err = ErrImageSize
		return
	}

	if len(data)%WORD_BYTES != 0 {
		err = ErrImageOdd
		return
	}

	order := rom.order()
	rom.Data = make([]cpu.Word, len(data)/WORD_BYTES)
	for index := range rom.Data {
		rom.Data[index] = cpu.Word(order.Uint16(data[index*WORD_BYTES:]))
	}

	return
}

// WriteTo writes the image data to w.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	if len(rom.Data) > cpu.RAM_SIZE {
		err = ErrImageSize
		return
	}

	order := rom.order()
	data := make([]byte, len(rom.Data)*WORD_BYTES)
	for index, word := range rom.Data {
		order.PutUint16(data[index*WORD_BYTES:], uint16(word))
	}

	written, err := w.Write(data)
	n = int64(written)

	return
}
