package io

import (
	"bytes"
	"encoding/binary"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/dcpu16/cpu"
)

func TestRom_ReadFrom(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		order binary.ByteOrder
		input []byte
		data  []cpu.Word
		err   error
	}){
		{nil, []byte{}, []cpu.Word{}, nil},
		{nil, []byte{0x01, 0x7c, 0x10, 0x00}, []cpu.Word{0x7c01, 0x0010}, nil},
		{binary.LittleEndian, []byte{0x01, 0x7c}, []cpu.Word{0x7c01}, nil},
		{binary.BigEndian, []byte{0x7c, 0x01, 0x00, 0x10}, []cpu.Word{0x7c01, 0x0010}, nil},
		{nil, []byte{0x01, 0x7c, 0x10}, nil, ErrImageOdd},
		{nil, make([]byte, IMAGE_SIZE+2), nil, ErrImageSize},
	}

	for n, entry := range table {
		rom := &Rom{Order: entry.order}
		count, err := rom.ReadFrom(bytes.NewReader(entry.input))
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, n)
			continue
		}
		assert.NoError(err, n)
		assert.Equal(int64(len(entry.input)), count, n)
		assert.Equal(entry.data, rom.Data, n)
	}
}

func TestRom_ReadFrom_Full(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	_, err := rom.ReadFrom(bytes.NewReader(make([]byte, IMAGE_SIZE)))
	assert.NoError(err)
	assert.Len(rom.Data, cpu.RAM_SIZE)
}

func TestRom_WriteTo(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []cpu.Word{0x7c01, 0x0010}}

	buff := &bytes.Buffer{}
	count, err := rom.WriteTo(buff)
	assert.NoError(err)
	assert.Equal(int64(4), count)
	assert.Equal([]byte{0x01, 0x7c, 0x10, 0x00}, buff.Bytes())

	rom.Order = binary.BigEndian
	buff.Reset()
	_, err = rom.WriteTo(buff)
	assert.NoError(err)
	assert.Equal([]byte{0x7c, 0x01, 0x00, 0x10}, buff.Bytes())

	rom.Data = make([]cpu.Word, cpu.RAM_SIZE+1)
	_, err = rom.WriteTo(buff)
	assert.ErrorIs(err, ErrImageSize)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"hello.bin": &fstest.MapFile{Data: []byte{0x01, 0x7c, 0x10, 0x00}},
		"odd.bin":   &fstest.MapFile{Data: []byte{0x01}},
	}

	rom, err := Load(filesys, "hello.bin", nil)
	require.NoError(t, err)
	assert.Equal([]cpu.Word{0x7c01, 0x0010}, rom.Data)

	rom, err = Load(filesys, "hello.bin", binary.BigEndian)
	require.NoError(t, err)
	assert.Equal([]cpu.Word{0x017c, 0x1000}, rom.Data)

	_, err = Load(filesys, "odd.bin", nil)
	assert.ErrorIs(err, ErrImageOdd)

	_, err = Load(filesys, "missing.bin", nil)
	assert.Error(err)
}

func TestSaveLoad(t *testing.T) {
	assert := assert.New(t)

	dir := DirFS(t.TempDir())

	words, err := cpu.Assemble(":start\n set A, 0x10\n set PC, start\n", "start.s")
	require.NoError(t, err)

	err = Save(dir, "start.bin", &Rom{Data: words})
	assert.NoError(err)

	rom, err := Load(dir, "start.bin", nil)
	require.NoError(t, err)
	assert.Equal(words, rom.Data)

	err = Save(dir, "../escape.bin", &Rom{Data: words})
	assert.Error(err)
}
