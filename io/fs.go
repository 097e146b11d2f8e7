package io

import (
	"encoding/binary"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS is a directory on the host file system, for both reading and
// creating images.
type DirFS string

var _ fs.FS = DirFS("")
var _ CreateFS = DirFS("")

// Open opens a file for reading.
func (dir DirFS) Open(name string) (fs.File, error) {
	return os.DirFS(string(dir)).Open(name)
}

// Create creates a file for writing.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}
	return os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
}

// Load reads an image from a file system.
func Load(filesys fs.FS, name string, order binary.ByteOrder) (rom *Rom, err error) {
	file, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	rom = &Rom{Order: order}
	_, err = rom.ReadFrom(file)
	if err != nil {
		rom = nil
		return
	}

	return
}

// Save writes an image to a file system.
func Save(filesys CreateFS, name string, rom *Rom) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	_, err = rom.WriteTo(file)
	if err != nil {
		file.Close()
		return
	}

	err = file.Close()

	return
}
