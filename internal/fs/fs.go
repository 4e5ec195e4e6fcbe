// Package fs abstracts the filesystem operations ytgit performs so that
// loaders can be tested against temp dirs or fakes.
package fs

import (
	"io"
	"os"
)

// FS is the subset of filesystem operations ytgit needs.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	OpenAppend(path string, perm os.FileMode) (io.WriteCloser, error)
}

// RealFS implements FS with the os package.
type RealFS struct{}

// NewRealFS returns an FS backed by the real filesystem.
func NewRealFS() *RealFS {
	return &RealFS{}
}

func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// OpenAppend opens path for appending, creating it if needed.
func (RealFS) OpenAppend(path string, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
}
