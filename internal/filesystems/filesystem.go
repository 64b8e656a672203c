package filesystems

import (
	"io/fs"
	"iter"
	"time"
)

// FileSystem abstracts read access to env files for different backends
type FileSystem interface {
	// ReadFile reads the named file and returns its contents
	ReadFile(name string) ([]byte, error)

	// Stat returns file information for the named file
	Stat(name string) (FileInfo, error)

	// ReadDir reads the named directory and returns an iterator over directory entries
	ReadDir(name string) iter.Seq2[DirEntry, error]

	// Join joins path elements into a single path
	Join(elem ...string) string

	// Base returns the last element of path
	Base(path string) string

	// Dir returns all but the last element of path
	Dir(path string) string
}

// WritableFileSystem is a FileSystem that can back up and append to files
type WritableFileSystem interface {
	FileSystem

	// CopyFile copies src to dst, preserving the file mode
	CopyFile(src, dst string) error

	// AppendFile appends data to the named file in a single write,
	// creating it if it does not exist
	AppendFile(name string, data []byte) error
}

// DirEntry provides information about a directory entry
type DirEntry interface {
	Name() string
	IsDir() bool
	Type() fs.FileMode
	Info() (FileInfo, error)
}

// FileInfo provides information about a file
type FileInfo interface {
	Name() string
	Size() int64
	Mode() fs.FileMode
	ModTime() time.Time
	IsDir() bool
	Sys() interface{}
}
