package filesystems

import (
	"fmt"
	"io/fs"
	"iter"
	"path"
	"sort"
	"strings"
	"time"
)

// MemoryFS implements WritableFileSystem for in-memory filesystem operations
type MemoryFS struct {
	files map[string]*memoryFile
	dirs  map[string]bool
}

type memoryFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemoryFS creates a new MemoryFS instance
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string]*memoryFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the memory filesystem
func (mfs *MemoryFS) AddFile(name string, content []byte) {
	mfs.addFile(name, content, 0644)
}

func (mfs *MemoryFS) addFile(name string, content []byte, mode fs.FileMode) {
	mfs.files[path.Clean(name)] = &memoryFile{
		content: append([]byte(nil), content...),
		mode:    mode,
		modTime: time.Now(),
	}
	mfs.addParents(name)
}

// AddDir adds a directory to the memory filesystem
func (mfs *MemoryFS) AddDir(name string) {
	mfs.dirs[path.Clean(name)] = true
	mfs.addParents(name)
}

// Ensure parent directories exist
func (mfs *MemoryFS) addParents(name string) {
	dir := path.Dir(path.Clean(name))
	for dir != "." && dir != "/" {
		mfs.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	file, exists := mfs.files[path.Clean(name)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", name, fs.ErrNotExist)
	}
	return append([]byte(nil), file.content...), nil
}

func (mfs *MemoryFS) Stat(name string) (FileInfo, error) {
	cleanName := path.Clean(name)
	if file, exists := mfs.files[cleanName]; exists {
		return &memoryFileInfo{
			name:    path.Base(cleanName),
			size:    int64(len(file.content)),
			mode:    file.mode,
			modTime: file.modTime,
		}, nil
	}
	if cleanName == "." || mfs.dirs[cleanName] {
		return &memoryFileInfo{
			name:  path.Base(cleanName),
			mode:  fs.ModeDir | 0755,
			isDir: true,
		}, nil
	}
	return nil, fmt.Errorf("stat %s: %w", name, fs.ErrNotExist)
}

func (mfs *MemoryFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		cleanName := path.Clean(name)

		// Check if directory exists
		if cleanName != "." && !mfs.dirs[cleanName] {
			yield(nil, fmt.Errorf("directory not found: %s: %w", name, fs.ErrNotExist))
			return
		}

		prefix := ""
		if cleanName != "." {
			prefix = cleanName + "/"
		}

		// Collect direct children
		seen := make(map[string]bool)
		entries := make([]string, 0)
		collect := func(p string) {
			if !strings.HasPrefix(p, prefix) {
				return
			}
			remainder := strings.TrimPrefix(p, prefix)
			if remainder == "" {
				return
			}
			childName := strings.Split(remainder, "/")[0]
			if !seen[childName] {
				entries = append(entries, childName)
				seen[childName] = true
			}
		}
		for filePath := range mfs.files {
			collect(filePath)
		}
		for dirPath := range mfs.dirs {
			collect(dirPath)
		}

		sort.Strings(entries)

		for _, entry := range entries {
			fullPath := prefix + entry
			_, isFile := mfs.files[fullPath]

			dirEntry := &memoryDirEntry{
				name:     entry,
				isDir:    !isFile,
				mfs:      mfs,
				fullPath: fullPath,
			}

			if !yield(dirEntry, nil) {
				return
			}
		}
	}
}

func (mfs *MemoryFS) CopyFile(src, dst string) error {
	file, exists := mfs.files[path.Clean(src)]
	if !exists {
		return fmt.Errorf("failed to read %s: %w", src, fs.ErrNotExist)
	}
	mfs.addFile(dst, file.content, file.mode)
	return nil
}

func (mfs *MemoryFS) AppendFile(name string, data []byte) error {
	cleanName := path.Clean(name)
	if mfs.dirs[cleanName] {
		return fmt.Errorf("failed to append to %s: is a directory", name)
	}
	file, exists := mfs.files[cleanName]
	if !exists {
		mfs.addFile(cleanName, data, 0644)
		return nil
	}
	file.content = append(file.content, data...)
	file.modTime = time.Now()
	return nil
}

func (mfs *MemoryFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (mfs *MemoryFS) Base(p string) string {
	return path.Base(p)
}

func (mfs *MemoryFS) Dir(p string) string {
	return path.Dir(p)
}

// memoryDirEntry implements DirEntry for memory filesystem
type memoryDirEntry struct {
	name     string
	isDir    bool
	mfs      *MemoryFS
	fullPath string
}

func (e *memoryDirEntry) Name() string {
	return e.name
}

func (e *memoryDirEntry) IsDir() bool {
	return e.isDir
}

func (e *memoryDirEntry) Type() fs.FileMode {
	if e.isDir {
		return fs.ModeDir
	}
	return 0
}

func (e *memoryDirEntry) Info() (FileInfo, error) {
	return e.mfs.Stat(e.fullPath)
}

// memoryFileInfo implements FileInfo for memory filesystem
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *memoryFileInfo) Name() string {
	return fi.name
}

func (fi *memoryFileInfo) Size() int64 {
	return fi.size
}

func (fi *memoryFileInfo) Mode() fs.FileMode {
	return fi.mode
}

func (fi *memoryFileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *memoryFileInfo) IsDir() bool {
	return fi.isDir
}

func (fi *memoryFileInfo) Sys() interface{} {
	return nil
}
