package filesystems

import (
	"errors"
	"io/fs"
	"iter"
	"strings"
)

// TemplateNames lists the template file names tried by DiscoverTemplate, in order
var TemplateNames = []string{".env.example", ".env.sample", ".env.template", ".env.dist"}

// FindFile looks for a file with the given name (case-insensitive) in the provided directory entries.
// Returns the actual path with correct case if found, empty string if not found.
func FindFile(filesystem FileSystem, dir, filename string, entries iter.Seq2[DirEntry, error]) (string, error) {
	for entry, err := range entries {
		if err != nil {
			return "", err
		}
		if !entry.IsDir() && strings.EqualFold(entry.Name(), filename) {
			return filesystem.Join(dir, entry.Name()), nil
		}
	}

	return "", nil
}

// Exists reports whether the named file exists. Errors other than
// "not exist" are returned so callers do not mistake them for absence.
func Exists(filesystem FileSystem, name string) (bool, error) {
	_, err := filesystem.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DiscoverTemplate returns the first template file from TemplateNames found in dir.
// Returns an empty string if none is present.
func DiscoverTemplate(filesystem FileSystem, dir string) (string, error) {
	for _, name := range TemplateNames {
		found, err := FindFile(filesystem, dir, name, filesystem.ReadDir(dir))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", nil
			}
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	return "", nil
}
