// Package envfile reads and writes the KEY=value format used by .env files.
//
// Each non-blank, non-comment line holds one variable:
//
//	PORT=3000  # (int)
//	API_URL="https://api.example.com"
//
// A value may be wrapped in one pair of single or double quotes, which is
// stripped on read. Everything after the first '#' is the line's comment.
// Lines that are not KEY=value are skipped without error.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/railwayapp/henvdall/internal/filesystems"
)

var linePattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([^#]*?)(?:\s*#\s*(.*))?$`)

// Parse reads env file content into an EntryMap. Later duplicates of a key
// overwrite earlier ones.
func Parse(content []byte) *EntryMap {
	entries := NewEntryMap()

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		entry, ok := ParseLine(line)
		if !ok {
			continue
		}
		entries.Set(entry)
	}

	return entries
}

// ParseLine parses a single KEY=value line. It returns false for lines that
// do not match the format.
func ParseLine(line string) (Entry, bool) {
	match := linePattern.FindStringSubmatch(line)
	if match == nil {
		return Entry{}, false
	}

	return Entry{
		Key:     match[1],
		Value:   unquote(strings.TrimSpace(match[2])),
		Comment: strings.TrimSpace(match[3]),
	}, true
}

// ParseFile parses the named file. A file that does not exist yields an
// empty map and no error.
func ParseFile(filesystem filesystems.FileSystem, path string) (*EntryMap, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewEntryMap(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(content), nil
}

// unquote strips one outer pair of matching quotes
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// FormatEntry renders a key and value as an env file line. Values containing
// a space, '#', '$' or '\' are wrapped in double quotes; nothing is escaped.
func FormatEntry(key, value string) string {
	if strings.ContainsAny(value, ` #$\`) {
		value = `"` + value + `"`
	}
	return key + "=" + value
}

// RoundTrips reports whether the line written by FormatEntry reads back as
// the same value. Values spanning lines never do.
func RoundTrips(key, value string) bool {
	if strings.ContainsAny(value, "\r\n") {
		return false
	}
	entry, ok := ParseLine(FormatEntry(key, value))
	return ok && entry.Value == value
}
