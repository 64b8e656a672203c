package envfile

import "iter"

// Entry is a single KEY=value line of an env file
type Entry struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
	// Comment is the trimmed text after '#'; empty means no comment
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty"`
}

// EntryMap is an ordered mapping from key to Entry. Order is the order in
// which keys first appeared in the file.
type EntryMap struct {
	keys    []string
	entries map[string]Entry
}

// NewEntryMap creates an empty EntryMap
func NewEntryMap() *EntryMap {
	return &EntryMap{entries: make(map[string]Entry)}
}

// Set inserts or overwrites an entry. Overwriting keeps the original position.
func (m *EntryMap) Set(entry Entry) {
	if _, exists := m.entries[entry.Key]; !exists {
		m.keys = append(m.keys, entry.Key)
	}
	m.entries[entry.Key] = entry
}

// Get returns the entry for key
func (m *EntryMap) Get(key string) (Entry, bool) {
	entry, ok := m.entries[key]
	return entry, ok
}

// Has reports whether key is present
func (m *EntryMap) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of entries
func (m *EntryMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in file order
func (m *EntryMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// All iterates over entries in file order
func (m *EntryMap) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, key := range m.keys {
			if !yield(key, m.entries[key]) {
				return
			}
		}
	}
}
