package models

// RenameEntry pairs an interface's qualified name with its generated counterpart
type RenameEntry struct {
	Original  string
	Generated string
}

// RenameMap maps original interface names to generated names for one run.
// It is immutable once built and safe for concurrent readers.
type RenameMap struct {
	order []string
	names map[string]string
}

// NewRenameMap builds a RenameMap preserving the order of the entries.
// Later duplicates of an original name are ignored.
func NewRenameMap(entries ...RenameEntry) RenameMap {
	m := RenameMap{
		order: make([]string, 0, len(entries)),
		names: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, exists := m.names[e.Original]; exists {
			continue
		}
		m.order = append(m.order, e.Original)
		m.names[e.Original] = e.Generated
	}
	return m
}

// Lookup returns the generated name for an original qualified name
func (m RenameMap) Lookup(original string) (string, bool) {
	generated, ok := m.names[original]
	return generated, ok
}

// Has reports whether the name is a key of the map
func (m RenameMap) Has(original string) bool {
	_, ok := m.names[original]
	return ok
}

// Keys returns the original names in registration order
func (m RenameMap) Keys() []string {
	keys := make([]string, len(m.order))
	copy(keys, m.order)
	return keys
}

// Len returns the number of entries
func (m RenameMap) Len() int {
	return len(m.order)
}

// Entries returns all pairs in registration order
func (m RenameMap) Entries() []RenameEntry {
	entries := make([]RenameEntry, 0, len(m.order))
	for _, k := range m.order {
		entries = append(entries, RenameEntry{Original: k, Generated: m.names[k]})
	}
	return entries
}
