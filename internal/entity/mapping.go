package entity

import "sort"

// MapEntry pairs a profile output key with the store column header it reads.
type MapEntry struct {
	Key         string
	SourceField string
}

// FieldMapping is the ordered list of (output key, source field) pairs the
// mapper resolves, loaded once per run from the profile_map configuration
// section.
type FieldMapping []MapEntry

// NewFieldMapping builds a mapping from a configuration section. Keys are
// sorted so the record layout stays deterministic across runs.
func NewFieldMapping(section map[string]string) FieldMapping {
	if len(section) == 0 {
		return nil
	}
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	mapping := make(FieldMapping, 0, len(keys))
	for _, k := range keys {
		mapping = append(mapping, MapEntry{Key: k, SourceField: section[k]})
	}
	return mapping
}

// SourceFields returns the store column headers the mapping reads, in
// mapping order.
func (m FieldMapping) SourceFields() []string {
	fields := make([]string, len(m))
	for i, e := range m {
		fields[i] = e.SourceField
	}
	return fields
}
