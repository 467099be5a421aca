package profile

import (
	"github.com/aeveltstra/lammpster/internal/entity"
	"github.com/aeveltstra/lammpster/internal/store"
)

// FieldAccessor reads one named field from a single store row. The second
// return reports whether the store knows the field at all; an empty value
// with ok=true is a present-but-blank cell.
type FieldAccessor func(rowIndex int, sourceField string) (string, bool)

// NewGridAccessor binds a grid and its header row into a FieldAccessor.
// The header index is resolved once, not per lookup.
func NewGridAccessor(g *store.Grid, headerRow int) FieldAccessor {
	index := g.HeaderIndex(headerRow)
	if index == nil {
		return nil
	}
	return func(rowIndex int, sourceField string) (string, bool) {
		col, ok := index[sourceField]
		if !ok {
			return "", false
		}
		return g.Cell(rowIndex, col), true
	}
}

// Create projects the mapped fields of one store row into a profile. It
// invokes the accessor once per mapping entry; fields the store does not
// know become present-but-empty values rather than failures.
//
// A nil accessor, a row index below 1, or an empty mapping yields nil:
// there is nothing to build, which is a guard, not an error.
func Create(accessor FieldAccessor, rowIndex int, mapping entity.FieldMapping) *entity.Profile {
	if accessor == nil || rowIndex < 1 || len(mapping) == 0 {
		return nil
	}
	p := entity.NewProfile()
	for _, e := range mapping {
		if value, ok := accessor(rowIndex, e.SourceField); ok {
			p.Set(e.Key, &value)
		} else {
			p.Set(e.Key, nil)
		}
	}
	return p
}
