package store

import (
	"fmt"
	"log/slog"

	"github.com/aeveltstra/lammpster/internal/common"
)

// Database is one opened backing data source: a workbook of sheets or a
// database of tables. Each named store inside it reads as a cell grid.
type Database interface {
	StoreNames() ([]string, error)
	Store(name string) (*Grid, error)
	Close() error
}

// Open selects and opens the data source configured under the provider
// section. The handler key picks the driver, mirroring the pluggable
// handler modules the configuration format was designed around.
func Open(cfg *common.Config, logger *slog.Logger) (Database, error) {
	if logger == nil {
		logger = slog.Default()
	}
	handler := cfg.Entry("provider", "handler", "xlsx")
	path := cfg.Entry("provider", "path", "")
	if path == "" {
		return nil, fmt.Errorf("provider.path is not configured: %w", common.ErrInvalidInput)
	}
	switch handler {
	case "xlsx":
		return OpenWorkbook(path, logger)
	case "sqlite":
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown provider handler %q: %w", handler, common.ErrInvalidInput)
	}
}

// Grid is the materialized cell grid of a single store. Rows and columns
// are addressed 1-based, matching spreadsheet conventions. A nil grid
// answers every lookup with a zero value.
type Grid struct {
	rows [][]string
}

// NewGrid wraps a row-major cell matrix.
func NewGrid(rows [][]string) *Grid {
	return &Grid{rows: rows}
}

// Cell returns the value at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if g == nil || row < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// RowValues returns the cells of one row left to right, or nil when the
// row is out of range.
func (g *Grid) RowValues(row int) []string {
	if g == nil || row < 1 || row > len(g.rows) {
		return nil
	}
	return g.rows[row-1]
}

// ColumnValues returns the cells of one column top to bottom. The first
// column has index 1; index 0 or below yields nil.
func (g *Grid) ColumnValues(col int) []string {
	if g == nil || col < 1 {
		return nil
	}
	var values []string
	for _, r := range g.rows {
		if col <= len(r) {
			values = append(values, r[col-1])
		} else {
			values = append(values, "")
		}
	}
	return values
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// FindRowIndex searches every cell for an exact match on identifier and
// returns the row of the first match, in row-major order, that sits in the
// first column. Identifiers are expected to live uniquely in the key
// column; duplicates resolve to the earliest row. Returns 0 when the grid
// is nil, the identifier is empty, or nothing matches.
func (g *Grid) FindRowIndex(identifier string) int {
	if g == nil || identifier == "" {
		return 0
	}
	for i, r := range g.rows {
		for j, cell := range r {
			if cell != identifier {
				continue
			}
			if j == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// HeaderIndex resolves the header row into a field-name to column-index
// map, so field lookups cost one map access instead of a header scan.
// A duplicated header keeps its first column.
func (g *Grid) HeaderIndex(headerRow int) map[string]int {
	cells := g.RowValues(headerRow)
	if cells == nil {
		return nil
	}
	index := make(map[string]int, len(cells))
	for i, name := range cells {
		if name == "" {
			continue
		}
		if _, ok := index[name]; !ok {
			index[name] = i + 1
		}
	}
	return index
}
