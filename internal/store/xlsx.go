package store

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/aeveltstra/lammpster/internal/common"
)

// workbookDatabase reads an XLSX workbook as a data source. Sheets are the
// stores; each sheet materializes into a Grid on request.
type workbookDatabase struct {
	f      *excelize.File
	path   string
	logger *slog.Logger
}

// OpenWorkbook opens the workbook file at path.
func OpenWorkbook(path string, logger *slog.Logger) (Database, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	logger.Debug("workbook opened", "path", path, "sheets", f.SheetCount)
	return &workbookDatabase{f: f, path: path, logger: logger}, nil
}

func (db *workbookDatabase) StoreNames() ([]string, error) {
	return db.f.GetSheetList(), nil
}

func (db *workbookDatabase) Store(name string) (*Grid, error) {
	if name == "" {
		return nil, fmt.Errorf("no store name given for workbook %s: %w", db.path, common.ErrInvalidInput)
	}
	if idx, err := db.f.GetSheetIndex(name); err != nil || idx == -1 {
		return nil, fmt.Errorf("workbook %s has no sheet named %q: %w", db.path, name, common.ErrNotFound)
	}
	rows, err := db.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	db.logger.Debug("sheet read", "sheet", name, "rows", len(rows))
	return NewGrid(rows), nil
}

func (db *workbookDatabase) Close() error {
	return db.f.Close()
}
