package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aeveltstra/lammpster/internal/common"
)

// sqliteDatabase reads a SQLite file as a data source. User tables are the
// stores; the table's column names act as the grid's header row and data
// rows follow in rowid order, every value rendered as a string.
type sqliteDatabase struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite opens the SQLite database file at path.
func OpenSQLite(path string, logger *slog.Logger) (Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database %s: %w", path, err)
	}
	logger.Debug("sqlite database opened", "path", path)
	return &sqliteDatabase{db: db, path: path, logger: logger}, nil
}

func (db *sqliteDatabase) StoreNames() ([]string, error) {
	rows, err := db.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables in %s: %w", db.path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (db *sqliteDatabase) Store(name string) (*Grid, error) {
	if name == "" {
		return nil, fmt.Errorf("no store name given for database %s: %w", db.path, common.ErrInvalidInput)
	}
	names, err := db.StoreNames()
	if err != nil {
		return nil, err
	}
	known := false
	for _, n := range names {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("database %s has no table named %q: %w", db.path, name, common.ErrNotFound)
	}

	// The table name is validated against sqlite_master above, so quoting
	// it directly is safe.
	quoted := `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	rows, err := db.db.Query(`SELECT * FROM ` + quoted + ` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %q: %w", name, err)
	}

	grid := [][]string{cols}
	values := make([]sql.NullString, len(cols))
	scan := make([]any, len(cols))
	for i := range values {
		scan[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", name, err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		grid = append(grid, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	db.logger.Debug("table read", "table", name, "rows", len(grid)-1)
	return NewGrid(grid), nil
}

func (db *sqliteDatabase) Close() error {
	return db.db.Close()
}
