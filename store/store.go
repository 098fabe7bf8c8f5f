// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store persists parsed report rows in a SQL database.
//
// Every batch of rows is saved under a numeric import ID. Rows are
// stored in long form, one database row per measurement, so they can
// be queried by message size.
package store

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/collperf/reportfmt"
	"golang.org/x/net/context"
)

// A DB holds imports of report rows. Its methods may be called from
// multiple goroutines.
type DB struct {
	sql *sql.DB

	insertImport      *sql.Stmt // allocates an import ID
	insertMeasurement *sql.Stmt // one runtime of one row
}

// OpenSQL opens the database dataSourceName with driverName, as
// sql.Open does, and creates the Imports and Measurements tables if
// they are missing. The schema is written for sqlite3 and mysql; any
// other driver is sent the mysql dialect.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook arranges for hook to configure every database
// opened with driverName before its tables are created. Driver
// packages such as store/sqlite3 call it from init.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl expands to the schema. Its dot is a map with a single
// true entry keyed by the driver name, which selects the dialect.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Imports (
	ImportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Measurements (
	ImportID BIGINT UNSIGNED,
	RowID BIGINT UNSIGNED,
	Nodes INT,
	Tasks INT,
	Algorithm VARCHAR(255),
	Type INT,
	MessageSize INT,
	Runtime DOUBLE,
	PRIMARY KEY (ImportID, RowID, MessageSize),
{{if not .sqlite3}}
	Index (Nodes, Tasks, Algorithm),
{{end}}
	FOREIGN KEY (ImportID) REFERENCES Imports(ImportID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MeasurementsRun ON Measurements(Nodes, Tasks, Algorithm);
{{end}}
`))

// createTables runs each statement of the schema for driverName.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// prepareStatements prepares the inserts used by every import.
func (db *DB) prepareStatements(driverName string) error {
	newImport := "INSERT INTO Imports() VALUES ()"
	if driverName == "sqlite3" {
		newImport = "INSERT INTO Imports DEFAULT VALUES"
	}
	for _, p := range []struct {
		stmt **sql.Stmt
		q    string
	}{
		{&db.insertImport, newImport},
		{&db.insertMeasurement, "INSERT INTO Measurements(ImportID, RowID, Nodes, Tasks, Algorithm, Type, MessageSize, Runtime) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"},
	} {
		stmt, err := db.sql.Prepare(p.q)
		if err != nil {
			return fmt.Errorf("preparing %q: %w", p.q, err)
		}
		*p.stmt = stmt
	}
	return nil
}

// An Import is a batch of rows sharing an import ID.
type Import struct {
	// ID is the primary key of the import.
	ID int64

	// rowid is the index of the next row to insert.
	rowid int64
	db    *DB
}

// NewImport returns an import for storing new rows.
func (db *DB) NewImport(ctx context.Context) (*Import, error) {
	res, err := db.insertImport.ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Import{ID: id, db: db}, nil
}

// InsertRows appends rows to the import in a single transaction.
// If it fails, none of rows are stored.
func (im *Import) InsertRows(ctx context.Context, rows []reportfmt.Row) (err error) {
	tx, err := im.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	rowid := im.rowid
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		// A failed batch leaves the row counter alone so that it
		// may be retried.
		if err = tx.Commit(); err == nil {
			im.rowid = rowid
		}
	}()
	stmt := tx.StmtContext(ctx, im.db.insertMeasurement)
	for _, r := range rows {
		for i, v := range r.Values {
			if _, err = stmt.ExecContext(ctx, im.ID, rowid, r.Run.Nodes, r.Run.Tasks, r.Algorithm, r.Type, reportfmt.MessageSizes[i], v); err != nil {
				return err
			}
		}
		rowid++
	}
	return nil
}

// Rows returns the rows of import id in insertion order.
func (db *DB) Rows(ctx context.Context, id int64) ([]reportfmt.Row, error) {
	res, err := db.sql.QueryContext(ctx, "SELECT RowID, Nodes, Tasks, Algorithm, Type, MessageSize, Runtime FROM Measurements WHERE ImportID = ? ORDER BY RowID, MessageSize", id)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var rows []reportfmt.Row
	last := int64(-1)
	for res.Next() {
		var (
			rowid int64
			r     reportfmt.Row
			size  int
			rt    float64
		)
		if err := res.Scan(&rowid, &r.Run.Nodes, &r.Run.Tasks, &r.Algorithm, &r.Type, &size, &rt); err != nil {
			return nil, err
		}
		i := sizeIndex(size)
		if i < 0 {
			return nil, fmt.Errorf("import %d row %d: unknown message size %d", id, rowid, size)
		}
		if rowid != last {
			rows = append(rows, r)
			last = rowid
		}
		rows[len(rows)-1].Values[i] = rt
	}
	return rows, res.Err()
}

func sizeIndex(size int) int {
	for i, s := range reportfmt.MessageSizes {
		if s == size {
			return i
		}
	}
	return -1
}

// DeleteImport removes import id and all of its rows.
func (db *DB) DeleteImport(ctx context.Context, id int64) error {
	res, err := db.sql.ExecContext(ctx, "DELETE FROM Imports WHERE ImportID = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("import %d not found", id)
	}
	return nil
}

// CountImports returns the number of imports in the database.
func (db *DB) CountImports() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Imports").Scan(&n)
	return n, err
}

// CountRows returns the number of report rows across all imports.
func (db *DB) CountRows() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM (SELECT DISTINCT ImportID, RowID FROM Measurements) AS r").Scan(&n)
	return n, err
}

// Close releases the prepared statements and the database.
func (db *DB) Close() error {
	if err := db.insertImport.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
