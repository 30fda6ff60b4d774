// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives parsed benchmark runs in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
)

// DB is a high-level interface to a database of benchmark runs. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
}

// ErrNotFound is returned by LoadRun if no run has the requested
// label.
var ErrNotFound = errors.New("run not found")

// now is overridden by tests.
var now = time.Now

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
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
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Label VARCHAR(255) NOT NULL,
	Format VARCHAR(32) NOT NULL,
	Created BIGINT NOT NULL
{{if not .sqlite3}}
	, Index (Label, Format)
{{end}}
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Func VARCHAR(255) NOT NULL,
	EvalMode VARCHAR(32),
	Metric VARCHAR(255),
	Value DOUBLE,
	Err DOUBLE,
	PRIMARY KEY (RunID, Seq),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsLabelFormat ON Runs(Label, Format);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
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
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Label, Format, Created) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements(RunID, Seq, Func, EvalMode, Metric, Value, Err) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// nullFloat maps NaN, which SQL databases cannot store, to NULL.
func nullFloat(x float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: x, Valid: !math.IsNaN(x)}
}

// SaveRun stores run in a single transaction and returns its ID.
// Functions, modes and metric labels keep their order.
func (db *DB) SaveRun(ctx context.Context, run *actfmt.Run) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, run.Label, run.Format.Name, now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	insert := tx.StmtContext(ctx, db.insertMeasurement)
	var seq int64
	for _, fn := range run.Functions() {
		modes := fn.Modes()
		if !run.Format.HasModes() {
			modes = []string{""}
		}
		empty := true
		for _, mode := range modes {
			m := fn.Lookup(mode)
			for _, label := range m.Labels() {
				v, _ := m.Get(label)
				if _, err := insert.ExecContext(ctx, id, seq, fn.Name, mode, label, nullFloat(v.Value), nullFloat(v.Err)); err != nil {
					return 0, err
				}
				seq++
				empty = false
			}
		}
		if empty {
			// Record the function itself, so it survives a
			// round trip.
			if _, err := insert.ExecContext(ctx, id, seq, fn.Name, nil, nil, nil, nil); err != nil {
				return 0, err
			}
			seq++
		}
	}
	return id, nil
}

// LoadRun returns the most recently saved run with the given label
// and format.
func (db *DB) LoadRun(ctx context.Context, label string, f *actfmt.Format) (*actfmt.Run, error) {
	var id int64
	err := db.sql.QueryRowContext(ctx, "SELECT RunID FROM Runs WHERE Label = ? AND Format = ? ORDER BY RunID DESC LIMIT 1", label, f.Name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s run %q: %w", f.Name, label, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Func, EvalMode, Metric, Value, Err FROM Measurements WHERE RunID = ? ORDER BY Seq", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run := actfmt.NewRun(label, f)
	for rows.Next() {
		var (
			name         string
			mode, metric sql.NullString
			value, verr  sql.NullFloat64
		)
		if err := rows.Scan(&name, &mode, &metric, &value, &verr); err != nil {
			return nil, err
		}
		fn := run.Function(name)
		if fn == nil {
			fn = actfmt.NewFunction(name, f)
			run.Add(fn)
		}
		if !metric.Valid {
			continue
		}
		v := actfmt.Measurement{Value: math.NaN(), Err: math.NaN()}
		if value.Valid {
			v.Value = value.Float64
		}
		if verr.Valid {
			v.Err = verr.Float64
		}
		m := fn.Metrics
		if f.HasModes() {
			if m = fn.Mode(mode.String); m == nil {
				m = actfmt.NewMetrics()
				fn.SetMode(mode.String, m)
			}
		}
		m.Set(metric.String, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return run, nil
}

// A RunInfo describes a stored run.
type RunInfo struct {
	ID      int64
	Label   string
	Format  string
	Created time.Time
}

// ListRuns returns all stored runs in the order they were saved.
func (db *DB) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Label, Format, Created FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var infos []RunInfo
	for rows.Next() {
		var info RunInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Label, &info.Format, &created); err != nil {
			return nil, err
		}
		info.Created = time.Unix(created, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// CountRuns returns the number of stored runs.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
