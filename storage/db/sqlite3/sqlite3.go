// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// github.com/NNVMC/FeedForwardNeuralNetwork/storage/db.OpenSQL. It
// must be imported instead of go-sqlite3 to ensure foreign keys are
// properly honored.
package sqlite3

import (
	"database/sql"

	"github.com/NNVMC/FeedForwardNeuralNetwork/storage/db"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(sqldb *sql.DB) error {
		driver, ok := sqldb.Driver().(*sqlite3.SQLiteDriver)
		if ok {
			driver.ConnectHook = func(c *sqlite3.SQLiteConn) error {
				_, err := c.Exec("PRAGMA foreign_keys = ON;", nil)
				return err
			}
		}
		// Every connection to ":memory:" opens a separate
		// database.
		sqldb.SetMaxOpenConns(1)
		return nil
	})
}
