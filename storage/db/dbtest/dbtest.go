// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens databases for tests of the storage/db package
// and its users.
package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/NNVMC/FeedForwardNeuralNetwork/storage/db"
	_ "github.com/NNVMC/FeedForwardNeuralNetwork/storage/db/sqlite3"
)

var cloud = flag.Bool("cloud", false, "connect to Cloud SQL database instead of in-memory SQLite")
var cloudsql = flag.String("cloudsql", "", "name of Cloud SQL instance (project:region:instance) to run tests on")

// createEmptyCloudDB makes a new, empty database for the test.
func createEmptyCloudDB(t *testing.T) (dsn string, cleanup func()) {
	if *cloudsql == "" {
		t.Fatal("-cloud requires -cloudsql")
	}
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}

	name := "actfbench-test-" + base64.RawURLEncoding.EncodeToString(buf)

	prefix := fmt.Sprintf("root:@cloudsql(%s)/", *cloudsql)

	db, err := sql.Open("mysql", prefix)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}

	t.Logf("Using database %q", name)

	return prefix + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to a testing database, either sqlite3 or
// Cloud SQL depending on the -cloud flag. The database is closed when
// the test and its subtests complete.
func NewDB(t *testing.T) *db.DB {
	driverName, dataSourceName := "sqlite3", ":memory:"
	var cloudCleanup func()
	if *cloud {
		driverName = "mysql"
		dataSourceName, cloudCleanup = createEmptyCloudDB(t)
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		if cloudCleanup != nil {
			cloudCleanup()
		}
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() {
		if cloudCleanup != nil {
			cloudCleanup()
		}
		d.Close()
	})
	// Make sure the database really is empty.
	runs, err := d.CountRuns(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if runs != 0 {
		t.Fatalf("found %d row(s) in Runs, want 0", runs)
	}
	return d
}
