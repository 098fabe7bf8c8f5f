// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/collperf/reportfmt"
	"golang.org/x/collperf/store"
	"golang.org/x/collperf/store/storetest"
)

func testRows(run reportfmt.RunID, n int) []reportfmt.Row {
	var rows []reportfmt.Row
	for k := 0; k < n; k++ {
		alg := reportfmt.DefaultAlgorithms[k/reportfmt.NumTypes%len(reportfmt.DefaultAlgorithms)]
		row := reportfmt.Row{Run: run, Algorithm: alg, Type: k % reportfmt.NumTypes}
		for i := range row.Values {
			row.Values[i] = float64(run.Nodes*100+k*10+i) / 1e4
		}
		rows = append(rows, row)
	}
	return rows
}

// TestImportIDs verifies that NewImport allocates increasing IDs.
func TestImportIDs(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	var last int64
	for i := 0; i < 3; i++ {
		im, err := db.NewImport(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if im.ID <= last {
			t.Errorf("import %d has ID %d, want > %d", i, im.ID, last)
		}
		last = im.ID
	}
	if n, err := db.CountImports(); err != nil || n != 3 {
		t.Errorf("CountImports() = %d, %v, want 3", n, err)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	a, err := db.NewImport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b, err := db.NewImport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rowsA := testRows(reportfmt.RunID{Nodes: 2, Tasks: 4}, 9)
	rowsB := testRows(reportfmt.RunID{Nodes: 1, Tasks: 16}, 4)

	// Split the first batch to check that row order spans calls.
	if err := a.InsertRows(ctx, rowsA[:5]); err != nil {
		t.Fatal(err)
	}
	if err := b.InsertRows(ctx, rowsB); err != nil {
		t.Fatal(err)
	}
	if err := a.InsertRows(ctx, rowsA[5:]); err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		id   int64
		want []reportfmt.Row
	}{{a.ID, rowsA}, {b.ID, rowsB}} {
		got, err := db.Rows(ctx, test.id)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(test.want, got, rowCmp); diff != "" {
			t.Errorf("import %d rows differ (-want +got):\n%s", test.id, diff)
		}
	}
	if n, err := db.CountRows(); err != nil || n != 13 {
		t.Errorf("CountRows() = %d, %v, want 13", n, err)
	}
}

func TestDeleteImport(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)

	im, err := db.NewImport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := im.InsertRows(ctx, testRows(reportfmt.RunID{Nodes: 1, Tasks: 1}, 3)); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteImport(ctx, im.ID); err != nil {
		t.Fatal(err)
	}
	// Foreign keys cascade the delete to the measurements.
	if n, err := db.CountRows(); err != nil || n != 0 {
		t.Errorf("CountRows() after delete = %d, %v, want 0", n, err)
	}
	if err := db.DeleteImport(ctx, im.ID); err == nil {
		t.Errorf("second DeleteImport succeeded")
	}
}

func TestEmptyImport(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	im, err := db.NewImport(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := im.InsertRows(ctx, nil); err != nil {
		t.Fatal(err)
	}
	rows, err := db.Rows(ctx, im.ID)
	if err != nil || len(rows) != 0 {
		t.Errorf("Rows() = %v, %v, want no rows", rows, err)
	}
}

var rowCmp = cmp.Comparer(func(a, b reportfmt.Row) bool {
	return a.Run == b.Run && a.Algorithm == b.Algorithm && a.Type == b.Type && a.Values == b.Values
})

// TestReopen verifies that opening an existing database keeps its
// imports.
func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")
	for i := 1; i <= 2; i++ {
		db, err := store.OpenSQL("sqlite3", path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		im, err := db.NewImport(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if err := im.InsertRows(ctx, testRows(reportfmt.RunID{Nodes: i, Tasks: 4}, 3)); err != nil {
			t.Fatal(err)
		}
		n, err := db.CountImports()
		if err != nil {
			t.Fatal(err)
		}
		if n != i {
			t.Errorf("after open %d: CountImports = %d, want %d", i, n, i)
		}
		db.Close()
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if db, err := store.OpenSQL("nosuchdriver", ""); err == nil {
		db.Close()
		t.Fatal("OpenSQL with an unregistered driver succeeded")
	}
}
