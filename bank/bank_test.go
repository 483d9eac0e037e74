package bank

import (
	"bytes"
	"path/filepath"
	"testing"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqlitex"
)

func TestNewWriterBadExtension(t *testing.T) {
	if _, err := NewWriter(filepath.Join(t.TempDir(), "out.sqlite"), 1); err == nil {
		t.Error("expected error for wrong extension")
	}
}

func TestWriteBitmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.db")
	db, err := NewWriter(path, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.WriteMetadata("icons", "status icons"); err != nil {
		t.Fatal(err)
	}

	packed := []byte{0x4D, 0x40}
	if err := db.WriteBitmap("arrow", 10, 1, packed); err != nil {
		t.Fatal(err)
	}
	// same name replaces the previous row
	if err := db.WriteBitmap("arrow", 10, 1, packed); err != nil {
		t.Fatal(err)
	}
	db.Close()

	con, err := sqlite.OpenConn(path, sqlite.SQLITE_OPEN_READONLY)
	if err != nil {
		t.Fatal(err)
	}
	defer con.Close()

	var count int
	err = sqlitex.Exec(con, "SELECT count(*) FROM bitmaps", func(stmt *sqlite.Stmt) error {
		count = stmt.ColumnInt(0)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %v bitmap rows, expected 1", count)
	}

	var width, height int
	var data []byte
	err = sqlitex.Exec(con, "SELECT width, height, data FROM bitmaps WHERE name = ?", func(stmt *sqlite.Stmt) error {
		width = stmt.ColumnInt(0)
		height = stmt.ColumnInt(1)
		data = make([]byte, stmt.ColumnLen(2))
		stmt.ColumnBytes(2, data)
		return nil
	}, "arrow")
	if err != nil {
		t.Fatal(err)
	}
	if width != 10 || height != 1 {
		t.Errorf("got %vx%v, expected 10x1", width, height)
	}
	if !bytes.Equal(data, packed) {
		t.Errorf("got data %x, expected %x", data, packed)
	}

	var format string
	err = sqlitex.Exec(con, "SELECT value FROM metadata WHERE name = 'format'", func(stmt *sqlite.Stmt) error {
		format = stmt.ColumnText(0)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if format != "MONO_HLSB" {
		t.Errorf("got format %q, expected MONO_HLSB", format)
	}
}
