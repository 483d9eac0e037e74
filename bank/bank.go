// Package bank writes encoded bitmaps to a sqlite database so a whole
// directory of display assets can ship as a single file.
package bank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqlitex"
)

var emptyContext context.Context

type Writer struct {
	pool *sqlitex.Pool
}

const initSQL = `
CREATE TABLE IF NOT EXISTS metadata (name text, value text);
CREATE UNIQUE INDEX IF NOT EXISTS name ON metadata (name);

CREATE TABLE IF NOT EXISTS bitmaps (
	name TEXT,
	width INTEGER,
	height INTEGER,
	data BLOB
);
CREATE UNIQUE INDEX IF NOT EXISTS bitmaps_name ON bitmaps (name);
`

func NewWriter(path string, poolsize int) (*Writer, error) {
	ext := filepath.Ext(path)
	if ext != ".db" {
		return nil, fmt.Errorf("path must end in .db")
	}

	// always overwrite
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		os.Remove(path)
	}

	pool, err := sqlitex.Open(path, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE|sqlite.SQLITE_OPEN_NOMUTEX|sqlite.SQLITE_OPEN_WAL, poolsize)
	if err != nil {
		return nil, err
	}

	db := &Writer{
		pool: pool,
	}

	con, err := db.GetConnection()
	if err != nil {
		return nil, err
	}
	defer db.CloseConnection(con)

	// create tables
	err = sqlitex.ExecScript(con, initSQL)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %q", err)
	}

	return db, nil
}

func (db *Writer) Close() {
	if db.pool != nil {
		// make sure that anything pending is written
		con, err := db.GetConnection()
		if err != nil {
			panic(err)
		}
		// flush the WAL
		err = sqlitex.Exec(con, "PRAGMA wal_checkpoint;", nil)
		if err != nil {
			panic(err)
		}

		db.CloseConnection(con)

		db.pool.Close()
	}
}

// GetConnection gets a sqlite.Conn from an open connection pool.
// CloseConnection(con) must be called to release the connection.
func (db *Writer) GetConnection() (*sqlite.Conn, error) {
	con := db.pool.Get(emptyContext)
	if con == nil {
		return nil, fmt.Errorf("connection could not be opened")
	}
	return con, nil
}

// CloseConnection closes an open sqlite.Conn and returns it to the pool.
func (db *Writer) CloseConnection(con *sqlite.Conn) {
	if con != nil {
		db.pool.Put(con)
	}
}

func writeMetadataItem(con *sqlite.Conn, key string, value interface{}) error {
	return sqlitex.Exec(con, "INSERT INTO metadata (name,value) VALUES (?, ?)", nil, key, value)
}

func (db *Writer) WriteMetadata(name string, description string) (err error) {
	if db == nil || db.pool == nil {
		return fmt.Errorf("cannot write to closed bitmap bank")
	}

	con, e := db.GetConnection()
	if e != nil {
		return e
	}
	defer db.CloseConnection(con)

	// create savepoint
	defer sqlitex.Save(con)(&err)

	if err = writeMetadataItem(con, "name", name); err != nil {
		return err
	}
	if description != "" {
		if err = writeMetadataItem(con, "description", description); err != nil {
			return err
		}
	}
	if err = writeMetadataItem(con, "format", "MONO_HLSB"); err != nil {
		return err
	}
	if err = writeMetadataItem(con, "version", "1.0.0"); err != nil {
		return err
	}

	return nil
}

func (db *Writer) WriteBitmap(name string, width int, height int, data []byte) error {
	con, err := db.GetConnection()
	if err != nil {
		return err
	}
	defer db.CloseConnection(con)

	return WriteBitmap(con, name, width, height, data)
}

// WriteBitmap writes a packed bitmap to the open connection.
func WriteBitmap(con *sqlite.Conn, name string, width int, height int, data []byte) (err error) {
	defer sqlitex.Save(con)(&err)

	err = sqlitex.Exec(con, "INSERT OR REPLACE INTO bitmaps (name, width, height, data) values (?, ?, ?, ?)",
		nil, name, width, height, data)
	if err != nil {
		return fmt.Errorf("could not write bitmap %q to bank: %q", name, err)
	}

	return nil
}
