package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"qsweeper/qtable"

	_ "github.com/mattn/go-sqlite3"
)

const tableKey = "value_table"

// SQLiteStore keeps the gob encoded snapshot as a single row of a key/value table.
type SQLiteStore struct {
	name string
	db   *sql.DB
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return s != ""
}

// OpenSQLite opens the database file at path and prepares the named table.
func OpenSQLite(path, name string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	s, err := NewSQLiteStore(db, name)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore creates the table if needed. name may only contain upper- or lowercase
// Latin letters since it is spliced into the statements.
func NewSQLiteStore(db *sql.DB, name string) (*SQLiteStore, error) {
	if !isLetters(name) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return &SQLiteStore{name: name, db: db}, nil
}

func (s *SQLiteStore) Load() (qtable.Snapshot, error) {
	var v []byte
	err := s.db.QueryRow(`SELECT value FROM `+s.name+` WHERE key = ?;`, tableKey).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to query value table: %w", err)
	}

	snapshot := qtable.Snapshot{}
	if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode value table: %w", err)
	}
	return snapshot, nil
}

func (s *SQLiteStore) Save(snapshot qtable.Snapshot) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode value table: %w", err)
	}
	_, err := s.db.Exec(`
INSERT INTO `+s.name+` (key, value)
VALUES(?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value;`,
		tableKey, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to save value table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
