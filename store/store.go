package store

import (
	"fmt"
	"qsweeper/qtable"
)

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("value table not found")
)

// Store persists value table snapshots between runs. Every Save overwrites the whole table.
type Store interface {
	// Load returns ErrNotFound when nothing was saved yet
	Load() (qtable.Snapshot, error)
	Save(snapshot qtable.Snapshot) error
	Close() error
}

// Kind selects a Store implementation.
type Kind string

const (
	JSON   Kind = "json"
	SQLite Kind = "sqlite"
)

// Open returns the store of the given kind backed by path.
func Open(kind Kind, path string) (Store, error) {
	switch kind {
	case JSON:
		return NewFileStore(path), nil
	case SQLite:
		s, err := OpenSQLite(path, "qtable")
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
