package qtable

import (
	"fmt"
	"sort"
)

// Actions is the number of relative actions stored per state.
const Actions = 8

// Row holds the value of every relative action for one state.
type Row [Actions]float64

// Snapshot is the flat form of a table exchanged with storage: key -> action -> value.
type Snapshot map[string]map[int]float64

// Table is a sparse map from encoded state keys to action values. Entries are never evicted.
type Table struct {
	rows map[string]*Row
}

func New() *Table {
	return &Table{rows: make(map[string]*Row)}
}

// Lookup returns the row stored for key without inserting it.
func (t *Table) Lookup(key string) (Row, bool) {
	row, ok := t.rows[key]
	if !ok {
		return Row{}, false
	}
	return *row, true
}

// Insert adds a zeroed row for key if none exists and returns the stored row.
func (t *Table) Insert(key string) Row {
	return *t.row(key)
}

func (t *Table) row(key string) *Row {
	row, ok := t.rows[key]
	if !ok {
		row = &Row{}
		t.rows[key] = row
	}
	return row
}

// Adjust adds delta to the value of (key, action), inserting the row on demand.
func (t *Table) Adjust(key string, action int, delta float64) {
	if action < 0 || action >= Actions {
		panic(fmt.Sprintf("action %d out of range", action))
	}
	t.row(key)[action] += delta
}

// Sum returns the total of all action values for key, 0 for unseen keys.
func (t *Table) Sum(key string) float64 {
	row, ok := t.rows[key]
	if !ok {
		return 0
	}
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	return sum
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Keys returns every stored key in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.rows))
	for key := range t.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copies the table into its flat storage form.
func (t *Table) Snapshot() Snapshot {
	snapshot := make(Snapshot, len(t.rows))
	for key, row := range t.rows {
		actions := make(map[int]float64, Actions)
		for a, v := range row {
			actions[a] = v
		}
		snapshot[key] = actions
	}
	return snapshot
}

// FromSnapshot rebuilds a table. Missing actions default to 0.
func FromSnapshot(snapshot Snapshot) (*Table, error) {
	t := New()
	for key, actions := range snapshot {
		row := t.row(key)
		for a, v := range actions {
			if a < 0 || a >= Actions {
				return nil, fmt.Errorf("failed to load key %q: action %d out of range", key, a)
			}
			row[a] = v
		}
	}
	return t, nil
}
