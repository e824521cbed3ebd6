package deck

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Entry is one row of a table: values keyed by the table's column names.
// Entries from the same deck share one column header.
type Entry struct {
	columns []string
	values  []string
}

// Get returns the value in the named column, or "" if the column is absent.
func (e Entry) Get(column string) string {
	for i, c := range e.columns {
		if c == column {
			return e.values[i]
		}
	}
	return ""
}

// Values returns a copy of the row's values in column order.
func (e Entry) Values() []string {
	return slices.Clone(e.values)
}

// Columns returns a copy of the row's column names.
func (e Entry) Columns() []string {
	return slices.Clone(e.columns)
}

// IsZero reports whether e is the zero Entry.
func (e Entry) IsZero() bool {
	return e.values == nil
}

// Equal reports whether two rows hold the same values.
func (e Entry) Equal(other Entry) bool {
	return slices.Equal(e.values, other.values)
}

func (e Entry) key() string {
	quoted := make([]string, len(e.values))
	for i, v := range e.values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ",")
}

// Deck is an ordered list of entries that share a column header.
// A Deck is never modified in place; removal returns a new Deck.
type Deck struct {
	columns []string
	entries []Entry
}

// New builds a deck from a header and rows. Every row must have one value per column.
func New(columns []string, rows ...[]string) (*Deck, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("empty header")
	}
	cols := slices.Clone(columns)
	d := &Deck{columns: cols, entries: make([]Entry, 0, len(rows))}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i+1, len(row), len(cols))
		}
		d.entries = append(d.entries, Entry{columns: cols, values: slices.Clone(row)})
	}
	return d, nil
}

// Columns returns a copy of the header.
func (d *Deck) Columns() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.columns)
}

// Len returns the number of rows.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the rows in order. The slice must not be modified.
func (d *Deck) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Count returns how many rows equal e.
func (d *Deck) Count(e Entry) int {
	n := 0
	for _, x := range d.Entries() {
		if x.Equal(e) {
			n++
		}
	}
	return n
}

// Contains reports whether some row equals e.
func (d *Deck) Contains(e Entry) bool {
	return slices.ContainsFunc(d.Entries(), e.Equal)
}

// HasColumn reports whether the header names column.
func (d *Deck) HasColumn(column string) bool {
	return slices.Contains(d.Columns(), column)
}

// Without returns a new deck with every row equal to e removed, not only the first.
func (d *Deck) Without(e Entry) *Deck {
	kept := make([]Entry, 0, d.Len())
	for _, x := range d.Entries() {
		if !x.Equal(e) {
			kept = append(kept, x)
		}
	}
	return &Deck{columns: d.columns, entries: kept}
}

// Deduplicate returns a new deck keeping the first occurrence of each distinct row.
func Deduplicate(d *Deck) *Deck {
	seen := make(map[string]struct{}, d.Len())
	kept := make([]Entry, 0, d.Len())
	for _, x := range d.Entries() {
		k := x.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, x)
	}
	return &Deck{columns: d.columns, entries: kept}
}

// Rand is the random source used by PickRandom; *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// PickRandom returns a uniformly chosen row. ok is false when the deck is empty.
func (d *Deck) PickRandom(r Rand) (e Entry, ok bool) {
	n := d.Len()
	if n == 0 {
		return Entry{}, false
	}
	return d.entries[r.IntN(n)], true
}

func (d *Deck) records() [][]string {
	out := make([][]string, 0, len(d.entries)+1)
	out = append(out, d.columns)
	for _, e := range d.entries {
		out = append(out, e.values)
	}
	return out
}
