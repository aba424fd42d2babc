// Package table is a storage class that stores rows the way one would in a
// database table, with set-valued indexes on the desired columns. It is
// optimized for lookups.
package table

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// Where is a column=value query. Nil values are ignored.
type Where map[string]any

// Schema declares the shape of the rows of a table.
type Schema[R comparable] struct {
	// Columns are the column names in positional order.
	Columns []string
	// Indexes names the columns that can be queried.
	Indexes []string
	// Make builds a row from values given in column order.
	// It returns an error when a value has the wrong type.
	Make func(values []any) (R, error)
	// Field returns the value a row holds for the column at position i.
	Field func(row R, i int) any
}

// Table holds a set of rows plus, per indexed column, a map from value to the
// set of rows holding that value. A row present in the table is present in the
// bucket of every indexed column; buckets never stay empty.
type Table[R comparable] struct {
	schema  Schema[R]
	columns map[string]int
	rows    map[R]struct{}
	index   map[string]map[any]map[R]struct{}
}

// New creates a table for the given schema.
func New[R comparable](schema Schema[R]) (*Table[R], error) {
	if schema.Make == nil || schema.Field == nil {
		return nil, fmt.Errorf("%w: schema needs both Make and Field", ErrSchemaMismatch)
	}

	columns := make(map[string]int, len(schema.Columns))
	for i, name := range schema.Columns {
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, name)
		}
		columns[name] = i
	}

	index := make(map[string]map[any]map[R]struct{}, len(schema.Indexes))
	for _, name := range schema.Indexes {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
		}
		index[name] = make(map[any]map[R]struct{})
	}

	return &Table[R]{
		schema:  schema,
		columns: columns,
		rows:    make(map[R]struct{}),
		index:   index,
	}, nil
}

// Columns returns the column names in positional order.
func (t *Table[R]) Columns() []string {
	return slices.Clone(t.schema.Columns)
}

// Len returns the number of rows in the table.
func (t *Table[R]) Len() int {
	return len(t.rows)
}

// Contains reports whether the exact row is stored.
func (t *Table[R]) Contains(row R) bool {
	_, ok := t.rows[row]
	return ok
}

// Insert adds a row built from values. The number of values must match the
// number of columns.
func (t *Table[R]) Insert(values ...any) error {
	if len(values) != len(t.schema.Columns) {
		return fmt.Errorf("%w: number of arguments doesn't match the number of columns (%d != %d)",
			ErrSchemaMismatch, len(values), len(t.schema.Columns))
	}

	row, err := t.schema.Make(values)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	if !hashable(reflect.ValueOf(row)) {
		return fmt.Errorf("%w: row %v cannot be stored, it holds a slice, map or func", ErrSchemaMismatch, row)
	}

	t.Add(row)
	return nil
}

// Add stores an already built row. The row must not hold slices, maps or
// funcs, even behind interfaces; Insert checks this, Add panics.
func (t *Table[R]) Add(row R) {
	t.rows[row] = struct{}{}
	for name, buckets := range t.index {
		v := t.schema.Field(row, t.columns[name])
		bucket, ok := buckets[v]
		if !ok {
			bucket = make(map[R]struct{})
			buckets[v] = bucket
		}
		bucket[row] = struct{}{}
	}
}

// Delete removes rows from the table. Either a complete row or a query may be
// given. An empty query matches every row.
func (t *Table[R]) Delete(row *R, where Where) error {
	if row != nil && len(where) > 0 {
		return ErrConflictingArguments
	}

	if row != nil {
		if hashable(reflect.ValueOf(*row)) && t.Contains(*row) {
			t.remove(*row)
		}
		return nil
	}

	matches, err := t.Query(where)
	if err != nil {
		return err
	}
	for _, r := range slices.Collect(matches) {
		t.remove(r)
	}
	return nil
}

// DeleteRow removes one exact row. Deleting an absent row is a no-op.
func (t *Table[R]) DeleteRow(row R) {
	_ = t.Delete(&row, nil)
}

// DeleteWhere removes every row matching the query.
func (t *Table[R]) DeleteWhere(where Where) error {
	return t.Delete(nil, where)
}

func (t *Table[R]) remove(row R) {
	delete(t.rows, row)
	for name, buckets := range t.index {
		v := t.schema.Field(row, t.columns[name])
		bucket, ok := buckets[v]
		if !ok {
			continue
		}
		delete(bucket, row)
		if len(bucket) == 0 {
			delete(buckets, v)
		}
	}
}

// Query returns the rows matching every non-nil term of where. Without
// terms all rows are returned. Every column in where must be declared and
// indexed. The sequence is evaluated lazily each time it is ranged over and
// has no particular order.
func (t *Table[R]) Query(where Where) (iter.Seq[R], error) {
	if err := t.check(where); err != nil {
		return nil, err
	}

	type term struct {
		column string
		value  any
	}
	var terms []term
	for column, value := range where {
		if value != nil {
			terms = append(terms, term{column, value})
		}
	}

	return func(yield func(R) bool) {
		if len(terms) == 0 {
			for row := range t.rows {
				if !yield(row) {
					return
				}
			}
			return
		}

		buckets := make([]map[R]struct{}, 0, len(terms))
		for _, tm := range terms {
			bucket, ok := t.index[tm.column][tm.value]
			if !ok {
				return
			}
			buckets = append(buckets, bucket)
		}
		sort.Slice(buckets, func(i, j int) bool {
			return len(buckets[i]) < len(buckets[j])
		})

	rows:
		for row := range buckets[0] {
			for _, other := range buckets[1:] {
				if _, ok := other[row]; !ok {
					continue rows
				}
			}
			if !yield(row) {
				return
			}
		}
	}, nil
}

func (t *Table[R]) check(where Where) error {
	var unknown, unindexed, unhashable []string
	for column, value := range where {
		if _, ok := t.columns[column]; !ok {
			unknown = append(unknown, column)
		} else if _, ok := t.index[column]; !ok {
			unindexed = append(unindexed, column)
		} else if !hashable(reflect.ValueOf(value)) {
			unhashable = append(unhashable, column)
		}
	}

	switch {
	case len(unknown) == 1:
		return fmt.Errorf("%w %q", ErrUnknownColumn, unknown[0])
	case len(unknown) > 1:
		sort.Strings(unknown)
		return fmt.Errorf("%w(s) %s", ErrUnknownColumn, strings.Join(unknown, ", "))
	case len(unindexed) == 1:
		return fmt.Errorf("%w: %q", ErrNotIndexed, unindexed[0])
	case len(unindexed) > 1:
		sort.Strings(unindexed)
		return fmt.Errorf("%w: %s", ErrNotIndexed, strings.Join(unindexed, ", "))
	case len(unhashable) > 0:
		sort.Strings(unhashable)
		return fmt.Errorf("%w: unusable query value for %s", ErrSchemaMismatch, strings.Join(unhashable, ", "))
	}
	return nil
}

// hashable reports whether v can be used as a map key without panicking.
func hashable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Interface:
		return v.IsNil() || hashable(v.Elem())
	case reflect.Struct:
		for i := range v.NumField() {
			if !hashable(v.Field(i)) {
				return false
			}
		}
	case reflect.Array:
		for i := range v.Len() {
			if !hashable(v.Index(i)) {
				return false
			}
		}
	}
	return true
}
