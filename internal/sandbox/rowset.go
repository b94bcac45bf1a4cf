package sandbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RowSet is the ordered result of a query: rows in the order the database
// returned them, values aligned with Columns. Column order is preserved
// because grading compares it.
type RowSet struct {
	Columns []string
	Rows    [][]interface{}
}

// QueryResult normalizes one execution attempt: either a row set or the
// driver's error text, never both.
type QueryResult struct {
	Rows *RowSet
	Err  string
}

func (r *QueryResult) Failed() bool {
	return r.Err != ""
}

// MarshalJSON renders the row set as an array of column→value objects with
// keys written in database column order, matching the wire shape the
// frontend consumes.
func (rs *RowSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range rs.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(row[j])
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Canonical serializes the row set for grading: rows in order, each row's
// columns in database order, values stringified generically. Integer 1 and
// string "1" serialize identically on purpose; the comparison is structural,
// not type-aware.
func (rs *RowSet) Canonical() string {
	var b strings.Builder
	for _, row := range rs.Rows {
		for j, col := range rs.Columns {
			b.WriteString(col)
			b.WriteByte('=')
			if row[j] == nil {
				b.WriteString("NULL")
			} else {
				fmt.Fprintf(&b, "%v", row[j])
			}
			b.WriteByte('\x1f')
		}
		b.WriteByte('\x1e')
	}
	return b.String()
}

// Equal reports result-set equivalence as the grader defines it: identical
// canonical forms. Row order and column order are both significant.
func Equal(a, b *RowSet) bool {
	return a.Canonical() == b.Canonical()
}
