package sandbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    *RowSet
		b    *RowSet
		want bool
	}{
		{
			name: "identical sets match",
			a: &RowSet{
				Columns: []string{"id", "name"},
				Rows:    [][]interface{}{{int64(1), "Alice"}, {int64(2), "Bob"}},
			},
			b: &RowSet{
				Columns: []string{"id", "name"},
				Rows:    [][]interface{}{{int64(1), "Alice"}, {int64(2), "Bob"}},
			},
			want: true,
		},
		{
			name: "row order matters",
			a: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{int64(1)}, {int64(2)}},
			},
			b: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{int64(2)}, {int64(1)}},
			},
			want: false,
		},
		{
			name: "column order matters",
			a: &RowSet{
				Columns: []string{"id", "name"},
				Rows:    [][]interface{}{{int64(1), "Alice"}},
			},
			b: &RowSet{
				Columns: []string{"name", "id"},
				Rows:    [][]interface{}{{"Alice", int64(1)}},
			},
			want: false,
		},
		{
			name: "different values differ",
			a: &RowSet{
				Columns: []string{"name"},
				Rows:    [][]interface{}{{"Alice"}},
			},
			b: &RowSet{
				Columns: []string{"name"},
				Rows:    [][]interface{}{{"Bob"}},
			},
			want: false,
		},
		{
			name: "integer and its string form compare equal",
			a: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{int64(1)}},
			},
			b: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{"1"}},
			},
			want: true,
		},
		{
			name: "nulls match nulls",
			a: &RowSet{
				Columns: []string{"video_url"},
				Rows:    [][]interface{}{{nil}},
			},
			b: &RowSet{
				Columns: []string{"video_url"},
				Rows:    [][]interface{}{{nil}},
			},
			want: true,
		},
		{
			name: "null differs from empty string",
			a: &RowSet{
				Columns: []string{"video_url"},
				Rows:    [][]interface{}{{nil}},
			},
			b: &RowSet{
				Columns: []string{"video_url"},
				Rows:    [][]interface{}{{""}},
			},
			want: false,
		},
		{
			name: "empty sets match",
			a:    &RowSet{Columns: []string{"id"}, Rows: [][]interface{}{}},
			b:    &RowSet{Columns: []string{"id"}, Rows: [][]interface{}{}},
			want: true,
		},
		{
			name: "extra row differs",
			a: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{int64(1)}},
			},
			b: &RowSet{
				Columns: []string{"id"},
				Rows:    [][]interface{}{{int64(1)}, {int64(1)}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestCanonicalIsDeterministic(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"id", "name", "email"},
		Rows: [][]interface{}{
			{int64(1), "Alice", "alice@example.com"},
			{int64(2), "Bob", nil},
		},
	}
	assert.Equal(t, rs.Canonical(), rs.Canonical())
	assert.Contains(t, rs.Canonical(), "email=NULL")
}

func TestRowSetMarshalJSON(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"id", "name"},
		Rows: [][]interface{}{
			{int64(1), "Alice"},
			{int64(2), nil},
		},
	}

	out, err := json.Marshal(rs)
	require.NoError(t, err)

	// Keys stay in database column order, not alphabetical.
	assert.JSONEq(t, `[{"id":1,"name":"Alice"},{"id":2,"name":null}]`, string(out))
	assert.Equal(t, `[{"id":1,"name":"Alice"},{"id":2,"name":null}]`, string(out))
}

func TestRowSetMarshalJSONEmpty(t *testing.T) {
	rs := &RowSet{Columns: []string{"id"}, Rows: [][]interface{}{}}
	out, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(out))
}

func TestQueryResultFailed(t *testing.T) {
	ok := &QueryResult{Rows: &RowSet{}}
	assert.False(t, ok.Failed())

	failed := &QueryResult{Err: `pq: relation "nope" does not exist`}
	assert.True(t, failed.Failed())
}
