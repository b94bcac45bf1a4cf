package sandbox

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Executor runs one arbitrary SQL statement (or statement batch) against the
// live database. It is the only component allowed to execute raw user text;
// everything above it (grading, HTTP) stays unchanged if a restricted
// implementation is ever swapped in.
type Executor interface {
	Execute(ctx context.Context, query string) *QueryResult
}

// SQLRunner executes against a live connection with no statement-type
// filtering, no transaction wrapping and no retries. A failed statement in
// the middle of a batch leaves earlier statements applied; the reference
// solution runs under exactly the same rules, so grading stays symmetric.
type SQLRunner struct {
	db *sqlx.DB
}

func NewSQLRunner(db *sqlx.DB) *SQLRunner {
	return &SQLRunner{db: db}
}

func (r *SQLRunner) Execute(ctx context.Context, query string) *QueryResult {
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return &QueryResult{Err: err.Error()}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return &QueryResult{Err: err.Error()}
	}

	rs := &RowSet{Columns: cols, Rows: [][]interface{}{}}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return &QueryResult{Err: err.Error()}
		}
		for i, v := range vals {
			// Text columns may arrive as raw bytes depending on the
			// protocol; normalize so serialization is stable.
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return &QueryResult{Err: err.Error()}
	}

	return &QueryResult{Rows: rs}
}
