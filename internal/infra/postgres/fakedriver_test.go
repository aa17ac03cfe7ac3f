package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeState backs one registered fake driver.
type fakeState struct {
	mu        sync.Mutex
	schemaErr bool
	queryErr  bool
	tokens    [][]driver.Value
	certs     map[string][]driver.Value
	execs     []string
}

type fakeDriver struct{ st *fakeState }

type fakeConn struct{ st *fakeState }

func (d fakeDriver) Open(string) (driver.Conn, error) { return fakeConn(d), nil }

func (c fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c fakeConn) Close() error                        { return nil }
func (c fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }

func (c fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.st.mu.Lock()
	defer c.st.mu.Unlock()
	c.st.execs = append(c.st.execs, query)

	if strings.Contains(query, "CREATE TABLE") {
		if c.st.schemaErr {
			return nil, errors.New("schema failed")
		}
		return driver.RowsAffected(0), nil
	}
	if strings.HasPrefix(strings.TrimSpace(query), "INSERT INTO certificates") {
		row := make([]driver.Value, len(args))
		for i, a := range args {
			row[i] = a.Value
		}
		if c.st.certs == nil {
			c.st.certs = map[string][]driver.Value{}
		}
		c.st.certs[row[0].(string)] = row
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unexpected exec: %s", query)
}

func (c fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.st.mu.Lock()
	defer c.st.mu.Unlock()
	if c.st.queryErr {
		return nil, errors.New("query failed")
	}

	switch {
	case strings.Contains(query, "FROM tokens"):
		return &fakeRows{cols: []string{"token", "rate_limit"}, data: c.st.tokens}, nil
	case strings.Contains(query, "FROM certificates"):
		rows := &fakeRows{cols: []string{"certificate_id", "recipient_name", "recipient_email", "course_title",
			"completion_date", "verification_url", "digest", "issued_at"}}
		if row, ok := c.st.certs[args[0].Value.(string)]; ok {
			rows.data = [][]driver.Value{row}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

type fakeRows struct {
	cols []string
	data [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }
func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.i])
	r.i++
	return nil
}

var testDriverCounter atomic.Int64

// openFakeDB returns a manager already holding a fake *sql.DB under dsn "fake".
func openFakeDB(t *testing.T, st *fakeState) *DB {
	t.Helper()
	name := fmt.Sprintf("fakedrv_%d", testDriverCounter.Add(1))
	sql.Register(name, fakeDriver{st: st})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &DB{db: db, dsn: "fake"}
}
