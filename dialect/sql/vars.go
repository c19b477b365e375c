package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/syssam/sqldata/dialect"
)

// sessionVar is one SET <name> = '<value>' pair applied before a
// statement runs.
type sessionVar struct {
	name, value string
}

type varsCtxKey struct{}

// WithVar returns a context that applies the session variable before
// every statement executed with it. Variables apply in attachment
// order, so a later WithVar for the same name wins. On a connection
// pool the statement is pinned to a dedicated connection, and Postgres
// and MySQL variables are reset before the connection is released.
//
// Session variables require an engine with the SET <name> = '<value>'
// form; statements on SQLite and SQL Server fail when the context
// carries any.
func WithVar(ctx context.Context, name, value string) context.Context {
	vars, _ := ctx.Value(varsCtxKey{}).([]sessionVar)
	// Copy before append. Two contexts derived from the same parent
	// must not share a backing array.
	next := make([]sessionVar, len(vars), len(vars)+1)
	copy(next, vars)
	next = append(next, sessionVar{name: name, value: value})
	return context.WithValue(ctx, varsCtxKey{}, next)
}

// WithIntVar is WithVar for integer values.
func WithIntVar(ctx context.Context, name string, value int) context.Context {
	return WithVar(ctx, name, strconv.Itoa(value))
}

// VarFromContext returns the value the session observes for name, that
// is, the most recently attached one.
func VarFromContext(ctx context.Context, name string) (string, bool) {
	vars, _ := ctx.Value(varsCtxKey{}).([]sessionVar)
	for i := len(vars) - 1; i >= 0; i-- {
		if vars[i].name == name {
			return vars[i].value, true
		}
	}
	return "", false
}

// sessionConn returns the ExecQuerier to run a statement on after
// applying the context's session variables. Without variables it is the
// Conn itself and the closer is nil. With variables on a pool, the
// returned closer resets them and releases the pinned connection; the
// caller must invoke it once the statement's rows are consumed.
func (c Conn) sessionConn(ctx context.Context) (ExecQuerier, func() error, error) {
	vars, _ := ctx.Value(varsCtxKey{}).([]sessionVar)
	if len(vars) == 0 {
		return c, nil, nil
	}
	switch c.dialect {
	case dialect.SQLite, dialect.MSSQL:
		// Neither engine accepts the SET <name> = '<value>' form.
		return nil, nil, fmt.Errorf("dialect/sql: session variables are not supported on %q", c.dialect)
	}
	ex, release, err := c.pin(ctx)
	if err != nil {
		return nil, nil, err
	}
	reset, err := c.applyVars(ctx, ex, vars)
	if err != nil {
		if release != nil {
			err = errors.Join(err, release())
		}
		return nil, nil, err
	}
	if release == nil || len(reset) == 0 {
		return ex, release, nil
	}
	return ex, func() error {
		// The statement's context may already be canceled. Give the
		// cleanup its own deadline so the connection goes back clean.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, q := range reset {
			if _, err := ex.ExecContext(ctx, q); err != nil {
				return errors.Join(err, release())
			}
		}
		return release()
	}, nil
}

// pin returns an ExecQuerier scoped to a single connection. Inside a
// transaction that is the transaction itself. On a pool it checks out a
// dedicated connection and returns its release function.
func (c Conn) pin(ctx context.Context) (ExecQuerier, func() error, error) {
	switch e := c.ExecQuerier.(type) {
	case *sql.Tx:
		return e, nil, nil
	case *sql.DB:
		conn, err := e.Conn(ctx)
		if err != nil {
			return nil, nil, err
		}
		return conn, conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("dialect/sql: cannot pin a connection on %T", c.ExecQuerier)
	}
}

// applyVars executes one SET per variable in attachment order and
// returns the statements that undo them, one per distinct name.
func (c Conn) applyVars(ctx context.Context, ex ExecQuerier, vars []sessionVar) ([]string, error) {
	var (
		reset []string
		seen  = make(map[string]struct{}, len(vars))
	)
	for _, sv := range vars {
		if !validSessionName(sv.name) {
			return nil, fmt.Errorf("dialect/sql: invalid session variable name: %q", sv.name)
		}
		if _, err := ex.ExecContext(ctx, fmt.Sprintf("SET %s = '%s'", sv.name, escapeSessionValue(sv.value))); err != nil {
			return nil, err
		}
		if _, ok := seen[sv.name]; ok {
			continue
		}
		seen[sv.name] = struct{}{}
		switch c.dialect {
		case dialect.Postgres:
			reset = append(reset, "RESET "+sv.name)
		case dialect.MySQL:
			reset = append(reset, "SET "+sv.name+" = NULL")
		}
	}
	return reset, nil
}

var sessionNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// validSessionName accepts plain and dotted identifiers, such as
// "search_path" or "app.tenant", up to 128 bytes. Names are inlined in
// SET statements, so anything else is rejected.
func validSessionName(s string) bool {
	return s != "" && len(s) <= 128 && sessionNameRe.MatchString(s)
}

// escapeSessionValue doubles backslashes and single quotes so the value
// can be inlined in a SET statement. SET takes no placeholders.
func escapeSessionValue(s string) string {
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `''`)
}
