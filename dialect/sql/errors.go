package sql

import (
	"errors"
	"slices"
	"strings"
)

// ConstraintError is returned or wrapped when a statement violates
// a database constraint.
type ConstraintError struct {
	msg  string
	wrap error
}

// NewConstraintError creates a ConstraintError with the given message
// and the underlying driver error.
func NewConstraintError(msg string, wrap error) *ConstraintError {
	return &ConstraintError{msg: msg, wrap: wrap}
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.msg
}

// Unwrap returns the underlying driver error.
func (e *ConstraintError) Unwrap() error { return e.wrap }

// violation is the class of a constraint violation.
type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationCheck
)

// errorCoder is implemented by driver errors that expose string error codes.
type errorCoder interface {
	Code() string
}

// errorIntCoder is implemented by SQLite drivers that expose
// numeric result codes, e.g. modernc.org/sqlite.
type errorIntCoder interface {
	Code() int
}

// errorNumberer is implemented by mysql.MySQLError.
type errorNumberer interface {
	Number() uint16
}

// sqlStateError is implemented by lib/pq and pgx errors.
type sqlStateError interface {
	SQLState() string
}

// sqlErrorNumberer is implemented by go-mssqldb errors.
type sqlErrorNumberer interface {
	SQLErrorNumber() int32
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row.
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row.
	mysqlCheckConstraintViolate = 3819
)

// SQLite extended result codes for constraint violations.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// SQL Server error numbers for constraint violations. Number 547
// covers both foreign-key and check conflicts and is disambiguated
// by the message text.
const (
	mssqlConstraintConflict = 547
	mssqlDuplicateKeyRow    = 2601
	mssqlUniqueViolation    = 2627
)

// IsConstraintError reports if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	var e *ConstraintError
	return errors.As(err, &e) || classify(err) != violationNone
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness
// constraint violation, e.g. a duplicate value in a unique index.
func IsUniqueConstraintError(err error) bool {
	return classify(err) == violationUnique
}

// IsForeignKeyConstraintError reports if the error resulted from a database
// foreign-key constraint violation, e.g. the parent row does not exist.
func IsForeignKeyConstraintError(err error) bool {
	return classify(err) == violationForeignKey
}

// IsCheckConstraintError reports if the error resulted from a database check
// constraint violation, e.g. a value does not satisfy a check condition.
func IsCheckConstraintError(err error) bool {
	return classify(err) == violationCheck
}

// classify walks the error chain and maps driver error codes to a
// violation class, falling back to message matching for drivers that
// expose no code accessors.
func classify(err error) violation {
	if err == nil {
		return violationNone
	}
	// PostgreSQL SQLSTATE codes (lib/pq, pgx).
	if e, ok := asError[sqlStateError](err); ok {
		if v := pgState(e.SQLState()); v != violationNone {
			return v
		}
	}
	if e, ok := asError[errorCoder](err); ok {
		if v := pgState(e.Code()); v != violationNone {
			return v
		}
	}
	// MySQL error numbers.
	if e, ok := asError[errorNumberer](err); ok {
		switch e.Number() {
		case mysqlDuplicateEntry:
			return violationUnique
		case mysqlForeignKeyParent, mysqlForeignKeyChild:
			return violationForeignKey
		case mysqlCheckConstraintViolate:
			return violationCheck
		}
	}
	// SQLite extended result codes.
	if e, ok := asError[errorIntCoder](err); ok {
		switch e.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return violationUnique
		case sqliteConstraintForeignKey:
			return violationForeignKey
		case sqliteConstraintCheck:
			return violationCheck
		}
	}
	// SQL Server error numbers.
	if e, ok := asError[sqlErrorNumberer](err); ok {
		switch e.SQLErrorNumber() {
		case mssqlDuplicateKeyRow, mssqlUniqueViolation:
			return violationUnique
		case mssqlConstraintConflict:
			if strings.Contains(err.Error(), "CHECK constraint") {
				return violationCheck
			}
			return violationForeignKey
		}
	}
	// Fallback to message matching for drivers without code accessors.
	// The texts cover MySQL, PostgreSQL, SQLite and SQL Server in order.
	msg := err.Error()
	switch {
	case containsAny(msg,
		"Error 1062",
		"violates unique constraint",
		"UNIQUE constraint failed",
		"Cannot insert duplicate key row",
	):
		return violationUnique
	case containsAny(msg,
		"Error 1451",
		"Error 1452",
		"violates foreign key constraint",
		"FOREIGN KEY constraint failed",
		"conflicted with the FOREIGN KEY constraint",
	):
		return violationForeignKey
	case containsAny(msg,
		"Error 3819",
		"violates check constraint",
		"CHECK constraint failed",
		"conflicted with the CHECK constraint",
	):
		return violationCheck
	}
	return violationNone
}

// pgState maps a SQLSTATE code to a violation class.
func pgState(code string) violation {
	switch code {
	case pgUniqueViolation:
		return violationUnique
	case pgForeignKeyViolation:
		return violationForeignKey
	case pgCheckViolation:
		return violationCheck
	}
	return violationNone
}

// asError extracts an error implementing T from the chain, including
// branches joined with errors.Join.
func asError[T any](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	return slices.ContainsFunc(substrings, func(sub string) bool {
		return strings.Contains(s, sub)
	})
}
