package compat

import (
	"slices"

	"github.com/syssam/sqldata"
)

//go:generate go run ./internal/gen

// Supports reports whether the value domain is available on the given
// dialect.
func Supports(dialect string, t sqldata.Type) bool {
	return slices.Contains(typesByDialect[dialect], t)
}

// TypesFor returns the value domains available on the given dialect,
// ordered by domain. The result is nil for unknown dialects.
func TypesFor(dialect string) []sqldata.Type {
	return slices.Clone(typesByDialect[dialect])
}
