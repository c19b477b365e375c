package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/sqldata"
)

// ValidationError describes a single issue found during schema
// validation.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking marks changes that can fail or lose data when
	// applied to a populated database.
	Breaking bool
}

func (e *ValidationError) Error() string {
	subject := e.Table
	if e.Column != "" {
		subject += "." + e.Column
	}
	return subject + ": " + e.Message
}

// ValidationResult holds the issues found by a validation pass,
// split into hard errors and warnings.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// warn files e as a warning.
func (r *ValidationResult) warn(e *ValidationError) {
	r.Warnings = append(r.Warnings, e)
}

// fail files e as a hard error.
func (r *ValidationResult) fail(e *ValidationError) {
	r.Errors = append(r.Errors, e)
}

// failUnless demotes e to a warning when allowed, and files it as an
// error otherwise. Validation options use it to let callers accept
// specific classes of breaking changes.
func (r *ValidationResult) failUnless(allowed bool, e *ValidationError) {
	if allowed {
		r.warn(e)
		return
	}
	r.fail(e)
}

// merge appends the issues of other to r.
func (r *ValidationResult) merge(other *ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// HasErrors reports if the result contains any errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports if the result contains any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges reports if any issue, error or warning, is
// marked as breaking.
func (r *ValidationResult) HasBreakingChanges() bool {
	breaking := func(e *ValidationError) bool { return e.Breaking }
	return slices.ContainsFunc(r.Errors, breaking) || slices.ContainsFunc(r.Warnings, breaking)
}

// String returns a human-readable summary of the validation result,
// listing errors before warnings.
func (r *ValidationResult) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "No issues found"
	}
	var sb strings.Builder
	writeIssues(&sb, "Errors:", r.Errors)
	writeIssues(&sb, "Warnings:", r.Warnings)
	return sb.String()
}

func writeIssues(sb *strings.Builder, header string, issues []*ValidationError) {
	if len(issues) == 0 {
		return
	}
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, e := range issues {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		if e.Breaking {
			sb.WriteString(" [BREAKING]")
		}
		sb.WriteByte('\n')
	}
}

// ValidateOption configures diff validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowDropColumn       bool
	allowDropTable        bool
	allowDropIndex        bool
	allowNullToNotNull    bool
	allowEnumValueRemoval bool
}

// AllowDropColumn downgrades dropped columns from errors to warnings.
func AllowDropColumn() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropColumn = true
	}
}

// AllowDropTable downgrades dropped tables from errors to warnings.
func AllowDropTable() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropTable = true
	}
}

// AllowDropIndex downgrades dropped indexes from errors to warnings.
func AllowDropIndex() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropIndex = true
	}
}

// AllowNullToNotNull downgrades NULL to NOT NULL changes from errors
// to warnings.
func AllowNullToNotNull() ValidateOption {
	return func(c *validateConfig) {
		c.allowNullToNotNull = true
	}
}

// AllowEnumValueRemoval downgrades removed enum values from errors to
// warnings.
func AllowEnumValueRemoval() ValidateOption {
	return func(c *validateConfig) {
		c.allowEnumValueRemoval = true
	}
}

// ValidateDiff validates the difference between the current and the
// desired schema. It reports errors for breaking changes and warnings
// for operations that can fail on populated databases.
//
// Callers typically gate a migration on the result:
//
//	res := schema.ValidateDiff(current, desired, schema.AllowDropIndex())
//	if res.HasBreakingChanges() {
//		return fmt.Errorf("refusing to migrate: %s", res)
//	}
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	result := &ValidationResult{}
	byName := make(map[string]*Table, len(desired))
	for _, t := range desired {
		byName[t.Name] = t
	}
	for _, t := range current {
		next, ok := byName[t.Name]
		if !ok {
			result.failUnless(cfg.allowDropTable, &ValidationError{
				Table:    t.Name,
				Message:  "table will be dropped",
				Breaking: true,
			})
			continue
		}
		diffTable(t, next, cfg, result)
	}
	return result
}

// diffTable compares two revisions of the same table. New tables are
// not passed here, as their creation never conflicts with data.
func diffTable(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	for _, c := range current.Columns {
		if !desired.HasColumn(c.Name) {
			result.failUnless(cfg.allowDropColumn, &ValidationError{
				Table:    current.Name,
				Column:   c.Name,
				Message:  "column will be dropped",
				Breaking: true,
			})
		}
	}
	for _, next := range desired.Columns {
		prev, ok := current.Column(next.Name)
		if !ok {
			if !next.Nullable && next.Default == nil {
				result.warn(&ValidationError{
					Table:   current.Name,
					Column:  next.Name,
					Message: "new NOT NULL column without a default value fails on populated tables",
				})
			}
			continue
		}
		diffColumn(current.Name, prev, next, cfg, result)
	}
	for _, idx := range current.Indexes {
		if _, ok := desired.Index(idx.Name); !ok {
			result.failUnless(cfg.allowDropIndex, &ValidationError{
				Table:   current.Name,
				Message: fmt.Sprintf("index %q will be dropped", idx.Name),
			})
		}
	}
}

// diffColumn compares two revisions of the same column.
func diffColumn(table string, prev, next *Column, cfg *validateConfig, result *ValidationResult) {
	if prev.Type != next.Type {
		e := &ValidationError{
			Table:   table,
			Column:  next.Name,
			Message: fmt.Sprintf("column type changing from %s to %s", prev.Type, next.Type),
		}
		if prev.ConvertibleTo(next) {
			result.warn(e)
		} else {
			e.Message += " loses data"
			e.Breaking = true
			result.fail(e)
		}
	}
	if prev.Type == sqldata.TypeEnum && next.Type == sqldata.TypeEnum {
		if removed := removedValues(prev.enumValues(), next.enumValues()); len(removed) > 0 {
			result.failUnless(cfg.allowEnumValueRemoval, &ValidationError{
				Table:    table,
				Column:   next.Name,
				Message:  fmt.Sprintf("enum values removed: %s. Existing rows may violate the new constraint", strings.Join(removed, ", ")),
				Breaking: true,
			})
		}
	}
	if prev.Nullable && !next.Nullable {
		result.failUnless(cfg.allowNullToNotNull, &ValidationError{
			Table:    table,
			Column:   next.Name,
			Message:  "column changing from NULL to NOT NULL fails if NULL values exist",
			Breaking: true,
		})
	}
	if prev.Size > 0 && next.Size > 0 && next.Size < prev.Size {
		result.warn(&ValidationError{
			Table:   table,
			Column:  next.Name,
			Message: fmt.Sprintf("column size reducing from %d to %d may truncate data", prev.Size, next.Size),
		})
	}
	if !prev.Unique && next.Unique {
		result.warn(&ValidationError{
			Table:   table,
			Column:  next.Name,
			Message: "adding a UNIQUE constraint fails if duplicate values exist",
		})
	}
}

// removedValues returns the values of prev missing from next, in
// their declared order.
func removedValues(prev, next []string) []string {
	keep := make(map[string]bool, len(next))
	for _, v := range next {
		keep[v] = true
	}
	var removed []string
	for _, v := range prev {
		if !keep[v] {
			removed = append(removed, v)
		}
	}
	return removed
}

// ValidateTable checks a single table definition for internal
// consistency: duplicate names, value-domain parameters, and index
// and foreign-key column references.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}
	if len(t.PrimaryKey) == 0 {
		result.warn(&ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			result.fail(&ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		seen[c.Name] = true
		validateColumn(t, c, result)
	}
	idxNames := make(map[string]bool, len(t.Indexes))
	for _, idx := range t.Indexes {
		if idxNames[idx.Name] {
			result.fail(&ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("duplicate index name %q", idx.Name),
			})
		}
		idxNames[idx.Name] = true
		if len(idx.Columns) == 0 {
			result.fail(&ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("index %q has no columns", idx.Name),
			})
		}
		for _, c := range idx.Columns {
			if c != nil && indexOf(t.Columns, c.Name) < 0 {
				result.fail(&ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("index %q references unknown column %q", idx.Name, c.Name),
				})
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		if len(fk.RefColumns) > 0 && len(fk.Columns) != len(fk.RefColumns) {
			result.fail(&ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("foreign key %q has %d columns referencing %d", fk.Symbol, len(fk.Columns), len(fk.RefColumns)),
			})
		}
		for _, c := range fk.Columns {
			if indexOf(t.Columns, c.Name) < 0 {
				result.fail(&ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key references unknown column %q", c.Name),
				})
			}
		}
	}
	return result
}

// validateColumn checks the value-domain parameters of a column.
func validateColumn(t *Table, c *Column, result *ValidationResult) {
	if !c.Type.Valid() {
		result.fail(&ValidationError{
			Table:   t.Name,
			Column:  c.Name,
			Message: fmt.Sprintf("invalid column type %s", c.Type),
		})
	}
	if c.Increment && !c.Type.Integer() {
		result.fail(&ValidationError{
			Table:   t.Name,
			Column:  c.Name,
			Message: fmt.Sprintf("increment column must be an integer type, got %s", c.Type),
		})
	}
	if c.Type == sqldata.TypeArray && !c.Elem.Valid() {
		result.fail(&ValidationError{
			Table:   t.Name,
			Column:  c.Name,
			Message: "array column has no element type",
		})
	}
	if c.Type != sqldata.TypeEnum {
		return
	}
	values := c.enumValues()
	if len(values) == 0 {
		result.fail(&ValidationError{
			Table:   t.Name,
			Column:  c.Name,
			Message: "enum column has no values",
		})
	}
	unique := make(map[string]bool, len(values))
	for _, v := range values {
		switch {
		case v == "":
			result.fail(&ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "enum value is empty",
			})
		case unique[v]:
			result.fail(&ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: fmt.Sprintf("duplicate enum value %q", v),
			})
		}
		unique[v] = true
	}
}

// ValidateSchema validates a set of tables and the references between
// them.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}
	names := make(map[string]bool, len(tables))
	for _, t := range tables {
		if names[t.Name] {
			result.fail(&ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		names[t.Name] = true
		result.merge(ValidateTable(t))
	}
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			switch {
			case fk.RefTable == nil:
				result.fail(&ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key %q has no reference table", fk.Symbol),
				})
			case !names[fk.RefTable.Name]:
				result.fail(&ValidationError{
					Table:   t.Name,
					Message: fmt.Sprintf("foreign key references unknown table %q", fk.RefTable.Name),
				})
			}
		}
	}
	return result
}

// ValidateDialect dry-runs the column DDL of the given tables against
// a dialect and reports every value domain it cannot represent. It
// allows checking schema portability without a database connection.
func ValidateDialect(dialect string, tables ...*Table) (*ValidationResult, error) {
	d, err := newDialect(dialect)
	if err != nil {
		return nil, err
	}
	result := &ValidationResult{}
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, cerr := d.cType(t, c); cerr != nil {
				result.fail(&ValidationError{
					Table:   t.Name,
					Column:  c.Name,
					Message: cerr.Error(),
				})
			}
		}
	}
	return result, nil
}
