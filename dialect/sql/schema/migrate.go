package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/sqltool"

	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
)

// Migrate runs the schema creation and planning flows. Creation works
// directly against a connected database, while planning writes
// versioned migration files to a migration directory.
type Migrate struct {
	sqlDialect
	drv             dialect.Driver
	dialect         string
	schema          string            // default schema qualifier.
	dir             migrate.Dir       // migration directory for planning.
	fmt             migrate.Formatter // file formatter of the directory.
	errNoPlan       bool              // report ErrNoPlan on empty plans.
	withForeignKeys bool              // render foreign-key constraints.
	hooks           []Hook            // hooks to apply before creation.
	planHooks       []PlanHook        // hooks to apply before planning.
}

// MigrateOption allows configuring the migration flows using
// functional options.
type MigrateOption func(*Migrate)

// WithDir sets the migration directory that Diff and NamedDiff write
// their plans to.
func WithDir(dir migrate.Dir) MigrateOption {
	return func(m *Migrate) {
		m.dir = dir
	}
}

// WithFormatter sets the formatter rendering plans into migration
// files. If unset, it is selected to match the directory flavor.
func WithFormatter(fmt migrate.Formatter) MigrateOption {
	return func(m *Migrate) {
		m.fmt = fmt
	}
}

// WithErrNoPlan reports migrate.ErrNoPlan from Diff and NamedDiff when
// the desired state introduces no changes.
func WithErrNoPlan(b bool) MigrateOption {
	return func(m *Migrate) {
		m.errNoPlan = b
	}
}

// WithForeignKeys controls whether foreign-key constraints are
// rendered. Defaults to true.
func WithForeignKeys(b bool) MigrateOption {
	return func(m *Migrate) {
		m.withForeignKeys = b
	}
}

// WithSchemaName sets the default schema qualifier applied to tables
// without an explicit one.
func WithSchemaName(name string) MigrateOption {
	return func(m *Migrate) {
		m.schema = name
	}
}

// WithDialect overrides the dialect reported by the driver. Useful
// for drivers wrapping compatible engines under a different name.
func WithDialect(name string) MigrateOption {
	return func(m *Migrate) {
		m.dialect = name
	}
}

// WithHooks adds hooks to the creation flow.
func WithHooks(hooks ...Hook) MigrateOption {
	return func(m *Migrate) {
		m.hooks = append(m.hooks, hooks...)
	}
}

// WithPlanHook adds hooks to the planning flow.
func WithPlanHook(hooks ...PlanHook) MigrateOption {
	return func(m *Migrate) {
		m.planHooks = append(m.planHooks, hooks...)
	}
}

// Creator is the interface that wraps the Create method.
type Creator interface {
	// Create creates the given tables in the database.
	Create(ctx context.Context, tables ...*Table) error
}

// CreateFunc allows the use of ordinary functions as Creators.
type CreateFunc func(ctx context.Context, tables ...*Table) error

// Create calls f(ctx, tables...).
func (f CreateFunc) Create(ctx context.Context, tables ...*Table) error {
	return f(ctx, tables...)
}

// Hook defines the "create middleware". A function that gets a Creator
// and returns a Creator. For example:
//
//	hook := func(next schema.Creator) schema.Creator {
//		return schema.CreateFunc(func(ctx context.Context, tables ...*schema.Table) error {
//			fmt.Println("Tables:", tables)
//			return next.Create(ctx, tables...)
//		})
//	}
type Hook func(Creator) Creator

// Planner is the interface that wraps the Plan method.
type Planner interface {
	// Plan returns the migration plan of a named revision.
	Plan(ctx context.Context, name string, tables []*Table) (*migrate.Plan, error)
}

// PlanFunc allows the use of ordinary functions as Planners.
type PlanFunc func(ctx context.Context, name string, tables []*Table) (*migrate.Plan, error)

// Plan calls f(ctx, name, tables).
func (f PlanFunc) Plan(ctx context.Context, name string, tables []*Table) (*migrate.Plan, error) {
	return f(ctx, name, tables)
}

// PlanHook defines the "plan middleware", following the same shape as
// the creation hooks.
type PlanHook func(Planner) Planner

// NewMigrate returns a new Migrate for the given driver, configured
// by the given options.
func NewMigrate(drv dialect.Driver, opts ...MigrateOption) (*Migrate, error) {
	m := &Migrate{drv: drv, withForeignKeys: true}
	for _, opt := range opts {
		opt(m)
	}
	if m.dialect == "" {
		m.dialect = drv.Dialect()
	}
	d, err := newDialect(m.dialect)
	if err != nil {
		return nil, err
	}
	m.sqlDialect = d
	if m.fmt == nil {
		m.fmt = formatterFor(m.dir)
	}
	return m, nil
}

// newDialect returns the DDL generator of the named dialect.
func newDialect(name string) (sqlDialect, error) {
	switch name {
	case dialect.Postgres:
		return &Postgres{}, nil
	case dialect.MySQL:
		return &MySQL{}, nil
	case dialect.SQLite:
		return &SQLite{}, nil
	case dialect.MSSQL:
		return &MSSQL{}, nil
	default:
		return nil, fmt.Errorf("schema: unsupported dialect %q", name)
	}
}

// formatterFor returns the default formatter matching the migration
// directory flavor.
func formatterFor(dir migrate.Dir) migrate.Formatter {
	switch dir.(type) {
	case *sqltool.GooseDir:
		return sqltool.GooseFormatter
	case *sqltool.DBMateDir:
		return sqltool.DBMateFormatter
	case *sqltool.FlywayDir:
		return sqltool.FlywayFormatter
	case *sqltool.LiquibaseDir:
		return sqltool.LiquibaseFormatter
	default:
		// migrate.LocalDir, sqltool.GolangMigrateDir and
		// unknown directory implementations.
		return sqltool.GolangMigrateFormatter
	}
}

// Create creates all schema resources in the database, running the
// whole flow in a single transaction.
func (m *Migrate) Create(ctx context.Context, tables ...*Table) error {
	creator := Creator(CreateFunc(m.txCreate))
	for i := len(m.hooks) - 1; i >= 0; i-- {
		creator = m.hooks[i](creator)
	}
	return creator.Create(ctx, tables...)
}

func (m *Migrate) txCreate(ctx context.Context, tables ...*Table) error {
	tx, err := m.drv.Tx(ctx)
	if err != nil {
		return err
	}
	if err := m.create(ctx, tx, tables...); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back: %v", err, rerr)
		}
		return err
	}
	return tx.Commit()
}

// Diff plans a migration with the default "changes" revision name.
func (m *Migrate) Diff(ctx context.Context, tables ...*Table) error {
	return m.NamedDiff(ctx, "changes", tables...)
}

// NamedDiff plans the statements bringing the migration directory to
// the desired state and writes them to it as a new named revision.
// Tables that were planned by an earlier revision in the directory are
// skipped.
func (m *Migrate) NamedDiff(ctx context.Context, name string, tables ...*Table) error {
	if m.dir == nil {
		return errors.New("schema: diff requires a migration directory")
	}
	if err := migrate.Validate(m.dir); err != nil {
		return fmt.Errorf("schema: validating migration directory: %w", err)
	}
	planner := Planner(PlanFunc(m.plan))
	for i := len(m.planHooks) - 1; i >= 0; i-- {
		planner = m.planHooks[i](planner)
	}
	plan, err := planner.Plan(ctx, name, tables)
	if err != nil {
		return err
	}
	if len(plan.Changes) == 0 {
		if m.errNoPlan {
			return migrate.ErrNoPlan
		}
		return nil
	}
	return migrate.NewPlanner(nil, m.dir, migrate.PlanFormat(m.fmt)).WritePlan(plan)
}

// plan computes the CREATE statements of tables that are not yet
// recorded in the migration directory.
func (m *Migrate) plan(ctx context.Context, name string, tables []*Table) (*migrate.Plan, error) {
	done, err := m.planned()
	if err != nil {
		return nil, err
	}
	ordered := tables
	if m.withForeignKeys {
		if ordered, err = sortTables(tables); err != nil {
			return nil, err
		}
	}
	plan := &migrate.Plan{Name: name, Reversible: true, Transactional: true}
	for _, t := range ordered {
		if m.schema != "" && t.Schema == "" {
			t.Schema = m.schema
		}
		key := "table " + m.ident(t.qname())
		if done[key] {
			continue
		}
		if tp, ok := m.sqlDialect.(typePlanner); ok {
			changes, err := tp.typePlan(t)
			if err != nil {
				return nil, err
			}
			for _, c := range changes {
				// Named types may back columns of several
				// tables, but are created only once.
				if done["type "+c.ident] {
					continue
				}
				done["type "+c.ident] = true
				plan.Changes = append(plan.Changes, &migrate.Change{Cmd: c.cmd, Comment: c.comment, Reverse: c.reverse})
			}
		}
		b, err := m.tBuilder(t, false)
		if err != nil {
			return nil, err
		}
		query, args := b.Query()
		if err := b.Err(); err != nil {
			return nil, err
		}
		if len(args) > 0 {
			return nil, fmt.Errorf("schema: unexpected arguments in DDL statement of table %q", t.Name)
		}
		plan.Changes = append(plan.Changes, &migrate.Change{
			Cmd:     query,
			Comment: fmt.Sprintf("create %q table", t.Name),
			Reverse: "DROP TABLE " + m.ident(t.qname()),
		})
		for _, idx := range t.Indexes {
			query, _ := m.iBuilder(t, idx, false).Query()
			plan.Changes = append(plan.Changes, &migrate.Change{
				Cmd:     query,
				Comment: fmt.Sprintf("create index %q to table: %q", idx.Name, t.Name),
				Reverse: m.dropIndex(t, idx),
			})
		}
		done[key] = true
	}
	return plan, nil
}

// planned scans the migration directory and returns the identifiers
// of the objects already created by existing revisions.
func (m *Migrate) planned() (map[string]bool, error) {
	files, err := m.dir.Files()
	if err != nil {
		return nil, fmt.Errorf("schema: reading migration directory: %w", err)
	}
	done := make(map[string]bool)
	for _, f := range files {
		stmts, err := f.Stmts()
		if err != nil {
			return nil, fmt.Errorf("schema: parsing statements of %q: %w", f.Name(), err)
		}
		for _, stmt := range stmts {
			if name, ok := createdIdent(stmt, "CREATE TABLE "); ok {
				done["table "+name] = true
			} else if name, ok := createdIdent(stmt, "CREATE TYPE "); ok {
				done["type "+name] = true
			}
		}
	}
	return done, nil
}

// createdIdent extracts the quoted identifier following the given DDL
// prefix, like `users` in "CREATE TABLE `users` (...)". Statements are
// scanned by line, as directory flavors differ in how they attach
// comments and directives to the statement text.
func createdIdent(stmt, prefix string) (string, bool) {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		for _, p := range [...]string{prefix + "IF NOT EXISTS ", prefix} {
			if rest, ok := strings.CutPrefix(line, p); ok {
				return quotedIdent(rest)
			}
		}
	}
	return "", false
}

// quotedIdent reads a quoted, possibly schema-qualified, identifier
// from the beginning of s.
func quotedIdent(s string) (string, bool) {
	var b strings.Builder
	for {
		if s == "" {
			return "", false
		}
		var closer byte
		switch s[0] {
		case '`':
			closer = '`'
		case '"':
			closer = '"'
		case '[':
			closer = ']'
		default:
			return "", false
		}
		end := strings.IndexByte(s[1:], closer)
		if end < 0 {
			return "", false
		}
		b.WriteString(s[:end+2])
		s = s[end+2:]
		if !strings.HasPrefix(s, ".") {
			break
		}
		b.WriteByte('.')
		s = s[1:]
	}
	return b.String(), true
}

// dropIndex renders the statement reversing an index creation.
func (m *Migrate) dropIndex(t *Table, idx *Index) string {
	b := &sql.Builder{}
	b.SetDialect(m.dialect)
	b.WriteString("DROP INDEX ")
	switch m.dialect {
	case dialect.MySQL, dialect.MSSQL:
		// Index names are scoped to their table.
		b.Ident(idx.Name).WriteString(" ON ").Ident(t.qname())
	case dialect.Postgres:
		name := idx.Name
		if t.Schema != "" {
			name = t.Schema + "." + name
		}
		b.Ident(name)
	default:
		b.Ident(idx.Name)
	}
	return b.String()
}

// ident quotes the given identifier with the dialect quoting.
func (m *Migrate) ident(name string) string {
	b := &sql.Builder{}
	b.SetDialect(m.dialect)
	return b.Ident(name).String()
}
