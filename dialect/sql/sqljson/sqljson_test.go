package sqljson_test

import (
	"strconv"
	"testing"

	"github.com/syssam/sqldata/dialect"
	"github.com/syssam/sqldata/dialect/sql"
	"github.com/syssam/sqldata/dialect/sql/sqljson"

	"github.com/stretchr/testify/require"
)

func TestWritePath(t *testing.T) {
	tests := []struct {
		input     sql.Querier
		wantQuery string
		wantArgs  []any
	}{
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", 1, sqljson.Path("a", "b", "[1]", "c"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_EXTRACT(`data`, '$.a.b[1].c') = ?",
			wantArgs:  []any{1},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", "mira", sqljson.DotPath("author.name"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->'author'->>'name' = $1`,
			wantArgs:  []any{"mira"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", 1, sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'a')::int = $1`,
			wantArgs:  []any{1},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueGT("data", 1.1, sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'a')::float > $1`,
			wantArgs:  []any{1.1},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueLTE("data", int64(10), sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'a')::bigint <= $1`,
			wantArgs:  []any{int64(10)},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueNEQ("data", true, sqljson.Path("active"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'active')::bool <> $1`,
			wantArgs:  []any{true},
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueNEQ("data", "x", sqljson.Path("a"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_EXTRACT(`data`, '$.a') <> ?",
			wantArgs:  []any{"x"},
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", "x", sqljson.Path("a"))),
			wantQuery: "SELECT * FROM [users] WHERE JSON_VALUE([data], '$.a') = @p1",
			wantArgs:  []any{"x"},
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueGT("data", 10, sqljson.Path("a", "[0]"))),
			wantQuery: "SELECT * FROM [users] WHERE CAST(JSON_VALUE([data], '$.a[0]') AS int) > @p1",
			wantArgs:  []any{10},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", "b", sqljson.Path("a b", "c'd"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_EXTRACT(`data`, '$.\"a b\".\"c''d\"') = ?",
			wantArgs:  []any{"b"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", "b", sqljson.Path("a b", "c'd"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->'a b'->>'c''d' = $1`,
			wantArgs:  []any{"b"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIsNull("data", sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->'a' = 'null'::jsonb`,
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIsNull("data", sqljson.Path("a"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_TYPE(JSON_EXTRACT(`data`, '$.a')) = 'NULL'",
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIsNull("data", sqljson.Path("a"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_TYPE(`data`, '$.a') = 'null'",
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIsNull("data", sqljson.Path("a"))),
			wantQuery: "SELECT * FROM [users] WHERE (ISJSON([data]) = 1 AND JSON_VALUE([data], '$.a') IS NULL)",
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.HasKey("data", sqljson.Path("a", "[0]"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->'a'->0 IS NOT NULL`,
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.HasKey("data", sqljson.Path("a", "[0]"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_CONTAINS_PATH(`data`, 'one', '$.a[0]')",
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.HasKey("data", sqljson.Path("a", "[0]"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_TYPE(`data`, '$.a[0]') IS NOT NULL",
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.HasKey("data", sqljson.Path("a", "[0]"))),
			wantQuery: "SELECT * FROM [users] WHERE JSON_PATH_EXISTS([data], '$.a[0]') = 1",
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueContains("tags", "go")),
			wantQuery: `SELECT * FROM "users" WHERE "tags" @> $1`,
			wantArgs:  []any{`"go"`},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueContains("data", 1, sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->'a' @> $1`,
			wantArgs:  []any{"1"},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueContains("tags", "go")),
			wantQuery: "SELECT * FROM `users` WHERE JSON_CONTAINS(`tags`, ?, '$') = 1",
			wantArgs:  []any{`"go"`},
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueContains("tags", "go")),
			wantQuery: "SELECT * FROM `users` WHERE EXISTS(SELECT 1 FROM JSON_EACH(`tags`, '$') WHERE `value` = ?)",
			wantArgs:  []any{"go"},
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueContains("tags", "go")),
			wantQuery: "SELECT * FROM [users] WHERE EXISTS(SELECT 1 FROM OPENJSON([tags], '$') WHERE [value] = @p1)",
			wantArgs:  []any{"go"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.LenEQ("tags", 0)),
			wantQuery: `SELECT * FROM "users" WHERE JSONB_ARRAY_LENGTH("tags") = $1`,
			wantArgs:  []any{0},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.LenEQ("data", 3, sqljson.Path("items"))),
			wantQuery: `SELECT * FROM "users" WHERE JSONB_ARRAY_LENGTH("data"->'items') = $1`,
			wantArgs:  []any{3},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.LenGT("data", 0, sqljson.Path("items"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_LENGTH(`data`, '$.items') > ?",
			wantArgs:  []any{0},
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.LenLT("data", 10, sqljson.Path("items"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_ARRAY_LENGTH(`data`, '$.items') < ?",
			wantArgs:  []any{10},
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.LenGTE("data", 2, sqljson.Path("items"))),
			wantQuery: "SELECT * FROM [users] WHERE (SELECT COUNT(*) FROM OPENJSON([data], '$.items')) >= @p1",
			wantArgs:  []any{2},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.StringContains("data", "mira", sqljson.Path("name"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_UNQUOTE(JSON_EXTRACT(`data`, '$.name')) LIKE ?",
			wantArgs:  []any{"%mira%"},
		},
		{
			input: sql.Dialect(dialect.SQLite).
				Select("*").From(sql.Table("users")).
				Where(sqljson.StringContains("data", "mira", sqljson.Path("name"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_EXTRACT(`data`, '$.name') LIKE ?",
			wantArgs:  []any{"%mira%"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.StringHasPrefix("data", "mira", sqljson.Path("name"))),
			wantQuery: `SELECT * FROM "users" WHERE "data"->>'name' LIKE $1`,
			wantArgs:  []any{"mira%"},
		},
		{
			input: sql.Dialect(dialect.MSSQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.StringHasSuffix("data", "mira", sqljson.Path("name"))),
			wantQuery: "SELECT * FROM [users] WHERE JSON_VALUE([data], '$.name') LIKE @p1",
			wantArgs:  []any{"%mira"},
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIn("data", []any{1, 2}, sqljson.Path("a"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'a')::int IN ($1, $2)`,
			wantArgs:  []any{1, 2},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueNotIn("data", []any{"a", "b"}, sqljson.Path("a"))),
			wantQuery: "SELECT * FROM `users` WHERE JSON_EXTRACT(`data`, '$.a') NOT IN (?, ?)",
			wantArgs:  []any{"a", "b"},
		},
		{
			input: sql.Dialect(dialect.MySQL).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueIn("data", nil, sqljson.Path("a"))),
			wantQuery: "SELECT * FROM `users` WHERE FALSE",
		},
		{
			input: sql.Dialect(dialect.Postgres).
				Select("*").From(sql.Table("users")).
				Where(sqljson.ValueEQ("data", 1, sqljson.Path("a"), sqljson.Cast("smallint"))),
			wantQuery: `SELECT * FROM "users" WHERE ("data"->>'a')::smallint = $1`,
			wantArgs:  []any{1},
		},
	}
	for i, tt := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			query, args := tt.input.Query()
			require.Equal(t, tt.wantQuery, query)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestAppend(t *testing.T) {
	t.Run("PostgresRoot", func(t *testing.T) {
		u := sql.Dialect(dialect.Postgres).Update("users")
		sqljson.Append(u, "tags", []string{"a"})
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, `UPDATE "users" SET "tags" = CASE WHEN "tags" IS NULL OR "tags" = 'null'::jsonb THEN $1::jsonb ELSE "tags" || $2::jsonb END`, query)
		require.Equal(t, []any{`["a"]`, `["a"]`}, args)
	})

	t.Run("PostgresNested", func(t *testing.T) {
		u := sql.Dialect(dialect.Postgres).Update("users")
		sqljson.Append(u, "data", []int{1}, sqljson.Path("a"))
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, `UPDATE "users" SET "data" = JSONB_SET("data", '{a}', COALESCE("data"#>'{a}', '[]'::jsonb) || $1::jsonb)`, query)
		require.Equal(t, []any{"[1]"}, args)
	})

	t.Run("MySQLRoot", func(t *testing.T) {
		u := sql.Dialect(dialect.MySQL).Update("users")
		sqljson.Append(u, "tags", []string{"a"})
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, "UPDATE `users` SET `tags` = CASE WHEN JSON_TYPE(JSON_EXTRACT(`tags`, '$')) IS NULL OR JSON_TYPE(JSON_EXTRACT(`tags`, '$')) = 'NULL' THEN JSON_SET(COALESCE(`tags`, '{}'), '$', JSON_ARRAY(?)) ELSE JSON_ARRAY_APPEND(`tags`, '$', ?) END", query)
		require.Equal(t, []any{"a", "a"}, args)
	})

	t.Run("MySQLNested", func(t *testing.T) {
		u := sql.Dialect(dialect.MySQL).Update("users")
		sqljson.Append(u, "data", []string{"x", "y"}, sqljson.Path("a"))
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, "UPDATE `users` SET `data` = CASE WHEN JSON_TYPE(JSON_EXTRACT(`data`, '$.a')) IS NULL OR JSON_TYPE(JSON_EXTRACT(`data`, '$.a')) = 'NULL' THEN JSON_SET(COALESCE(`data`, '{}'), '$.a', JSON_ARRAY(?, ?)) ELSE JSON_ARRAY_APPEND(`data`, '$.a', ?, '$.a', ?) END", query)
		require.Equal(t, []any{"x", "y", "x", "y"}, args)
	})

	t.Run("SQLiteRoot", func(t *testing.T) {
		u := sql.Dialect(dialect.SQLite).Update("users")
		sqljson.Append(u, "tags", []int{1})
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, "UPDATE `users` SET `tags` = CASE WHEN JSON_TYPE(`tags`, '$') IS NULL OR JSON_TYPE(`tags`, '$') = 'null' THEN JSON_SET(COALESCE(`tags`, '{}'), '$', JSON_ARRAY(?)) ELSE JSON_INSERT(`tags`, '$[#]', ?) END", query)
		require.Equal(t, []any{1, 1}, args)
	})

	t.Run("MSSQLRoot", func(t *testing.T) {
		u := sql.Dialect(dialect.MSSQL).Update("users")
		sqljson.Append(u, "tags", []string{"a", "b"})
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, "UPDATE [users] SET [tags] = JSON_MODIFY(JSON_MODIFY(COALESCE([tags], '[]'), 'append $', @p1), 'append $', @p2)", query)
		require.Equal(t, []any{"a", "b"}, args)
	})

	t.Run("MSSQLNested", func(t *testing.T) {
		u := sql.Dialect(dialect.MSSQL).Update("users")
		sqljson.Append(u, "data", []int{7}, sqljson.Path("a"))
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, "UPDATE [users] SET [data] = JSON_MODIFY(COALESCE([data], '{}'), 'append $.a', @p1)", query)
		require.Equal(t, []any{7}, args)
	})

	t.Run("WithOtherSets", func(t *testing.T) {
		u := sql.Dialect(dialect.Postgres).Update("users").Set("name", "mira")
		sqljson.Append(u, "tags", []string{"a"})
		u.Set("active", true).Where(sql.EQ("id", 1))
		query, args := u.Query()
		require.NoError(t, u.Err())
		require.Equal(t, `UPDATE "users" SET "name" = $1, "tags" = CASE WHEN "tags" IS NULL OR "tags" = 'null'::jsonb THEN $2::jsonb ELSE "tags" || $3::jsonb END, "active" = $4 WHERE "id" = $5`, query)
		require.Equal(t, []any{"mira", `["a"]`, `["a"]`, true, 1}, args)
	})
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		dotpath string
		want    []string
		wantErr bool
	}{
		{dotpath: "a.b.c", want: []string{"a", "b", "c"}},
		{dotpath: "a[1][2]", want: []string{"a", "[1]", "[2]"}},
		{dotpath: "a[1].b", want: []string{"a", "[1]", "b"}},
		{dotpath: "[0].a", want: []string{"[0]", "a"}},
		{dotpath: "a", want: []string{"a"}},
		{dotpath: ""},
		{dotpath: "a..b", wantErr: true},
		{dotpath: ".a", wantErr: true},
		{dotpath: "a.", wantErr: true},
		{dotpath: "a[", wantErr: true},
		{dotpath: "a[x]", wantErr: true},
		{dotpath: "a[]", wantErr: true},
		{dotpath: "a[-1]", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dotpath, func(t *testing.T) {
			path, err := sqljson.ParsePath(tt.dotpath)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, path)
		})
	}
}

func TestDotPathError(t *testing.T) {
	s := sql.Dialect(dialect.MySQL).
		Select("*").From(sql.Table("users")).
		Where(sqljson.ValueEQ("data", 1, sqljson.DotPath("a..b")))
	s.Query()
	require.ErrorContains(t, s.Err(), "empty path segment")
}
