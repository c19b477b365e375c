package sql

import (
	"testing"

	"github.com/syssam/sqldata/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorSimple(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect.MySQL, "SELECT `id`, `name` FROM `users`"},
		{dialect.SQLite, "SELECT `id`, `name` FROM `users`"},
		{dialect.Postgres, `SELECT "id", "name" FROM "users"`},
		{dialect.MSSQL, "SELECT [id], [name] FROM [users]"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			query, args := Dialect(tt.dialect).
				Select("id", "name").
				From(Table("users")).
				Query()
			assert.Equal(t, tt.want, query)
			assert.Empty(t, args)
		})
	}
}

func TestSelectorWhere(t *testing.T) {
	t.Run("Placeholders", func(t *testing.T) {
		tests := []struct {
			dialect string
			want    string
		}{
			{dialect.MySQL, "SELECT * FROM `users` WHERE `name` = ?"},
			{dialect.Postgres, `SELECT * FROM "users" WHERE "name" = $1`},
			{dialect.MSSQL, "SELECT * FROM [users] WHERE [name] = @p1"},
		}
		for _, tt := range tests {
			query, args := Dialect(tt.dialect).
				Select("*").
				From(Table("users")).
				Where(EQ("name", "mira")).
				Query()
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{"mira"}, args)
		}
	})

	t.Run("Conjunction", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(EQ("name", "mira")).
			Where(GT("age", 18)).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `name` = ? AND `age` > ?", query)
		assert.Equal(t, []any{"mira", 18}, args)
	})

	t.Run("NestedGroups", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(
				And(
					EQ("status", "active"),
					Or(
						GT("age", 18),
						EQ("role", "admin"),
					),
					NotNull("email"),
				),
			).
			Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "status" = $1 AND ("age" > $2 OR "role" = $3) AND "email" IS NOT NULL`, query)
		assert.Equal(t, []any{"active", 18, "admin"}, args)
	})

	t.Run("Not", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(Not(EQ("name", "mira"))).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE NOT (`name` = ?)", query)
		assert.Equal(t, []any{"mira"}, args)
	})
}

func TestSelectorJoins(t *testing.T) {
	t.Run("MySQL", func(t *testing.T) {
		users := Table("users").As("u")
		posts := Table("posts").As("p")
		query, args := Dialect(dialect.MySQL).
			Select("u.id", "u.name", "p.title").
			From(users).
			Join(posts).On(users.C("id"), posts.C("user_id")).
			Where(EQ("u.active", true)).
			Query()
		assert.Equal(t, "SELECT `u`.`id`, `u`.`name`, `p`.`title` FROM `users` AS `u` JOIN `posts` AS `p` ON `u`.`id` = `p`.`user_id` WHERE `u`.`active` = ?", query)
		assert.Equal(t, []any{true}, args)
	})

	t.Run("Postgres", func(t *testing.T) {
		users := Table("users").As("u")
		groups := Table("groups").As("g")
		query, args := Dialect(dialect.Postgres).
			Select("u.id").
			From(users).
			LeftJoin(groups).On(users.C("group_id"), groups.C("id")).
			Query()
		assert.Equal(t, `SELECT "u"."id" FROM "users" AS "u" LEFT JOIN "groups" AS "g" ON "u"."group_id" = "g"."id"`, query)
		assert.Empty(t, args)
	})

	t.Run("MSSQL", func(t *testing.T) {
		users := Table("users").As("u")
		posts := Table("posts").As("p")
		query, _ := Dialect(dialect.MSSQL).
			Select("u.id").
			From(users).
			Join(posts).On(users.C("id"), posts.C("user_id")).
			Query()
		assert.Equal(t, "SELECT [u].[id] FROM [users] AS [u] JOIN [posts] AS [p] ON [u].[id] = [p].[user_id]", query)
	})
}

func TestSelectorOrderAndPagination(t *testing.T) {
	t.Run("LimitOffset", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			OrderBy(Desc("created_at"), "name").
			Limit(10).
			Offset(5).
			Query()
		assert.Equal(t, "SELECT * FROM `users` ORDER BY `created_at` DESC, `name` LIMIT 10 OFFSET 5", query)
	})

	t.Run("PostgresOrder", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			OrderBy(Asc("name")).
			Limit(1).
			Query()
		assert.Equal(t, `SELECT * FROM "users" ORDER BY "name" ASC LIMIT 1`, query)
	})

	t.Run("MSSQLOffsetFetch", func(t *testing.T) {
		query, _ := Dialect(dialect.MSSQL).
			Select("*").
			From(Table("users")).
			OrderBy("id").
			Limit(10).
			Offset(5).
			Query()
		assert.Equal(t, "SELECT * FROM [users] ORDER BY [id] OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY", query)
	})

	t.Run("MSSQLRequiresOrder", func(t *testing.T) {
		// T-SQL OFFSET/FETCH is attached to an ORDER BY clause.
		query, _ := Dialect(dialect.MSSQL).
			Select("*").
			From(Table("users")).
			Limit(3).
			Query()
		assert.Equal(t, "SELECT * FROM [users] ORDER BY (SELECT NULL) OFFSET 0 ROWS FETCH NEXT 3 ROWS ONLY", query)
	})
}

func TestSelectorGroupByHaving(t *testing.T) {
	query, args := Dialect(dialect.MySQL).
		Select("role", "COUNT(*)").
		From(Table("users")).
		GroupBy("role").
		Having(GT("COUNT(*)", 5)).
		Query()
	assert.Equal(t, "SELECT `role`, COUNT(*) FROM `users` GROUP BY `role` HAVING COUNT(*) > ?", query)
	assert.Equal(t, []any{5}, args)
}

func TestSelectorDistinct(t *testing.T) {
	query, _ := Dialect(dialect.Postgres).
		Select("name").
		Distinct().
		From(Table("users")).
		Query()
	assert.Equal(t, `SELECT DISTINCT "name" FROM "users"`, query)
}

func TestSelectorSubQuery(t *testing.T) {
	inner := Select("user_id").From(Table("blocked"))
	query, args := Dialect(dialect.Postgres).
		Select("*").
		From(Table("users")).
		Where(NotIn("id", inner)).
		Where(EQ("active", true)).
		Query()
	assert.Equal(t, `SELECT * FROM "users" WHERE "id" NOT IN (SELECT "user_id" FROM "blocked") AND "active" = $1`, query)
	assert.Equal(t, []any{true}, args)
}

func TestSelectorLock(t *testing.T) {
	t.Run("Postgres", func(t *testing.T) {
		s := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(EQ("id", 1)).
			ForUpdate()
		query, _ := s.Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "id" = $1 FOR UPDATE`, query)
		require.NoError(t, s.Err())
	})

	t.Run("MySQLShare", func(t *testing.T) {
		s := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			ForShare()
		query, _ := s.Query()
		assert.Equal(t, "SELECT * FROM `users` FOR SHARE", query)
	})

	t.Run("SQLiteNoop", func(t *testing.T) {
		s := Dialect(dialect.SQLite).
			Select("*").
			From(Table("users")).
			ForUpdate()
		query, _ := s.Query()
		assert.Equal(t, "SELECT * FROM `users`", query)
		require.NoError(t, s.Err())
	})

	t.Run("MSSQLUnsupported", func(t *testing.T) {
		s := Dialect(dialect.MSSQL).
			Select("*").
			From(Table("users")).
			ForUpdate()
		s.Query()
		require.Error(t, s.Err())
		assert.Contains(t, s.Err().Error(), "not supported")
	})
}

func TestPredicates(t *testing.T) {
	t.Run("In", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(In("department", "eng", "product", "design")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `department` IN (?, ?, ?)", query)
		assert.Equal(t, []any{"eng", "product", "design"}, args)
	})

	t.Run("EmptyIn", func(t *testing.T) {
		// An empty list matches no rows instead of generating invalid SQL.
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(In("id")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE FALSE", query)
		assert.Empty(t, args)
	})

	t.Run("EmptyNotIn", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(NotIn("id")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE TRUE", query)
	})

	t.Run("NullChecks", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(And(IsNull("deleted_at"), NotNull("email"))).
			Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "deleted_at" IS NULL AND "email" IS NOT NULL`, query)
		assert.Empty(t, args)
	})

	t.Run("Like", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(Like("name", "a8%")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `name` LIKE ?", query)
		assert.Equal(t, []any{"a8%"}, args)
	})

	t.Run("Contains", func(t *testing.T) {
		_, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(Contains("name", "8m")).
			Query()
		assert.Equal(t, []any{"%8m%"}, args)
	})

	t.Run("HasPrefixSuffix", func(t *testing.T) {
		_, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(And(HasPrefix("name", "a8"), HasSuffix("email", ".org"))).
			Query()
		assert.Equal(t, []any{"a8%", "%.org"}, args)
	})

	t.Run("ContainsFold", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(ContainsFold("name", "MIRA")).
			Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "name" ILIKE $1`, query)
		assert.Equal(t, []any{"%MIRA%"}, args)

		query, args = Dialect(dialect.SQLite).
			Select("*").
			From(Table("users")).
			Where(ContainsFold("name", "MIRA")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE LOWER(`name`) LIKE ?", query)
		assert.Equal(t, []any{"%mira%"}, args)
	})

	t.Run("EqualFold", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users")).
			Where(EqualFold("name", "MIRA")).
			Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `name` = ?", query)
		assert.Equal(t, []any{"MIRA"}, args)

		query, args = Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(EqualFold("name", "MIRA")).
			Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE LOWER("name") = $1`, query)
		assert.Equal(t, []any{"mira"}, args)
	})

	t.Run("ExprP", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Select("*").
			From(Table("events")).
			Where(ExprP("tags && ?", "{go,sql}")).
			Query()
		assert.Equal(t, "SELECT * FROM `events` WHERE tags && ?", query)
		assert.Equal(t, []any{"{go,sql}"}, args)
	})

	t.Run("Range", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users")).
			Where(And(GTE("age", 18), LTE("age", 35), NEQ("status", "blocked"), LT("score", 10.5))).
			Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "age" >= $1 AND "age" <= $2 AND "status" <> $3 AND "score" < $4`, query)
		assert.Equal(t, []any{18, 35, "blocked", 10.5}, args)
	})
}

func TestFieldPredicates(t *testing.T) {
	t.Run("OnAliasedTable", func(t *testing.T) {
		s := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users").As("u"))
		FieldEQ("name", "mira")(s)
		FieldGT("age", 18)(s)
		query, args := s.Query()
		assert.Equal(t, `SELECT * FROM "users" AS "u" WHERE "u"."name" = $1 AND "u"."age" > $2`, query)
		assert.Equal(t, []any{"mira", 18}, args)
	})

	t.Run("In", func(t *testing.T) {
		s := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users"))
		FieldIn("id", 1, 2, 3)(s)
		query, args := s.Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`id` IN (?, ?, ?)", query)
		assert.Equal(t, []any{1, 2, 3}, args)
	})

	t.Run("Null", func(t *testing.T) {
		s := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users"))
		FieldIsNull("deleted_at")(s)
		query, _ := s.Query()
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`deleted_at` IS NULL", query)
	})

	t.Run("Strings", func(t *testing.T) {
		s := Dialect(dialect.Postgres).
			Select("*").
			From(Table("users"))
		FieldContainsFold("name", "MIRA")(s)
		query, args := s.Query()
		assert.Equal(t, `SELECT * FROM "users" WHERE "users"."name" ILIKE $1`, query)
		assert.Equal(t, []any{"%MIRA%"}, args)
	})
}

func TestInsertBuilder(t *testing.T) {
	t.Run("MySQL", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Insert("users").
			Columns("name", "age").
			Values("mira", 30).
			Query()
		assert.Equal(t, "INSERT INTO `users` (`name`, `age`) VALUES (?, ?)", query)
		assert.Equal(t, []any{"mira", 30}, args)
	})

	t.Run("PostgresReturning", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Insert("users").
			Columns("name", "age").
			Values("mira", 30).
			Returning("id").
			Query()
		assert.Equal(t, `INSERT INTO "users" ("name", "age") VALUES ($1, $2) RETURNING "id"`, query)
		assert.Equal(t, []any{"mira", 30}, args)
	})

	t.Run("SQLiteReturning", func(t *testing.T) {
		query, _ := Dialect(dialect.SQLite).
			Insert("users").
			Columns("name").
			Values("mira").
			Returning("id").
			Query()
		assert.Equal(t, "INSERT INTO `users` (`name`) VALUES (?) RETURNING `id`", query)
	})

	t.Run("MySQLIgnoresReturning", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			Insert("users").
			Columns("name").
			Values("mira").
			Returning("id").
			Query()
		assert.Equal(t, "INSERT INTO `users` (`name`) VALUES (?)", query)
	})

	t.Run("MSSQLOutput", func(t *testing.T) {
		query, args := Dialect(dialect.MSSQL).
			Insert("users").
			Columns("name", "age").
			Values("mira", 30).
			Returning("id").
			Query()
		assert.Equal(t, "INSERT INTO [users] ([name], [age]) OUTPUT INSERTED.[id] VALUES (@p1, @p2)", query)
		assert.Equal(t, []any{"mira", 30}, args)
	})

	t.Run("Defaults", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).Insert("users").Default().Query()
		assert.Equal(t, `INSERT INTO "users" DEFAULT VALUES`, query)

		query, _ = Dialect(dialect.MySQL).Insert("users").Default().Query()
		assert.Equal(t, "INSERT INTO `users` () VALUES ()", query)

		query, _ = Dialect(dialect.MSSQL).Insert("users").Default().Returning("id").Query()
		assert.Equal(t, "INSERT INTO [users] OUTPUT INSERTED.[id] DEFAULT VALUES", query)
	})

	t.Run("MultiRow", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Insert("users").
			Columns("name").
			Values("mira").
			Values("tomas").
			Query()
		assert.Equal(t, `INSERT INTO "users" ("name") VALUES ($1), ($2)`, query)
		assert.Equal(t, []any{"mira", "tomas"}, args)
	})

	t.Run("Set", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Insert("users").
			Set("name", "mira").
			Set("age", 30).
			Query()
		assert.Equal(t, "INSERT INTO `users` (`name`, `age`) VALUES (?, ?)", query)
		assert.Equal(t, []any{"mira", 30}, args)
	})

	t.Run("RawValue", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Insert("users").
			Columns("name", "created_at").
			Values("mira", Raw("NOW()")).
			Query()
		assert.Equal(t, "INSERT INTO `users` (`name`, `created_at`) VALUES (?, NOW())", query)
		assert.Equal(t, []any{"mira"}, args)
	})
}

func TestUpdateBuilder(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Update("users").
			Set("name", "mira").
			Set("age", 30).
			Where(EQ("id", 1)).
			Query()
		assert.Equal(t, "UPDATE `users` SET `name` = ?, `age` = ? WHERE `id` = ?", query)
		assert.Equal(t, []any{"mira", 30, 1}, args)
	})

	t.Run("PostgresPlaceholders", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Update("users").
			Set("name", "mira").
			Where(EQ("id", 1)).
			Query()
		assert.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "id" = $2`, query)
		assert.Equal(t, []any{"mira", 1}, args)
	})

	t.Run("Expression", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Update("users").
			Set("version", Expr("version + 1")).
			Where(EQ("id", 1)).
			Query()
		assert.Equal(t, "UPDATE `users` SET `version` = version + 1 WHERE `id` = ?", query)
		assert.Equal(t, []any{1}, args)
	})

	t.Run("Returning", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			Update("users").
			Set("name", "mira").
			Where(EQ("id", 1)).
			Returning("updated_at").
			Query()
		assert.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "id" = $2 RETURNING "updated_at"`, query)
	})

	t.Run("Empty", func(t *testing.T) {
		u := Update("users")
		assert.True(t, u.Empty())
		u.Set("name", "mira")
		assert.False(t, u.Empty())
	})

	t.Run("WhereConjunction", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Update("users").
			Set("active", false).
			Where(EQ("role", "guest")).
			Where(LT("last_seen", "2024-01-01")).
			Query()
		assert.Equal(t, "UPDATE `users` SET `active` = ? WHERE `role` = ? AND `last_seen` < ?", query)
		assert.Equal(t, []any{false, "guest", "2024-01-01"}, args)
	})
}

func TestDeleteBuilder(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		query, args := Dialect(dialect.MySQL).
			Delete("users").
			Where(EQ("id", 1)).
			Query()
		assert.Equal(t, "DELETE FROM `users` WHERE `id` = ?", query)
		assert.Equal(t, []any{1}, args)
	})

	t.Run("NoPredicate", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).Delete("sessions").Query()
		assert.Equal(t, `DELETE FROM "sessions"`, query)
		assert.Empty(t, args)
	})

	t.Run("Compound", func(t *testing.T) {
		query, args := Dialect(dialect.Postgres).
			Delete("users").
			Where(
				And(
					EQ("status", "deleted"),
					LT("deleted_at", "2023-01-01"),
				),
			).
			Query()
		assert.Equal(t, `DELETE FROM "users" WHERE "status" = $1 AND "deleted_at" < $2`, query)
		assert.Equal(t, []any{"deleted", "2023-01-01"}, args)
	})
}

func TestCreateTableBuilder(t *testing.T) {
	t.Run("MySQL", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			CreateTable("users").
			IfNotExists().
			Columns(
				Column("id").Type("bigint").Attr("AUTO_INCREMENT"),
				Column("name").Type("varchar(255)").Attr("NOT NULL"),
			).
			PrimaryKey("id").
			Charset("utf8mb4").
			Query()
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS `users` (`id` bigint AUTO_INCREMENT, `name` varchar(255) NOT NULL, PRIMARY KEY(`id`)) CHARACTER SET utf8mb4", query)
	})

	t.Run("ForeignKeys", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			CreateTable("posts").
			Columns(
				Column("id").Type("bigint"),
				Column("author_id").Type("bigint"),
			).
			PrimaryKey("id").
			ForeignKeys(
				ForeignKey("posts_users_author").
					Columns("author_id").
					Reference(Reference().Table("users").Columns("id")).
					OnDelete("CASCADE"),
			).
			Query()
		assert.Equal(t, `CREATE TABLE "posts" ("id" bigint, "author_id" bigint, PRIMARY KEY("id"), CONSTRAINT "posts_users_author" FOREIGN KEY("author_id") REFERENCES "users"("id") ON DELETE CASCADE)`, query)
	})

	t.Run("Checks", func(t *testing.T) {
		query, _ := Dialect(dialect.MSSQL).
			CreateTable("documents").
			Columns(Column("data").Type("nvarchar(max)")).
			Checks(func(b *Builder) {
				b.WriteString("ISJSON(").Ident("data").WriteString(") = 1")
			}).
			Query()
		assert.Equal(t, "CREATE TABLE [documents] ([data] nvarchar(max), CHECK (ISJSON([data]) = 1))", query)
	})

	t.Run("MSSQLNoIfNotExists", func(t *testing.T) {
		// The clause does not exist in T-SQL. Callers probe the catalog.
		query, _ := Dialect(dialect.MSSQL).
			CreateTable("users").
			IfNotExists().
			Columns(Column("id").Type("bigint")).
			Query()
		assert.Equal(t, "CREATE TABLE [users] ([id] bigint)", query)
	})

	t.Run("ColumnConstraint", func(t *testing.T) {
		query, _ := Dialect(dialect.SQLite).
			CreateTable("pets").
			Columns(
				Column("id").Type("integer"),
				Column("owner_id").Type("integer").
					Constraint(ForeignKey("pets_owner").Reference(Reference().Table("users").Columns("id"))),
			).
			Query()
		assert.Equal(t, "CREATE TABLE `pets` (`id` integer, `owner_id` integer CONSTRAINT `pets_owner` REFERENCES `users`(`id`))", query)
	})
}

func TestIndexBuilder(t *testing.T) {
	t.Run("Postgres", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			CreateIndex("users_name").
			IfNotExists().
			Unique().
			Table("users").
			Columns("name").
			Query()
		assert.Equal(t, `CREATE UNIQUE INDEX IF NOT EXISTS "users_name" ON "users"("name")`, query)
	})

	t.Run("PostgresUsing", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			CreateIndex("events_payload").
			Table("events").
			Using("GIN").
			Columns("payload").
			Query()
		assert.Equal(t, `CREATE INDEX "events_payload" ON "events" USING GIN("payload")`, query)
	})

	t.Run("MySQLNoIfNotExists", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			CreateIndex("users_email").
			IfNotExists().
			Unique().
			Table("users").
			Columns("email").
			Query()
		assert.Equal(t, "CREATE UNIQUE INDEX `users_email` ON `users`(`email`)", query)
	})

	t.Run("MultiColumn", func(t *testing.T) {
		query, _ := Dialect(dialect.SQLite).
			CreateIndex("users_name_age").
			IfNotExists().
			Table("users").
			Columns("name", "age").
			Query()
		assert.Equal(t, "CREATE INDEX IF NOT EXISTS `users_name_age` ON `users`(`name`, `age`)", query)
	})
}

func TestBuilderErr(t *testing.T) {
	s := Dialect(dialect.MSSQL).Select("*").From(Table("users")).ForUpdate()
	s.Query()
	err := s.Err()
	require.Error(t, err)

	// Errors from nested builders bubble to the root.
	outer := Dialect(dialect.MSSQL).Select("*").From(s)
	outer.Query()
	require.Error(t, outer.Err())
}

func TestSelectTable(t *testing.T) {
	t.Run("Alias", func(t *testing.T) {
		u := Dialect(dialect.Postgres).Table("users").As("u")
		assert.Equal(t, `"u"."id"`, u.C("id"))
		assert.Equal(t, []string{`"u"."id"`, `"u"."name"`}, u.Columns("id", "name"))
	})

	t.Run("Schema", func(t *testing.T) {
		query, _ := Dialect(dialect.MySQL).
			Select("*").
			From(Table("users").Schema("app")).
			Query()
		assert.Equal(t, "SELECT * FROM `app`.`users`", query)
	})

	t.Run("Unquote", func(t *testing.T) {
		query, _ := Dialect(dialect.Postgres).
			Select("*").
			From(Table("generate_series(1, 10)").Unquote()).
			Query()
		assert.Equal(t, `SELECT * FROM generate_series(1, 10)`, query)
	})
}
