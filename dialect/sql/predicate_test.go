package sql

import (
	"testing"
	"time"

	"github.com/syssam/sqldata/dialect"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// predicate is how callers typically declare their predicate type
// before binding columns to the typed fields below.
type predicate func(*Selector)

func applyPs(d string, ps ...predicate) (string, []any) {
	s := Dialect(d).
		Select("*").
		From(Table("users"))
	for _, p := range ps {
		p(s)
	}
	return s.Query()
}

func TestStringField(t *testing.T) {
	name := StringField[predicate]("name")
	assert.Equal(t, "name", name.Name())

	t.Run("EQ", func(t *testing.T) {
		query, args := applyPs(dialect.MySQL, name.EQ("mira"))
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`name` = ?", query)
		assert.Equal(t, []any{"mira"}, args)
	})

	t.Run("Chained", func(t *testing.T) {
		query, args := applyPs(dialect.Postgres, name.NEQ("root"), name.HasPrefix("a"))
		assert.Equal(t, `SELECT * FROM "users" WHERE "users"."name" <> $1 AND "users"."name" LIKE $2`, query)
		assert.Equal(t, []any{"root", "a%"}, args)
	})

	t.Run("ContainsFold", func(t *testing.T) {
		query, args := applyPs(dialect.Postgres, name.ContainsFold("MIRA"))
		assert.Equal(t, `SELECT * FROM "users" WHERE "users"."name" ILIKE $1`, query)
		assert.Equal(t, []any{"%MIRA%"}, args)
	})

	t.Run("EqualFold", func(t *testing.T) {
		query, args := applyPs(dialect.SQLite, name.EqualFold("MIRA"))
		assert.Equal(t, "SELECT * FROM `users` WHERE LOWER(`users`.`name`) = ?", query)
		assert.Equal(t, []any{"mira"}, args)
	})

	t.Run("InOrNull", func(t *testing.T) {
		query, args := applyPs(dialect.MSSQL, name.In("mira", "tomas"))
		assert.Equal(t, "SELECT * FROM [users] WHERE [users].[name] IN (@p1, @p2)", query)
		assert.Equal(t, []any{"mira", "tomas"}, args)

		query, args = applyPs(dialect.MySQL, name.IsNil())
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`name` IS NULL", query)
		assert.Empty(t, args)
	})
}

func TestNumericFields(t *testing.T) {
	age := IntField[predicate]("age")
	score := Float64Field[predicate]("score")
	views := Int64Field[predicate]("views")

	t.Run("Ranges", func(t *testing.T) {
		query, args := applyPs(dialect.Postgres, age.GTE(18), age.LT(120), score.GT(9.5))
		assert.Equal(t, `SELECT * FROM "users" WHERE "users"."age" >= $1 AND "users"."age" < $2 AND "users"."score" > $3`, query)
		assert.Equal(t, []any{18, 120, 9.5}, args)
	})

	t.Run("In", func(t *testing.T) {
		query, args := applyPs(dialect.MySQL, views.In(10, 20))
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`views` IN (?, ?)", query)
		assert.Equal(t, []any{int64(10), int64(20)}, args)
	})

	t.Run("EmptyNotIn", func(t *testing.T) {
		query, args := applyPs(dialect.MySQL, age.NotIn())
		assert.Equal(t, "SELECT * FROM `users` WHERE TRUE", query)
		assert.Empty(t, args)
	})

	t.Run("NotNull", func(t *testing.T) {
		query, args := applyPs(dialect.MySQL, score.NotNil())
		assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`score` IS NOT NULL", query)
		assert.Empty(t, args)
	})
}

func TestBoolField(t *testing.T) {
	active := BoolField[predicate]("active")
	query, args := applyPs(dialect.Postgres, active.EQ(true))
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."active" = $1`, query)
	assert.Equal(t, []any{true}, args)
}

func TestTimeField(t *testing.T) {
	createdAt := TimeField[predicate, time.Time]("created_at")
	now := time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

	query, args := applyPs(dialect.Postgres, createdAt.LT(now), createdAt.NotNil())
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."created_at" < $1 AND "users"."created_at" IS NOT NULL`, query)
	assert.Equal(t, []any{now}, args)

	query, args = applyPs(dialect.MySQL, createdAt.In(now, now.Add(time.Hour)))
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`created_at` IN (?, ?)", query)
	assert.Equal(t, []any{now, now.Add(time.Hour)}, args)
}

func TestEnumField(t *testing.T) {
	type status string
	const (
		statusActive  status = "active"
		statusBlocked status = "blocked"
	)
	state := EnumField[predicate, status]("state")

	query, args := applyPs(dialect.MySQL, state.In(statusActive, statusBlocked))
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`state` IN (?, ?)", query)
	assert.Equal(t, []any{statusActive, statusBlocked}, args)

	query, args = applyPs(dialect.Postgres, state.NEQ(statusBlocked))
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."state" <> $1`, query)
	assert.Equal(t, []any{statusBlocked}, args)
}

func TestUUIDField(t *testing.T) {
	id := UUIDField[predicate, uuid.UUID]("id")
	u1, u2 := uuid.New(), uuid.New()

	query, args := applyPs(dialect.Postgres, id.EQ(u1))
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."id" = $1`, query)
	assert.Equal(t, []any{u1}, args)

	query, args = applyPs(dialect.MySQL, id.NotIn(u1, u2))
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`id` NOT IN (?, ?)", query)
	assert.Equal(t, []any{u1, u2}, args)
}

func TestOtherField(t *testing.T) {
	addr := OtherField[predicate, string]("addr")

	query, args := applyPs(dialect.Postgres, addr.EQ("192.168.0.1/24"))
	assert.Equal(t, `SELECT * FROM "users" WHERE "users"."addr" = $1`, query)
	assert.Equal(t, []any{"192.168.0.1/24"}, args)

	query, args = applyPs(dialect.MySQL, addr.IsNil())
	assert.Equal(t, "SELECT * FROM `users` WHERE `users`.`addr` IS NULL", query)
	assert.Empty(t, args)
}
