package sql

import (
	"testing"

	"github.com/syssam/sqldata/dialect"
)

// benchDialects runs f once per supported dialect with allocation
// reporting enabled.
func benchDialects(b *testing.B, f func(b *testing.B, d string)) {
	b.Helper()
	for _, d := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite, dialect.MSSQL} {
		b.Run(d, func(b *testing.B) {
			b.ReportAllocs()
			f(b, d)
		})
	}
}

func BenchmarkInsertDefault(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).Insert("readings").Default().Returning("id").Query()
		}
	})
}

func BenchmarkInsertRow(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).Insert("readings").
				Columns("sensor_id", "recorded_at", "addr", "tags", "window", "location").
				Values(7, "2026-01-02 15:04:05", "10.0.0.8/32", `{"unit":"C"}`, "[0,60)", "POINT(12.492 41.89)").
				Returning("id").
				Query()
		}
	})
}

func BenchmarkSelectJoin(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			readings := Table("readings").As("r")
			sensors := Table("sensors").As("s")
			Dialect(d).Select("r.id", "r.recorded_at", "s.name").
				From(readings).
				Join(sensors).On(readings.C("sensor_id"), sensors.C("id")).
				Where(EQ("s.active", true)).
				OrderBy(Desc("r.recorded_at")).
				Limit(10).
				Query()
		}
	})
}

func BenchmarkSelectCompound(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).Select("sensor_id").
				From(Table("readings")).
				Where(
					And(
						EQ("status", "sealed"),
						Or(
							GT("celsius", 40),
							EQ("grade", "critical"),
						),
						In("region", "eu-west", "eu-central", "us-east"),
						NotNull("recorded_at"),
					),
				).
				GroupBy("sensor_id").
				Having(GT("COUNT(*)", 5)).
				OrderBy("sensor_id").
				Limit(100).
				Offset(50).
				Query()
		}
	})
}

func BenchmarkSelectFieldHelpers(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := Select("id").From(Table("sensors"))
		FieldIn("kind", "thermal", "optical")(s)
		FieldGTE("installed_at", "2024-01-01")(s)
		FieldNotNull("calibrated_at")(s)
		s.Query()
	}
}

func BenchmarkUpdateReturning(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).Update("sensors").
				Set("status", "sealed").
				Set("updated_at", "2026-01-02 15:04:05").
				Where(EQ("id", 7)).
				Returning("updated_at").
				Query()
		}
	})
}

func BenchmarkDeleteWhere(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).Delete("readings").
				Where(
					And(
						LT("recorded_at", "2023-01-01"),
						NotIn("grade", "critical", "audit"),
					),
				).
				Query()
		}
	})
}

func BenchmarkCreateTable(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).CreateTable("readings").
				IfNotExists().
				Columns(
					Column("id").Type("bigint").Attr("NOT NULL"),
					Column("sensor_id").Type("bigint").Attr("NOT NULL"),
					Column("addr").Type("varchar(45)"),
					Column("tags").Type("text"),
				).
				PrimaryKey("id").
				ForeignKeys(
					ForeignKey().Columns("sensor_id").
						Reference(Reference().Table("sensors").Columns("id")).
						OnDelete("CASCADE"),
				).
				Query()
		}
	})
}

func BenchmarkCreateIndex(b *testing.B) {
	benchDialects(b, func(b *testing.B, d string) {
		for i := 0; i < b.N; i++ {
			Dialect(d).CreateIndex("readings_sensor_recorded").
				IfNotExists().
				Table("readings").
				Columns("sensor_id", "recorded_at").
				Query()
		}
	})
}

func BenchmarkPredicates(b *testing.B) {
	b.Run("Simple", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = EQ("status", "sealed")
			_ = NEQ("grade", "audit")
			_ = GT("celsius", 40)
			_ = LTE("humidity", 80)
		}
	})
	b.Run("Compound", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = And(
				EQ("status", "sealed"),
				Or(
					GT("celsius", 40),
					EQ("grade", "critical"),
				),
				In("region", "eu-west", "us-east"),
				NotNull("recorded_at"),
				ContainsFold("name", "roof"),
			)
		}
	})
}
