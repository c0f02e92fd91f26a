package database

import "testing"

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("NewDialect(sqlite) did not return *SQLiteDialect")
	}
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("NewDialect(postgres) did not return *PostgresDialect")
	}
	// Unknown types fall back to SQLite.
	if _, ok := NewDialect("unknown").(*SQLiteDialect); !ok {
		t.Error("NewDialect(unknown) did not fall back to *SQLiteDialect")
	}
}

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}
	if got := d.DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %q, want %q", got, "sqlite")
	}
	if got := d.Placeholder(7); got != "?" {
		t.Errorf("Placeholder(7) = %q, want %q", got, "?")
	}
	if !d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = false, want true")
	}
	if got := d.ReturningClause("id"); got != "" {
		t.Errorf("ReturningClause() = %q, want empty", got)
	}
	if got := d.AutoIncrementPK(); got != "INTEGER PRIMARY KEY AUTOINCREMENT" {
		t.Errorf("AutoIncrementPK() = %q", got)
	}
	if len(d.InitStatements()) == 0 {
		t.Error("InitStatements() returned no PRAGMA statements")
	}
}

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}
	if got := d.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want %q", got, "postgres")
	}
	if got := d.Placeholder(3); got != "$3" {
		t.Errorf("Placeholder(3) = %q, want %q", got, "$3")
	}
	if d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = true, want false")
	}
	if got := d.ReturningClause("id"); got != " RETURNING id" {
		t.Errorf("ReturningClause() = %q, want %q", got, " RETURNING id")
	}
	if got := d.AutoIncrementPK(); got != "BIGSERIAL PRIMARY KEY" {
		t.Errorf("AutoIncrementPK() = %q", got)
	}
}

func TestQueryBuilder(t *testing.T) {
	query := "SELECT * FROM runs WHERE id = ? AND score > ?"

	sqlite := NewQueryBuilder(&SQLiteDialect{})
	if got := sqlite.Build(query); got != query {
		t.Errorf("sqlite Build() rewrote the query: %q", got)
	}

	postgres := NewQueryBuilder(&PostgresDialect{})
	want := "SELECT * FROM runs WHERE id = $1 AND score > $2"
	if got := postgres.Build(query); got != want {
		t.Errorf("postgres Build() = %q, want %q", got, want)
	}

	insert := "INSERT INTO runs (score) VALUES (?)"
	if got := sqlite.BuildWithReturning(insert, "id"); got != insert {
		t.Errorf("sqlite BuildWithReturning() = %q, want %q", got, insert)
	}
	wantInsert := "INSERT INTO runs (score) VALUES ($1) RETURNING id"
	if got := postgres.BuildWithReturning(insert, "id"); got != wantInsert {
		t.Errorf("postgres BuildWithReturning() = %q, want %q", got, wantInsert)
	}
}
