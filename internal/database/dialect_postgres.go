package database

import "fmt"

// PostgresDialect implements Dialect for the lib/pq driver.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// SupportsLastInsertID returns false; PostgreSQL inserts use RETURNING.
func (d *PostgresDialect) SupportsLastInsertID() bool {
	return false
}

func (d *PostgresDialect) ReturningClause(column string) string {
	return fmt.Sprintf(" RETURNING %s", column)
}

func (d *PostgresDialect) AutoIncrementPK() string {
	return "BIGSERIAL PRIMARY KEY"
}

// InitStatements returns nothing; PostgreSQL needs no per-connection setup
// for the archive schema.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}
