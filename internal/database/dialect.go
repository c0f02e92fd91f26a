package database

// Dialect abstracts the SQL syntax differences between SQLite and PostgreSQL
// that the run archive cares about.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given position
	// (1-indexed). SQLite: "?", PostgreSQL: "$1", "$2", ...
	Placeholder(position int) string

	// SupportsLastInsertID reports whether LastInsertId() works.
	// PostgreSQL needs a RETURNING clause instead.
	SupportsLastInsertID() bool

	// ReturningClause returns the RETURNING clause for INSERT statements,
	// or "" when LastInsertId() is used.
	ReturningClause(column string) string

	// AutoIncrementPK returns the column definition for an auto-incrementing
	// integer primary key.
	AutoIncrementPK() string

	// InitStatements returns statements run once after the connection opens.
	InitStatements() []string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a Dialect for the given type. Unknown types fall back
// to SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
