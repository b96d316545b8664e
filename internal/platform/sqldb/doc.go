// Package sqldb implements the store interfaces on database/sql.
//
// Two dialects share one set of queries: PostgreSQL through the pgx stdlib
// driver and SQLite through the pure Go modernc driver, which binds
// PostgreSQL-style $N placeholders by ordinal. Schema changes are embedded
// goose migrations, one directory per dialect.
package sqldb
