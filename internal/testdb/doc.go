// Package testdb provides migrated databases for tests.
//
// Open returns an SQLite database in the test's temporary directory, so
// store, service and router tests run without any external service.
// OpenPostgres (integration build tag) returns a PostgreSQL database, either
// from DATABASE_URL or from a throwaway container started with
// testcontainers-go.
package testdb
