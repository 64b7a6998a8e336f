// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. Driver errors are translated into the store error
// family by MapError so callers never inspect pgconn codes themselves.
package postgres
