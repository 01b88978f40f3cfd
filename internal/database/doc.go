// Package database manages the PostgreSQL connection pool backing the
// transaction ledger.
//
// The pool is created once at process start, handed to the ledger store,
// and closed on every exit path by the caller.
package database
