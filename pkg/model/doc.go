// Package model defines the boundary between forms and the objects they
// read from and persist to.
//
// A form only needs three operations: load an object by id, read one field
// value off an object, and persist a validated value set. The Adapter
// interface captures exactly that, and the package ships implementations for
// the common cases: in-memory maps (Memory), a single table over
// database/sql (SQLAdapter), and the same over a pgx connection pool
// (PgxAdapter).
//
// ReadFieldValue is the default extraction strategy used when no adapter is
// configured: it tries an accessor method first, then an exported struct
// field, then a map key.
package model
