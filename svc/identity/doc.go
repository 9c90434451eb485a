// Package identity owns user records: lookup by id or email, get-or-create
// signup and password rotation.
//
// It is the only writer of a user's password digest and salt. Digests are
// produced by pkg/credential from a salt generated per write; the raw password
// is never stored or logged. Emails are normalized before every lookup and
// write, so matching is case-insensitive.
//
// Persistence is behind Storage. MemoryStorage serves tests and local runs;
// PostgresStorage talks to the users table created by the goose migrations in
// the migrations package.
package identity
