package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string (time-sortable identifier).
//
// ULIDs generated within the same millisecond remain lexicographically
// increasing, which keeps fill records sortable by creation time in both
// the CSV logs and the SQLite primary key.
func New() string {
	return ulid.Make().String()
}
