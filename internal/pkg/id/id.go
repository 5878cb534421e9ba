package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. Users, folders and diary entries all key
// on ULIDs, which sort lexicographically by creation time.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
