package tree

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ID identifies a node. The empty ID is never a valid node; APIs that take an
// optional parent use it to mean "no parent".
type ID string

// None is the empty ID, used as the parent of roots.
const None ID = ""

// HashID derives a stable ID from a path-like string such as "app.div[2]".
// The same path always yields the same ID, across processes and runs.
func HashID(path string) ID {
	return ID(strconv.FormatUint(xxhash.Sum64String(path), 16))
}

// String returns the id as a plain string.
func (id ID) String() string { return string(id) }
