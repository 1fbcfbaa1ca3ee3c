package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashSources hashes several named inputs, such as a markup document and
// its stylesheets, into one digest. Both names and contents contribute, so
// moving content from one source to another changes the hash.
func HashSources(sources ...Source) string {
	h := sha256.New()
	for _, s := range sources {
		fmt.Fprintf(h, "%d:%s\n%d:", len(s.Name), s.Name, len(s.Data))
		h.Write(s.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Source is one named input to [HashSources].
type Source struct {
	Name string
	Data []byte
}
