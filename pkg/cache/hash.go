package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced key from arbitrary parts, e.g.
// "snapshot:<digest of interpreter and args>". The full digest is kept so
// distinct environments never collide on a truncated prefix.
func hashKey(prefix string, parts ...any) string {
	raw, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(raw))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
