package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// hashKey builds "prefix:sha256(json(parts))". Option structs marshal with
// a stable field order, so equal options always give equal keys.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyType extracts the kind of a key built by a [Keyer], such as "layout"
// or "artifact". Scoped prefixes are skipped.
func KeyType(key string) string {
	for _, t := range []string{keyPrefixLayout, keyPrefixArtifact} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "other"
}
