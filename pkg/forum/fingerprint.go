package forum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the hex SHA-256 digest of raw dataset content.
// Identical content always maps to the same fingerprint, which is what lets
// the memoizer skip rebuilding a mental map for a dataset it has already
// seen.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
