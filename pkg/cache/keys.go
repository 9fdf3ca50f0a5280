// Package cache provides the in-memory memoization layer for threadmap:
// deterministic key generation, a TTL-aware store with lazy eviction, and a
// single-flight memoizer used to skip redundant mental-map builds.
//
// The store is process-wide and explicitly owned: one Store is constructed
// at startup, injected where caching is needed, and reset via ClearAll. It
// holds no external resources and does not survive process restart.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// keyDelimiter separates serialized key parts. It is not expected to occur
// in normal argument values.
const keyDelimiter = "|"

// Key derives a deterministic, collision-resistant cache key from a function
// identifier, its positional arguments, and its named arguments.
//
// Named arguments are serialized as name=value pairs sorted lexicographically
// by name, so the key does not depend on call-site ordering. Arguments must
// have a stable string form; callers exclude file handles and other
// non-serializable values before key generation, no structural hashing of
// arbitrary objects is attempted.
func Key(identifier string, args []any, named map[string]any) string {
	parts := make([]string, 0, 1+len(args)+len(named))
	parts = append(parts, identifier)

	for _, arg := range args {
		parts = append(parts, fmt.Sprint(arg))
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, named[name]))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, keyDelimiter)))
	return hex.EncodeToString(sum[:])
}
