package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// optsDigestLen is the number of hex digits of the options digest kept in
// a key. Options vary little per explanation, so 64 bits is plenty.
const optsDigestLen = 16

// hashKey builds "kind:explanationHash:digest", where digest covers the
// rendering options in parts. Keys for one explanation share a prefix, so
// they can be listed or dropped together with a Redis SCAN.
//
// Each part is length-prefixed before hashing; ["ab", "c"] and ["a", "bc"]
// give different keys.
func hashKey(kind, explanationHash string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	digest := hex.EncodeToString(h.Sum(nil))[:optsDigestLen]
	return kind + ":" + explanationHash + ":" + digest
}

// Hash computes the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
