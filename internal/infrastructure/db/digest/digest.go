// Package digest derives storage keys from browser session ids so the raw
// cookie value is never written to a session backend.
package digest

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// SessionKey returns the hex BLAKE2b-256 digest of a session id.
func SessionKey(sessionID string) string {
	sum := blake2b.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])
}
