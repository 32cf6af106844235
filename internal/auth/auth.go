package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// Authenticator holds the SHA-256/base64 digest of the configured secret.
// The secret itself is discarded after construction and neither side of a
// comparison is ever logged.
type Authenticator struct {
	digest []byte
}

// New fails on an empty secret so an unconfigured process refuses to start
// instead of silently rejecting every request at auth time.
func New(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("auth secret is not configured")
	}
	return &Authenticator{digest: digest(secret)}, nil
}

// Authenticate reports whether the digest of candidate matches the configured
// digest. Every position of the configured digest is visited even after a
// mismatch is found, so the comparison cost does not depend on where the
// first differing character sits. A candidate digest shorter than the
// configured one fails the trailing positions without stopping the scan.
func (a *Authenticator) Authenticate(candidate string) bool {
	got := digest(candidate)
	equal := true
	for i := range a.digest {
		if i >= len(got) || got[i] != a.digest[i] {
			equal = false
		}
	}
	return equal
}

func digest(value string) []byte {
	sum := sha256.Sum256([]byte(value))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
