// Package pkce generates the verifier/challenge pair for the OAuth2
// authorization code flow with Proof Key for Code Exchange (RFC 7636).
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

const (
	// UnreservedCharacters is the RFC 7636 code_verifier alphabet
	UnreservedCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

	MinVerifierLength     = 43
	MaxVerifierLength     = 128
	DefaultVerifierLength = MaxVerifierLength

	// MethodS256 is the only challenge method this package produces
	MethodS256 = "S256"
)

// Pair is a single-use verifier and its derived challenge
type Pair struct {
	Verifier  string
	Challenge string
}

// New generates a fresh pair with the default verifier length
func New() (Pair, error) {
	verifier, err := GenerateVerifier(DefaultVerifierLength)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Verifier: verifier, Challenge: GenerateChallenge(verifier)}, nil
}

// GenerateVerifier draws length characters uniformly from the unreserved set
// using crypto/rand.
func GenerateVerifier(length int) (string, error) {
	if length < MinVerifierLength || length > MaxVerifierLength {
		return "", fmt.Errorf("verifier length must be between %d and %d, got %d", MinVerifierLength, MaxVerifierLength, length)
	}

	max := big.NewInt(int64(len(UnreservedCharacters)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		b[i] = UnreservedCharacters[n.Int64()]
	}
	return string(b), nil
}

// GenerateChallenge creates the S256 code challenge: BASE64URL(SHA256(verifier)) without padding
func GenerateChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// ValidateVerifier checks a verifier read back from the client: RFC 7636
// length bounds and only unreserved characters.
func ValidateVerifier(verifier string) error {
	if len(verifier) < MinVerifierLength || len(verifier) > MaxVerifierLength {
		return fmt.Errorf("code_verifier length must be between %d and %d characters", MinVerifierLength, MaxVerifierLength)
	}
	for i := 0; i < len(verifier); i++ {
		if strings.IndexByte(UnreservedCharacters, verifier[i]) < 0 {
			return fmt.Errorf("code_verifier contains invalid character %q", verifier[i])
		}
	}
	return nil
}
