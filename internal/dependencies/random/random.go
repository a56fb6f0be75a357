package random

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
)

// Random produces the identifiers handed out by the services
type Random interface {
	// String returns length characters drawn from alphabet
	String(length int, alphabet string) string

	// Token returns an unguessable URL-safe token built from n random bytes
	Token(n int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String returns length characters drawn uniformly from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result)
}

// Token returns n random bytes encoded as unpadded base64url
func (r *CryptoRandom) Token(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
