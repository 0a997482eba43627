package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	KeyPrefixProduction = "strat_live_"
	KeyPrefixTest       = "strat_test_"
	KeyRandomLength     = 32 // bytes of random data
	BcryptCost          = 12
)

// APIKeyStore verifies presented keys against configured bcrypt hashes.
// A key that has passed bcrypt once is remembered by SHA-256 fingerprint,
// so steady-state verification does not pay the bcrypt cost per request.
type APIKeyStore struct {
	hashes   [][]byte
	mu       sync.RWMutex
	verified map[[sha256.Size]byte]struct{}
}

// NewAPIKeyStore creates a store from bcrypt hash strings, skipping empty
// entries. Malformed hashes stay in the list but can never match.
func NewAPIKeyStore(hashes []string) *APIKeyStore {
	s := &APIKeyStore{
		verified: make(map[[sha256.Size]byte]struct{}),
	}
	for _, h := range hashes {
		if h == "" {
			continue
		}
		s.hashes = append(s.hashes, []byte(h))
	}
	return s
}

// Len returns the number of configured key hashes
func (s *APIKeyStore) Len() int {
	return len(s.hashes)
}

// Verify reports whether the presented key matches any configured hash
func (s *APIKeyStore) Verify(key string) bool {
	if key == "" || len(s.hashes) == 0 {
		return false
	}

	fingerprint := sha256.Sum256([]byte(key))

	s.mu.RLock()
	_, seen := s.verified[fingerprint]
	s.mu.RUnlock()
	if seen {
		return true
	}

	for _, hash := range s.hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
			s.mu.Lock()
			s.verified[fingerprint] = struct{}{}
			s.mu.Unlock()
			return true
		}
	}

	return false
}

// GenerateAPIKey mints a new key and the bcrypt hash to configure it with.
// env selects the key prefix: "live" for production keys, anything else
// gets the test prefix.
func GenerateAPIKey(env string) (key, hash string, err error) {
	randomBytes := make([]byte, KeyRandomLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", err
	}

	prefix := KeyPrefixTest
	if env == "live" {
		prefix = KeyPrefixProduction
	}
	key = prefix + base64.RawURLEncoding.EncodeToString(randomBytes)

	hashed, err := bcrypt.GenerateFromPassword([]byte(key), BcryptCost)
	if err != nil {
		return "", "", err
	}

	return key, string(hashed), nil
}
