// Package secretary provides methods for ciphering.
package secretary

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary"
)

// Check interface implementation explicitly
var (
	_ secretary.Secretary = (*Secretary)(nil)
)

// hkdfInfo binds derived keys to the identity cookie use.
const hkdfInfo = "studyhelper user identity"

// ErrShortToken is returned for tokens too short to carry a nonce.
var ErrShortToken = errors.New("token is shorter than a nonce")

// Secretary defines object structure and its attributes.
type Secretary struct {
	aesgcm cipher.AEAD
}

// NewSecretaryService initializes a secretary service with ciphering functionality.
// The cipher key is derived from the configured user key.
func NewSecretaryService(c *config.Config) (*Secretary, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(c.UserKey), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	aesblock, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(aesblock)
	if err != nil {
		return nil, err
	}
	return &Secretary{aesgcm: aesgcm}, nil
}

// Encode ciphers data under a fresh random nonce and returns the hex of nonce and ciphertext.
func (s *Secretary) Encode(data string) string {
	nonce := make([]byte, s.aesgcm.NonceSize())
	// crypto/rand.Read never fails since Go 1.24
	_, _ = rand.Read(nonce)
	encoded := s.aesgcm.Seal(nonce, nonce, []byte(data), nil)
	return hex.EncodeToString(encoded)
}

// Decode deciphers data using the previously established cipher.
func (s *Secretary) Decode(msg string) (string, error) {
	msgBytes, err := hex.DecodeString(msg)
	if err != nil {
		return "", err
	}
	size := s.aesgcm.NonceSize()
	if len(msgBytes) < size {
		return "", ErrShortToken
	}
	decoded, err := s.aesgcm.Open(nil, msgBytes[:size], msgBytes[size:], nil)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
