// Package codec converts Wi-Fi passwords between plaintext and the opaque
// encoded form persisted by the record store. Values are encrypted with
// AES-256-GCM under a single process-wide key derived from a configured
// passphrase; the nonce (12 bytes) is prepended to the ciphertext and the
// whole blob is base64-encoded.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecodeFailed is wrapped by every Decode error so callers can treat any
// undecodable value as a data-integrity problem with a single errors.Is check.
var ErrDecodeFailed = errors.New("encoded password cannot be decoded")

// ErrEmptyPlaintext is returned by Encode for an empty input. Passwords are
// required non-empty, so an empty plaintext is always a caller bug.
var ErrEmptyPlaintext = errors.New("plaintext password is empty")

// Codec encrypts and decrypts password strings with a fixed symmetric key.
// The key is derived once at construction; rotating the passphrase invalidates
// every previously encoded value.
type Codec struct {
	key []byte // 32-byte AES-256 key.
}

// New derives a 32-byte AES-256 key from the passphrase and returns a Codec.
func New(passphrase string) *Codec {
	key := sha256.Sum256([]byte(passphrase))
	return &Codec{key: key[:]}
}

// Encode encrypts plaintext and returns a base64-encoded nonce||ciphertext||tag
// blob. Two encodings of the same plaintext differ (random nonce), but both
// decode back to the original.
func (c *Codec) Encode(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPlaintext
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decode reverses Encode. It fails with an error wrapping ErrDecodeFailed when
// the input is not a valid encoding under the configured key: bad base64, a
// truncated blob, a failed authentication tag, or an empty recovered
// plaintext (plaintext is required non-empty, so an empty result is
// indistinguishable from corruption).
func (c *Codec) Decode(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecodeFailed, err)
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecodeFailed)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecodeFailed)
	}

	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: empty plaintext", ErrDecodeFailed)
	}
	return string(plaintext), nil
}

func (c *Codec) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
