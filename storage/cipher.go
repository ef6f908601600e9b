package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Encrypted wraps a Storage provider, encrypting values with
// ChaCha20-Poly1305. The cipher performs well on CPUs without AES hardware
// acceleration, which is the common case on the devices this kit targets.
// Keys are stored in the clear; only values are sealed.
type Encrypted struct {
	inner Storage
	aead  interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
		NonceSize() int
	}
}

// NewEncrypted wraps inner with value encryption. The key is hashed with
// SHA-256 to produce a consistent 32-byte cipher key.
func NewEncrypted(inner Storage, key string) (*Encrypted, error) {
	if key == "" {
		return nil, fmt.Errorf("encryption key is required")
	}
	hasher := sha256.New()
	hasher.Write([]byte(key))
	keyBytes := hasher.Sum(nil)

	aead, err := chacha20poly1305.New(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create chacha20: %w", err)
	}

	return &Encrypted{inner: inner, aead: aead}, nil
}

func (e *Encrypted) Get(key string) (string, bool) {
	sealed, ok := e.inner.Get(key)
	if !ok {
		return "", false
	}
	plain, err := e.open(sealed)
	if err != nil {
		// Wrong key or tampered value reads as absent.
		return "", false
	}
	return plain, true
}

func (e *Encrypted) Set(key, value string) error {
	sealed, err := e.seal(value)
	if err != nil {
		return err
	}
	return e.inner.Set(key, sealed)
}

func (e *Encrypted) Remove(key string) error {
	return e.inner.Remove(key)
}

func (e *Encrypted) Clear() error {
	return e.inner.Clear()
}

func (e *Encrypted) Keys() []string {
	return e.inner.Keys()
}

func (e *Encrypted) Dispose() {
	e.inner.Dispose()
}

func (e *Encrypted) seal(plaintext string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (e *Encrypted) open(sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	plain, err := e.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plain), nil
}
