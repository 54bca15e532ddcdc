package postgres

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackburnd/portfolio-core/internal/core/ports/driven"
)

// Ensure Cipher implements SecretCipher
var _ driven.SecretCipher = (*Cipher)(nil)

const (
	// blobVersion is the version byte for the encrypted blob format.
	// Allows future format changes while keeping old blobs readable.
	blobVersion = 0x01

	// nonceSize is the AES-GCM nonce size
	nonceSize = 12

	// keySize is the required key size for AES-256
	keySize = 32
)

var (
	// ErrInvalidKeySize is returned when the master key is not 32 bytes.
	ErrInvalidKeySize = errors.New("master key must be 32 bytes")

	// ErrInvalidBlobSize is returned when the encrypted blob is too small.
	ErrInvalidBlobSize = errors.New("encrypted blob is too small")

	// ErrUnsupportedVersion is returned for an unknown blob version byte.
	ErrUnsupportedVersion = errors.New("unsupported secret blob version")

	// ErrDecryptionFailed is returned when authentication fails on decrypt
	// (tampered blob or wrong key). The credential is unusable; this is
	// not a retryable condition.
	ErrDecryptionFailed = errors.New("failed to decrypt secret blob")
)

// Cipher handles AES-256-GCM encryption of credential material at rest.
// Blob format: version(1) || nonce(12) || ciphertext(N). Stateless given
// the key, safe for concurrent use.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a cipher from a raw 32-byte master key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromHex creates a cipher from a hex-encoded master key, the form
// the key takes in process configuration.
func NewCipherFromHex(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode master key: %w", err)
	}
	return NewCipher(key)
}

// Encrypt seals a JSON-marshaled value into a blob.
func (c *Cipher) Encrypt(value any) ([]byte, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 1+nonceSize+len(sealed))
	blob[0] = blobVersion
	copy(blob[1:1+nonceSize], nonce)
	copy(blob[1+nonceSize:], sealed)
	return blob, nil
}

// Decrypt opens a blob into the given pointer target.
func (c *Cipher) Decrypt(blob []byte, value any) error {
	if len(blob) < 1+nonceSize+c.aead.Overhead() {
		return ErrInvalidBlobSize
	}
	if blob[0] != blobVersion {
		return fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, blob[0])
	}

	nonce := blob[1 : 1+nonceSize]
	sealed := blob[1+nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return ErrDecryptionFailed
	}

	if err := json.Unmarshal(plaintext, value); err != nil {
		return fmt.Errorf("unmarshal decrypted value: %w", err)
	}
	return nil
}

// EncryptString seals a plain string.
func (c *Cipher) EncryptString(s string) ([]byte, error) {
	return c.Encrypt(s)
}

// DecryptString opens a blob containing a plain string.
func (c *Cipher) DecryptString(blob []byte) (string, error) {
	var s string
	if err := c.Decrypt(blob, &s); err != nil {
		return "", err
	}
	return s, nil
}
