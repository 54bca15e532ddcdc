package postgres

import (
	"encoding/hex"
	"errors"
	"testing"
)

var testKey = []byte("01234567890123456789012345678901")

func TestCipher_RoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	type tokenMaterial struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	original := tokenMaterial{
		AccessToken:  "ya29.a0AbCdEf",
		RefreshToken: "1//0gFake",
	}

	blob, err := cipher.Encrypt(original)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	// Verify blob format
	if len(blob) < 1+nonceSize {
		t.Fatalf("blob too short: %d bytes", len(blob))
	}
	if blob[0] != blobVersion {
		t.Errorf("version byte: got %d, want %d", blob[0], blobVersion)
	}

	var decrypted tokenMaterial
	if err := cipher.Decrypt(blob, &decrypted); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if decrypted != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decrypted, original)
	}
}

func TestCipher_StringRoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	blob, err := cipher.EncryptString("client-secret-value")
	if err != nil {
		t.Fatalf("EncryptString: %v", err)
	}

	got, err := cipher.DecryptString(blob)
	if err != nil {
		t.Fatalf("DecryptString: %v", err)
	}
	if got != "client-secret-value" {
		t.Errorf("got %q, want %q", got, "client-secret-value")
	}
}

func TestCipher_NonceUniqueness(t *testing.T) {
	cipher, _ := NewCipher(testKey)

	a, _ := cipher.EncryptString("same plaintext")
	b, _ := cipher.EncryptString("same plaintext")
	if string(a) == string(b) {
		t.Error("two encryptions of the same plaintext must not produce the same blob")
	}
}

func TestCipher_InvalidKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		if _, err := NewCipher(make([]byte, size)); !errors.Is(err, ErrInvalidKeySize) {
			t.Errorf("key size %d: expected ErrInvalidKeySize, got %v", size, err)
		}
	}
}

func TestCipher_FromHex(t *testing.T) {
	cipher, err := NewCipherFromHex(hex.EncodeToString(testKey))
	if err != nil {
		t.Fatalf("NewCipherFromHex: %v", err)
	}

	blob, _ := cipher.EncryptString("secret")
	if got, _ := cipher.DecryptString(blob); got != "secret" {
		t.Errorf("got %q, want %q", got, "secret")
	}

	if _, err := NewCipherFromHex("not hex"); err == nil {
		t.Error("expected error for malformed hex key")
	}
	if _, err := NewCipherFromHex("abcd"); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("expected ErrInvalidKeySize for short hex key, got %v", err)
	}
}

func TestCipher_TamperedBlob(t *testing.T) {
	cipher, _ := NewCipher(testKey)
	blob, _ := cipher.EncryptString("secret")

	// Flip one ciphertext bit
	tampered := make([]byte, len(blob))
	copy(tampered, blob)
	tampered[len(tampered)-1] ^= 0x01

	if _, err := cipher.DecryptString(tampered); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed for tampered blob, got %v", err)
	}
}

func TestCipher_MalformedBlob(t *testing.T) {
	cipher, _ := NewCipher(testKey)

	tests := []struct {
		name    string
		blob    []byte
		wantErr error
	}{
		{"empty", nil, ErrInvalidBlobSize},
		{"too short", []byte{blobVersion, 1, 2}, ErrInvalidBlobSize},
		{"unknown version", append([]byte{0xFF}, make([]byte, nonceSize+16)...), ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cipher.DecryptString(tt.blob); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCipher_WrongKey(t *testing.T) {
	cipherA, _ := NewCipher(testKey)
	cipherB, _ := NewCipher([]byte("abcdefghijklmnopqrstuvwxyz012345"))

	blob, _ := cipherA.EncryptString("secret")
	if _, err := cipherB.DecryptString(blob); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed with wrong key, got %v", err)
	}
}
