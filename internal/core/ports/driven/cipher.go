package driven

// SecretCipher encrypts and decrypts credential material at rest.
// Implementations must be safe for concurrent use and stateless given the
// master key. A decrypt failure means the credential is unusable (tampered
// blob or wrong key), never a retryable condition.
type SecretCipher interface {
	// Encrypt seals a value into an opaque blob
	Encrypt(value any) ([]byte, error)

	// Decrypt opens a blob into the given pointer target
	Decrypt(blob []byte, value any) error

	// EncryptString seals a plain string
	EncryptString(s string) ([]byte, error)

	// DecryptString opens a blob containing a plain string
	DecryptString(blob []byte) (string, error)
}
