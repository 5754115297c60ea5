package hash

// Hash defines a one-way hasher for secrets.
type Hash interface {
	// Hash returns a hash of plaintext suitable for storage.
	Hash(plaintext string) ([]byte, error)

	// Verify reports whether plaintext matches the stored hash.
	Verify(hashed, plaintext string) bool
}
