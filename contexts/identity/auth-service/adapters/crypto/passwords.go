package crypto

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps hashing expensive enough to resist offline brute force.
const bcryptCost = 12

// PasswordHasher implements the credential store on bcrypt. Hashes are
// salted per call; plaintext never leaves this adapter.
type PasswordHasher struct{}

func (PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt compares in
// constant time; a mismatch is a false result, never an error.
func (PasswordHasher) Verify(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
