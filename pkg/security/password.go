// Package security contains everything related to the security of user data
package security

import (
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher struct {
	Cost int
}

func New() *PasswordHasher {
	return &PasswordHasher{
		Cost: 10,
	}
}

func (p *PasswordHasher) GenerateFromPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.Cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPasswd compares a password with the stored bcrypt hash. A mismatch
// is reported through ok, not through err
func (p *PasswordHasher) VerifyPasswd(password, hash string) (ok bool, err error) {
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
