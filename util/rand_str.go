// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomString generates a random string of length n using only letters.
// Used for opaque auth tokens, activation/reset tokens and stored filenames
func RandomString(n int) (string, error) {
	return gonanoid.Generate(charset, n)
}
