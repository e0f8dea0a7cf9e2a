// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUsernameEmpty = errors.New("username_null")
	ErrUsernameSize  = errors.New("username_size")

	ErrEmailEmpty   = errors.New("email_null")
	ErrEmailInvalid = errors.New("email_invalid")

	ErrPasswordEmpty   = errors.New("password_null")
	ErrPasswordSize    = errors.New("password_size")
	ErrPasswordPattern = errors.New("password_pattern")
)

// Error values double as message catalog keys so that routers can
// localize them per request

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if n := utf8.RuneCountInString(u); n < 4 || n > 32 {
		return ErrUsernameSize
	}

	return nil
}

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return ErrEmailInvalid
	}

	return nil
}

// PasswordValidator enforces at least 6 characters with one lowercase,
// one uppercase and one digit
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if utf8.RuneCountInString(p) < 6 {
		return ErrPasswordSize
	}

	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !lower || !upper || !digit {
		return ErrPasswordPattern
	}

	return nil
}
