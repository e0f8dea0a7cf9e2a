package validators

import (
	"errors"
	"unicode/utf8"
)

var ErrHoaxContentSize = errors.New("hoax_content_size")

// Limits are in characters, not bytes, so multibyte content counts
// the way users perceive it
func HoaxContentValidator(content string) error {
	if n := utf8.RuneCountInString(content); n < 10 || n > 5000 {
		return ErrHoaxContentSize
	}

	return nil
}
