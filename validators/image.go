package validators

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrImageTooLarge    = errors.New("profile_image_size")
	ErrImageUnsupported = errors.New("unsupported_image_file")
)

// ProfileImageValidator checks decoded image bytes against the configured
// size cap and restricts the type to PNG/JPEG. The type check sniffs the
// actual content instead of trusting anything the client declared
func ProfileImageValidator(buf []byte) error {
	if int64(len(buf)) > viper.GetInt64("upload.max_image_size") {
		return ErrImageTooLarge
	}

	mime := mimetype.Detect(buf)
	if !mime.Is("image/png") && !mime.Is("image/jpeg") {
		return ErrImageUnsupported
	}

	return nil
}
