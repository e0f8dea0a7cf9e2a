package validators

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestProfileImageValidator(t *testing.T) {
	viper.Set("upload.max_image_size", int64(2<<20))

	assert.NoError(t, ProfileImageValidator(pngHeader))
	assert.NoError(t, ProfileImageValidator([]byte{0xFF, 0xD8, 0xFF, 0xE0}))

	assert.ErrorIs(t, ProfileImageValidator([]byte("GIF89a plain bytes")), ErrImageUnsupported)
	assert.ErrorIs(t, ProfileImageValidator([]byte("just some text")), ErrImageUnsupported)

	oversized := make([]byte, 2<<20+1)
	copy(oversized, pngHeader)
	assert.ErrorIs(t, ProfileImageValidator(oversized), ErrImageTooLarge)
}
