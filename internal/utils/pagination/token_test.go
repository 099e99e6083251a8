package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRefNoCursor(t *testing.T) {
	for _, refNo := range []int64{0, 1, 42, 9_000_000_000} {
		cursor := EncodeRefNoCursor(refNo)
		assert.NotEmpty(t, cursor, "Cursor should not be empty")

		decoded, err := DecodeRefNoCursor(cursor)
		assert.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, refNo, decoded, "Ref no should match after decode")
	}
}

func TestDecodeRefNoCursorError(t *testing.T) {
	// Invalid base64
	_, err := DecodeRefNoCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Valid base64 but not a number
	_, err = DecodeRefNoCursor("bm90YW51bWJlcg==") // "notanumber"
	assert.Error(t, err, "Should return an error for a non-numeric cursor")
	assert.Contains(t, err.Error(), "ref no parse", "Error should mention ref no parsing")
}
