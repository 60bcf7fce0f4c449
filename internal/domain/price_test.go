package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	got, err := ParsePrice("₹80")
	require.NoError(t, err)
	assert.Equal(t, int64(80), got)

	got, err = ParsePrice("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), got)

	for _, bad := range []string{"", "₹", "-80", "₹8 0", "₹9223372036854775808"} {
		_, err := ParsePrice(bad)
		assert.ErrorIs(t, err, ErrMalformedPrice, "ParsePrice(%q)", bad)
	}
}
