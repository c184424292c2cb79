//go:build unit

package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferenceLine(t *testing.T) {
	t.Parallel()

	t.Run("should parse a well-formed line", func(t *testing.T) {
		t.Parallel()

		// when
		ref, ok := parseReferenceLine(
			"2f5c3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5 refs/heads/main")

		// then
		require.True(t, ok)
		assert.Equal(t, "refs/heads/main", ref.Name)
		assert.Equal(t, "2f5c3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5", ref.Hash)
	})

	t.Run("should accept sha256 object names", func(t *testing.T) {
		t.Parallel()

		// when
		_, ok := parseReferenceLine(
			"b1946ac92492d2347c6235b4d2611184a0e3c0e8b1946ac92492d2347c6235b4 refs/tags/v1.0.0")

		// then
		assert.True(t, ok)
	})

	t.Run("should skip malformed lines", func(t *testing.T) {
		t.Parallel()

		for _, line := range []string{
			"",
			"Cloning into 'repo'...",
			"deadbeef refs/heads/short-hash",
			"2f5c3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5",
			"ZZZc3a9d1f0e6f0b7e1b2c3d4e5f60718293a4b5 refs/heads/not-hex",
		} {
			_, ok := parseReferenceLine(line)
			assert.False(t, ok, "line %q should be skipped", line)
		}
	})
}
