package alert

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", truncate("a\n b\t  c", 100))
}

func TestTruncateBoundsLength(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := truncate(long, maxBodyLength)
	assert.LessOrEqual(t, len([]rune(got)), maxBodyLength+2)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTruncateKeepsMultibyteRunesIntact(t *testing.T) {
	long := strings.Repeat("مرحبا ", 100)
	got := truncate(long, maxBodyLength)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, maxBodyLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestNoopNotifierIsSilent(t *testing.T) {
	// Must not panic or error regardless of input.
	NoopNotifier{}.Notify("", strings.Repeat("y", 1000))
}
