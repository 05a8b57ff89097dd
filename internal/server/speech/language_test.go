package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget_Supported(t *testing.T) {
	for _, label := range SupportedLanguages {
		target, err := ParseTarget(label)
		require.NoError(t, err, "language %q", label)
		assert.True(t, target.Translate())
		assert.Equal(t, label, target.Label())
	}
}

func TestParseTarget_EmptyMeansNoTranslation(t *testing.T) {
	target, err := ParseTarget("")
	require.NoError(t, err)
	assert.False(t, target.Translate())
	assert.Equal(t, "", target.Label())
	assert.Equal(t, NoTranslation, target)
}

func TestParseTarget_Unsupported(t *testing.T) {
	_, err := ParseTarget("Klingon")
	require.Error(t, err)
}

func TestNoTranslation_ZeroValue(t *testing.T) {
	var target Target
	assert.False(t, target.Translate())
}
