package utils

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnglishFrequencies(t *testing.T) {
	f := EnglishFrequencies()
	require.Len(t, f, 26)

	var sum float64
	for c, v := range f {
		assert.True(t, c >= 'a' && c <= 'z', "unexpected key %q", c)
		sum += v
	}
	assert.InDelta(t, 100, sum, 0.1)

	// callers get a copy
	f['e'] = 0
	assert.Equal(t, 12.10, EnglishFrequencies()['e'])
}

// referenceText holds round(100*pct) copies of each letter.
func referenceText() []byte {
	var buf bytes.Buffer
	for c, pct := range EnglishFrequencies() {
		buf.Write(bytes.Repeat([]byte{c}, int(math.Round(pct*100))))
	}
	return buf.Bytes()
}

func TestFittingQuotient(t *testing.T) {
	ref, err := FittingQuotient(referenceText())
	require.NoError(t, err)
	assert.Less(t, ref, 0.01)

	r := rand.New(rand.NewSource(1))
	noise := make([]byte, 10000)
	r.Read(noise)
	random, err := FittingQuotient(noise)
	require.NoError(t, err)
	t.Logf("reference %f random %f", ref, random)
	assert.Greater(t, random, 1.0)
	assert.Greater(t, random, ref)

	t.Run("uppercase is not counted", func(t *testing.T) {
		lower, err := FittingQuotient([]byte("the quick brown fox jumps over the lazy dog"))
		require.NoError(t, err)
		upper, err := FittingQuotient([]byte("THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG"))
		require.NoError(t, err)
		assert.Greater(t, upper, lower)

		var want float64
		for _, f := range EnglishFrequencies() {
			want += f
		}
		assert.InDelta(t, want/26, upper, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := FittingQuotient(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
