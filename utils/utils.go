package utils

import (
	"context"
	"math/bits"

	"github.com/pemistahl/lingua-go"
	"github.com/pkg/errors"
)

func FixedXor(b1, b2 []byte) ([]byte, error) {
	if len(b1) != len(b2) {
		return nil, errors.Wrapf(ErrInvalidInput, "buffers must be the same length (%d, %d)", len(b1), len(b2))
	}

	out := make([]byte, len(b1))
	for i := 0; i < len(out); i++ {
		out[i] = b1[i] ^ b2[i]
	}
	return out, nil
}

func XorCipher(msg []byte, cipher byte) []byte {
	out := make([]byte, len(msg))
	for i := 0; i < len(out); i++ {
		out[i] = msg[i] ^ cipher
	}
	return out
}

// XorEncrypt xors msg with key repeated to the length of msg. Applying it
// twice with the same key returns msg, so it decrypts as well.
func XorEncrypt(msg, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty key")
	}
	fixedKey := make([]byte, len(msg))
	for i := 0; i < len(fixedKey); i += 1 {
		fixedKey[i] = key[i%len(key)]
	}
	return FixedXor(msg, fixedKey)
}

// HammingDistance counts the differing bits of b1 and b2 over the length of
// the shorter one.
func HammingDistance(b1, b2 []byte) int {
	n := len(b1)
	if len(b2) < n {
		n = len(b2)
	}
	cnt := 0
	for i := 0; i < n; i++ {
		cnt += bits.OnesCount8(b1[i] ^ b2[i])
	}
	return cnt
}

// Similarity is the hamming distance of b1 and b2 as a fraction of the bits
// they have in common, in [0, 1].
func Similarity(b1, b2 []byte) (float64, error) {
	n := len(b1)
	if len(b2) < n {
		n = len(b2)
	}
	if n == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "similarity of empty buffer")
	}
	return float64(HammingDistance(b1, b2)) / float64(8*n), nil
}

// BlockDistance splits data into keyLen sized chunks and averages the
// similarity of every adjacent pair of chunks. The last chunk may be short.
// At least two full chunks are required.
func BlockDistance(data []byte, keyLen int) (float64, error) {
	if keyLen < 1 || keyLen > len(data)/2 {
		return 0, errors.Wrapf(ErrInsufficientData, "data length %d less than 2*keylen for keylen %d", len(data), keyLen)
	}

	chunks := make([][]byte, 0, len(data)/keyLen+1)
	for start := 0; start < len(data); start += keyLen {
		end := start + keyLen
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}

	var sum float64
	pairs := len(chunks) - 1
	for i := 0; i < pairs; i++ {
		s, err := Similarity(chunks[i], chunks[i+1])
		if err != nil {
			return 0, err
		}
		sum += s
	}
	return sum / float64(pairs), nil
}

type Texter interface {
	Text() []byte
}

type Keyer interface {
	Key() []byte
}

type KeyTexter interface {
	Texter
	Keyer
}

// lowest drains scoreCh and returns the candidate with the smallest score.
// Ties keep the candidate received first.
func lowest(ctx context.Context, scoreFn func(t Texter) float64, scoreCh <-chan KeyTexter) (KeyTexter, float64, error) {
	var (
		out     KeyTexter
		currMin float64
	)
PROCESS:
	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case toScore, ok := <-scoreCh:
			if !ok {
				break PROCESS
			}
			result := scoreFn(toScore)
			if out == nil || result < currMin {
				currMin = result
				out = toScore
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return out, currMin, nil
}

// LanguageScanner wraps a lingua detector limited to a handful of western
// european languages, enough to tell English from look-alikes.
type LanguageScanner struct {
	detector lingua.LanguageDetector
}

func NewLanguageScanner() *LanguageScanner {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.French, lingua.German, lingua.Spanish, lingua.Italian).
		Build()
	return &LanguageScanner{
		detector: detector,
	}
}

// EnglishConfidence returns lingua's confidence in [0, 1] that text is English.
func (s *LanguageScanner) EnglishConfidence(text []byte) float64 {
	return s.detector.ComputeLanguageConfidence(string(text), lingua.English)
}
