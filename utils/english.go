package utils

import (
	"math"

	"github.com/pkg/errors"
)

// http://practicalcryptography.com/cryptanalysis/letter-frequencies-various-languages/english-letter-frequencies/
// percentages indexed by letter - 'a'
var freq = [26]float64{
	8.55,  // a
	1.60,  // b
	3.16,  // c
	3.87,  // d
	12.10, // e
	2.18,  // f
	2.09,  // g
	4.96,  // h
	7.33,  // i
	0.22,  // j
	0.81,  // k
	4.21,  // l
	2.53,  // m
	7.17,  // n
	7.47,  // o
	2.07,  // p
	0.10,  // q
	6.33,  // r
	6.73,  // s
	8.94,  // t
	2.68,  // u
	1.06,  // v
	1.83,  // w
	0.19,  // x
	1.72,  // y
	0.11,  // z
}

// EnglishFrequencies returns the reference percentage of each lowercase
// letter, keyed by the letter.
func EnglishFrequencies() map[byte]float64 {
	out := make(map[byte]float64, len(freq))
	for i, f := range freq {
		out[byte('a'+i)] = f
	}
	return out
}

// FittingQuotient is the mean absolute difference between the letter
// percentages observed in b and the English reference. Only the bytes 'a'
// through 'z' are counted, everything else still counts toward len(b), so
// uppercase or binary heavy input scores badly. Lower is more English.
func FittingQuotient(b []byte) (float64, error) {
	if len(b) == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "fitting quotient of empty text")
	}

	var counts [26]int
	for _, c := range b {
		if c >= 'a' && c <= 'z' {
			counts[c-'a']++
		}
	}

	var sum float64
	for i, want := range freq {
		got := float64(counts[i]) * 100 / float64(len(b))
		sum += math.Abs(got - want)
	}
	return sum / float64(len(freq)), nil
}
