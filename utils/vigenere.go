package utils

import (
	"context"
	"log"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Vigenere breaks repeating-key xor without knowing the key or its length.
type Vigenere struct {
	cfg    Config
	logger *log.Logger

	scannerOnce sync.Once
	scanner     *LanguageScanner
}

func NewVigenere(cfg Config) (*Vigenere, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Vigenere{
		cfg:    cfg,
		logger: log.Default(),
	}, nil
}

// WithLogger replaces the logger used when Config.Verbose is set.
func (v *Vigenere) WithLogger(l *log.Logger) *Vigenere {
	v.logger = l
	return v
}

func (v *Vigenere) logf(format string, args ...any) {
	if v.cfg.Verbose {
		v.logger.Printf(format, args...)
	}
}

// KeyCandidate is a hypothesised key length. Lower scores are more likely.
type KeyCandidate struct {
	Length int
	Score  float64
}

// Result is one decryption of the full ciphertext.
type Result struct {
	Key    []byte
	Output []byte
	// Score is the fitting quotient of Output, lower is better.
	Score float64
	// Confidence is lingua's English confidence in Output, only set when
	// Config.DetectLanguage is enabled.
	Confidence float64
}

type Report struct {
	Best Result
	// Lengths is every scored key length, best first.
	Lengths []KeyCandidate
	// Evaluated holds one result per decrypted key length in rank order.
	Evaluated []Result
}

// RankKeyLengths scores every key length in the configured range by
// BlockDistance and returns them sorted ascending. Lengths without enough
// data for a pair of chunks are skipped.
func (v *Vigenere) RankKeyLengths(data []byte) ([]KeyCandidate, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty ciphertext")
	}
	// longer keys never have two chunks to compare
	hi := v.cfg.MaxKeyLength
	if hi > len(data)/2 {
		v.logf("skipping key lengths %d..%d: data length %d", len(data)/2+1, hi, len(data))
		hi = len(data) / 2
	}
	if hi < v.cfg.MinKeyLength {
		return []KeyCandidate{}, nil
	}
	out := make([]KeyCandidate, 0, hi-v.cfg.MinKeyLength+1)
	for i := v.cfg.MinKeyLength; i <= hi; i++ {
		s, err := BlockDistance(data, i)
		if errors.Is(err, ErrInsufficientData) {
			v.logf("skipping key length %d: %v", i, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, KeyCandidate{Length: i, Score: s})
	}
	slices.SortStableFunc(out, func(a, b KeyCandidate) bool {
		return a.Score < b.Score
	})
	return out, nil
}

// Column returns data[offset], data[offset+keyLen], data[offset+2*keyLen], ...
func Column(data []byte, keyLen, offset int) []byte {
	if keyLen < 1 || offset < 0 || offset >= len(data) {
		return nil
	}
	out := make([]byte, 0, (len(data)-offset+keyLen-1)/keyLen)
	for i := offset; i < len(data); i += keyLen {
		out = append(out, data[i])
	}
	return out
}

func transpose(data []byte, keyLen int) [][]byte {
	out := make([][]byte, keyLen)
	for i := range out {
		out[i] = Column(data, keyLen, i)
	}
	return out
}

type blockKeyCandidate struct {
	key           byte
	decryptedData []byte
}

func (c *blockKeyCandidate) Text() []byte {
	return c.decryptedData
}

func (c *blockKeyCandidate) Key() []byte {
	return []byte{c.key}
}

// BreakColumn finds the single xor byte whose decryption of column fits
// English best. Every byte is tried in ascending order and the first minimum
// wins.
func BreakColumn(ctx context.Context, column []byte) ([]byte, byte, error) {
	if len(column) == 0 {
		return nil, 0, errors.Wrap(ErrInsufficientData, "empty column")
	}

	scoreCh := make(chan KeyTexter)
	go func() {
		defer close(scoreCh)
		for i := 0; i < 256; i++ {
			c := &blockKeyCandidate{
				key:           byte(i),
				decryptedData: XorCipher(column, byte(i)),
			}
			select {
			case <-ctx.Done():
				return
			case scoreCh <- c:
			}
		}
	}()

	// column is non-empty so the quotient cannot fail
	scoreFn := func(t Texter) float64 {
		q, _ := FittingQuotient(t.Text())
		return q
	}
	best, _, err := lowest(ctx, scoreFn, scoreCh)
	if err != nil {
		return nil, 0, err
	}
	bc := best.(*blockKeyCandidate)
	return bc.decryptedData, bc.key, nil
}

// Assemble recovers one key byte per column for a key of length keyLen,
// decrypts all of data with it and scores the plaintext.
func Assemble(ctx context.Context, data []byte, keyLen int) (Result, error) {
	if keyLen < 1 {
		return Result{}, errors.Wrapf(ErrInvalidInput, "key length %d", keyLen)
	}
	if len(data) < keyLen {
		return Result{}, errors.Wrapf(ErrInsufficientData, "data length %d shorter than key length %d", len(data), keyLen)
	}

	key := make([]byte, keyLen)
	for offset, col := range transpose(data, keyLen) {
		_, k, err := BreakColumn(ctx, col)
		if err != nil {
			return Result{}, errors.Wrapf(err, "column %d of %d", offset, keyLen)
		}
		key[offset] = k
	}

	out, err := XorEncrypt(data, key)
	if err != nil {
		return Result{}, err
	}
	score, err := FittingQuotient(out)
	if err != nil {
		return Result{}, err
	}
	return Result{Key: key, Output: out, Score: score}, nil
}

// bestIndex returns the index of the lowest scoring result, the earliest one
// on ties.
func bestIndex(results []Result) int {
	best := 0
	for idx, r := range results {
		if r.Score < results[best].Score {
			best = idx
		}
	}
	return best
}

func (v *Vigenere) languageScanner() *LanguageScanner {
	v.scannerOnce.Do(func() {
		v.scanner = NewLanguageScanner()
	})
	return v.scanner
}

// Decrypt ranks the key lengths, assembles a key for each of the TopK best
// and returns the decryption with the lowest fitting quotient. Ties go to the
// better ranked length.
func (v *Vigenere) Decrypt(ctx context.Context, data []byte) (Report, error) {
	data = slices.Clone(data)
	lengths, err := v.RankKeyLengths(data)
	if err != nil {
		return Report{}, err
	}
	if len(lengths) == 0 {
		return Report{}, errors.Wrapf(ErrNoViableCandidate, "ciphertext of %d bytes too short for key length %d", len(data), v.cfg.MinKeyLength)
	}
	for _, l := range lengths {
		v.logf("key length %d score %f", l.Length, l.Score)
	}

	keys := lengths
	if len(keys) > v.cfg.TopK {
		keys = keys[:v.cfg.TopK]
	}

	results := make([]Result, len(keys))
	errs := make([]error, len(keys))
	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := v.cfg.Workers
	if workers > len(keys) {
		workers = len(keys)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], errs[idx] = Assemble(ctx, data, keys[idx].Length)
			}
		}()
	}
	for idx := range keys {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return Report{}, errors.Wrapf(err, "key length %d", keys[idx].Length)
		}
	}

	for idx, r := range results {
		v.logf("key length %d key %q score %f", keys[idx].Length, r.Key, r.Score)
	}
	bestIdx := bestIndex(results)

	if v.cfg.DetectLanguage {
		ls := v.languageScanner()
		for idx := range results {
			results[idx].Confidence = ls.EnglishConfidence(results[idx].Output)
		}
	}

	return Report{
		Best:      results[bestIdx],
		Lengths:   lengths,
		Evaluated: results,
	}, nil
}
