package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/krehermann/xorbreak/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		return p
	}

	tests := []struct {
		name     string
		path     string
		isHex    bool
		isBase64 bool
		want     []byte
		wantErr  bool
	}{
		{name: "raw", path: write("raw", "hello\n"), want: []byte("hello\n")},
		{name: "hex", path: write("hex", "6865\n6c6c6f\n"), isHex: true, want: []byte("hello")},
		{name: "base64", path: write("b64", "aGVs\nbG8=\n"), isBase64: true, want: []byte("hello")},
		{name: "bad hex", path: write("badhex", "zz"), isHex: true, wantErr: true},
		{name: "both encodings", path: write("both", "00"), isHex: true, isBase64: true, wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "nope"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(tt.path, tt.isHex, tt.isBase64)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintReport(t *testing.T) {
	report := utils.Report{
		Best: utils.Result{Key: []byte("key"), Output: []byte("plain text"), Score: 1.5},
		Lengths: []utils.KeyCandidate{
			{Length: 3, Score: 0.3},
			{Length: 6, Score: 0.31},
		},
	}
	cfg := utils.DefaultConfig()
	cfg.TopK = 1

	var buf bytes.Buffer
	printReport(&buf, report, cfg)
	out := buf.String()
	assert.Contains(t, out, "*   3  0.300000")
	assert.Contains(t, out, "    6  0.310000")
	assert.Contains(t, out, `"key" (6b6579)`)
	assert.Contains(t, out, "plain text")
	assert.NotContains(t, out, "english confidence")
}
