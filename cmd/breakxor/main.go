package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/krehermann/xorbreak/utils"
	"github.com/pkg/errors"
)

func main() {
	defaults := utils.DefaultConfig()

	inPtr := flag.String("in", "", "input file path (default stdin)")
	hexPtr := flag.Bool("hex", false, "input is hex encoded")
	b64Ptr := flag.Bool("base64", false, "input is base64 encoded")
	keyPtr := flag.String("key", "", "encrypt the input with this key and print it hex encoded instead of breaking it")
	minPtr := flag.Int("min", defaults.MinKeyLength, "smallest key length to try")
	maxPtr := flag.Int("max", defaults.MaxKeyLength, "largest key length to try")
	topPtr := flag.Int("top", defaults.TopK, "number of best key lengths to decrypt")
	workersPtr := flag.Int("workers", defaults.Workers, "key lengths decrypted concurrently")
	langPtr := flag.Bool("lang", false, "report lingua english confidence")
	verbosePtr := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("breakxor: ")

	data, err := readInput(*inPtr, *hexPtr, *b64Ptr)
	if err != nil {
		log.Fatal(err)
	}

	if *keyPtr != "" {
		enc, err := utils.XorEncrypt(data, []byte(*keyPtr))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(hex.EncodeToString(enc))
		return
	}

	cfg := utils.Config{
		MinKeyLength:   *minPtr,
		MaxKeyLength:   *maxPtr,
		TopK:           *topPtr,
		Workers:        *workersPtr,
		DetectLanguage: *langPtr,
		Verbose:        *verbosePtr,
	}
	v, err := utils.NewVigenere(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := v.Decrypt(ctx, data)
	if err != nil {
		log.Fatal(err)
	}
	printReport(os.Stdout, report, cfg)
}

func readInput(path string, isHex, isBase64 bool) ([]byte, error) {
	if isHex && isBase64 {
		return nil, errors.New("-hex and -base64 are exclusive")
	}

	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	switch {
	case isHex:
		out, err := hex.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
		return out, errors.Wrap(err, "decode hex")
	case isBase64:
		out, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
		return out, errors.Wrap(err, "decode base64")
	}
	return raw, nil
}

func printReport(w io.Writer, report utils.Report, cfg utils.Config) {
	fmt.Fprintln(w, "key lengths:")
	for i, l := range report.Lengths {
		mark := " "
		if i < cfg.TopK {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %3d  %f\n", mark, l.Length, l.Score)
	}

	best := report.Best
	fmt.Fprintf(w, "\nkey:   %q (%s)\n", best.Key, hex.EncodeToString(best.Key))
	fmt.Fprintf(w, "score: %f\n", best.Score)
	if cfg.DetectLanguage {
		fmt.Fprintf(w, "english confidence: %.2f\n", best.Confidence)
	}
	fmt.Fprintf(w, "\n%s\n", best.Output)
}
