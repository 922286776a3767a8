// Command lookup runs a single word lookup from the command line and prints
// the result as JSON. It uses the same configuration as the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/heartmarshall/wordlens/internal/app"
	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/domain"
)

func main() {
	word := flag.String("word", "", "clicked word (required)")
	sentence := flag.String("sentence", "", "sentence containing the word (required)")
	language := flag.String("language", "", "language name or ISO 639-1 code (auto-detected when empty)")
	timeout := flag.Duration("timeout", 60*time.Second, "overall lookup timeout")
	flag.Parse()

	if *word == "" || *sentence == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*word, *sentence, *language, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}
}

func run(word, sentence, language string, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)

	svc, _, err := app.BuildLookupService(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := svc.Lookup(ctx, domain.LookupRequest{
		Word:     word,
		Sentence: sentence,
		Language: language,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
