//go:build ignore

// Convert the UD English Web Treebank CoNLL-U splits into one CONLLUP file.
// Every document is tagged with the split it came from, so that
// `conllup generate -d train` reproduces the upstream train file.
// Usage: go run ./scripts/ud-to-conllup.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-conllup/internal/fixture"
	"github.com/jamesainslie/go-conllup/metadata"
	"github.com/jamesainslie/go-conllup/token"
)

func main() {
	inDir := "testdata/ud-ewt"
	outPath := filepath.Join(inDir, "en_ewt.conllup")

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outPath, err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	w.WriteString(fixture.ColumnsHeader)

	for _, split := range []string{"train", "dev", "test"} {
		inFile := filepath.Join(inDir, fmt.Sprintf("en_ewt-ud-%s.conllu", split))

		fmt.Printf("Processing %s...\n", split)
		docs, tokens, err := convert(inFile, split, w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}
		fmt.Printf("  -> %d documents, %d tokens\n", docs, tokens)
	}

	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("\nDone! Corpus written to %s\n", outPath)
}

// convert copies one CoNLL-U file, padding tokens to 15 columns and adding
// status comments after every newdoc line.
func convert(path, split string, w *bufio.Writer) (docs, tokens int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	padding := strings.Repeat("\t_", token.NumFields-token.NumOutputFields)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch metadata.Classify(line) {
		case metadata.KindNewDoc:
			docs++
			fmt.Fprintf(w, "%s\n%s = %s\n%s = ud\n", line, metadata.PrefixDatasets, split, metadata.PrefixAnnotations)
		case metadata.KindToken:
			if n := strings.Count(line, "\t") + 1; n != token.NumOutputFields {
				return docs, tokens, fmt.Errorf("token line has %d columns", n)
			}
			tokens++
			fmt.Fprintf(w, "%s%s\n", line, padding)
		default:
			fmt.Fprintln(w, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return docs, tokens, fmt.Errorf("scanning file: %w", err)
	}
	return docs, tokens, nil
}
