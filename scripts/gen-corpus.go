//go:build ignore

// Write a synthetic CONLLUP corpus for benchmarks and manual testing.
// Documents are spread over train/dev/test, some partially, and carry a
// mix of annotation levels.
// Usage: go run ./scripts/gen-corpus.go -docs 1000 -out testdata/synthetic.conllup
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/jamesainslie/go-conllup/internal/fixture"
)

var (
	datasetChoices    = []string{"train", "dev", "test", "train*;test*", ""}
	sentenceChoices   = []string{"train", "test", ""}
	annotationChoices = []string{"ud", "ud;ner", "ud;ner;srl", ""}
	words             = []string{"The", "cat", "sat", "on", "a", "mat", "near", "Bucharest", "."}
)

func main() {
	var (
		docs     = flag.Int("docs", 1000, "number of documents")
		sents    = flag.Int("sentences", 20, "sentences per document")
		seed     = flag.Uint64("seed", 1, "random seed")
		outPath  = flag.String("out", "testdata/synthetic.conllup", "output file")
		fillerMB = flag.Int("filler", 0, "append one undeclared document of this many MiB")
	)
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed))
	pick := func(xs []string) string { return xs[rng.IntN(len(xs))] }

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	defer out.Close()

	corpus := fixture.Corpus{Columns: true}
	for i := range *docs {
		id := fmt.Sprintf("doc%06d", i)
		d := fixture.Document{ID: id, Datasets: pick(datasetChoices), Annotations: pick(annotationChoices)}
		for j := range *sents {
			s := fixture.Sentence{ID: fmt.Sprintf("%s.%d", id, j+1)}
			if d.Datasets == "train*;test*" {
				s.Datasets = pick(sentenceChoices)
			}
			n := 3 + rng.IntN(len(words))
			for k := range n {
				if k > 0 {
					s.Text += " "
				}
				s.Text += pick(words)
			}
			d.Sentences = append(d.Sentences, s)
		}
		corpus.Documents = append(corpus.Documents, d)
	}
	if *fillerMB > 0 {
		corpus.Documents = append(corpus.Documents, fixture.Filler("filler", "", "", *fillerMB<<20))
	}

	w := bufio.NewWriter(out)
	n, err := corpus.WriteTo(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d documents (%d bytes) to %s\n", len(corpus.Documents), n, *outPath)
}
