// Package split partitions a CONLLU corpus into train, dev and test sets.
// The unit of partitioning is the document, so sentences of one document
// never end up in different sets.
package split

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-conllup/metadata"
)

var (
	// ErrNoDocuments indicates an input without any newdoc comment.
	ErrNoDocuments = errors.New("split: no documents")

	// ErrBadFraction indicates test/dev shares outside [0, 1) or summing to 1 or more.
	ErrBadFraction = errors.New("split: fractions must be in [0, 1) and sum to less than 1")

	// ErrBadFolds indicates a fold count below 2 or above the document count.
	ErrBadFolds = errors.New("split: invalid number of folds")
)

var docStart = regexp.MustCompile(`^#\snewdoc\sid\s?=`)

// Document is one document of a CONLLU corpus, comment lines included.
type Document struct {
	ID   string
	Text string
}

// Documents reads all documents from r. Text before the first newdoc
// comment is ignored and global.columns comments are dropped.
func Documents(r io.Reader) ([]Document, error) {
	br := bufio.NewReader(r)

	var (
		docs []Document
		cur  *Document
		sb   strings.Builder
	)
	finish := func() {
		if cur != nil {
			cur.Text = sb.String()
			docs = append(docs, *cur)
			sb.Reset()
		}
	}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			switch {
			case docStart.MatchString(line):
				finish()
				cur = &Document{ID: documentID(line)}
				sb.WriteString(line)
			case metadata.Classify(line) == metadata.KindColumns:
				// dropped
			case cur != nil:
				sb.WriteString(line)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading corpus: %w", err)
		}
	}
	finish()

	return docs, nil
}

func documentID(line string) string {
	_, id, _ := strings.Cut(line, "=")
	return strings.TrimSpace(id)
}

// Options controls a train/dev/test split.
type Options struct {
	Test float64 // share of documents in the test set
	Dev  float64 // share of documents in the dev set
	Seed int64
}

func (o Options) validate() error {
	if o.Test < 0 || o.Test >= 1 || o.Dev < 0 || o.Dev >= 1 || o.Test+o.Dev >= 1 {
		return fmt.Errorf("%w: test=%g dev=%g", ErrBadFraction, o.Test, o.Dev)
	}
	return nil
}

// Partition is one train/dev/test assignment. Fold is 1-based for
// cross-validation partitions and 0 otherwise.
type Partition struct {
	Fold  int
	Train []Document
	Dev   []Document
	Test  []Document
}

func shuffled(docs []Document, seed int64) []Document {
	out := slices.Clone(docs)
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Split shuffles docs deterministically by seed and cuts it into test,
// dev and train shares, in that order.
func Split(docs []Document, opts Options) (Partition, error) {
	if err := opts.validate(); err != nil {
		return Partition{}, err
	}
	if len(docs) == 0 {
		return Partition{}, ErrNoDocuments
	}

	all := shuffled(docs, opts.Seed)
	n := len(all)
	nTest := int(math.Round(float64(n) * opts.Test))
	nDev := min(int(math.Round(float64(n)*opts.Dev)), n-nTest)

	return Partition{
		Test:  all[:nTest:nTest],
		Dev:   all[nTest : nTest+nDev : nTest+nDev],
		Train: all[nTest+nDev:],
	}, nil
}

// CrossValidation shuffles docs deterministically by seed and builds k
// partitions. Fold i uses the i-th of k near-equal chunks as its test set
// and the rest as train.
func CrossValidation(docs []Document, k int, seed int64) ([]Partition, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if k < 2 || k > len(docs) {
		return nil, fmt.Errorf("%w: k=%d with %d documents", ErrBadFolds, k, len(docs))
	}

	all := shuffled(docs, seed)
	n := len(all)
	parts := make([]Partition, k)
	for i := range k {
		start, end := i*n/k, (i+1)*n/k
		parts[i] = Partition{
			Fold:  i + 1,
			Test:  all[start:end:end],
			Train: slices.Concat(all[:start], all[end:]),
		}
	}
	return parts, nil
}

// Folds returns the fold count implied by a test share, e.g. 0.2 gives 5.
func Folds(test float64) int {
	if test <= 0 {
		return 0
	}
	return int(math.Round(1 / test))
}

// FileName returns the output file name of one set of a partition.
func FileName(name string, fold int, set string) string {
	if fold > 0 {
		return fmt.Sprintf("%s-fold%d-%s.conllu", name, fold, set)
	}
	return fmt.Sprintf("%s-%s.conllu", name, set)
}

// WriteFiles writes each partition's sets into dir and returns the paths
// written. An empty dev set produces no file.
func WriteFiles(dir, name string, parts []Partition) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var paths []string
	for _, p := range parts {
		sets := []struct {
			name string
			docs []Document
		}{
			{"train", p.Train},
			{"dev", p.Dev},
			{"test", p.Test},
		}
		for _, s := range sets {
			if s.name == "dev" && len(s.docs) == 0 {
				continue
			}
			path := filepath.Join(dir, FileName(name, p.Fold, s.name))
			if err := writeDocuments(path, s.docs); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeDocuments(path string, docs []Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, d := range docs {
		if _, err := w.WriteString(d.Text); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// IDs returns the document ids in order.
func IDs(docs []Document) []string {
	return lo.Map(docs, func(d Document, _ int) string { return d.ID })
}
