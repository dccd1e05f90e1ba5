// Package parseme merges PARSEME multiword-expression annotations into the
// PARSEME:MWE column of a CONLLUP file.
package parseme

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jamesainslie/go-conllup/metadata"
	"github.com/jamesainslie/go-conllup/token"
)

// ErrBadAnnotation indicates an annotation entry without index and MWE tag.
var ErrBadAnnotation = errors.New("parseme: malformed annotation")

// Annotations maps a sentence id to the MWE tag of each token index.
type Annotations map[string]map[string]string

type sentenceData struct {
	Annotations [][]any `json:"annotations"`
}

// Load reads annotation data from a JSON file.
func Load(path string) (Annotations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening annotations: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode reads annotation data of the form
//
//	{"<sent_id>": {"annotations": [[index, form, mwe, ...], ...]}}
//
// The token index is the first element and the MWE tag the third.
func Decode(r io.Reader) (Annotations, error) {
	var raw map[string]sentenceData
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding annotations: %w", err)
	}

	out := make(Annotations, len(raw))
	for sentID, data := range raw {
		tags := make(map[string]string, len(data.Annotations))
		for i, a := range data.Annotations {
			if len(a) < 3 {
				return nil, fmt.Errorf("%w: sentence %s entry %d has %d elements", ErrBadAnnotation, sentID, i, len(a))
			}
			tags[scalar(a[0])] = scalar(a[2])
		}
		out[sentID] = tags
	}
	return out, nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Merge copies r to w, setting the PARSEME:MWE column of every token in a
// sentence listed in ann. Tokens without an annotation get "*". Sentences
// not in ann are copied unchanged.
func Merge(r io.Reader, w io.Writer, ann Annotations) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	m := merger{ann: ann}

	for lineNo := 1; ; lineNo++ {
		line, rerr := br.ReadString('\n')
		if line != "" {
			out, err := m.line(line)
			if err != nil {
				_ = bw.Flush()
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, err := bw.WriteString(out); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("reading input: %w", rerr)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

type merger struct {
	ann  Annotations
	tags map[string]string // nil outside an annotated sentence
}

func (m *merger) line(line string) (string, error) {
	switch metadata.Classify(line) {
	case metadata.KindSentID:
		id, _ := metadata.Value(line, metadata.PrefixSentID)
		m.tags = m.ann[id]
		return line, nil
	case metadata.KindBlank:
		m.tags = nil
		return line, nil
	case metadata.KindToken:
	default:
		return line, nil
	}

	fields, err := token.Fields(line)
	if err != nil {
		return "", err
	}
	if m.tags == nil {
		return line, nil
	}

	mwe, ok := m.tags[fields[token.ColID]]
	if !ok {
		mwe = "*"
	}
	fields[token.ColMWE] = mwe
	return strings.Join(fields, "\t") + "\n", nil
}
