// Package fixture builds synthetic CONLLUP corpora for tests and benchmarks.
package fixture

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ColumnsHeader is the global.columns comment of a CONLLUP file.
const ColumnsHeader = "# global.columns = ID FORM LEMMA UPOS XPOS FEATS HEAD DEPREL DEPS MISC RELATE:NE RELATE:NP RELATE:SRL PARSEME:MWE RMISC\n"

// TokenLine returns a well-formed 15-column token line for form at position id.
func TokenLine(id int, form string) string {
	return strings.Join([]string{
		strconv.Itoa(id), form, strings.ToLower(form), "NOUN", "Ncms-n", "Gender=Masc",
		"0", "root", "_", "_", "B-PER", "_", "*", "_", "_",
	}, "\t") + "\n"
}

// Sentence is one sentence block.
type Sentence struct {
	ID       string
	Datasets string // raw contained_in_datasets value, "" for none
	Text     string // space-separated forms
}

// Document is one newdoc block.
type Document struct {
	ID          string
	Datasets    string // raw contained_in_datasets value, "" for none
	Annotations string // raw annotation_levels value, "" for none
	Sentences   []Sentence
}

// Corpus is a sequence of documents, optionally behind a global.columns header.
type Corpus struct {
	Columns   bool
	Documents []Document
}

// WriteTo writes the sentence in CONLLUP form.
func (s Sentence) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# sent_id = %s\n", s.ID)
	if s.Datasets != "" {
		fmt.Fprintf(&sb, "# contained_in_datasets = %s\n", s.Datasets)
	}
	fmt.Fprintf(&sb, "# text = %s\n", s.Text)
	for i, form := range strings.Fields(s.Text) {
		sb.WriteString(TokenLine(i+1, form))
	}
	sb.WriteString("\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// WriteTo writes the document in CONLLUP form.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	var header strings.Builder
	fmt.Fprintf(&header, "# newdoc id = %s\n", d.ID)
	if d.Datasets != "" {
		fmt.Fprintf(&header, "# contained_in_datasets = %s\n", d.Datasets)
	}
	if d.Annotations != "" {
		fmt.Fprintf(&header, "# annotation_levels = %s\n", d.Annotations)
	}

	n, err := io.WriteString(w, header.String())
	total := int64(n)
	if err != nil {
		return total, err
	}
	for _, s := range d.Sentences {
		m, err := s.WriteTo(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String renders the document.
func (d Document) String() string {
	var sb strings.Builder
	_, _ = d.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the whole corpus.
func (c Corpus) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if c.Columns {
		n, err := io.WriteString(w, ColumnsHeader)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for _, d := range c.Documents {
		m, err := d.WriteTo(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String renders the corpus.
func (c Corpus) String() string {
	var sb strings.Builder
	_, _ = c.WriteTo(&sb)
	return sb.String()
}

// Filler returns a document of at least minBytes bytes made of identical
// sentences.
func Filler(id, datasets, annotations string, minBytes int) Document {
	d := Document{ID: id, Datasets: datasets, Annotations: annotations}
	size := len(d.String())
	for i := 1; size < minBytes; i++ {
		s := Sentence{
			ID:   fmt.Sprintf("%s.%d", id, i),
			Text: "The quick brown fox jumps over the lazy dog .",
		}
		d.Sentences = append(d.Sentences, s)
		size += len(sentenceString(s))
	}
	return d
}

func sentenceString(s Sentence) string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}
