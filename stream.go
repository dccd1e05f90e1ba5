package conllup

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jamesainslie/go-conllup/internal/blockbuf"
	"github.com/jamesainslie/go-conllup/metadata"
	"github.com/jamesainslie/go-conllup/token"
)

// verdict is the state of a keep/discard decision for a block.
type verdict int

const (
	pending verdict = iota
	keep
	drop
)

// document tracks the open document's decision. A constrained dimension
// stays open until its declaration is seen or the document ends.
type document struct {
	id              string
	verdict         verdict
	datasetsOpen    bool
	annotationsOpen bool
}

// stream is the per-run automaton. It alone owns the mode and buffers.
//
// Text goes to the first matching sink:
//   - nowhere, if the document or (in sentence mode) the sentence is dropped
//   - sent, while the current sentence is pending
//   - doc, while the document is pending
//   - out otherwise
type stream struct {
	g     *Generator
	out   *bufio.Writer
	line  int
	stats Stats

	mode Mode
	doc  document
	sent verdict // only consulted in ModeSentence

	docBuf  blockbuf.Buffer
	sentBuf blockbuf.Buffer
}

func newStream(g *Generator, out *bufio.Writer) *stream {
	// Text before the first "# newdoc" is passed through unfiltered.
	return &stream{
		g:    g,
		out:  out,
		mode: ModeDocument,
		doc:  document{verdict: keep},
		sent: keep,
	}
}

// handlers is the dispatch table keyed on line category.
var handlers = [metadata.NumKinds]func(*stream, string) error{
	metadata.KindToken:       (*stream).onToken,
	metadata.KindBlank:       (*stream).write,
	metadata.KindComment:     (*stream).write,
	metadata.KindNewDoc:      (*stream).onNewDoc,
	metadata.KindSentID:      (*stream).onSentID,
	metadata.KindDatasets:    (*stream).onDatasets,
	metadata.KindAnnotations: (*stream).onAnnotations,
	metadata.KindColumns:     func(*stream, string) error { return nil },
}

func (s *stream) dispatch(line string) error {
	return handlers[metadata.Classify(line)](s, line)
}

func (s *stream) discarding() bool {
	return s.doc.verdict == drop || (s.mode == ModeSentence && s.sent == drop)
}

// write sends text to the active sink.
func (s *stream) write(text string) error {
	switch {
	case s.discarding():
		return nil
	case s.mode == ModeSentence && s.sent == pending:
		s.sentBuf.Append(text)
	case s.doc.verdict == pending:
		s.docBuf.Append(text)
	default:
		if _, err := s.out.WriteString(text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if n := s.docBuf.Len() + s.sentBuf.Len(); n > s.stats.PeakBuffered {
		s.stats.PeakBuffered = n
	}
	return nil
}

func (s *stream) onToken(line string) error {
	if s.discarding() {
		return nil
	}

	rec, err := token.Parse(line)
	if err != nil {
		return &LineError{Line: s.line, Err: err}
	}
	s.stats.Tokens++
	return s.write(token.Project(rec, s.g.transfers).String() + "\n")
}

func (s *stream) onNewDoc(line string) error {
	if err := s.closeDocument(); err != nil {
		return err
	}

	id, _ := metadata.Value(line, metadata.PrefixNewDoc+" id")
	p := s.g.policy
	s.mode = ModeDocument
	s.sent = keep
	s.doc = document{
		id:              id,
		verdict:         pending,
		datasetsOpen:    p.constrainsDatasets(),
		annotationsOpen: p.constrainsAnnotations(),
	}
	s.stats.Documents++

	if !p.constrained() {
		s.doc.verdict = keep
		s.stats.DocumentsKept++
	}
	return s.write(line)
}

func (s *stream) onSentID(line string) error {
	if s.mode == ModeSentence {
		if err := s.closeSentence(); err != nil {
			return err
		}
		if s.doc.verdict != drop {
			s.sent = pending
		}
	}
	return s.write(line)
}

func (s *stream) onDatasets(line string) error {
	if s.g.keepStatus {
		if err := s.write(line); err != nil {
			return err
		}
	}
	if s.doc.verdict == drop {
		return nil
	}

	if s.mode == ModeSentence {
		if s.sent != pending {
			return nil
		}
		declared, ok := metadata.ExtractDatasets(line)
		if !ok {
			s.warnMalformed(line)
			return nil
		}
		return s.applySentence(s.g.policy.sentenceDatasets(declared))
	}

	if !s.doc.datasetsOpen {
		return nil
	}
	declared, ok := metadata.ExtractDatasets(line)
	if !ok {
		s.warnMalformed(line)
		return nil
	}
	s.doc.datasetsOpen = false
	return s.applyDocument(s.g.policy.documentDatasets(declared), "contained_in_datasets")
}

func (s *stream) onAnnotations(line string) error {
	if s.g.keepStatus {
		if err := s.write(line); err != nil {
			return err
		}
	}
	if s.doc.verdict == drop || !s.doc.annotationsOpen {
		return nil
	}

	declared, ok := metadata.ExtractAnnotationLevels(line)
	if !ok {
		s.warnMalformed(line)
		return nil
	}
	s.doc.annotationsOpen = false
	return s.applyDocument(s.g.policy.annotationLevels(declared), "annotation_levels")
}

func (s *stream) applyDocument(d decision, reason string) error {
	switch d {
	case discard:
		s.dropDocument(reason)
		return nil
	case demote:
		s.mode = ModeSentence
		s.sent = keep
		s.g.logger.Debug("document switched to sentence mode", "line", s.line, "doc", s.doc.id)
	}
	return s.resolveDocument()
}

// resolveDocument keeps the document once no dimension is open.
func (s *stream) resolveDocument() error {
	if s.doc.verdict != pending || s.doc.datasetsOpen || s.doc.annotationsOpen {
		return nil
	}

	s.doc.verdict = keep
	s.stats.DocumentsKept++
	s.g.logger.Debug("document kept", "line", s.line, "doc", s.doc.id, "mode", s.mode)
	if err := s.docBuf.FlushTo(s.out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (s *stream) dropDocument(reason string) {
	s.doc.verdict = drop
	s.stats.DocumentsDropped++
	s.docBuf.Discard()
	s.sentBuf.Discard()
	s.g.logger.Debug("document dropped", "line", s.line, "doc", s.doc.id, "reason", reason)
}

func (s *stream) applySentence(d decision) error {
	if d == discard {
		s.sent = drop
		s.stats.SentencesDropped++
		s.sentBuf.Discard()
		s.g.logger.Debug("sentence dropped", "line", s.line, "doc", s.doc.id)
		return nil
	}

	s.sent = keep
	s.stats.SentencesKept++
	if s.doc.verdict == pending {
		s.sentBuf.MoveTo(&s.docBuf)
		return nil
	}
	if err := s.sentBuf.FlushTo(s.out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// closeSentence settles a sentence that ended without its own
// declaration: it is judged as having declared no datasets.
func (s *stream) closeSentence() error {
	if s.mode != ModeSentence || s.sent != pending {
		return nil
	}
	return s.applySentence(s.g.policy.sentenceDatasets(nil))
}

// closeDocument settles the open document at a boundary or end of input.
// Dimensions whose declaration never arrived are judged as empty.
func (s *stream) closeDocument() error {
	if err := s.closeSentence(); err != nil {
		return err
	}
	if s.doc.verdict != pending {
		return nil
	}

	if s.doc.datasetsOpen {
		s.doc.datasetsOpen = false
		if s.g.policy.documentDatasets(nil) == discard {
			s.dropDocument("no contained_in_datasets")
			return nil
		}
	}
	if s.doc.annotationsOpen {
		s.doc.annotationsOpen = false
		if s.g.policy.annotationLevels(nil) == discard {
			s.dropDocument("no annotation_levels")
			return nil
		}
	}
	return s.resolveDocument()
}

func (s *stream) warnMalformed(line string) {
	s.g.logger.Warn("ignoring malformed status comment", "line", s.line, "doc", s.doc.id, "text", strings.TrimRight(line, "\r\n"))
}
