package blockbuf

import (
	"errors"
	"strings"
	"testing"
)

func TestBuffer_FlushTo(t *testing.T) {
	var b Buffer
	b.Append("# newdoc id = d1\n")
	b.Append("# sent_id = d1.1\n")

	var out strings.Builder
	if err := b.FlushTo(&out); err != nil {
		t.Fatalf("FlushTo() error = %v", err)
	}

	if got, want := out.String(), "# newdoc id = d1\n# sent_id = d1.1\n"; got != want {
		t.Errorf("flushed %q, want %q", got, want)
	}
	if b.Len() != 0 {
		t.Errorf("Len() after flush = %d, want 0", b.Len())
	}
}

func TestBuffer_Discard(t *testing.T) {
	var b Buffer
	b.Append("abc")
	b.Discard()

	var out strings.Builder
	if err := b.FlushTo(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("discarded block was written: %q", out.String())
	}
}

func TestBuffer_Peak(t *testing.T) {
	var b Buffer
	b.Append("12345")
	b.Reset()
	b.Append("12")

	if b.Peak() != 5 {
		t.Errorf("Peak() = %d, want 5", b.Peak())
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBuffer_MoveTo(t *testing.T) {
	var src, dst Buffer
	dst.Append("a")
	src.Append("b")
	src.MoveTo(&dst)

	if src.Len() != 0 {
		t.Errorf("source not reset: %d bytes", src.Len())
	}
	var out strings.Builder
	_ = dst.FlushTo(&out)
	if out.String() != "ab" {
		t.Errorf("got %q, want %q", out.String(), "ab")
	}
}

func TestBuffer_ResetReleasesLargeBlocks(t *testing.T) {
	var b Buffer
	b.Append(strings.Repeat("x", maxRetained+1))
	b.Reset()

	if c := b.buf.Cap(); c > maxRetained {
		t.Errorf("capacity %d retained after reset", c)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestBuffer_FlushError(t *testing.T) {
	var b Buffer
	b.Append("x")
	if err := b.FlushTo(failWriter{}); err == nil {
		t.Error("expected error from failing writer")
	}
}
