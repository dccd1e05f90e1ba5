// Package blockbuf holds text for a block whose keep/discard decision is
// still pending.
package blockbuf

import (
	"bytes"
	"fmt"
	"io"
)

// maxRetained caps the capacity kept across resets, so one oversized
// document does not pin its memory for the rest of the stream.
const maxRetained = 1 << 20

// Buffer is an append-only, resettable block holder.
// The zero value is ready to use.
type Buffer struct {
	buf  bytes.Buffer
	peak int
}

// Append adds text to the block.
func (b *Buffer) Append(text string) {
	b.buf.WriteString(text)
	if n := b.buf.Len(); n > b.peak {
		b.peak = n
	}
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int { return b.buf.Len() }

// Peak returns the largest size the buffer reached.
func (b *Buffer) Peak() int { return b.peak }

// Reset empties the buffer.
func (b *Buffer) Reset() {
	if b.buf.Cap() > maxRetained {
		b.buf = bytes.Buffer{}
		return
	}
	b.buf.Reset()
}

// Discard drops the held block without writing it.
func (b *Buffer) Discard() { b.Reset() }

// FlushTo writes the held block to w and resets the buffer.
func (b *Buffer) FlushTo(w io.Writer) error {
	if b.buf.Len() == 0 {
		return nil
	}
	if _, err := w.Write(b.buf.Bytes()); err != nil {
		return fmt.Errorf("flushing block: %w", err)
	}
	b.Reset()
	return nil
}

// MoveTo appends the held block to dst and resets the buffer.
func (b *Buffer) MoveTo(dst *Buffer) {
	if b.buf.Len() == 0 {
		return
	}
	dst.Append(b.buf.String())
	b.Reset()
}
