package sbs

import "bytes"

// Framer reassembles complete newline-terminated lines out of an
// arbitrarily chunked byte stream. It never uses bufio.Scanner's
// built-in splitting: the accumulator and the "retain the trailing
// partial segment" rule are explicit so that the framing law in the
// processor's contract is independently testable from however the
// network happens to chunk reads.
type Framer struct {
	buf []byte
}

// Feed appends chunk to the internal accumulator and returns every
// complete (newline-terminated) line found, oldest first. Any trailing
// partial segment is retained for the next call.
func (f *Framer) Feed(chunk []byte) []string {
	f.buf = append(f.buf, chunk...)

	var lines []string
	for {
		idx := bytes.IndexByte(f.buf, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, string(f.buf[:idx]))
		f.buf = f.buf[idx+1:]
	}
	return lines
}

// Pending returns the bytes accumulated since the last complete line,
// i.e. what would be lost if the stream ended right now.
func (f *Framer) Pending() []byte {
	return f.buf
}
