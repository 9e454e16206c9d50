package rio

import (
	"io"
	"os"

	"github.com/dsnet/golib/ioutil"
	"github.com/tudocomp-go/tdc/meta"
)

// Input presents input uniformly as a contiguous byte View, regardless of
// whether it originated from memory, a file, or a stream (spec.md §4.B).
//
// Slicing never re-reads the source: Slice returns a view onto the already
// materialised parent buffer.
type Input struct {
	data   []byte
	restr  meta.InputRestrictions
	escape byte
}

// NewInputFromView materialises a private, escaped copy of data under
// restrictions r. extra reserves additional trailing capacity (e.g. for a
// caller-appended sentinel), matching the teacher's allocate-once-and-copy
// memory-view policy.
func NewInputFromView(data []byte, r meta.InputRestrictions, extra int, escapeByte ...byte) *Input {
	eb := resolveEscapeByte(escapeByte)
	escaped := Escape(data, r, eb)
	buf := make([]byte, len(escaped), len(escaped)+extra)
	copy(buf, escaped)
	return &Input{data: buf, restr: r, escape: eb}
}

// NewInputFromFile reads path fully, then escapes the bytes in memory under
// restrictions r.
//
// The teacher-original design memory-maps the file read-write and rewrites
// restricted bytes in place; this module instead reads the file once and
// escapes into a private buffer, which is simpler and portable (no
// platform-specific mmap dependency appears anywhere in the retrieval
// pack — see DESIGN.md) at the cost of one extra copy for large files.
func NewInputFromFile(path string, r meta.InputRestrictions, escapeByte ...byte) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewInputFromView(data, r, 0, escapeByte...), nil
}

// NewInputFromStream buffers rd fully (growing a page-aligned-ish buffer in
// doubling steps, mirroring dsnet/golib/ioutil's incremental byte-copy
// helpers), then escapes the buffered bytes.
func NewInputFromStream(rd io.Reader, r meta.InputRestrictions, escapeByte ...byte) (*Input, error) {
	var buf []byte
	chunk := make([]byte, 4096)
	br := ioutil.ByteReader{Reader: rd}
	for {
		n, err := br.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return NewInputFromView(buf, r, 0, escapeByte...), nil
}

// Bytes returns the (escaped) materialised view.
func (in *Input) Bytes() []byte { return in.data }

// Len returns the number of escaped bytes in the view.
func (in *Input) Len() int { return len(in.data) }

// Restrictions reports the restrictions currently applied to this view.
func (in *Input) Restrictions() meta.InputRestrictions { return in.restr }

// Slice returns a sub-view of in starting at offset, of the given length (or
// to the end of in if length is omitted). It never re-reads the original
// source: it indexes directly into in's already-materialised buffer.
func (in *Input) Slice(offset int, length ...int) *Input {
	end := len(in.data)
	if len(length) > 0 {
		end = offset + length[0]
	}
	return &Input{data: in.data[offset:end], restr: in.restr, escape: in.escape}
}

// Reapply returns a view of the same underlying bytes, first unrestricted
// back to the original unescaped bytes, then re-escaped under r2. This
// implements spec.md §4.B's "escape direction" rule: applying a compatible
// but different restriction set first unrestricts, then re-escapes.
func (in *Input) Reapply(r2 meta.InputRestrictions, escapeByte ...byte) (*Input, error) {
	orig, err := Unescape(in.data, in.restr, in.escape)
	if err != nil {
		return nil, err
	}
	eb := in.escape
	if len(escapeByte) > 0 {
		eb = escapeByte[0]
	}
	return NewInputFromView(orig, r2, 0, eb), nil
}

// Unescaped returns the original, unrestricted byte sequence.
func (in *Input) Unescaped() ([]byte, error) {
	return Unescape(in.data, in.restr, in.escape)
}
