package rio

import (
	"io"

	"github.com/tudocomp-go/tdc/meta"
)

// Output wraps an underlying io.Writer that expects original (unrestricted)
// bytes, while presenting an io.Writer interface that accepts
// escaped/restricted bytes from algorithm code — the mirror image of Input
// (spec.md §4.B, "Output side mirrors").
type Output struct {
	w      io.Writer
	restr  meta.InputRestrictions
	escape byte

	pendingEscape bool
	done          bool // true once the null terminator has been observed and stripped
}

// NewOutput wraps w so that Write unescapes incoming bytes under
// restrictions r before forwarding them to w.
func NewOutput(w io.Writer, r meta.InputRestrictions, escapeByte ...byte) *Output {
	return &Output{w: w, restr: r, escape: resolveEscapeByte(escapeByte)}
}

// Write unescapes p and forwards the original bytes to the underlying
// writer. If r.NulTerminate is set, the terminating null byte is consumed
// and not forwarded; writes after the terminator has been seen are an
// error, since no further bytes are expected.
func (o *Output) Write(p []byte) (int, error) {
	if o.done {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, Error("write after null terminator")
	}
	t := newEscapeTable(o.restr, o.escape)
	out := make([]byte, 0, len(p))
	consumed := 0
	for consumed < len(p) {
		b := p[consumed]
		if o.pendingEscape {
			decoded, ok := t.codeToByte[b]
			if !ok {
				return consumed, Error("invalid escape index")
			}
			o.pendingEscape = false
			consumed++
			out = append(out, decoded)
			continue
		}
		if o.restr.NulTerminate && b == 0x00 {
			// The terminator is a raw, unescaped null byte appended by
			// Escape; it is consumed but never forwarded.
			o.done = true
			consumed++
			break
		}
		if b == o.escape {
			o.pendingEscape = true
			consumed++
			continue
		}
		out = append(out, b)
		consumed++
	}
	if len(out) > 0 {
		if _, err := o.w.Write(out); err != nil {
			return consumed, err
		}
	}
	return consumed, nil
}
