// Package rio implements the restricted I/O buffer of spec.md §4.B: it
// presents input uniformly as a View, File, or Stream, after applying a
// byte-escaping transform driven by an algorithm's declared input
// restrictions, and mirrors the transform on the output side.
package rio

import (
	"sort"

	"github.com/tudocomp-go/tdc/meta"
)

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "rio: " + string(e) }

// DefaultEscapeByte is the escape byte used when none is specified
// (spec.md §3).
const DefaultEscapeByte byte = 0xFE

// escapeTable precomputes, for one meta.InputRestrictions value, the
// bijection between each forbidden byte (the escape byte and - if
// NulTerminate is set - the null byte count as forbidden too) and a code
// byte that stands in for it after an escapeByte marker. Code bytes are
// drawn from the complement of the forbidden set, as tudocomp's
// EscapeMap does, so that an escaped `escapeByte, code` pair can never
// itself decode to contain a forbidden or null byte.
type escapeTable struct {
	restr      meta.InputRestrictions
	escapeByte byte
	byteToCode map[byte]byte
	codeToByte map[byte]byte
}

func newEscapeTable(r meta.InputRestrictions, escapeByte byte) *escapeTable {
	set := map[byte]bool{}
	for b := range r.Forbidden {
		set[b] = true
	}
	if r.NulTerminate {
		set[0x00] = true
	}
	set[escapeByte] = true

	var forbidden []byte
	for b := range set {
		forbidden = append(forbidden, b)
	}
	sort.Slice(forbidden, func(i, j int) bool { return forbidden[i] < forbidden[j] })

	var codes []byte
	for b := 0; b < 256; b++ {
		if !set[byte(b)] {
			codes = append(codes, byte(b))
		}
	}
	// Every restriction used in this module forbids only a handful of
	// bytes, far short of leaving fewer non-forbidden codes than
	// forbidden bytes to assign them to.
	if len(codes) < len(forbidden) {
		panic(Error("too many forbidden bytes to assign distinct escape codes"))
	}

	t := &escapeTable{
		restr:      r,
		escapeByte: escapeByte,
		byteToCode: make(map[byte]byte, len(forbidden)),
		codeToByte: make(map[byte]byte, len(forbidden)),
	}
	for i, b := range forbidden {
		c := codes[i]
		t.byteToCode[b] = c
		t.codeToByte[c] = b
	}
	return t
}

// Escape applies t to x, producing a byte sequence containing no byte in
// t.restr.Forbidden (nor, transitively, the escape byte or - if NulTerminate
// is set - any raw null byte), optionally followed by a single trailing
// null terminator.
func Escape(x []byte, r meta.InputRestrictions, escapeByte ...byte) []byte {
	eb := resolveEscapeByte(escapeByte)
	t := newEscapeTable(r, eb)
	out := make([]byte, 0, len(x)+len(x)/8+1)
	for _, b := range x {
		if code, forbidden := t.byteToCode[b]; forbidden {
			out = append(out, t.escapeByte, code)
		} else {
			out = append(out, b)
		}
	}
	if r.NulTerminate {
		out = append(out, 0x00)
	}
	return out
}

// Unescape inverts Escape, returning the original byte sequence. It strips
// the trailing null terminator first if r.NulTerminate is set.
func Unescape(y []byte, r meta.InputRestrictions, escapeByte ...byte) ([]byte, error) {
	eb := resolveEscapeByte(escapeByte)
	t := newEscapeTable(r, eb)

	if r.NulTerminate {
		if len(y) == 0 || y[len(y)-1] != 0x00 {
			return nil, Error("missing null terminator")
		}
		y = y[:len(y)-1]
	}

	out := make([]byte, 0, len(y))
	for i := 0; i < len(y); i++ {
		if y[i] == t.escapeByte {
			i++
			if i >= len(y) {
				return nil, Error("truncated escape sequence")
			}
			b, ok := t.codeToByte[y[i]]
			if !ok {
				return nil, Error("invalid escape code")
			}
			out = append(out, b)
			continue
		}
		out = append(out, y[i])
	}
	return out, nil
}

func resolveEscapeByte(escapeByte []byte) byte {
	if len(escapeByte) > 0 {
		return escapeByte[0]
	}
	return DefaultEscapeByte
}
