// Package ebml emits the canonical EBML byte encoding of Matroska/WebM
// elements: tag id, length descriptor, payload. Elements are built bottom-up
// with known sizes; the one exception is an open-ended master (the Segment),
// whose start marker is emitted once and never revisited, so the produced
// stream is strictly append-only.
package ebml

import (
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// Element is a fully encoded payload waiting for its id/length framing.
type Element struct {
	id      ID
	payload []byte
}

// Uint encodes an unsigned integer element with a minimal-width payload.
func Uint(id ID, v uint64) Element {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		n = 1
	}
	payload := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		payload[i] = byte(v)
		v >>= 8
	}
	return Element{id: id, payload: payload}
}

// Float encodes a 64-bit IEEE float element.
func Float(id ID, v float64) Element {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, math.Float64bits(v))
	return Element{id: id, payload: payload}
}

// String encodes a string (or UTF-8) element.
func String(id ID, s string) Element {
	return Element{id: id, payload: []byte(s)}
}

// Binary encodes a binary element. The slice is not copied; callers hand over
// ownership.
func Binary(id ID, b []byte) Element {
	return Element{id: id, payload: b}
}

// Master encodes a master element from its already-encoded children. The
// children's framing is serialized immediately, so the master's own length is
// known up front and never needs patching.
func Master(id ID, children ...Element) Element {
	var n int
	for _, c := range children {
		n += c.Size()
	}
	payload := make([]byte, 0, n)
	for _, c := range children {
		payload = c.AppendTo(payload)
	}
	return Element{id: id, payload: payload}
}

// Size reports the encoded size of the element including its framing.
func (e Element) Size() int {
	return idLen(e.id) + vintLen(uint64(len(e.payload))) + len(e.payload)
}

// AppendTo appends the element's full encoding to dst.
func (e Element) AppendTo(dst []byte) []byte {
	dst = appendID(dst, e.id)
	dst = appendVint(dst, uint64(len(e.payload)))
	return append(dst, e.payload...)
}

// WriteTo writes the element's full encoding to w.
func (e Element) WriteTo(w io.Writer) (int64, error) {
	head := make([]byte, 0, 12)
	head = appendID(head, e.id)
	head = appendVint(head, uint64(len(e.payload)))
	n, err := w.Write(head)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(e.payload)
	return int64(n + m), err
}

// unknownSize is the 8-byte length descriptor whose value bits are all ones,
// meaning the element extends until a byte that cannot be its child.
var unknownSize = [8]byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// AppendUnknownSizeStart appends the start marker of an open-ended master
// element. No end marker exists; the element is terminated by the end of the
// stream.
func AppendUnknownSizeStart(dst []byte, id ID) []byte {
	dst = appendID(dst, id)
	return append(dst, unknownSize[:]...)
}

// BlockData frames a Matroska block payload: one-byte track number VINT,
// big-endian 16-bit relative timecode, a zero flags byte, then the raw data.
// Track numbers needing more than the single-byte encoding are refused.
func BlockData(track uint64, timecode int16, data []byte) ([]byte, error) {
	if track == 0 || track > 127 {
		return nil, errors.Errorf("track number %d outside single-byte range 1..127", track)
	}
	payload := make([]byte, 4, 4+len(data))
	payload[0] = byte(track) | 0x80
	binary.BigEndian.PutUint16(payload[1:3], uint16(timecode))
	payload[3] = 0x00
	return append(payload, data...), nil
}

func idLen(id ID) int {
	n := (bits.Len32(uint32(id)) + 7) / 8
	if n == 0 {
		n = 1
	}
	return n
}

func appendID(dst []byte, id ID) []byte {
	n := idLen(id)
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(id>>(8*uint(i))))
	}
	return dst
}

// vintLen is the width of the shortest length descriptor that can carry v.
// The all-ones pattern of each width is reserved for "unknown", hence the -1.
func vintLen(v uint64) int {
	for n := 1; n < 8; n++ {
		if v < uint64(1)<<(7*uint(n))-1 {
			return n
		}
	}
	return 8
}

func appendVint(dst []byte, v uint64) []byte {
	n := vintLen(v)
	marker := uint64(1) << (7 * uint(n))
	v |= marker
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*uint(i))))
	}
	return dst
}
