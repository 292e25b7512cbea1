package mkv

// DefaultMemory is the advisory staging budget used when a job does not name
// one.
const DefaultMemory = 1_000_000

// PagedVec is the staging buffer between the encoder and whoever persists the
// produced bytes. The encoder appends, the consumer drains from the front;
// bytes below the consumed boundary are gone for good and are never rewritten.
// The capacity hint is advisory: a consumer that never calls Consume simply
// lets the buffer grow.
type PagedVec struct {
	buf []byte
}

// NewPagedVec creates a buffer with the given capacity hint. Non-positive
// hints fall back to DefaultMemory.
func NewPagedVec(mem int) *PagedVec {
	if mem <= 0 {
		mem = DefaultMemory
	}
	return &PagedVec{buf: make([]byte, 0, mem)}
}

// Ready is the view of all produced, not yet consumed bytes. It aliases the
// buffer and is invalidated by the next Write or Consume.
func (v *PagedVec) Ready() []byte {
	return v.buf
}

// Consume discards the first n ready bytes after they were persisted
// elsewhere. Consuming more than is ready is a caller bug.
func (v *PagedVec) Consume(n int) {
	if n == 0 {
		return
	}
	if n < 0 || n > len(v.buf) {
		panic("mkv: consume beyond ready bytes")
	}
	v.buf = v.buf[:copy(v.buf, v.buf[n:])]
}

// Write appends produced bytes. It never fails; it exists to satisfy
// io.Writer so encoded elements can be streamed in.
func (v *PagedVec) Write(p []byte) (int, error) {
	v.buf = append(v.buf, p...)
	return len(p), nil
}
