package mkv

import (
	"fmt"
	"io/fs"
	"syscall"

	"github.com/pkg/errors"
)

// ErrorKind discriminates the recoverable conditions the muxer can report.
type ErrorKind int

const (
	// EmptySequence: a slideshow without slides; rejected before any output
	// exists.
	EmptySequence ErrorKind = iota + 1
	// MismatchingDimensions: a slide image whose pixel size differs from the
	// show's configured width/height.
	MismatchingDimensions
	// BadImage: an image that opened fine but does not decode.
	BadImage
	// BadAudio: a wav source that opened fine but is corrupt or does not
	// match the declared track format.
	BadAudio
	// UnsupportedBitDepth: a sample width the pipeline refuses to carry.
	UnsupportedBitDepth
	// TrackNumberRange: a track number outside the single-byte block
	// encoding.
	TrackNumberRange
)

func (k ErrorKind) String() string {
	switch k {
	case EmptySequence:
		return "EmptySequence"
	case MismatchingDimensions:
		return "MismatchingDimensions"
	case BadImage:
		return "BadImage"
	case BadAudio:
		return "BadAudio"
	case UnsupportedBitDepth:
		return "UnsupportedBitDepth"
	case TrackNumberRange:
		return "TrackNumberRange"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DomainError is the recoverable tier of the muxer's two-tier error contract.
// A caller may report it to an end user and move on; every other error coming
// out of this package is a transport failure that should abort the run.
type DomainError struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *DomainError) Unwrap() error { return e.cause }

// Domainf builds a recoverable error of the given kind.
func Domainf(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// DomainWrap attaches a recoverable classification to a decoder error.
func DomainWrap(kind ErrorKind, cause error, msg string) *DomainError {
	return &DomainError{Kind: kind, msg: msg, cause: cause}
}

// IsDomain reports whether err belongs to the recoverable tier.
func IsDomain(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}

// KindOf extracts the domain kind, or 0 for fatal errors.
func KindOf(err error) ErrorKind {
	var d *DomainError
	if errors.As(err, &d) {
		return d.Kind
	}
	return 0
}

// ClassifyDecode sorts a decoder failure into the two tiers: errors carrying
// an OS-level transport failure stay fatal, everything else the decoder
// complained about is a content problem of the given kind.
func ClassifyDecode(kind ErrorKind, cause error, msg string) error {
	var pathErr *fs.PathError
	var errno syscall.Errno
	if errors.As(cause, &pathErr) || errors.As(cause, &errno) {
		return errors.Wrap(cause, msg)
	}
	return DomainWrap(kind, cause, msg)
}
