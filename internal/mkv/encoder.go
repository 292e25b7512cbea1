// Package mkv assembles a slideshow into a WebM/Matroska byte stream. The
// Encoder is a pull-based state machine: each Step performs one bounded unit
// of work into a PagedVec, the caller drains and persists the ready bytes,
// and the produced stream is strictly append-only so already-persisted bytes
// are never revisited.
package mkv

import (
	"math"

	"github.com/pkg/errors"

	"github.com/HeroicKatora/vid-from-pdf/internal/ebml"
)

// timecodeScale is the fixed Segment tick length in nanoseconds (one tick is
// a millisecond).
const timecodeScale = 1_000_000

// DefaultApp is the MuxingApp/WritingApp string when none is configured.
const DefaultApp = "VFP-Core-1.0.0"

type progressState int

const (
	progressInitial progressState = iota
	progressBeforeFrame
	progressDone
)

// progress is the encoder's cursor. It only ever moves forward:
// Initial → BeforeFrame(0) → … → BeforeFrame(len-1) → Done.
type progress struct {
	state progressState
	frame int
}

// Encoder drives header emission, track declaration and per-slide block
// emission. It assumes a non-empty slide list; the driving collaborator
// rejects empty shows before constructing one.
type Encoder struct {
	slides []Slide
	video  videoTrack
	audio  *audioTrack
	app    string

	// duration is the nominal show length in seconds, fixed at construction.
	duration float64
	// passed is how many seconds of slides have been fully encoded.
	passed   float64
	progress progress

	vec *PagedVec
}

// NewEncoder prepares a muxing session for the given show, staging output in
// vec. app names the muxing/writing application in the Info element; empty
// means DefaultApp.
func NewEncoder(show *SlideShow, vec *PagedVec, app string) *Encoder {
	if app == "" {
		app = DefaultApp
	}
	enc := &Encoder{
		slides:   show.Slides,
		video:    videoTrack{width: show.Width, height: show.Height},
		app:      app,
		duration: show.DurationSeconds(),
		vec:      vec,
	}
	if show.Audio != nil {
		enc.audio = &audioTrack{format: *show.Audio}
	}
	return enc
}

// Step performs exactly one bounded unit of work: the header/track preamble,
// or one slide's audio and video blocks. A returned DomainError leaves the
// cursor untouched, so calling Step again reproduces the identical error;
// any other error is a transport failure that should abort the run.
func (e *Encoder) Step() error {
	switch e.progress.state {
	case progressDone:
		return nil
	case progressInitial:
		return e.stepPreamble()
	case progressBeforeFrame:
		return e.stepSlide(e.progress.frame)
	default:
		panic("mkv: corrupt encoder progress")
	}
}

// Ready is the buffer's currently unconsumed bytes. The view is invalidated
// by the next Step or Consume.
func (e *Encoder) Ready() []byte {
	return e.vec.Ready()
}

// Consume tells the encoder that the first n ready bytes were durably
// persisted and may be dropped from memory.
func (e *Encoder) Consume(n int) {
	e.vec.Consume(n)
}

// Done reports whether the trailer has been written. No Step mutates the
// stream afterwards.
func (e *Encoder) Done() bool {
	return e.progress.state == progressDone
}

// Tail is the final run of unconsumed bytes once Done; the caller flushes it
// exactly once after the step loop.
func (e *Encoder) Tail() []byte {
	return e.vec.Ready()
}

// stepPreamble emits the EBML header, the open-ended Segment start, Info and
// Tracks. Track declaration is resolved before the first byte is staged so a
// domain failure leaves the buffer empty.
func (e *Encoder) stepPreamble() error {
	entries := []ebml.Element{e.video.element()}
	if e.audio != nil {
		entry, err := e.audio.element()
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	head := ebml.Master(ebml.IDEBML,
		ebml.Uint(ebml.IDEBMLVersion, 1),
		ebml.Uint(ebml.IDEBMLReadVersion, 1),
		ebml.Uint(ebml.IDEBMLMaxIDLength, 4),
		ebml.Uint(ebml.IDEBMLMaxSizeLength, 8),
		ebml.String(ebml.IDDocType, "webm"),
		ebml.Uint(ebml.IDDocTypeVersion, 4),
		ebml.Uint(ebml.IDDocTypeReadVersion, 2),
	)
	if _, err := head.WriteTo(e.vec); err != nil {
		return errors.Wrap(err, "staging EBML header")
	}
	if _, err := e.vec.Write(ebml.AppendUnknownSizeStart(nil, ebml.IDSegment)); err != nil {
		return errors.Wrap(err, "staging segment start")
	}

	durationTicks := math.Round(e.duration * 1e9 / timecodeScale)
	info := ebml.Master(ebml.IDInfo,
		ebml.Uint(ebml.IDTimecodeScale, timecodeScale),
		ebml.Float(ebml.IDDuration, durationTicks),
		ebml.String(ebml.IDMuxingApp, e.app),
		ebml.String(ebml.IDWritingApp, e.app),
	)
	if _, err := info.WriteTo(e.vec); err != nil {
		return errors.Wrap(err, "staging segment info")
	}
	if _, err := ebml.Master(ebml.IDTracks, entries...).WriteTo(e.vec); err != nil {
		return errors.Wrap(err, "staging track declaration")
	}

	e.progress = progress{state: progressBeforeFrame, frame: 0}
	return nil
}

// stepSlide emits all of slide i's audio chunk blocks, then its repeated
// video blocks, and on the final slide the terminating zero-duration frame
// repeat plus the empty Cues index. Decoding happens before any byte is
// staged, so a failed slide stages nothing.
func (e *Encoder) stepSlide(i int) error {
	slide := e.slides[i]

	var chunks []audioChunk
	if e.audio != nil {
		clip, err := decodeAudio(slide.Audio, e.audio.format)
		if err != nil {
			return err
		}
		chunks = chunkAudio(clip)
	}
	frame, err := loadFrame(slide.Image, e.video.width, e.video.height)
	if err != nil {
		return err
	}

	start := ticksFromSeconds(e.passed)
	for _, chunk := range chunks {
		if err := e.writeBlockCluster(audioTrackNumber, start+chunk.offsetTicks, chunk.data, noBlockDuration); err != nil {
			return err
		}
	}

	var offset int64
	for _, d := range splitDurationTicks(ticksFromSeconds(float64(slide.Seconds))) {
		if err := e.writeBlockCluster(videoTrackNumber, start+offset, frame, d); err != nil {
			return err
		}
		offset += d
	}

	last := i == len(e.slides)-1
	if last {
		// Terminal zero-duration repeat of the final frame, then the (empty)
		// index. The open-ended segment needs no close marker.
		if err := e.writeBlockCluster(videoTrackNumber, start+offset, frame, 0); err != nil {
			return err
		}
		if _, err := ebml.Master(ebml.IDCues).WriteTo(e.vec); err != nil {
			return errors.Wrap(err, "staging cues")
		}
	}

	e.passed += float64(slide.Seconds)
	if last {
		e.progress = progress{state: progressDone}
	} else {
		e.progress = progress{state: progressBeforeFrame, frame: i + 1}
	}
	return nil
}

// noBlockDuration omits the BlockDuration element from a block group.
const noBlockDuration int64 = -1

// writeBlockCluster stages one Cluster holding a single block group. The
// cluster carries the absolute timecode; the block's relative timecode is
// always zero.
func (e *Encoder) writeBlockCluster(track uint64, absTicks int64, data []byte, durationTicks int64) error {
	payload, err := ebml.BlockData(track, 0, data)
	if err != nil {
		return DomainWrap(TrackNumberRange, err, "framing block")
	}
	group := make([]ebml.Element, 0, 2)
	group = append(group, ebml.Binary(ebml.IDBlock, payload))
	if durationTicks >= 0 {
		group = append(group, ebml.Uint(ebml.IDBlockDuration, uint64(durationTicks)))
	}
	cluster := ebml.Master(ebml.IDCluster,
		ebml.Uint(ebml.IDTimecode, uint64(absTicks)),
		ebml.Master(ebml.IDBlockGroup, group...),
	)
	if _, err := cluster.WriteTo(e.vec); err != nil {
		return errors.Wrap(err, "staging cluster")
	}
	return nil
}
