// Package pcm is the boundary to RIFF/WAVE audio sources. It exposes the
// format header and the raw little-endian sample bytes of a file; it performs
// no resampling, mixing, or byte-order conversion itself.
package pcm

import (
	"io"

	"github.com/pkg/errors"
	riff "github.com/youpy/go-riff"
	wav "github.com/youpy/go-wav"
)

// WAVE format tags this package accepts.
const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

// ErrUnsupportedBitDepth marks sample widths the pipeline cannot carry.
// Notably 24-bit integer samples are refused outright instead of being
// truncated to a narrower width.
var ErrUnsupportedBitDepth = errors.New("unsupported sample format (want 8-bit, 16-bit or 32-bit float PCM)")

// Format describes the sample layout of a clip.
type Format struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	// Float is set for IEEE float samples (always 32-bit wide here).
	Float bool
}

// FrameBytes is the byte width of one sample frame across all channels.
func (f Format) FrameBytes() int {
	return int(f.Channels) * int(f.BitsPerSample) / 8
}

// Clip is a fully decoded audio source: its format plus the raw sample bytes
// exactly as stored in the file (WAVE data is little-endian on disk).
type Clip struct {
	Format Format
	data   []byte
}

// Samples is the number of sample frames in the clip.
func (c *Clip) Samples() int {
	fb := c.Format.FrameBytes()
	if fb == 0 {
		return 0
	}
	return len(c.data) / fb
}

// Frames returns the raw bytes of the sample frames in [from, to).
func (c *Clip) Frames(from, to int) []byte {
	fb := c.Format.FrameBytes()
	return c.data[from*fb : to*fb]
}

// Probe reads just enough of a WAVE stream to report its sample format.
func Probe(r riff.RIFFReader) (Format, error) {
	f, err := wav.NewReader(r).Format()
	if err != nil {
		return Format{}, errors.Wrap(err, "reading wav header")
	}
	return checkFormat(f)
}

// Decode reads a whole WAVE stream into memory.
func Decode(r riff.RIFFReader) (*Clip, error) {
	reader := wav.NewReader(r)
	f, err := reader.Format()
	if err != nil {
		return nil, errors.Wrap(err, "reading wav header")
	}
	format, err := checkFormat(f)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "reading wav samples")
	}
	// Drop a trailing partial frame rather than emitting torn samples.
	fb := format.FrameBytes()
	data = data[:len(data)/fb*fb]
	return &Clip{Format: format, data: data}, nil
}

func checkFormat(f *wav.WavFormat) (Format, error) {
	format := Format{
		SampleRate:    f.SampleRate,
		Channels:      f.NumChannels,
		BitsPerSample: f.BitsPerSample,
	}
	switch {
	case f.AudioFormat == formatPCM && (f.BitsPerSample == 8 || f.BitsPerSample == 16):
	case f.AudioFormat == formatIEEEFloat && f.BitsPerSample == 32:
		format.Float = true
	default:
		return Format{}, errors.Wrapf(ErrUnsupportedBitDepth,
			"wav format tag %d with %d bits per sample", f.AudioFormat, f.BitsPerSample)
	}
	if f.SampleRate == 0 || f.NumChannels == 0 {
		return Format{}, errors.Errorf("corrupt wav header: %d Hz, %d channels", f.SampleRate, f.NumChannels)
	}
	return format, nil
}
