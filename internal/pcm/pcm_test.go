package pcm

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wavBytes builds a minimal RIFF/WAVE stream around the given raw sample
// data.
func wavBytes(audioFormat, channels uint16, sampleRate uint32, bits uint16, data []byte) []byte {
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+len(data)))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, audioFormat)
	binary.Write(&b, binary.LittleEndian, channels)
	binary.Write(&b, binary.LittleEndian, sampleRate)
	binary.Write(&b, binary.LittleEndian, sampleRate*uint32(channels)*uint32(bits)/8)
	binary.Write(&b, binary.LittleEndian, uint16(uint32(channels)*uint32(bits)/8))
	binary.Write(&b, binary.LittleEndian, bits)

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(data)))
	b.Write(data)
	return b.Bytes()
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
		want   Format
	}{
		{
			"16-bit mono",
			wavBytes(1, 1, 11025, 16, make([]byte, 4)),
			Format{SampleRate: 11025, Channels: 1, BitsPerSample: 16},
		},
		{
			"8-bit stereo",
			wavBytes(1, 2, 8000, 8, make([]byte, 4)),
			Format{SampleRate: 8000, Channels: 2, BitsPerSample: 8},
		},
		{
			"32-bit float",
			wavBytes(3, 1, 48000, 32, make([]byte, 8)),
			Format{SampleRate: 48000, Channels: 1, BitsPerSample: 32, Float: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Probe(bytes.NewReader(tt.stream))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbeRejectsUnsupportedFormats(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
	}{
		{"24-bit integer", wavBytes(1, 1, 44100, 24, make([]byte, 6))},
		{"32-bit integer", wavBytes(1, 1, 44100, 32, make([]byte, 8))},
		{"16-bit float tag", wavBytes(3, 1, 44100, 16, make([]byte, 4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Probe(bytes.NewReader(tt.stream))
			assert.True(t, errors.Is(err, ErrUnsupportedBitDepth), "got %v", err)
		})
	}
}

func TestProbeGarbageHeader(t *testing.T) {
	_, err := Probe(bytes.NewReader([]byte("this is not a riff stream at all")))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedBitDepth))
}

func TestDecodePreservesRawBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	clip, err := Decode(bytes.NewReader(wavBytes(1, 1, 11025, 16, data)))
	require.NoError(t, err)

	assert.Equal(t, 3, clip.Samples())
	assert.Equal(t, data, clip.Frames(0, clip.Samples()))
	assert.Equal(t, []byte{0x03, 0x04}, clip.Frames(1, 2))
}

func TestDecodeDropsTornFrame(t *testing.T) {
	// 5 bytes of 16-bit stereo data: one full frame plus a torn one.
	clip, err := Decode(bytes.NewReader(wavBytes(1, 2, 8000, 16, []byte{1, 2, 3, 4, 5})))
	require.NoError(t, err)
	assert.Equal(t, 1, clip.Samples())
	assert.Equal(t, []byte{1, 2, 3, 4}, clip.Frames(0, 1))
}

func TestFrameBytes(t *testing.T) {
	assert.Equal(t, 2, Format{Channels: 1, BitsPerSample: 16}.FrameBytes())
	assert.Equal(t, 8, Format{Channels: 2, BitsPerSample: 32}.FrameBytes())
	assert.Equal(t, 1, Format{Channels: 1, BitsPerSample: 8}.FrameBytes())
}
