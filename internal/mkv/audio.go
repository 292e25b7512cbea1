package mkv

import (
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/HeroicKatora/vid-from-pdf/internal/pcm"
)

// audioChunk is one fixed-duration window of samples, already serialized in
// the track's byte order, with its offset from the slide start in ticks.
type audioChunk struct {
	offsetTicks int64
	data        []byte
}

// decodeAudio loads a slide's wav file and checks it against the track format
// declared at session start. Open failures are fatal; decode failures and
// format drift are domain conditions.
func decodeAudio(path string, want pcm.Format) (*pcm.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening audio source")
	}
	defer f.Close()

	clip, err := pcm.Decode(f)
	if err != nil {
		if errors.Is(err, pcm.ErrUnsupportedBitDepth) {
			return nil, DomainWrap(UnsupportedBitDepth, err, path)
		}
		return nil, ClassifyDecode(BadAudio, err, path)
	}
	if clip.Format != want {
		return nil, Domainf(BadAudio, "%s: slide audio is %d Hz %dch %d-bit, track wants %d Hz %dch %d-bit",
			path,
			clip.Format.SampleRate, clip.Format.Channels, clip.Format.BitsPerSample,
			want.SampleRate, want.Channels, want.BitsPerSample)
	}
	return clip, nil
}

// chunkAudio splits a clip into ~33ms windows. Each chunk's offset is the
// exact sample position converted to ticks, so accumulated rounding error
// never exceeds half a tick.
func chunkAudio(clip *pcm.Clip) []audioChunk {
	chunkSamples := int(clip.Format.SampleRate) / 33
	if chunkSamples == 0 {
		chunkSamples = 1
	}

	total := clip.Samples()
	chunks := make([]audioChunk, 0, total/chunkSamples+1)
	for start := 0; start < total; start += chunkSamples {
		end := start + chunkSamples
		if end > total {
			end = total
		}
		offsetSeconds := float64(start) / float64(clip.Format.SampleRate)
		chunks = append(chunks, audioChunk{
			offsetTicks: ticksFromSeconds(offsetSeconds),
			data:        encodeSamples(clip.Format, clip.Frames(start, end)),
		})
	}
	return chunks
}

// encodeSamples rewrites raw little-endian file bytes into the byte order the
// track declared: 16-bit integers end up in host order, floats stay little
// endian, single bytes pass through.
func encodeSamples(format pcm.Format, raw []byte) []byte {
	if format.BitsPerSample == 16 && !hostLittleEndian {
		out := make([]byte, len(raw))
		for i := 0; i+1 < len(raw); i += 2 {
			out[i], out[i+1] = raw[i+1], raw[i]
		}
		return out
	}
	return raw
}

// ticksFromSeconds converts wall-clock seconds into TimecodeScale ticks.
func ticksFromSeconds(s float64) int64 {
	return int64(math.Round(s * 1e9 / timecodeScale))
}
