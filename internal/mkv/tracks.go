package mkv

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/HeroicKatora/vid-from-pdf/internal/ebml"
	"github.com/HeroicKatora/vid-from-pdf/internal/pcm"
)

// Track numbers are fixed for the session: exactly one video track and at
// most one audio track.
const (
	videoTrackNumber = 1
	audioTrackNumber = 2
)

// hostLittleEndian reports the byte order 16-bit samples end up in, since
// they are passed through in native order rather than normalized.
var hostLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1

// trackUID derives the session-stable UID for a track from its index.
func trackUID(index uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], index)
	return xxhash.Sum64(b[:])
}

// videoTrack is the Matroska-mapped form of the show's video parameters: the
// codec string, dimensions and color metadata derived once at session start.
type videoTrack struct {
	width  uint32
	height uint32
}

func (v videoTrack) element() ebml.Element {
	return ebml.Master(ebml.IDTrackEntry,
		ebml.Uint(ebml.IDTrackNumber, videoTrackNumber),
		ebml.Uint(ebml.IDTrackUID, trackUID(0)),
		ebml.Uint(ebml.IDTrackType, 1),
		ebml.Uint(ebml.IDFlagEnabled, 1),
		ebml.Uint(ebml.IDFlagDefault, 1),
		ebml.Uint(ebml.IDFlagForced, 0),
		ebml.Uint(ebml.IDFlagLacing, 0),
		ebml.Uint(ebml.IDMinCache, 0),
		ebml.Uint(ebml.IDMaxBlockAdditionID, 0),
		ebml.String(ebml.IDCodecID, "V_UNCOMPRESSED"),
		ebml.Uint(ebml.IDCodecDecodeAll, 0),
		ebml.Uint(ebml.IDSeekPreRoll, 0),
		ebml.Master(ebml.IDVideo,
			ebml.Uint(ebml.IDPixelWidth, uint64(v.width)),
			ebml.Uint(ebml.IDPixelHeight, uint64(v.height)),
			ebml.Binary(ebml.IDColourSpace, []byte("RGBA")),
			ebml.Master(ebml.IDColour,
				ebml.Uint(ebml.IDBitsPerChannel, 8),
				// sRGB transfer, rec.709 primaries.
				ebml.Uint(ebml.IDTransferCharacteristics, 13),
				ebml.Uint(ebml.IDPrimaries, 1),
			),
		),
	)
}

// audioTrack is the Matroska-mapped form of the show's PCM parameters.
type audioTrack struct {
	format pcm.Format
}

// codecID picks the PCM codec string. 16-bit samples declare the host byte
// order because they are not byte-swapped on the way through; 32-bit floats
// are forced little-endian regardless of host order.
func (a audioTrack) codecID() (string, error) {
	switch {
	case a.format.Float && a.format.BitsPerSample == 32:
		return "A_PCM/FLOAT/IEEE", nil
	case !a.format.Float && a.format.BitsPerSample == 8:
		return "A_PCM/INT/LIT", nil
	case !a.format.Float && a.format.BitsPerSample == 16:
		if hostLittleEndian {
			return "A_PCM/INT/LIT", nil
		}
		return "A_PCM/INT/BIG", nil
	default:
		return "", Domainf(UnsupportedBitDepth,
			"no PCM codec mapping for %d-bit samples (float=%t)", a.format.BitsPerSample, a.format.Float)
	}
}

func (a audioTrack) element() (ebml.Element, error) {
	codec, err := a.codecID()
	if err != nil {
		return ebml.Element{}, err
	}
	return ebml.Master(ebml.IDTrackEntry,
		ebml.Uint(ebml.IDTrackNumber, audioTrackNumber),
		ebml.Uint(ebml.IDTrackUID, trackUID(1)),
		ebml.Uint(ebml.IDTrackType, 2),
		ebml.Uint(ebml.IDFlagEnabled, 1),
		ebml.Uint(ebml.IDFlagDefault, 1),
		ebml.Uint(ebml.IDFlagForced, 0),
		ebml.Uint(ebml.IDFlagLacing, 0),
		ebml.Uint(ebml.IDMinCache, 0),
		ebml.Uint(ebml.IDMaxBlockAdditionID, 0),
		ebml.String(ebml.IDCodecID, codec),
		ebml.Uint(ebml.IDCodecDecodeAll, 0),
		ebml.Uint(ebml.IDSeekPreRoll, 0),
		ebml.Master(ebml.IDAudio,
			ebml.Float(ebml.IDSamplingFrequency, float64(a.format.SampleRate)),
			ebml.Uint(ebml.IDChannels, uint64(a.format.Channels)),
			ebml.Uint(ebml.IDBitDepth, uint64(a.format.BitsPerSample)),
		),
	), nil
}
