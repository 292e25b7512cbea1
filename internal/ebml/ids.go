package ebml

// ID is an EBML element identifier, stored with its class marker bits so that
// the constant's own big-endian bytes are its wire encoding.
type ID uint32

// Element IDs used by the WebM subset this muxer writes. Values follow the
// Matroska element registry.
const (
	IDEBML                 ID = 0x1A45DFA3
	IDEBMLVersion          ID = 0x4286
	IDEBMLReadVersion      ID = 0x42F7
	IDEBMLMaxIDLength      ID = 0x42F2
	IDEBMLMaxSizeLength    ID = 0x42F3
	IDDocType              ID = 0x4282
	IDDocTypeVersion       ID = 0x4287
	IDDocTypeReadVersion   ID = 0x4285

	IDSegment       ID = 0x18538067
	IDInfo          ID = 0x1549A966
	IDTimecodeScale ID = 0x2AD7B1
	IDDuration      ID = 0x4489
	IDMuxingApp     ID = 0x4D80
	IDWritingApp    ID = 0x5741

	IDTracks             ID = 0x1654AE6B
	IDTrackEntry         ID = 0xAE
	IDTrackNumber        ID = 0xD7
	IDTrackUID           ID = 0x73C5
	IDTrackType          ID = 0x83
	IDFlagEnabled        ID = 0xB9
	IDFlagDefault        ID = 0x88
	IDFlagForced         ID = 0x55AA
	IDFlagLacing         ID = 0x9C
	IDMinCache           ID = 0x6DE7
	IDMaxBlockAdditionID ID = 0x55EE
	IDCodecID            ID = 0x86
	IDCodecDecodeAll     ID = 0xAA
	IDSeekPreRoll        ID = 0x56BB

	IDVideo       ID = 0xE0
	IDPixelWidth  ID = 0xB0
	IDPixelHeight ID = 0xBA
	IDColourSpace ID = 0x2EB524

	// Colour metadata block. These sit beyond the element set most writer
	// libraries expose, which is why this package exists at all.
	IDColour                  ID = 0x55B0
	IDMatrixCoefficients      ID = 0x55B1
	IDBitsPerChannel          ID = 0x55B2
	IDTransferCharacteristics ID = 0x55BA
	IDPrimaries               ID = 0x55BB

	IDAudio             ID = 0xE1
	IDSamplingFrequency ID = 0xB5
	IDChannels          ID = 0x9F
	IDBitDepth          ID = 0x6264

	IDCluster       ID = 0x1F43B675
	IDTimecode      ID = 0xE7
	IDSimpleBlock   ID = 0xA3
	IDBlockGroup    ID = 0xA0
	IDBlock         ID = 0xA1
	IDBlockDuration ID = 0x9B

	IDCues ID = 0x1C53BB6B
)
