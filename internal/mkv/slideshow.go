package mkv

import "github.com/HeroicKatora/vid-from-pdf/internal/pcm"

// Color is the color model of the rendered frames. Only sRGB exists.
type Color int

// ColorSRGB is the sole supported color model.
const ColorSRGB Color = iota

// SlideShow is the immutable description of one muxing session.
type SlideShow struct {
	Slides []Slide
	// Width and Height are the pixel dimensions every slide image must
	// match.
	Width  uint32
	Height uint32
	Color  Color
	// Audio is the PCM layout shared by all slides' audio files, or nil for
	// a video-only show.
	Audio *pcm.Format
}

// Slide is one still image shown for a fixed duration, with its narration.
type Slide struct {
	// Image is the rendered frame file.
	Image string `json:"image"`
	// Audio is the rendered wav narration for this slide. Ignored when the
	// show carries no audio track.
	Audio string `json:"audio"`
	// Subtitles maps language to the slide's spoken text. Carried in the
	// model but not serialized into the container.
	Subtitles map[string]Subtitle `json:"subtitles,omitempty"`
	// Chapter is an optional chapter marker. Like subtitles it is carried
	// but not serialized.
	Chapter *Chapter `json:"chapter,omitempty"`
	// Seconds is how long the slide stays on screen.
	Seconds float32 `json:"seconds"`
}

// Subtitle is one language's text for a slide.
type Subtitle struct {
	Text   string  `json:"text"`
	Timing float32 `json:"timing"`
}

// Chapter names a slide in a table of contents.
type Chapter struct {
	Title string `json:"title"`
	Depth int    `json:"depth"`
}

// DurationSeconds is the nominal length of the whole show.
func (s *SlideShow) DurationSeconds() float64 {
	var sum float64
	for _, slide := range s.Slides {
		sum += float64(slide.Seconds)
	}
	return sum
}
