package mkv

import (
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// maxBlockTicks caps a single uncompressed video block at one second. Some
// players stall on long-duration single blocks of raw video, so a slide is
// split into repeats of at most this length.
const maxBlockTicks = 1000

// loadFrame decodes a slide image, verifies it against the configured show
// dimensions and returns its pixels as packed 8-bit RGBA rows.
func loadFrame(path string, width, height uint32) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening slide image")
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, ClassifyDecode(BadImage, err, path)
	}

	bounds := img.Bounds()
	if uint32(bounds.Dx()) != width || uint32(bounds.Dy()) != height {
		return nil, Domainf(MismatchingDimensions,
			"%s is %dx%d, show is configured for %dx%d",
			path, bounds.Dx(), bounds.Dy(), width, height)
	}

	rgba := imaging.Clone(img)
	if rgba.Stride == 4*bounds.Dx() {
		return rgba.Pix, nil
	}
	// Rows carry padding; repack them densely.
	out := make([]byte, 0, 4*bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*bounds.Dx()]
		out = append(out, row...)
	}
	return out, nil
}

// splitDurationTicks divides a slide's nominal duration into consecutive
// sub-block durations of at most one second each.
func splitDurationTicks(total int64) []int64 {
	var out []int64
	for remaining := total; remaining > 0; remaining -= maxBlockTicks {
		d := remaining
		if d > maxBlockTicks {
			d = maxBlockTicks
		}
		out = append(out, d)
	}
	return out
}
