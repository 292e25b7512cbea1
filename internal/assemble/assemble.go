// Package assemble drives one muxing session end to end: it derives the show
// parameters from the first slide, creates the destination file, and pumps
// the encoder's step/ready/consume loop so that output size never dictates
// peak memory.
package assemble

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HeroicKatora/vid-from-pdf/internal/mkv"
	"github.com/HeroicKatora/vid-from-pdf/internal/pcm"
)

// Job is the structured description of one assembly run, as read from the
// command's stdin.
type Job struct {
	// Target is the destination path. It must not exist yet.
	Target string `json:"target"`
	// Slides are encoded in order; the first one defines the show's image
	// dimensions and audio format.
	Slides []mkv.Slide `json:"slides"`
	// Memory is the advisory staging budget in bytes; zero means the
	// default.
	Memory int `json:"memory,omitempty"`
}

// Result reports a finished run.
type Result struct {
	// Length is the total number of bytes written to the target.
	Length uint64 `json:"length"`
}

// Run assembles the job into a WebM file. Domain conditions (empty show,
// mismatched or corrupt inputs) come back as mkv.DomainError; everything
// else is a transport failure. No destination file is created for a job that
// fails validation.
func Run(job Job, app string) (*Result, error) {
	if len(job.Slides) == 0 {
		return nil, mkv.Domainf(mkv.EmptySequence, "slide show has no slides")
	}

	show, err := probeShow(job.Slides)
	if err != nil {
		return nil, err
	}

	out, err := os.OpenFile(job.Target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "creating destination")
	}
	defer out.Close()

	log := logrus.WithFields(logrus.Fields{
		"target": job.Target,
		"slides": len(job.Slides),
	})

	enc := mkv.NewEncoder(show, mkv.NewPagedVec(job.Memory), app)

	var length uint64
	var steps int
	for !enc.Done() {
		if err := enc.Step(); err != nil {
			return nil, err
		}
		ready := enc.Ready()
		if _, err := out.Write(ready); err != nil {
			return nil, errors.Wrap(err, "writing destination")
		}
		length += uint64(len(ready))
		enc.Consume(len(ready))
		steps++
		log.WithFields(logrus.Fields{"step": steps, "bytes": length}).Debug("flushed ready bytes")
	}

	tail := enc.Tail()
	if _, err := out.Write(tail); err != nil {
		return nil, errors.Wrap(err, "writing destination tail")
	}
	length += uint64(len(tail))

	if err := out.Close(); err != nil {
		return nil, errors.Wrap(err, "closing destination")
	}

	log.WithField("length", length).Info("assembled slide show")
	return &Result{Length: length}, nil
}

// probeShow derives the session-wide show parameters from the first slide:
// image dimensions from the image header, PCM layout from the wav header. A
// slide with no audio path makes the whole show video-only.
func probeShow(slides []mkv.Slide) (*mkv.SlideShow, error) {
	first := slides[0]

	img, err := os.Open(first.Image)
	if err != nil {
		return nil, errors.Wrap(err, "opening first slide image")
	}
	cfg, _, err := image.DecodeConfig(img)
	img.Close()
	if err != nil {
		return nil, mkv.ClassifyDecode(mkv.BadImage, err, first.Image)
	}

	show := &mkv.SlideShow{
		Slides: slides,
		Width:  uint32(cfg.Width),
		Height: uint32(cfg.Height),
		Color:  mkv.ColorSRGB,
	}

	if first.Audio != "" {
		wav, err := os.Open(first.Audio)
		if err != nil {
			return nil, errors.Wrap(err, "opening first slide audio")
		}
		format, err := pcm.Probe(wav)
		wav.Close()
		if err != nil {
			if errors.Is(err, pcm.ErrUnsupportedBitDepth) {
				return nil, mkv.DomainWrap(mkv.UnsupportedBitDepth, err, first.Audio)
			}
			return nil, mkv.ClassifyDecode(mkv.BadAudio, err, first.Audio)
		}
		show.Audio = &format
	}

	return show, nil
}
