// Package imaging normalizes submitted images before they are stored: large
// files are downscaled to fit a bounding box and re-encoded as JPEG. It is a
// pure per-call transform with no shared state between calls.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrStillTooLarge is terminal: the image exceeds the ceiling even after
// compression and the submitter must provide a smaller source.
var ErrStillTooLarge = errors.New("image is still too large after compression, please provide a smaller image")

type Options struct {
	MaxWidth     int   // bounding box, default 1920
	MaxHeight    int   // bounding box, default 1080
	Quality      int   // JPEG quality, default 80
	TriggerBytes int64 // anything above this is compressed, default 1 MiB
	CeilingBytes int64 // hard limit after compression, default 5 MiB
}

func DefaultOptions() Options {
	return Options{
		MaxWidth:     1920,
		MaxHeight:    1080,
		Quality:      80,
		TriggerBytes: 1 << 20,
		CeilingBytes: 5 << 20,
	}
}

// Result reports what the pipeline did with an image.
type Result struct {
	Data          []byte
	ContentType   string
	OriginalBytes int
	FinalBytes    int
	Compressed    bool
	Width, Height int
}

// Normalize validates and, when the input exceeds the trigger size, downsizes
// and re-encodes it. Inputs already under the trigger are returned unchanged.
// Images are only ever downscaled, never upscaled.
func Normalize(data []byte, contentType string, opts Options) (*Result, error) {
	if opts.MaxWidth == 0 || opts.MaxHeight == 0 {
		def := DefaultOptions()
		if opts.MaxWidth == 0 {
			opts.MaxWidth = def.MaxWidth
		}
		if opts.MaxHeight == 0 {
			opts.MaxHeight = def.MaxHeight
		}
	}
	if opts.Quality == 0 {
		opts.Quality = DefaultOptions().Quality
	}
	if opts.TriggerBytes == 0 {
		opts.TriggerBytes = DefaultOptions().TriggerBytes
	}
	if opts.CeilingBytes == 0 {
		opts.CeilingBytes = DefaultOptions().CeilingBytes
	}

	if int64(len(data)) <= opts.TriggerBytes {
		// Small enough already: skip the compression pass entirely.
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("not a decodable image: %w", err)
		}
		return &Result{
			Data:          data,
			ContentType:   contentType,
			OriginalBytes: len(data),
			FinalBytes:    len(data),
			Compressed:    false,
			Width:         cfg.Width,
			Height:        cfg.Height,
		}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not a decodable image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Fit within the box preserving aspect ratio; never scale up.
	scale := 1.0
	if sx := float64(opts.MaxWidth) / float64(w); sx < scale {
		scale = sx
	}
	if sy := float64(opts.MaxHeight) / float64(h); sy < scale {
		scale = sy
	}

	out := src
	newW, newH := w, h
	if scale < 1.0 {
		newW = int(float64(w)*scale + 0.5)
		newH = int(float64(h)*scale + 0.5)
		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("re-encode failed: %w", err)
	}

	if int64(buf.Len()) > opts.CeilingBytes {
		return nil, ErrStillTooLarge
	}

	return &Result{
		Data:          buf.Bytes(),
		ContentType:   "image/jpeg",
		OriginalBytes: len(data),
		FinalBytes:    buf.Len(),
		Compressed:    true,
		Width:         newW,
		Height:        newH,
	}, nil
}
