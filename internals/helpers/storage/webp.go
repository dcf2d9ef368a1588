package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

var DefaultWebPOptions = WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}

// ConvertToWebP decodes a jpeg/png, downsizes it to fit MaxW x MaxH
// (keeping aspect) and re-encodes it as lossy WebP.
func ConvertToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if (maxW <= 0 || b.Dx() <= maxW) && (maxH <= 0 || b.Dy() <= maxH) {
		return src
	}
	if maxW <= 0 {
		maxW = b.Dx()
	}
	if maxH <= 0 {
		maxH = b.Dy()
	}
	return imaging.Fit(src, maxW, maxH, imaging.CatmullRom)
}
