package media

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/apex/log"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
)

const (
	jpegQuality        = 85
	maxStoredDimension = 2048 // longest side kept when persisting photos
)

// Orientation extracts the EXIF orientation tag, defaulting to 1 (upright).
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

// OrientUpright re-encodes an image so its pixels are upright regardless of
// the EXIF orientation tag. The recognition service reads raw pixels and
// ignores the tag, so rotated input must be fixed before submission.
// Undecodable input is returned unchanged.
func OrientUpright(data []byte) []byte {
	orientation := Orientation(data)
	if orientation == 1 {
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Infof("Keeping undecodable image as-is: %v", err)
		return data
	}
	return encodeJpeg(reorient(img, orientation), data)
}

// NormalizeImage prepares a photo for persistence: upright pixels, longest
// side bounded. Input that is already upright and small enough is stored
// unchanged.
func NormalizeImage(data []byte) []byte {
	orientation := Orientation(data)
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	b := img.Bounds()
	oversized := b.Dx() > maxStoredDimension || b.Dy() > maxStoredDimension
	if orientation == 1 && !oversized {
		return data
	}

	if orientation != 1 {
		img = reorient(img, orientation)
	}
	if oversized {
		img = downscale(img, maxStoredDimension)
	}
	return encodeJpeg(img, data)
}

func encodeJpeg(img image.Image, fallback []byte) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		log.Infof("Image re-encode failed, keeping original: %v", err)
		return fallback
	}
	return buf.Bytes()
}

// reorient maps source pixels into a new image according to the EXIF
// orientation value (2..8). Orientation 1 and unknown values pass through.
func reorient(img image.Image, orientation int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	remap := func(dst *image.RGBA, mapXY func(x, y int) (int, int)) image.Image {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx, dy := mapXY(x, y)
				dst.Set(dx, dy, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	}

	same := image.Rect(0, 0, w, h)
	swapped := image.Rect(0, 0, h, w)

	switch orientation {
	case 2: // flip horizontal
		return remap(image.NewRGBA(same), func(x, y int) (int, int) { return w - 1 - x, y })
	case 3: // rotate 180
		return remap(image.NewRGBA(same), func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4: // flip vertical
		return remap(image.NewRGBA(same), func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // transpose
		return remap(image.NewRGBA(swapped), func(x, y int) (int, int) { return y, x })
	case 6: // rotate 90 clockwise
		return remap(image.NewRGBA(swapped), func(x, y int) (int, int) { return h - 1 - y, x })
	case 7: // transverse
		return remap(image.NewRGBA(swapped), func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8: // rotate 90 counter-clockwise
		return remap(image.NewRGBA(swapped), func(x, y int) (int, int) { return y, w - 1 - x })
	default:
		return img
	}
}

func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := float64(maxDim) / float64(w)
	if s := float64(maxDim) / float64(h); s < scale {
		scale = s
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw > maxDim {
		nw = maxDim
	}
	if nh > maxDim {
		nh = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
