package imageio

import (
	"image"

	"golang.org/x/image/draw"
)

// thumbnailMaxEdge bounds the longer edge of generated thumbnails.
const thumbnailMaxEdge = 256

// scaleThumbnail downscales src to fit thumbnailMaxEdge, preserving aspect
// ratio. Images already within bounds are returned as-is.
func scaleThumbnail(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= thumbnailMaxEdge && h <= thumbnailMaxEdge {
		return src
	}

	if w >= h {
		h = h * thumbnailMaxEdge / w
		w = thumbnailMaxEdge
	} else {
		w = w * thumbnailMaxEdge / h
		h = thumbnailMaxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
