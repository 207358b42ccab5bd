package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// NormalizeOptions bounds the output dimensions and picks the re-encoding.
type NormalizeOptions struct {
	MaxWidth  int
	MaxHeight int
	Format    string // "jpeg" or "png"
	Quality   int    // jpeg quality 1..100, ignored for png
}

// Presets matching what the dashboard uploads.
var (
	LogoImageOptions    = NormalizeOptions{MaxWidth: 512, MaxHeight: 512, Format: "png", Quality: 80}
	CoverImageOptions   = NormalizeOptions{MaxWidth: 1600, MaxHeight: 1200, Format: "jpeg", Quality: 80}
	ProductImageOptions = NormalizeOptions{MaxWidth: 1200, MaxHeight: 1200, Format: "jpeg", Quality: 80}
)

// NormalizeImage scales an image down (never up) so both dimensions fit the
// bounds, preserving aspect ratio, and re-encodes it at the requested
// quality. Normalization is a best-effort optimization: on any decode or
// encode failure the original payload and filename are returned unchanged so
// the caller's upload flow is never blocked.
func NormalizeImage(data []byte, filename string, opts NormalizeOptions) ([]byte, string) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, filename
	}

	bounds := src.Bounds()
	targetW, targetH := computeTargetSize(bounds.Dx(), bounds.Dy(), opts.MaxWidth, opts.MaxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	var ext string
	switch opts.Format {
	case "png":
		ext = "png"
		err = png.Encode(&buf, dst)
	default:
		ext = "jpg"
		quality := opts.Quality
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return data, filename
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return buf.Bytes(), base + "_compressed." + ext
}

// computeTargetSize keeps the aspect ratio and never upscales: the scale
// factor is min(maxW/w, maxH/h, 1).
func computeTargetSize(w, h, maxW, maxH int) (int, int) {
	ratio := math.Min(math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h)), 1)
	return int(math.Round(float64(w) * ratio)), int(math.Round(float64(h) * ratio))
}
