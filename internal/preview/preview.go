// Package preview inspects rasterized sheet pages for layout debugging.
// Given PNG page images it measures how much of each page is whitespace,
// locates the content bounding box, and writes downscaled thumbnails.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// DefaultThreshold is the grayscale value at or above which a pixel
// counts as whitespace.
const DefaultThreshold = 245

// Analysis holds the whitespace metrics for a single page image.
type Analysis struct {
	Page            string
	WhitespaceRatio float64
	// Bounds is the content bounding box with the usual exclusive Max.
	// A fully white page reports the whole image rectangle.
	Bounds image.Rectangle
}

// Analyze measures the whitespace ratio and content bounding box of a
// page image. Pixels whose grayscale value is >= threshold count as
// whitespace.
func Analyze(img image.Image, threshold int) (float64, image.Rectangle) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0, b
	}

	whiteCount := 0
	left, top := -1, -1
	right, bottom := -1, -1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if int(gray.Y) >= threshold {
				whiteCount++
				continue
			}
			if left == -1 || x < left {
				left = x
			}
			if right == -1 || x > right {
				right = x
			}
			if top == -1 {
				top = y
			}
			bottom = y
		}
	}

	ratio := float64(whiteCount) / float64(total)
	if top == -1 {
		return ratio, b
	}
	return ratio, image.Rect(left, top, right+1, bottom+1)
}

// AnalyzeFile decodes a PNG page image and analyzes it.
func AnalyzeFile(path string, threshold int) (Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("opening page image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return Analysis{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	ratio, bounds := Analyze(img, threshold)
	return Analysis{Page: path, WhitespaceRatio: ratio, Bounds: bounds}, nil
}

// AnalyzeDir analyzes every PNG in dir, in name order.
func AnalyzeDir(dir string, threshold int) ([]Analysis, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	results := make([]Analysis, 0, len(paths))
	for _, path := range paths {
		analysis, err := AnalyzeFile(path, threshold)
		if err != nil {
			return results, err
		}
		results = append(results, analysis)
	}
	return results, nil
}

// WriteThumbnail writes a downscaled copy of the page image to outPath.
// Scale is the output size relative to the source, in (0, 1].
func WriteThumbnail(img image.Image, outPath string, scale float64) error {
	if scale <= 0 || scale > 1 {
		return fmt.Errorf("thumbnail scale %v out of range (0, 1]", scale)
	}

	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating thumbnail: %w", err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	return f.Close()
}

// ThumbnailFile reads a PNG page image and writes its thumbnail next to
// the requested output path, returning the thumbnail path.
func ThumbnailFile(pagePath, outDir string, scale float64) (string, error) {
	f, err := os.Open(pagePath)
	if err != nil {
		return "", fmt.Errorf("opening page image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", filepath.Base(pagePath), err)
	}

	base := strings.TrimSuffix(filepath.Base(pagePath), filepath.Ext(pagePath))
	outPath := filepath.Join(outDir, base+"_thumb.png")
	if err := WriteThumbnail(img, outPath, scale); err != nil {
		return "", err
	}
	return outPath, nil
}
