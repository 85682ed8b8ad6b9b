package biometric

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const channels = 4

// ImageBuffer is a decoded raster with interleaved R,G,B,A samples, row-major,
// top to bottom. Analysis code only ever reads it.
type ImageBuffer struct {
	Width   int
	Height  int
	Samples []byte
}

// NewImageBuffer wraps samples after checking they match the declared size.
func NewImageBuffer(width, height int, samples []byte) (*ImageBuffer, error) {
	buf := &ImageBuffer{Width: width, Height: height, Samples: samples}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *ImageBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidImageBuffer)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImageBuffer, b.Width, b.Height)
	}
	if want := b.Width * b.Height * channels; len(b.Samples) != want {
		return fmt.Errorf("%w: %dx%d needs %d samples, got %d", ErrInvalidImageBuffer, b.Width, b.Height, want, len(b.Samples))
	}
	return nil
}

func (b *ImageBuffer) PixelCount() int {
	return b.Width * b.Height
}

func (b *ImageBuffer) offset(x, y int) int {
	return (y*b.Width + x) * channels
}

// gray is the unweighted mean of R, G and B at (x, y).
func (b *ImageBuffer) gray(x, y int) float64 {
	i := b.offset(x, y)
	return (float64(b.Samples[i]) + float64(b.Samples[i+1]) + float64(b.Samples[i+2])) / 3
}

// rgbDelta is the summed absolute per-channel difference between two pixels.
func (b *ImageBuffer) rgbDelta(x1, y1, x2, y2 int) int {
	i, j := b.offset(x1, y1), b.offset(x2, y2)
	return absInt(int(b.Samples[i])-int(b.Samples[j])) +
		absInt(int(b.Samples[i+1])-int(b.Samples[j+1])) +
		absInt(int(b.Samples[i+2])-int(b.Samples[j+2]))
}

func (b *ImageBuffer) rgba() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Samples,
		Stride: b.Width * channels,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// FromImage copies any decoded image into a fresh RGBA buffer.
func FromImage(img image.Image) *ImageBuffer {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &ImageBuffer{Width: bounds.Dx(), Height: bounds.Dy(), Samples: rgba.Pix}
}

// DecodeImage turns a compressed JPEG, PNG, GIF, WebP or BMP payload into an
// ImageBuffer. Format detection is left to the registered decoders.
func DecodeImage(data []byte) (*ImageBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img), nil
}

// Resample returns a new buffer of exactly width x height using bilinear
// interpolation.
func Resample(buf *ImageBuffer, width, height int) (*ImageBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resample target %dx%d", ErrInvalidImageBuffer, width, height)
	}
	if buf.Width == 0 || buf.Height == 0 {
		return nil, fmt.Errorf("%w: cannot resample an empty image", ErrInvalidImageBuffer)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), buf.rgba(), buf.rgba().Bounds(), xdraw.Src, nil)
	return &ImageBuffer{Width: width, Height: height, Samples: dst.Pix}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
