package raster

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors returned by Native operations.
var (
	ErrUnsupported  = errors.New("raster: unsupported image")
	ErrBandRange    = errors.New("raster: band index out of range")
	ErrKernelScale  = errors.New("raster: kernel scale must be non-zero")
	ErrMismatch     = errors.New("raster: image dimensions do not match")
	ErrEmpty        = errors.New("raster: image has no pixels")
	ErrBufferSize   = errors.New("raster: buffer length does not match dimensions")
	ErrDimensions   = errors.New("raster: invalid image dimensions")
	ErrForeignImage = errors.New("raster: image was not created by this library")
)

// Image is a handle to a 2D pixel buffer.
//
// Bytes exposes the raw samples (see the package documentation for layout).
// The returned slice belongs to the image and must not be modified or used
// after Close. Close releases the caller's reference; calling it more than
// once has no further effect.
type Image interface {
	Width() int
	Height() int
	Bands() int
	Format() BandFormat
	Bytes() []byte
	Close()
}

// Kernel is a 3x3 convolution mask. Each output sample is the weighted sum of
// the 3x3 neighbourhood divided by Scale.
type Kernel struct {
	Matrix [3][3]float64
	Scale  float64
}

// Library is the set of whole-image primitives the focus metric needs.
//
// Each operation returns a new Image owned by the caller, or an error, in
// which case nothing was acquired.
type Library interface {
	// Colourspace converts in to the target interpretation.
	Colourspace(in Image, space Interpretation) (Image, error)

	// ExtractBand returns a single-band copy of band index band.
	ExtractBand(in Image, band int) (Image, error)

	// Conv convolves every band of in with k.
	Conv(in Image, k Kernel) (Image, error)

	// Abs returns the element-wise absolute value of in.
	Abs(in Image) (Image, error)

	// Add returns the element-wise sum a+b.
	Add(a, b Image) (Image, error)

	// Cast converts in to format, clamping to the target range.
	Cast(in Image, format BandFormat) (Image, error)

	// HistFind counts the values of one band into a 256x1 single-band
	// FormatUint image.
	HistFind(in Image, band int) (Image, error)

	// Max returns the largest sample in any band.
	Max(in Image) (float64, error)
}

// Buffer is the in-memory Image produced by Native.
type Buffer struct {
	width  int
	height int
	bands  int
	format BandFormat
	interp Interpretation
	pix    []byte

	owner  *Native
	closed atomic.Bool
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bands returns the number of samples per pixel.
func (b *Buffer) Bands() int { return b.bands }

// Format returns the sample format.
func (b *Buffer) Format() BandFormat { return b.format }

// Interpretation returns how the samples should be read.
func (b *Buffer) Interpretation() Interpretation { return b.interp }

// Bytes returns the raw sample buffer.
func (b *Buffer) Bytes() []byte { return b.pix }

// Close releases the handle.
func (b *Buffer) Close() {
	if b.closed.CompareAndSwap(false, true) {
		b.owner.live.Add(-1)
		b.pix = nil
	}
}

func (b *Buffer) samples() int {
	return b.width * b.height * b.bands
}

func (b *Buffer) at(i int) float64 {
	return b.format.sample(b.pix, i)
}

func (b *Buffer) set(i int, v float64) {
	b.format.setSample(b.pix, i, v)
}
