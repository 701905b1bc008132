package raster

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

// Native is an in-memory Library implementation written in pure Go.
//
// The zero value is not usable; create one with NewNative.
type Native struct {
	live atomic.Int64
}

var _ Library = (*Native)(nil)

// NewNative creates a Native library with no open handles.
func NewNative() *Native {
	return &Native{}
}

// Live returns the number of handles created by n that have not been closed.
func (n *Native) Live() int64 {
	return n.live.Load()
}

func (n *Native) newBuffer(width, height, bands int, format BandFormat, interp Interpretation) *Buffer {
	n.live.Add(1)
	return &Buffer{
		width:  width,
		height: height,
		bands:  bands,
		format: format,
		interp: interp,
		pix:    make([]byte, width*height*bands*format.Size()),
		owner:  n,
	}
}

// buffer unwraps an Image handed to one of n's operations.
func (n *Native) buffer(in Image) (*Buffer, error) {
	b, ok := in.(*Buffer)
	if !ok || b == nil || b.owner != n {
		return nil, ErrForeignImage
	}
	if b.closed.Load() {
		return nil, fmt.Errorf("%w: image already closed", ErrUnsupported)
	}
	return b, nil
}

// New wraps a copy of a raw sample buffer laid out as described in the
// package documentation.
//
// Single-band images are interpreted as B_W (or histograms when they are one
// row of FormatUint), three and four band uchar images as sRGB, and everything
// else as multiband.
func (n *Native) New(width, height, bands int, format BandFormat, pix []byte) (Image, error) {
	if width < 0 || height < 0 || bands < 1 {
		return nil, fmt.Errorf("%w: %dx%d with %d bands", ErrDimensions, width, height, bands)
	}
	if !format.valid() {
		return nil, fmt.Errorf("%w: format %v", ErrUnsupported, format)
	}
	if want := width * height * bands * format.Size(); len(pix) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(pix), want)
	}

	interp := InterpretationMultiband
	switch {
	case bands == 1 && height == 1 && format == FormatUint:
		interp = InterpretationHistogram
	case bands <= 2 && format == FormatUchar:
		interp = InterpretationBW
	case bands <= 2 && format == FormatUshort:
		interp = InterpretationGrey16
	case (bands == 3 || bands == 4) && format == FormatUchar:
		interp = InterpretationSRGB
	case (bands == 3 || bands == 4) && format == FormatUshort:
		interp = InterpretationRGB16
	}

	out := n.newBuffer(width, height, bands, format, interp)
	copy(out.pix, pix)
	return out, nil
}

// FromImage copies a decoded Go image into a new handle.
//
// Conversion rules:
//   - *image.Gray becomes a 1-band FormatUchar B_W image.
//   - *image.Gray16 becomes a 1-band FormatUshort grey16 image.
//   - Any other image is normalized to non-premultiplied RGBA and becomes a
//     3-band sRGB FormatUchar image when every pixel is opaque, or a 4-band
//     one (alpha last) otherwise.
func (n *Native) FromImage(img image.Image) (Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnsupported)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		out := n.newBuffer(w, h, 1, FormatUchar, InterpretationBW)
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
		return out, nil

	case *image.Gray16:
		out := n.newBuffer(w, h, 1, FormatUshort, InterpretationGrey16)
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < w; x++ {
				v := uint16(src.Pix[off+2*x])<<8 | uint16(src.Pix[off+2*x+1])
				out.set(y*w+x, float64(v))
			}
		}
		return out, nil
	}

	nrgba := imaging.Clone(img)
	bands := 4
	if nrgba.Opaque() {
		bands = 3
	}

	out := n.newBuffer(w, h, bands, FormatUchar, InterpretationSRGB)
	origin := nrgba.Bounds().Min
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := nrgba.PixOffset(origin.X+x, origin.Y+y)
			copy(out.pix[(y*w+x)*bands:(y*w+x+1)*bands], nrgba.Pix[off:off+bands])
		}
	}
	return out, nil
}
