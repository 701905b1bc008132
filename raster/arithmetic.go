package raster

import (
	"fmt"
	"math"
)

// Abs returns the element-wise absolute value of in, in the same format.
// Unsigned images are copied unchanged.
func (n *Native) Abs(in Image) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}

	out := n.newBuffer(src.width, src.height, src.bands, src.format, src.interp)
	if !src.format.IsSigned() {
		copy(out.pix, src.pix)
		return out, nil
	}

	_, hi := src.format.Range()
	for i, count := 0, src.samples(); i < count; i++ {
		// |MinInt| does not fit, so integer formats saturate.
		out.set(i, math.Min(math.Abs(src.at(i)), hi))
	}
	return out, nil
}

// Add returns the element-wise sum of a and b.
//
// Both images must have the same width, height and band count. The result is
// FormatDouble if either input is double, FormatFloat if either is float, and
// FormatInt otherwise (saturating at the int range).
func (n *Native) Add(a, b Image) (Image, error) {
	left, err := n.buffer(a)
	if err != nil {
		return nil, err
	}
	right, err := n.buffer(b)
	if err != nil {
		return nil, err
	}
	if left.width != right.width || left.height != right.height || left.bands != right.bands {
		return nil, fmt.Errorf("%w: %dx%dx%d + %dx%dx%d", ErrMismatch,
			left.width, left.height, left.bands, right.width, right.height, right.bands)
	}

	format := FormatInt
	switch {
	case left.format == FormatDouble || right.format == FormatDouble:
		format = FormatDouble
	case left.format.IsFloat() || right.format.IsFloat():
		format = FormatFloat
	}

	interp := left.interp
	if interp != right.interp {
		interp = InterpretationMultiband
	}

	out := n.newBuffer(left.width, left.height, left.bands, format, interp)
	lo, hi := format.Range()
	for i, count := 0, left.samples(); i < count; i++ {
		v := left.at(i) + right.at(i)
		if !format.IsFloat() {
			v = math.Max(lo, math.Min(hi, v))
		}
		out.set(i, v)
	}
	return out, nil
}

// Max returns the largest sample of in across all bands.
func (n *Native) Max(in Image) (float64, error) {
	src, err := n.buffer(in)
	if err != nil {
		return 0, err
	}
	count := src.samples()
	if count == 0 {
		return 0, ErrEmpty
	}

	peak := src.at(0)
	for i := 1; i < count; i++ {
		if v := src.at(i); v > peak {
			peak = v
		}
	}
	return peak, nil
}
