package raster

import (
	"github.com/anthonynsimon/bild/parallel"
)

// Conv convolves every band of in with k and returns a FormatFloat image of
// the same size.
//
// The kernel is applied without flipping:
//
//	out(x, y) = sum_{j,i} k.Matrix[j][i] * in(x+i-1, y+j-1) / k.Scale
//
// Pixels outside the image take the value of the nearest edge pixel, so a
// uniform image convolved with a zero-sum kernel is zero everywhere,
// including its border. Rows are processed in parallel.
func (n *Native) Conv(in Image, k Kernel) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}
	if k.Scale == 0 {
		return nil, ErrKernelScale
	}

	width, height, bands := src.width, src.height, src.bands
	out := n.newBuffer(width, height, bands, FormatFloat, src.interp)
	if width == 0 || height == 0 {
		return out, nil
	}

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				for b := 0; b < bands; b++ {
					var sum float64
					for j := 0; j < 3; j++ {
						py := clamp(y+j-1, 0, height-1)
						for i := 0; i < 3; i++ {
							w := k.Matrix[j][i]
							if w == 0 {
								continue
							}
							px := clamp(x+i-1, 0, width-1)
							sum += w * src.at((py*width+px)*bands+b)
						}
					}
					out.set((y*width+x)*bands+b, sum/k.Scale)
				}
			}
		}
	})
	return out, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for border replication during convolution.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
