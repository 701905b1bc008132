package raster

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Rec. 709 luminance weights applied to linear light.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// uchar sRGB samples decoded to linear light, indexed by sample value.
var linearLUT = func() (lut [256]float64) {
	for i := range lut {
		v := float64(i) / 255
		lut[i], _, _ = colorful.Color{R: v, G: v, B: v}.LinearRgb()
	}
	return lut
}()

// Colourspace converts in to the target interpretation.
//
// Only InterpretationBW is supported as a target. Colour sources are decoded
// to linear light, reduced to luminance and re-encoded with the sRGB curve,
// so the grey level matches perceived brightness rather than a plain channel
// average. Grey sources are rescaled to 8 bits. An alpha band, if present, is
// kept as a second band of the result.
func (n *Native) Colourspace(in Image, space Interpretation) (Image, error) {
	src, err := n.buffer(in)
	if err != nil {
		return nil, err
	}
	if space != InterpretationBW {
		return nil, fmt.Errorf("%w: colourspace target %v", ErrUnsupported, space)
	}

	var colour int
	switch {
	case src.interp == InterpretationBW && src.format == FormatUchar,
		src.interp == InterpretationGrey16 && src.format == FormatUshort:
		colour = 1
	case src.interp == InterpretationSRGB && src.format == FormatUchar,
		src.interp == InterpretationRGB16 && src.format == FormatUshort:
		colour = 3
	default:
		return nil, fmt.Errorf("%w: colourspace from %v %v", ErrUnsupported, src.interp, src.format)
	}
	alpha := src.bands - colour
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: %d bands for %v", ErrUnsupported, src.bands, src.interp)
	}

	_, maxv := src.format.Range()
	out := n.newBuffer(src.width, src.height, 1+alpha, FormatUchar, InterpretationBW)
	pixels := src.width * src.height
	for p := 0; p < pixels; p++ {
		i := p * src.bands
		o := p * out.bands

		var grey float64
		if colour == 1 {
			grey = src.at(i) / maxv
		} else {
			y := lumaR*linear(src, i, maxv) + lumaG*linear(src, i+1, maxv) + lumaB*linear(src, i+2, maxv)
			grey = colorful.LinearRgb(y, y, y).R
		}
		out.set(o, toUchar(grey))

		if alpha == 1 {
			out.set(o+1, toUchar(src.at(i+colour)/maxv))
		}
	}
	return out, nil
}

// linear decodes sRGB sample i of b to linear light in [0, 1].
func linear(b *Buffer, i int, maxv float64) float64 {
	if b.format == FormatUchar {
		return linearLUT[b.pix[i]]
	}
	v := b.at(i) / maxv
	r, _, _ := colorful.Color{R: v, G: v, B: v}.LinearRgb()
	return r
}

// toUchar maps a unit value to the nearest uchar sample.
func toUchar(v float64) float64 {
	return math.Max(0, math.Min(255, math.Round(v*255)))
}
