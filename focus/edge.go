package focus

import "github.com/ironsheep/image-focus/raster"

// EdgeMagnitude converts in to a single-band FormatUchar image of edge
// strength.
//
// The image is reduced to grey (band 0 only, if the grey image still carries
// extra bands such as alpha), convolved with SobelX and SobelY, and the
// absolute responses are summed and cast to uchar. The sum |gx|+|gy| stands
// in for sqrt(gx²+gy²); metric thresholds are calibrated against it, so it
// must not be replaced with the Euclidean magnitude.
//
// in is borrowed and left open. The returned image belongs to the caller.
// Every intermediate image is closed before EdgeMagnitude returns, whether it
// succeeds or not.
func EdgeMagnitude(lib raster.Library, in raster.Image) (raster.Image, error) {
	band, err := lib.Colourspace(in, raster.InterpretationBW)
	if err != nil {
		return nil, libraryError(KindConversion, "colourspace", err)
	}
	defer band.Close()

	if band.Bands() > 1 {
		single, err := lib.ExtractBand(band, 0)
		if err != nil {
			return nil, libraryError(KindBandExtraction, "extract band", err)
		}
		defer single.Close()
		band = single
	}

	gx, err := lib.Conv(band, SobelX)
	if err != nil {
		return nil, libraryError(KindConvolution, "conv x", err)
	}
	defer gx.Close()

	ax, err := lib.Abs(gx)
	if err != nil {
		return nil, libraryError(KindArithmetic, "abs x", err)
	}
	defer ax.Close()

	gy, err := lib.Conv(band, SobelY)
	if err != nil {
		return nil, libraryError(KindConvolution, "conv y", err)
	}
	defer gy.Close()

	ay, err := lib.Abs(gy)
	if err != nil {
		return nil, libraryError(KindArithmetic, "abs y", err)
	}
	defer ay.Close()

	sum, err := lib.Add(ax, ay)
	if err != nil {
		return nil, libraryError(KindArithmetic, "add", err)
	}
	defer sum.Close()

	out, err := lib.Cast(sum, raster.FormatUchar)
	if err != nil {
		return nil, libraryError(KindCast, "cast", err)
	}
	return out, nil
}
