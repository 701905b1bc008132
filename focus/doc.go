// Package focus estimates how much sharp detail an image contains.
//
// The estimate, called the focus metric, is computed in two stages:
//
//  1. EdgeMagnitude turns the image into a single-band 8-bit edge-strength
//     image using a pair of 3x3 Sobel kernels (SobelX, SobelY). Edge strength
//     is approximated as |gx| + |gy|.
//
//  2. Metric takes the 256-bucket histogram of that image and reports the
//     length of the longest run of adjacent buckets whose count is at least
//     a fraction of the fullest bucket (see LongestRun).
//
// A flat or blurred image concentrates its edge values in a few buckets near
// zero and scores low. A sharp, detailed photograph spreads them across many
// buckets and scores high. Classify and IsPhoto apply the usual cut-off
// (fraction 0.01, metric 16) to decide whether an image is a photograph, for
// example to choose between lossless and lossy encoding.
//
// # Image Library
//
// All pixel work is delegated to a raster.Library. The package only borrows
// the caller's input image and closes every image it acquires, on success and
// on failure, before returning.
//
// # Errors
//
// Library failures are returned as *Error, with a Kind naming the failed step
// (KindConversion, KindConvolution, ...). A histogram that cannot be scanned,
// including a threshold that rounds down to zero, is a *LayoutError. Both
// match their sentinel (ErrConvolution, ErrInvalidHistogramLayout, ...) with
// errors.Is. Nothing is retried.
//
// # Concurrency
//
// Metric keeps no state between calls, so independent images may be measured
// concurrently, each from its own goroutine. Pool bounds the number of
// concurrent computations.
package focus
