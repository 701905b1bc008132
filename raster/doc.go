// Package raster provides the image processing primitives the focus metric is
// built on.
//
// The package is split into a contract and an implementation. The contract is
// the Image handle and the Library interface: a small set of whole-image
// operations (colourspace conversion, band extraction, 3x3 convolution,
// absolute value, addition, casting, histogram and maximum). Native is a pure
// Go implementation of that contract that keeps every image in memory.
//
// # Pixel Layout
//
// Image buffers are stored row-major with bands interleaved, so the sample for
// band b of pixel (x, y) lives at index (y*width+x)*bands+b. Multi-byte samples
// are little-endian. Coordinates are 0-based with (0,0) at the top-left corner.
//
// # Ownership
//
// Every Image returned by a Library operation is a new handle owned by the
// caller, who must Close it exactly once. Operations never consume or close
// their inputs. Native counts handles that are still open; Live reports the
// count and is mainly useful for leak checks in tests.
//
// # Thread Safety
//
// Native is safe for concurrent use. Images are immutable once returned, so a
// single Image may be read by several goroutines as long as none of them
// closes it while the others are still using it.
//
// # Error Handling
//
// Operations return sentinel errors (ErrUnsupported, ErrBandRange, ...) wrapped
// with context through fmt.Errorf, so callers can match them with errors.Is.
package raster
