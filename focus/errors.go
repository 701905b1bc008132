package focus

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-focus/raster"
)

// Kind classifies why a metric computation failed.
type Kind int

// Failure kinds. KindConversion through KindStatistics wrap an error reported
// by the raster.Library; the rest are precondition violations detected here.
const (
	KindUnknown Kind = iota
	KindConversion
	KindBandExtraction
	KindConvolution
	KindArithmetic
	KindCast
	KindHistogram
	KindStatistics
	KindInvalidHistogramLayout
	KindThresholdRange
)

// Sentinel errors, one per Kind. Errors returned by this package match the
// sentinel of their kind with errors.Is.
var (
	ErrConversion             = errors.New("focus: colourspace conversion failed")
	ErrBandExtraction         = errors.New("focus: band extraction failed")
	ErrConvolution            = errors.New("focus: convolution failed")
	ErrArithmetic             = errors.New("focus: arithmetic failed")
	ErrCast                   = errors.New("focus: cast failed")
	ErrHistogram              = errors.New("focus: histogram failed")
	ErrStatistics             = errors.New("focus: statistics failed")
	ErrInvalidHistogramLayout = errors.New("focus: invalid histogram layout")
	ErrThresholdRange         = errors.New("focus: threshold fraction must be within [0, 1]")

	// ErrDegenerateThreshold is matched, in addition to
	// ErrInvalidHistogramLayout, when the threshold derived from the peak
	// bucket truncates to zero.
	ErrDegenerateThreshold = errors.New("focus: threshold is zero")
)

var kindSentinels = map[Kind]error{
	KindConversion:             ErrConversion,
	KindBandExtraction:         ErrBandExtraction,
	KindConvolution:            ErrConvolution,
	KindArithmetic:             ErrArithmetic,
	KindCast:                   ErrCast,
	KindHistogram:              ErrHistogram,
	KindStatistics:             ErrStatistics,
	KindInvalidHistogramLayout: ErrInvalidHistogramLayout,
	KindThresholdRange:         ErrThresholdRange,
}

func (k Kind) String() string {
	switch k {
	case KindConversion:
		return "conversion"
	case KindBandExtraction:
		return "band extraction"
	case KindConvolution:
		return "convolution"
	case KindArithmetic:
		return "arithmetic"
	case KindCast:
		return "cast"
	case KindHistogram:
		return "histogram"
	case KindStatistics:
		return "statistics"
	case KindInvalidHistogramLayout:
		return "invalid histogram layout"
	case KindThresholdRange:
		return "threshold range"
	}
	return "unknown"
}

// Error is a failure reported by the raster.Library during one step of the
// pipeline.
type Error struct {
	Kind Kind
	// Op names the library primitive that failed, e.g. "conv x".
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("focus: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

func libraryError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// LayoutReason names the histogram precondition that was violated.
type LayoutReason int

// Histogram preconditions, checked in this order.
const (
	ReasonBands LayoutReason = iota + 1
	ReasonFormat
	ReasonHeight
	ReasonWidth
	ReasonBuffer
	ReasonThreshold
)

func (r LayoutReason) String() string {
	switch r {
	case ReasonBands:
		return "histogram must have exactly 1 band"
	case ReasonFormat:
		return "histogram must be stored as uint"
	case ReasonHeight:
		return "histogram must be 1 row tall"
	case ReasonWidth:
		return "histogram must have 256 buckets"
	case ReasonBuffer:
		return "histogram buffer is truncated"
	case ReasonThreshold:
		return "threshold must be greater than zero"
	}
	return "unknown"
}

// LayoutError reports a histogram that cannot be scanned.
type LayoutError struct {
	Reason    LayoutReason
	Width     int
	Height    int
	Bands     int
	Format    raster.BandFormat
	Threshold uint32
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("focus: invalid histogram layout: %v (%dx%d, %d bands, %v, threshold %d)",
		e.Reason, e.Width, e.Height, e.Bands, e.Format, e.Threshold)
}

// Is matches ErrInvalidHistogramLayout, and ErrDegenerateThreshold when the
// threshold was zero.
func (e *LayoutError) Is(target error) bool {
	return target == ErrInvalidHistogramLayout ||
		(target == ErrDegenerateThreshold && e.Reason == ReasonThreshold)
}

// KindOf returns the kind of a failure returned by this package, or
// KindUnknown for any other error.
func KindOf(err error) Kind {
	var le *LayoutError
	if errors.As(err, &le) {
		return KindInvalidHistogramLayout
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, ErrThresholdRange) {
		return KindThresholdRange
	}
	return KindUnknown
}
