package raster

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BandFormat is the numeric type used to store each sample of an image.
type BandFormat int

// Band formats understood by Native.
const (
	FormatUchar BandFormat = iota
	FormatChar
	FormatUshort
	FormatShort
	FormatUint
	FormatInt
	FormatFloat
	FormatDouble
)

var formatNames = [...]string{
	FormatUchar:  "uchar",
	FormatChar:   "char",
	FormatUshort: "ushort",
	FormatShort:  "short",
	FormatUint:   "uint",
	FormatInt:    "int",
	FormatFloat:  "float",
	FormatDouble: "double",
}

func (f BandFormat) String() string {
	if f.valid() {
		return formatNames[f]
	}
	return fmt.Sprintf("BandFormat(%d)", int(f))
}

func (f BandFormat) valid() bool {
	return f >= FormatUchar && f <= FormatDouble
}

// Size returns the number of bytes used by one sample.
func (f BandFormat) Size() int {
	switch f {
	case FormatUchar, FormatChar:
		return 1
	case FormatUshort, FormatShort:
		return 2
	case FormatUint, FormatInt, FormatFloat:
		return 4
	case FormatDouble:
		return 8
	}
	return 0
}

// IsFloat reports whether samples are floating point.
func (f BandFormat) IsFloat() bool {
	return f == FormatFloat || f == FormatDouble
}

// IsSigned reports whether samples can hold negative values.
func (f BandFormat) IsSigned() bool {
	switch f {
	case FormatChar, FormatShort, FormatInt, FormatFloat, FormatDouble:
		return true
	}
	return false
}

// Range returns the smallest and largest value a sample can hold. Float
// formats report the full float64 range.
func (f BandFormat) Range() (min, max float64) {
	switch f {
	case FormatUchar:
		return 0, math.MaxUint8
	case FormatChar:
		return math.MinInt8, math.MaxInt8
	case FormatUshort:
		return 0, math.MaxUint16
	case FormatShort:
		return math.MinInt16, math.MaxInt16
	case FormatUint:
		return 0, math.MaxUint32
	case FormatInt:
		return math.MinInt32, math.MaxInt32
	}
	return -math.MaxFloat64, math.MaxFloat64
}

// sample reads sample i (not byte offset) from pix.
func (f BandFormat) sample(pix []byte, i int) float64 {
	switch f {
	case FormatUchar:
		return float64(pix[i])
	case FormatChar:
		return float64(int8(pix[i]))
	case FormatUshort:
		return float64(binary.LittleEndian.Uint16(pix[i*2:]))
	case FormatShort:
		return float64(int16(binary.LittleEndian.Uint16(pix[i*2:])))
	case FormatUint:
		return float64(binary.LittleEndian.Uint32(pix[i*4:]))
	case FormatInt:
		return float64(int32(binary.LittleEndian.Uint32(pix[i*4:])))
	case FormatFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(pix[i*4:])))
	case FormatDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(pix[i*8:]))
	}
	panic("raster: invalid band format " + f.String())
}

// setSample stores v as sample i. Integer formats expect v already in range.
func (f BandFormat) setSample(pix []byte, i int, v float64) {
	switch f {
	case FormatUchar:
		pix[i] = uint8(v)
	case FormatChar:
		pix[i] = uint8(int8(v))
	case FormatUshort:
		binary.LittleEndian.PutUint16(pix[i*2:], uint16(v))
	case FormatShort:
		binary.LittleEndian.PutUint16(pix[i*2:], uint16(int16(v)))
	case FormatUint:
		binary.LittleEndian.PutUint32(pix[i*4:], uint32(v))
	case FormatInt:
		binary.LittleEndian.PutUint32(pix[i*4:], uint32(int32(v)))
	case FormatFloat:
		binary.LittleEndian.PutUint32(pix[i*4:], math.Float32bits(float32(v)))
	case FormatDouble:
		binary.LittleEndian.PutUint64(pix[i*8:], math.Float64bits(v))
	default:
		panic("raster: invalid band format " + f.String())
	}
}

// Interpretation suggests how the samples of an image should be read, for
// example whether a 3-band uchar image holds sRGB colour.
type Interpretation int

// Interpretations understood by Native.
const (
	InterpretationMultiband Interpretation = iota
	InterpretationBW
	InterpretationSRGB
	InterpretationGrey16
	InterpretationRGB16
	InterpretationHistogram
)

func (i Interpretation) String() string {
	switch i {
	case InterpretationMultiband:
		return "multiband"
	case InterpretationBW:
		return "b-w"
	case InterpretationSRGB:
		return "srgb"
	case InterpretationGrey16:
		return "grey16"
	case InterpretationRGB16:
		return "rgb16"
	case InterpretationHistogram:
		return "histogram"
	}
	return fmt.Sprintf("Interpretation(%d)", int(i))
}
