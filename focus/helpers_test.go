package focus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-focus/raster"
)

var errInjected = errors.New("injected failure")

// countingLibrary wraps a raster.Library, tracking every image it hands out
// and optionally failing the n-th call of one primitive.
type countingLibrary struct {
	lib raster.Library

	failOp   string
	failCall int

	mu          sync.Mutex
	calls       map[string]int
	acquired    []*trackedImage
	released    []*trackedImage
	doubleClose int
}

func newCountingLibrary(lib raster.Library) *countingLibrary {
	return &countingLibrary{lib: lib, calls: make(map[string]int)}
}

// failing makes the call-th invocation (1-based) of op return errInjected.
func (c *countingLibrary) failing(op string, call int) *countingLibrary {
	c.failOp, c.failCall = op, call
	return c
}

type trackedImage struct {
	raster.Image
	owner  *countingLibrary
	id     int
	closed bool
}

func (t *trackedImage) Close() {
	c := t.owner
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.closed {
		c.doubleClose++
		return
	}
	t.closed = true
	c.released = append(c.released, t)
	t.Image.Close()
}

func (c *countingLibrary) enter(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	if op == c.failOp && c.calls[op] == c.failCall {
		return fmt.Errorf("%s #%d: %w", op, c.calls[op], errInjected)
	}
	return nil
}

func (c *countingLibrary) track(img raster.Image, err error) (raster.Image, error) {
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &trackedImage{Image: img, owner: c, id: len(c.acquired)}
	c.acquired = append(c.acquired, t)
	return t, nil
}

func unwrap(img raster.Image) raster.Image {
	if t, ok := img.(*trackedImage); ok {
		return t.Image
	}
	return img
}

func (c *countingLibrary) Colourspace(in raster.Image, space raster.Interpretation) (raster.Image, error) {
	if err := c.enter("colourspace"); err != nil {
		return nil, err
	}
	return c.track(c.lib.Colourspace(unwrap(in), space))
}

func (c *countingLibrary) ExtractBand(in raster.Image, band int) (raster.Image, error) {
	if err := c.enter("extract"); err != nil {
		return nil, err
	}
	return c.track(c.lib.ExtractBand(unwrap(in), band))
}

func (c *countingLibrary) Conv(in raster.Image, k raster.Kernel) (raster.Image, error) {
	if err := c.enter("conv"); err != nil {
		return nil, err
	}
	return c.track(c.lib.Conv(unwrap(in), k))
}

func (c *countingLibrary) Abs(in raster.Image) (raster.Image, error) {
	if err := c.enter("abs"); err != nil {
		return nil, err
	}
	return c.track(c.lib.Abs(unwrap(in)))
}

func (c *countingLibrary) Add(a, b raster.Image) (raster.Image, error) {
	if err := c.enter("add"); err != nil {
		return nil, err
	}
	return c.track(c.lib.Add(unwrap(a), unwrap(b)))
}

func (c *countingLibrary) Cast(in raster.Image, format raster.BandFormat) (raster.Image, error) {
	if err := c.enter("cast"); err != nil {
		return nil, err
	}
	return c.track(c.lib.Cast(unwrap(in), format))
}

func (c *countingLibrary) HistFind(in raster.Image, band int) (raster.Image, error) {
	if err := c.enter("hist"); err != nil {
		return nil, err
	}
	return c.track(c.lib.HistFind(unwrap(in), band))
}

func (c *countingLibrary) Max(in raster.Image) (float64, error) {
	if err := c.enter("max"); err != nil {
		return 0, err
	}
	return c.lib.Max(unwrap(in))
}

// requireBalanced fails unless every acquired image was closed exactly once.
func (c *countingLibrary) requireBalanced(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.released, len(c.acquired), "acquired %d images, released %d", len(c.acquired), len(c.released))
	require.Zero(t, c.doubleClose, "images closed more than once")
}

func (c *countingLibrary) releaseOrder() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int, len(c.released))
	for i, r := range c.released {
		ids[i] = r.id
	}
	return ids
}

// Helper functions

func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createNoiseImage creates a grey image of base plus uniform noise in
// [0, amplitude), seeded so every run sees the same pixels.
func createNoiseImage(width, height int, base, amplitude uint8) *image.Gray {
	rng := rand.New(rand.NewSource(1))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = base + uint8(rng.Intn(int(amplitude)))
	}
	return img
}

func createGrayFunc(width, height int, f func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}
	return img
}

func load(t *testing.T, lib *raster.Native, img image.Image) raster.Image {
	t.Helper()
	out, err := lib.FromImage(img)
	require.NoError(t, err)
	t.Cleanup(out.Close)
	return out
}

// newHistogram builds a histogram-shaped image from counts, padding with
// zeros up to width*height*bands samples.
func newHistogram(t *testing.T, lib *raster.Native, width, height, bands int, format raster.BandFormat, counts []uint32) raster.Image {
	t.Helper()
	size := format.Size()
	pix := make([]byte, width*height*bands*size)
	for i, c := range counts {
		switch size {
		case 4:
			binary.LittleEndian.PutUint32(pix[i*4:], c)
		case 2:
			binary.LittleEndian.PutUint16(pix[i*2:], uint16(c))
		default:
			pix[i*size] = byte(c)
		}
	}
	img, err := lib.New(width, height, bands, format, pix)
	require.NoError(t, err)
	t.Cleanup(img.Close)
	return img
}

func edgeAt(img raster.Image, x, y int) uint8 {
	return img.Bytes()[y*img.Width()+x]
}
