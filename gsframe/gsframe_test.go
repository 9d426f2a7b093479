package gsframe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"periph.io/x/devices/v3/mbi5043/gsframe"
)

func TestNewGeometry(t *testing.T) {
	f := gsframe.New(4, 16)
	assert.Equal(t, 4, f.Drivers)
	assert.Equal(t, 16, f.Bits)
	assert.Len(t, f.Pix, 4*gsframe.Channels)
	for _, v := range f.Pix {
		assert.Equal(t, uint16(0), v, "new frame must be all zero")
	}
}

func TestNewPanicsOnInvalidGeometry(t *testing.T) {
	assert.Panics(t, func() { gsframe.New(0, 16) }, "zero chain depth")
	assert.Panics(t, func() { gsframe.New(-1, 16) }, "negative chain depth")
	assert.Panics(t, func() { gsframe.New(4, 8) }, "8-bit width")
	assert.Panics(t, func() { gsframe.New(4, 13) }, "13-bit width")
}

func TestMax(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), gsframe.New(1, 16).Max())
	assert.Equal(t, uint16(0x0FFF), gsframe.New(1, 12).Max())
}

func TestSetAt(t *testing.T) {
	f := gsframe.New(4, 16)
	f.Set(2, 5, 0x8000)
	assert.Equal(t, uint16(0x8000), f.At(2, 5))
	assert.Equal(t, uint16(0), f.At(2, 4), "neighbors untouched")
	assert.Equal(t, uint16(0), f.At(1, 5), "other devices untouched")
}

func TestSetClampsTo12Bits(t *testing.T) {
	f := gsframe.New(2, 12)
	f.Set(0, 0, 0xFFFF)
	assert.Equal(t, uint16(0x0FFF), f.At(0, 0), "over-range value clamps, never wraps")
	f.Set(0, 1, 0x0FFF)
	assert.Equal(t, uint16(0x0FFF), f.At(0, 1), "max value passes unchanged")
}

func TestOutOfRangeIndices(t *testing.T) {
	f := gsframe.New(2, 16)
	f.Set(-1, 0, 0xFFFF)
	f.Set(2, 0, 0xFFFF)
	f.Set(0, -1, 0xFFFF)
	f.Set(0, gsframe.Channels, 0xFFFF)
	for _, v := range f.Pix {
		assert.Equal(t, uint16(0), v, "out-of-range writes must be ignored")
	}
	assert.Equal(t, uint16(0), f.At(-1, 0))
	assert.Equal(t, uint16(0), f.At(0, 99))
}

func TestFill(t *testing.T) {
	f := gsframe.New(3, 12)
	f.Fill(0xFFFF)
	for _, v := range f.Pix {
		assert.Equal(t, uint16(0x0FFF), v, "fill clamps like Set")
	}
	f.Fill(0)
	for _, v := range f.Pix {
		assert.Equal(t, uint16(0), v)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "gsframe.Frame{4x16x16bit}", gsframe.New(4, 16).String())
}
