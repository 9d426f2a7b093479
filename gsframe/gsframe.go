// Package gsframe provides the grayscale frame format for MBI5043 driver
// chains.
//
// A frame assigns one grayscale value to every (device, channel) pair in a
// daisy chain. Values are stored flat in device-major order and clamped to the
// configured bit width on write.
package gsframe

import "fmt"

// Channels is the number of output channels per MBI5043 device (OUT0..OUT15).
const Channels = 16

// Frame is a complete grayscale assignment for a driver chain: one value per
// channel per device.
type Frame struct {
	Pix     []uint16 // Channel values, device-major (Pix[device*Channels+channel])
	Drivers int      // Number of devices in the chain
	Bits    int      // Grayscale bit width per channel (12 or 16)
}

// New creates an all-zero Frame for a chain of the given depth and grayscale
// width. The width must be 12 or 16 bits.
func New(drivers, bits int) *Frame {
	if drivers < 1 {
		panic("gsframe: chain must have at least one device")
	}
	if bits != 12 && bits != 16 {
		panic("gsframe: grayscale width must be 12 or 16 bits")
	}
	return &Frame{
		Pix:     make([]uint16, drivers*Channels),
		Drivers: drivers,
		Bits:    bits,
	}
}

// Max returns the largest representable channel value, 2^Bits - 1.
func (f *Frame) Max() uint16 {
	return uint16(1<<uint(f.Bits) - 1)
}

// At returns the value of the given channel on the given device.
// Out-of-range indices read as zero.
func (f *Frame) At(device, channel int) uint16 {
	if device < 0 || device >= f.Drivers || channel < 0 || channel >= Channels {
		return 0
	}
	return f.Pix[device*Channels+channel]
}

// Set assigns a channel value, clamping to [0, Max]. Clamping rather than
// masking keeps an overflowing ramp pinned at full brightness instead of
// wrapping back to dark. Out-of-range indices are ignored.
func (f *Frame) Set(device, channel int, v uint16) {
	if device < 0 || device >= f.Drivers || channel < 0 || channel >= Channels {
		return
	}
	if m := f.Max(); v > m {
		v = m
	}
	f.Pix[device*Channels+channel] = v
}

// Fill sets every channel of every device to v, clamped to [0, Max].
func (f *Frame) Fill(v uint16) {
	if m := f.Max(); v > m {
		v = m
	}
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// String returns a string representation of the frame geometry.
func (f *Frame) String() string {
	return fmt.Sprintf("gsframe.Frame{%dx%dx%dbit}", f.Drivers, Channels, f.Bits)
}
