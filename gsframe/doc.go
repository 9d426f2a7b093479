// Package gsframe provides the grayscale frame format for MBI5043 driver chains.
//
// Each MBI5043 device exposes 16 constant-current output channels, each with
// its own 12- or 16-bit grayscale PWM value. A Frame holds one value for every
// (device, channel) pair in a daisy chain, stored flat in device-major order:
//
//	Pix[device*Channels + channel]
//
// Shift order is a concern of the protocol driver, not of the frame: a Frame
// is indexed by physical chain position (device 0 is electrically closest to
// the controller) regardless of the order bits leave the controller.
//
// Values written through Set and Fill are clamped to [0, 2^Bits-1]. Clamping
// is deliberate: silently wrapping an overflowing value would invert the
// brightness direction mid-ramp.
//
// Example usage:
//
//	// A chain of 4 devices with 16-bit grayscale
//	f := gsframe.New(4, 16)
//
//	// Half brightness on channel 3 of the second device
//	f.Set(1, 3, 0x8000)
//
//	// Full white everywhere
//	f.Fill(f.Max())
package gsframe
