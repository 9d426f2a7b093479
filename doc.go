// Package mbi5043 controls a chain of Macroblock MBI5043 16-channel LED
// drivers over bit-banged GPIO.
//
// The MBI5043 is a 16-channel constant-current sink driver with a 16-bit
// grayscale PWM engine per channel. Devices daisy-chain SDI→SDO, so a chain of
// D devices behaves as one D×16×W-bit shift register (W is the grayscale
// width, 12 or 16 bits depending on board revision).
//
// # Signals
//
// The driver owns four output lines and one optional input:
//
//	Line   Direction  Role
//	SDI    out        Serial data into the first device
//	DCLK   out        Data clock; SDI is sampled on the rising edge
//	LE     out        Latch enable; DCLK pulses under LE commit data
//	GCLK   out        Grayscale clock; feeds every device's PWM counter
//	SDO    in         Serial data out of the last device (optional readback)
//
// GCLK must run continuously: each device's grayscale counter only advances on
// GCLK edges, so gaps freeze the visible PWM mid-cycle. By default the driver
// starts hardware PWM on the GCLK pin (800kHz, 50% duty) and never touches it
// again. Boards without a PWM-capable pin can set Opts.ManualGCLK and clock
// the engine with PulseGCLK, at the cost of occupying the calling goroutine.
//
// # Frame commit sequence
//
// One frame submission walks a fixed sequence with no early exit:
//
//  1. Shift: D×16×W DCLK pulses with LE low, farthest device first,
//     channel OUT15 down to OUT0 within a device, MSB first per value.
//  2. Latch: one DCLK pulse with LE high moves the shift registers into
//     the data latches.
//  3. Output: three DCLK pulses with LE high move the data latches into
//     the grayscale engine. The new frame is now visible.
//
// Write performs the whole sequence; ShiftFrame, Latch and BeginOutput expose
// the stages for boards with unusual sequencing needs. The one-pulse/three-
// pulse distinction is the MBI5043's two-stage latch; revisions that fold the
// stages together can stop after Latch and drive GCLK manually.
//
// Misuse (wrong chain depth, skipped latch, partial shift) does not fail at
// runtime: the chain happily accepts any bit stream and displays the wrong
// image. Keep the chain geometry in Opts in sync with the hardware.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/host/v3"
//
//		"periph.io/x/devices/v3/mbi5043"
//		"periph.io/x/devices/v3/mbi5043/gsframe"
//	)
//
//	func main() {
//		// Initialize periph.io
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//
//		dev, err := mbi5043.New(
//			gpioreg.ByName("GPIO0"), // SDI
//			gpioreg.ByName("GPIO1"), // DCLK
//			gpioreg.ByName("GPIO3"), // LE
//			gpioreg.ByName("GPIO2"), // GCLK
//			nil,                     // defaults: 4 devices, 16-bit, 800kHz
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		// Half brightness on every channel of the second device.
//		f := gsframe.New(dev.Drivers(), dev.Bits())
//		for ch := 0; ch < gsframe.Channels; ch++ {
//			f.Set(1, ch, 0x8000)
//		}
//		if err := dev.Write(f); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Animations
//
// The anim subpackage layers brightness and color sequences on top of Write:
// solid colors, linear fades, checkerboard flashes and a rainbow cycle. It
// holds the board's pixel-to-channel wiring table, so the protocol layer stays
// wiring-agnostic.
//
// # Timing
//
// ShiftBit guarantees at least 1µs of data setup before the DCLK rising edge
// and at least 1µs of clock high time. All operations are synchronous and
// blocking; a full 4-device 16-bit frame takes about 3ms of bit-banging. None
// of the operations are safe for concurrent use.
package mbi5043
