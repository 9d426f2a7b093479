// Package mbi5043 controls a chain of Macroblock MBI5043 16-channel
// constant-current LED drivers over four bit-banged GPIO lines.
//
// The MBI5043 is a constant-current sink driver with a 16-bit grayscale PWM
// engine per output channel. Several devices are daisy-chained SDI→SDO and
// behave as one long shift register.
//
// See the examples for how to use this package.
package mbi5043

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"periph.io/x/devices/v3/mbi5043/gsframe"
)

// Data setup and hold around the DCLK rising edge. The MBI5043 samples SDI on
// the rising edge of DCLK; these are hard minimums, not tunables.
const (
	dataSetup = 1 * time.Microsecond
	dataHold  = 1 * time.Microsecond

	// Spacing between LE and DCLK transitions during latch sequencing.
	latchGap = 2 * time.Microsecond
)

// DCLK pulse counts with LE held high. One pulse transfers the shift register
// into the data latch; three pulses move the data latch into the grayscale
// engine (the two-stage latch design of the MBI5043).
const (
	dataLatchPulses    = 1
	outputEnablePulses = 3
)

// Opts is the configuration for the MBI5043 driver chain.
type Opts struct {
	// Chain geometry
	Drivers int // Number of daisy-chained devices (default: 4)
	Bits    int // Grayscale bit width per channel, 12 or 16 (default: 16)

	// Grayscale clock
	GCLKFreq   physic.Frequency // GCLK frequency (default: 800kHz, 50% duty)
	ManualGCLK bool             // Skip hardware PWM; caller drives PulseGCLK

	// Optional serial data out of the last device, for chain readback.
	SDO gpio.PinIn
}

// Dev is the device handle for an MBI5043 driver chain.
type Dev struct {
	// GPIO lines
	sdi  gpio.PinOut // Serial data into the first device
	dclk gpio.PinOut // Data clock
	le   gpio.PinOut // Latch enable
	gclk gpio.PinOut // Grayscale (PWM) clock
	sdo  gpio.PinIn  // Serial data out of the last device (optional)

	// Chain geometry
	drivers int
	bits    int

	manualGCLK bool

	// Injectable so tests can run the sequencing against a simulated clock.
	sleep func(time.Duration)

	// State
	halted bool
}

// New creates a driver for a chain of MBI5043 devices on the given GPIO lines.
//
// sdi, dclk and le are the serial data, data clock and latch enable lines.
// gclk is the grayscale clock line; unless Opts.ManualGCLK is set it is driven
// by hardware PWM at Opts.GCLKFreq with 50% duty and runs continuously from
// this point on (the grayscale engine freezes without it).
//
// opts can be nil to use defaults (4 devices, 16-bit grayscale, 800kHz GCLK).
//
// The chain's shift registers and output latches are cleared before New
// returns, so every channel starts dark.
func New(sdi, dclk, le, gclk gpio.PinOut, opts *Opts) (*Dev, error) {
	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{}
	}
	drivers := opts.Drivers
	if drivers == 0 {
		drivers = 4
	}
	bits := opts.Bits
	if bits == 0 {
		bits = 16
	}
	freq := opts.GCLKFreq
	if freq == 0 {
		freq = 800 * physic.KiloHertz
	}

	if sdi == nil || dclk == nil || le == nil || gclk == nil {
		return nil, errors.New("mbi5043: sdi, dclk, le and gclk pins are required")
	}
	if drivers < 1 {
		return nil, errors.New("mbi5043: chain must have at least one device")
	}
	if bits != 12 && bits != 16 {
		return nil, errors.New("mbi5043: grayscale width must be 12 or 16 bits")
	}
	if freq < 0 {
		return nil, errors.New("mbi5043: GCLK frequency must be positive")
	}

	d := &Dev{
		sdi:        sdi,
		dclk:       dclk,
		le:         le,
		gclk:       gclk,
		sdo:        opts.SDO,
		drivers:    drivers,
		bits:       bits,
		manualGCLK: opts.ManualGCLK,
		sleep:      time.Sleep,
	}

	if err := d.init(freq); err != nil {
		return nil, err
	}
	return d, nil
}

// init drives every line to its idle level, starts the grayscale clock and
// clears the chain.
func (d *Dev) init(freq physic.Frequency) error {
	for _, p := range []gpio.PinOut{d.sdi, d.dclk, d.le} {
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("mbi5043: failed to idle %s: %w", p.Name(), err)
		}
	}
	if d.sdo != nil {
		if err := d.sdo.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return fmt.Errorf("mbi5043: failed to configure SDO input: %w", err)
		}
	}

	if d.manualGCLK {
		if err := d.gclk.Out(gpio.Low); err != nil {
			return fmt.Errorf("mbi5043: failed to idle GCLK: %w", err)
		}
	} else {
		if err := d.gclk.PWM(gpio.DutyHalf, freq); err != nil {
			return fmt.Errorf("mbi5043: failed to start GCLK PWM: %w", err)
		}
	}

	// Shift registers and latches hold garbage at power-on.
	return d.Clear()
}

// Drivers returns the number of devices in the chain.
func (d *Dev) Drivers() int {
	return d.drivers
}

// Bits returns the grayscale bit width per channel.
func (d *Dev) Bits() int {
	return d.bits
}

// GCLKPulsesPerFrame returns the number of GCLK pulses the grayscale engine
// needs for one complete PWM period (2^Bits).
func (d *Dev) GCLKPulsesPerFrame() int {
	return 1 << d.bits
}

// ShiftBit shifts a single bit into the chain.
//
// SDI is driven to the bit value, held stable for the data setup time, then a
// DCLK rising edge clocks it in and the edge is held for the data hold time.
// Every device's shift register advances by one position.
func (d *Dev) ShiftBit(bit gpio.Level) error {
	if d.halted {
		return errors.New("mbi5043: halted")
	}
	if err := d.sdi.Out(bit); err != nil {
		return err
	}
	d.sleep(dataSetup)
	if err := d.dclk.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(dataHold)
	if err := d.dclk.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(dataSetup)
	return nil
}

// ShiftValue shifts the low bits of value into the chain, MSB first.
//
// Callers must shift a whole chain's worth of channel values before latching;
// a partial shift leaves the chain misaligned until the next full frame.
func (d *Dev) ShiftValue(value uint16, bits int) error {
	for i := bits - 1; i >= 0; i-- {
		if err := d.ShiftBit(gpio.Level(value>>uint(i)&1 == 1)); err != nil {
			return err
		}
	}
	return nil
}

// ShiftFrame shifts every channel of every device in chain order.
//
// Shift registers push data away from the controller, so the device farthest
// down the chain (highest position) is sent first; within a device channels go
// OUT15 down to OUT0, each value MSB first. The frame geometry must match the
// chain geometry the device was created with.
//
// The frame is not visible until Latch and BeginOutput commit it.
func (d *Dev) ShiftFrame(f *gsframe.Frame) error {
	if d.halted {
		return errors.New("mbi5043: halted")
	}
	if f.Drivers != d.drivers || f.Bits != d.bits {
		return errors.New("mbi5043: frame geometry mismatch")
	}
	for dev := f.Drivers - 1; dev >= 0; dev-- {
		for ch := gsframe.Channels - 1; ch >= 0; ch-- {
			if err := d.ShiftValue(f.At(dev, ch), d.bits); err != nil {
				return err
			}
		}
	}
	return nil
}

// Latch transfers the shift registers into the data latches: one DCLK pulse
// with LE held high.
//
// Must be called exactly once after a complete ShiftFrame and before any
// further shifting, or the shifted data is never committed.
func (d *Dev) Latch() error {
	return d.lePulses(dataLatchPulses)
}

// BeginOutput moves the data latches into the grayscale engine: three DCLK
// pulses with LE held high. Call it after Latch to make the frame visible.
//
// Together with Latch this implements the MBI5043's two-stage latch. Boards
// built around the folded single-latch variant can skip BeginOutput and drive
// the grayscale engine via PulseGCLK instead.
func (d *Dev) BeginOutput() error {
	return d.lePulses(outputEnablePulses)
}

// lePulses holds LE high across n DCLK pulses.
func (d *Dev) lePulses(n int) error {
	if d.halted {
		return errors.New("mbi5043: halted")
	}
	if err := d.dclk.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(latchGap)
	if err := d.le.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(latchGap)
	for i := 0; i < n; i++ {
		if err := d.dclk.Out(gpio.High); err != nil {
			return err
		}
		d.sleep(latchGap)
		if err := d.dclk.Out(gpio.Low); err != nil {
			return err
		}
		d.sleep(latchGap)
	}
	if err := d.le.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(latchGap)
	return nil
}

// Clear shifts zeros through the whole chain and commits them, guaranteeing
// every output channel reads zero regardless of prior register contents.
func (d *Dev) Clear() error {
	if d.halted {
		return errors.New("mbi5043: halted")
	}
	for dev := 0; dev < d.drivers; dev++ {
		for ch := 0; ch < gsframe.Channels; ch++ {
			if err := d.ShiftValue(0, d.bits); err != nil {
				return err
			}
		}
	}
	if err := d.Latch(); err != nil {
		return err
	}
	return d.BeginOutput()
}

// Write submits one complete frame to the chain: shift, latch, output.
//
// This is the frame-submission entry point animation code should use. The
// previous frame is fully overwritten; the driver retains nothing.
func (d *Dev) Write(f *gsframe.Frame) error {
	if err := d.ShiftFrame(f); err != nil {
		return err
	}
	if err := d.Latch(); err != nil {
		return err
	}
	return d.BeginOutput()
}

// PulseGCLK issues n grayscale clock pulses by toggling the GCLK line.
//
// Only valid with Opts.ManualGCLK; with hardware PWM the line is owned by the
// PWM peripheral. Manual clocking occupies the calling goroutine for the whole
// run, so no frame shifting can happen concurrently.
func (d *Dev) PulseGCLK(n int) error {
	if d.halted {
		return errors.New("mbi5043: halted")
	}
	if !d.manualGCLK {
		return errors.New("mbi5043: GCLK is driven by hardware PWM")
	}
	for i := 0; i < n; i++ {
		if err := d.gclk.Out(gpio.High); err != nil {
			return err
		}
		if err := d.gclk.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// Halt stops the grayscale clock and idles every line, turning all outputs
// off. After calling Halt the device will not respond to further operations
// until it is re-created.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.gclk.Halt(); err != nil {
		return err
	}
	for _, p := range []gpio.PinOut{d.sdi, d.dclk, d.le, d.gclk} {
		if err := p.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("mbi5043.Dev{%dx%dx%dbit}", d.drivers, gsframe.Channels, d.bits)
}
