// Package anim composes timed frame sequences for MBI5043 driver chains.
//
// The package never touches GPIO lines: it builds gsframe.Frame values and
// submits them to a Sink (normally *mbi5043.Dev) on a timed cadence. Pixel
// wiring lives in a static lookup table; rewiring a board means editing the
// table, never the shifting logic.
package anim

import (
	"errors"
	"math"
	"time"

	"periph.io/x/devices/v3/mbi5043/gsframe"
)

// Sink consumes complete frames. *mbi5043.Dev satisfies it.
type Sink interface {
	Write(*gsframe.Frame) error
}

// RGBW is one logical pixel's color: four grayscale channel values.
type RGBW struct {
	R, G, B, W uint16
}

// ChannelOffsets names the output channels of one RGBW pixel within a device.
type ChannelOffsets struct {
	R, G, B, W int
}

// ClusterPixels maps the 2x2 logical pixels of one device's LED cluster to
// its output channels. This table encodes the board wiring; it is the only
// thing that changes when the wiring does.
var ClusterPixels = [2][2]ChannelOffsets{
	{{R: 3, G: 2, B: 1, W: 0}, {R: 7, G: 6, B: 5, W: 4}},
	{{R: 15, G: 14, B: 13, W: 12}, {R: 8, G: 9, B: 10, W: 11}},
}

// Player drives animation sequences into a frame sink.
//
// The logical pixel grid stacks each device's 2x2 cluster vertically: a chain
// of D devices shows as 2*D rows by 2 columns. Pixel (row, col) lives on
// device row/2 at ClusterPixels[row%2][col].
type Player struct {
	sink    Sink
	drivers int
	bits    int

	// Injectable so tests can run cadences without real sleeps.
	sleep func(time.Duration)
}

// NewPlayer creates a Player for a chain of the given geometry.
func NewPlayer(sink Sink, drivers, bits int) *Player {
	return &Player{
		sink:    sink,
		drivers: drivers,
		bits:    bits,
		sleep:   time.Sleep,
	}
}

// Rows returns the height of the logical pixel grid.
func (p *Player) Rows() int {
	return 2 * p.drivers
}

// Cols returns the width of the logical pixel grid.
func (p *Player) Cols() int {
	return 2
}

// Solid submits one frame with every channel of every device set to v.
func (p *Player) Solid(v uint16) error {
	f := gsframe.New(p.drivers, p.bits)
	f.Fill(v)
	return p.sink.Write(f)
}

// AllOff submits the all-zero frame.
func (p *Player) AllOff() error {
	return p.Solid(0)
}

// SolidRGBW submits one frame with every logical pixel set to c.
func (p *Player) SolidRGBW(c RGBW) error {
	f := gsframe.New(p.drivers, p.bits)
	for row := 0; row < p.Rows(); row++ {
		for col := 0; col < p.Cols(); col++ {
			p.setPixel(f, row, col, c)
		}
	}
	return p.sink.Write(f)
}

// setPixel writes one logical pixel's four channels through the wiring table.
func (p *Player) setPixel(f *gsframe.Frame, row, col int, c RGBW) {
	dev := row / 2
	off := ClusterPixels[row%2][col]
	f.Set(dev, off.R, c.R)
	f.Set(dev, off.G, c.G)
	f.Set(dev, off.B, c.B)
	f.Set(dev, off.W, c.W)
}

// Fade submits steps frames linearly interpolated from from to to, sleeping
// stepDelay between submissions. It works in either direction; the first
// frame is exactly from and the last exactly to.
func (p *Player) Fade(from, to uint16, steps int, stepDelay time.Duration) error {
	if steps < 1 {
		return errors.New("anim: fade needs at least one step")
	}
	if steps == 1 {
		return p.Solid(to)
	}
	for i := 0; i < steps; i++ {
		v := int(from) + (int(to)-int(from))*i/(steps-1)
		if err := p.Solid(uint16(v)); err != nil {
			return err
		}
		if i < steps-1 {
			p.sleep(stepDelay)
		}
	}
	return nil
}

// Pulse runs one breathing cycle: fade from dark up to peak and back down.
func (p *Player) Pulse(peak uint16, steps int, stepDelay time.Duration) error {
	if err := p.Fade(0, peak, steps, stepDelay); err != nil {
		return err
	}
	p.sleep(stepDelay)
	return p.Fade(peak, 0, steps, stepDelay)
}

// CheckerboardFlash alternates two complementary checkerboard frames, holding
// each for interval. Pixel (row, col) gets a when row+col is even, b when odd;
// the second frame is the inverse.
func (p *Player) CheckerboardFlash(a, b RGBW, interval time.Duration, cycles int) error {
	fa := gsframe.New(p.drivers, p.bits)
	fb := gsframe.New(p.drivers, p.bits)
	for row := 0; row < p.Rows(); row++ {
		for col := 0; col < p.Cols(); col++ {
			if (row+col)%2 == 0 {
				p.setPixel(fa, row, col, a)
				p.setPixel(fb, row, col, b)
			} else {
				p.setPixel(fa, row, col, b)
				p.setPixel(fb, row, col, a)
			}
		}
	}
	for i := 0; i < cycles; i++ {
		if err := p.sink.Write(fa); err != nil {
			return err
		}
		p.sleep(interval)
		if err := p.sink.Write(fb); err != nil {
			return err
		}
		p.sleep(interval)
	}
	return nil
}

// Rainbow cycles every pixel through steps evenly spaced hues at full
// saturation, holding each for stepDelay. The white channel stays dark.
func (p *Player) Rainbow(val float64, steps int, stepDelay time.Duration) error {
	if steps < 1 {
		return errors.New("anim: rainbow needs at least one step")
	}
	max := gsframe.New(p.drivers, p.bits).Max()
	for i := 0; i < steps; i++ {
		hue := 360 * float64(i) / float64(steps)
		if err := p.SolidRGBW(HSV(hue, 1, val, max)); err != nil {
			return err
		}
		if i < steps-1 {
			p.sleep(stepDelay)
		}
	}
	return nil
}

// HSV converts a hue (degrees), saturation and value (both 0..1) to an RGBW
// color scaled to max. The white channel is left at zero.
func HSV(hue, sat, val float64, max uint16) RGBW {
	h := math.Mod(hue, 360) / 60
	i := int(math.Floor(h))
	f := h - float64(i)
	pp := val * (1 - sat)
	q := val * (1 - sat*f)
	t := val * (1 - sat*(1-f))

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = val, t, pp
	case 1:
		r, g, b = q, val, pp
	case 2:
		r, g, b = pp, val, t
	case 3:
		r, g, b = pp, q, val
	case 4:
		r, g, b = t, pp, val
	default:
		r, g, b = val, pp, q
	}
	m := float64(max)
	return RGBW{
		R: uint16(r*m + 0.5),
		G: uint16(g*m + 0.5),
		B: uint16(b*m + 0.5),
	}
}
