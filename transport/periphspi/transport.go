// Package periphspi implements spiflash.Transport on top of
// periph.io/x/conn/v3/spi, the same stack the project's generic I2C bus
// uses on the I2C side. It suits Linux SBCs where the SPI controller is
// exposed through /dev/spidevN.M and chip-select is a separate GPIO
// pin resolved through gpioreg (spi.NoCS mode).
package periphspi

import (
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// ChipSelect drives a discrete GPIO pin as SPI chip-select. Used when
// the SPI port is opened in spi.NoCS mode so CS is owned by this
// package rather than the kernel driver.
type ChipSelect struct {
	pin       gpio.PinIO
	activeLow bool
}

// NewChipSelect resolves name (e.g. "GPIO17") via gpioreg and configures
// it as an output at its deasserted level: high when activeLow (the
// common CS convention), low otherwise.
func NewChipSelect(name string, activeLow bool) (*ChipSelect, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("periphspi: no such gpio pin %q", name)
	}
	idle := gpio.High
	if !activeLow {
		idle = gpio.Low
	}
	if err := pin.Out(idle); err != nil {
		return nil, fmt.Errorf("periphspi: configure cs pin %q: %w", name, err)
	}
	return &ChipSelect{pin: pin, activeLow: activeLow}, nil
}

// Set implements spiflash.ChipSelect. Pin write failures are logged and
// swallowed: the core treats chip-select as infallible.
func (c *ChipSelect) Set(asserted bool) {
	level := asserted
	if c.activeLow {
		level = !asserted
	}
	l := gpio.Low
	if level {
		l = gpio.High
	}
	if err := c.pin.Out(l); err != nil {
		slog.Warn("periphspi: chip-select write failed", "pin", c.pin.Name(), "asserted", asserted, "err", err)
	}
}

// Transport adapts a periph.io spi.Conn plus a ChipSelect and a
// wall-clock Clock into spiflash.Transport.
type Transport struct {
	conn spi.Conn
	cs   *ChipSelect
	t0   time.Time
}

// Open resolves portName (e.g. "/dev/spidev0.0" or "SPI0.0") via
// spireg, connects it in SPI mode 0 at freq, and pairs it with a
// ChipSelect built from csPin. Every JEDEC-compatible NOR part accepts
// mode 0.
func Open(portName string, csPin string, freq physic.Frequency) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphspi: init host: %w", err)
	}
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("periphspi: open %q: %w", portName, err)
	}
	conn, err := port.Connect(freq, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		return nil, fmt.Errorf("periphspi: connect %q: %w", portName, err)
	}
	cs, err := NewChipSelect(csPin, true)
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn, cs: cs, t0: time.Now()}, nil
}

// Set deasserts or asserts chip-select through the paired ChipSelect.
func (t *Transport) Set(asserted bool) { t.cs.Set(asserted) }

// NowMs reports milliseconds elapsed since the Transport was opened,
// wrapping at 2^32 like a free-running hardware millisecond timer.
func (t *Transport) NowMs() uint32 { return uint32(time.Since(t.t0).Milliseconds()) }

// DelayMs sleeps for ms milliseconds.
func (t *Transport) DelayMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Xfer performs one full-duplex SPI transaction. timeout is unused:
// periph.io's spi.Conn.Tx has no per-call deadline, and the kernel SPI
// driver underneath bounds real transfer time far below anything the
// busy-wait layer above cares about.
func (t *Transport) Xfer(tx []byte, rx []byte, timeout time.Duration) error {
	if err := t.conn.Tx(tx, rx); err != nil {
		return fmt.Errorf("periphspi: transfer failed: %w", err)
	}
	return nil
}
