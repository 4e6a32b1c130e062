// Package mcp23017 drives one pin of a Microchip MCP23017 I2C GPIO
// expander as a SPI chip-select line. It exists for rigs that share a
// single MCP23017 across several SPI peripherals' CS lines instead of
// wiring each to a dedicated GPIO.
package mcp23017

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

type registry int

// DefaultAddress is the MCP23017's I2C address with all address pins
// tied low.
const DefaultAddress = 0x20

const (
	iodirA registry = iota
	gpioA
	iodirB
	gpioB
)

// bankAddr maps the IOCON.BANK=0 (power-on default) and BANK=1 register
// layouts. Only the four registers this package touches are listed.
var bankAddr = []map[registry]byte{
	{iodirA: 0x00, gpioA: 0x12, iodirB: 0x01, gpioB: 0x13}, // BANK=0
	{iodirA: 0x00, gpioA: 0x09, iodirB: 0x10, gpioB: 0x19}, // BANK=1
}

// ErrBusBusy signals a transient I2C arbitration failure; callers retry
// after releasing the bus.
var ErrBusBusy = errors.New("mcp23017: bus busy")

// Bus is the narrow I2C surface this package needs. periph.io-backed
// adapters such as the i2c package's GenericBus satisfy it directly.
type Bus interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// Pin names one of the expander's 16 GPIO lines, A0..A7 then B0..B7.
type Pin int

const (
	A0 Pin = iota
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	B0
	B1
	B2
	B3
	B4
	B5
	B6
	B7
)

func (p Pin) bank() (reg, iodir registry, bit byte) {
	if p < B0 {
		return gpioA, iodirA, 1 << byte(p)
	}
	return gpioB, iodirB, 1 << byte(p-B0)
}

// ChipSelect drives a single MCP23017 pin as an active-low (by default)
// SPI chip-select line. It implements spiflash.ChipSelect: Set is
// infallible from the driver core's point of view, so I2C failures are
// logged and swallowed rather than returned.
type ChipSelect struct {
	mx         sync.Mutex
	transport  Bus
	bank       int
	address    byte
	pin        Pin
	activeLow  bool
	retryLimit int
	latch      byte
}

// New configures pin as an output on the expander at address and
// returns a ChipSelect ready for use. activeLow matches the common SPI
// convention where CS is asserted low.
func New(ctx context.Context, bus Bus, address byte, pin Pin, activeLow bool) (*ChipSelect, error) {
	c := &ChipSelect{
		transport:  bus,
		address:    address,
		pin:        pin,
		activeLow:  activeLow,
		retryLimit: 3,
	}
	if activeLow {
		c.latch = 0xFF
	}
	if err := c.configureOutput(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ChipSelect) configureOutput(ctx context.Context) error {
	_, iodir, bit := c.pin.bank()
	// Read-modify-write would be more correct on a shared port, but the
	// expander has no read of IODIR; this package assumes it owns the
	// bits it configures, matching its single-purpose CS role.
	var err error
	for i := c.retryLimit; i > 0; i-- {
		current := byte(0xFF) &^ bit // clear this bit (output), leave the rest as inputs
		err = c.transport.WriteToAddr(ctx, c.address, []byte{bankAddr[c.bank][iodir], current})
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrBusBusy) {
			return fmt.Errorf("mcp23017: configure pin %d as output: %w", c.pin, err)
		}
		_ = c.transport.Release(ctx)
	}
	return fmt.Errorf("mcp23017: configure pin %d as output (retry limit reached): %w", c.pin, err)
}

// Set asserts (true) or deasserts (false) the chip-select pin. Failures
// talking to the expander are logged, never returned: see the ChipSelect
// interface contract in the core package.
func (c *ChipSelect) Set(asserted bool) {
	c.mx.Lock()
	defer c.mx.Unlock()

	reg, _, bit := c.pin.bank()
	level := asserted
	if c.activeLow {
		level = !asserted
	}
	if level {
		c.latch |= bit
	} else {
		c.latch &^= bit
	}

	ctx := context.Background()
	var err error
	for i := c.retryLimit; i > 0; i-- {
		err = c.transport.WriteToAddr(ctx, c.address, []byte{bankAddr[c.bank][reg], c.latch})
		if err == nil {
			return
		}
		if !errors.Is(err, ErrBusBusy) {
			break
		}
		_ = c.transport.Release(ctx)
	}
	slog.Warn("mcp23017: chip-select write failed", "pin", c.pin, "asserted", asserted, "err", err)
}
