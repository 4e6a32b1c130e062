// Package gobotspi implements spiflash.Transport on top of a Gobot SPI
// adaptor (gobot.io/x/gobot/v2/drivers/spi). It suits boards that already expose a
// gobot spi.Connector (sysfs, Raspberry Pi, etc).
package gobotspi

import (
	"fmt"
	"sync/atomic"
	"time"

	"gobot.io/x/gobot/v2/drivers/spi"
)

// Opcodes that carry a response the caller reads back. Gobot's
// spi.Connection exposes ReadCommandData(header, data), which needs the
// header/response split up front; everything else is a pure write and
// goes through WriteBytes.
const (
	opReadStatus1 = 0x05
	opReadStatus2 = 0x35
	opReadStatus3 = 0x15
	opJedecID     = 0x9F
	opRead3       = 0x03
	opRead4       = 0x13
)

// Transport adapts a Gobot SPI driver to spiflash.Transport. It owns no
// chip-select line of its own: Gobot's sysfs/periph SPI adaptors toggle
// CS around each Transfer internally, so Set is a no-op here and the
// window discipline spiflash.Device.xferWindow expects collapses to one
// CS pulse per Xfer call.
type Transport struct {
	driver *spi.Driver
	nowMs  uint32
}

// New wraps adaptor's bus/chip-select pair in a Transport. Additional
// Gobot SPI config options may be supplied as with any other Gobot SPI
// driver; speed defaults to 10 MHz when none is given. The mode is
// always set to 0 (CPOL=0, CPHA=0), overriding any mode option, which
// every JEDEC-compatible NOR part accepts.
func New(adaptor spi.Connector, bus string, opts ...func(spi.Config)) *Transport {
	d := spi.NewDriver(adaptor, bus, opts...)
	d.SetMode(0)
	if d.GetSpeedOrDefault(0) == 0 {
		d.SetSpeed(10_000_000)
	}
	return &Transport{driver: d}
}

// Start establishes the underlying SPI bus.
func (t *Transport) Start() error { return t.driver.Start() }

// Halt releases the underlying SPI bus.
func (t *Transport) Halt() error { return t.driver.Halt() }

// Set is a no-op: this adaptor's CS line is managed by the Gobot
// connection itself around each Transfer.
func (t *Transport) Set(asserted bool) {}

// NowMs returns a millisecond counter that starts at zero and is
// advanced only by DelayMs.
func (t *Transport) NowMs() uint32 { return atomic.LoadUint32(&t.nowMs) }

// DelayMs sleeps for ms milliseconds and advances the counter NowMs
// reports, so waitBusy's deadline arithmetic sees real elapsed time.
func (t *Transport) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	atomic.AddUint32(&t.nowMs, ms)
}

type spiOps interface {
	ReadCommandData(command []byte, data []byte) error
	WriteBytes(data []byte) error
}

// Xfer performs one full-duplex-equivalent transfer. tx and rx must be
// the same length, matching the SPIBus contract.
func (t *Transport) Xfer(tx []byte, rx []byte, timeout time.Duration) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("gobotspi: tx/rx length mismatch: %d != %d", len(tx), len(rx))
	}
	if len(tx) == 0 {
		return nil
	}
	conn := t.driver.Connection()
	ops, ok := conn.(spiOps)
	if !ok {
		return fmt.Errorf("gobotspi: connection does not support ReadCommandData/WriteBytes")
	}

	headerLen, hasResponse := responseHeaderLen(tx)
	if !hasResponse {
		return ops.WriteBytes(tx)
	}
	data := make([]byte, len(tx)-headerLen)
	if err := ops.ReadCommandData(tx[:headerLen], data); err != nil {
		return err
	}
	copy(rx[headerLen:], data)
	return nil
}

// responseHeaderLen reports how many leading bytes of tx are the
// command header for opcodes that return data, and whether tx is such
// an opcode at all.
func responseHeaderLen(tx []byte) (int, bool) {
	switch tx[0] {
	case opReadStatus1, opReadStatus2, opReadStatus3:
		return 1, true
	case opJedecID:
		return 1, true
	case opRead3:
		return 4, true
	case opRead4:
		return 5, true
	default:
		return 0, false
	}
}
